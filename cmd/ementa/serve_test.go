package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hazyhaar/ementa/pkg/api"
	"github.com/hazyhaar/ementa/pkg/menu"
)

func TestMCPListener(t *testing.T) {
	a := &app{logger: discard}
	a.cfg = defaultConfig()
	a.cfg.MCPAddr = "127.0.0.1:0"

	reg := menu.NewRegistry("", "")
	if err := reg.Load(); err != nil {
		t.Fatal(err)
	}
	ln, err := a.mcpListener(api.NewMCPServer(reg, "test", discard))
	if err != nil {
		t.Skipf("udp listen unavailable: %v", err)
	}
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go ln.Serve(ctx)
	addr := ln.Addr().String()

	var tools []struct {
		Name string `json:"name"`
	}
	out := mustRun(t, "", "--json", "mcp", "tools", "--addr", addr, "--timeout", "5s")
	if err := json.Unmarshal([]byte(out), &tools); err != nil {
		t.Fatalf("decode tools %q: %v", out, err)
	}
	if len(tools) != 3 {
		t.Errorf("tools = %+v, want 3", tools)
	}

	// Digits on the command line reach search_dishes as a string query.
	var resp struct {
		Count int `json:"count"`
	}
	out = mustRun(t, "", "mcp", "call", "search_dishes", "query=1999", "--addr", addr, "--timeout", "5s")
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode search %q: %v", out, err)
	}
	if resp.Count != 0 {
		t.Errorf("query=1999 count = %d, want 0", resp.Count)
	}

	out = mustRun(t, "", "mcp", "call", "search_dishes", "query=knedl", "--addr", addr, "--timeout", "5s")
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode search %q: %v", out, err)
	}
	if resp.Count != 11 {
		t.Errorf("query=knedl count = %d, want 11", resp.Count)
	}
}

func TestMCPListener_BadCert(t *testing.T) {
	a := &app{logger: discard}
	a.cfg = defaultConfig()
	a.cfg.MCPAddr = "127.0.0.1:0"
	a.cfg.TLS.CertFile = "/nonexistent/cert.pem"
	a.cfg.TLS.KeyFile = "/nonexistent/key.pem"

	if _, err := a.mcpListener(api.NewMCPServer(menu.NewRegistry("", ""), "test", discard)); err == nil {
		t.Error("expected error for missing certificate files")
	}
}
