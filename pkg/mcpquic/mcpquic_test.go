package mcpquic

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func TestMagicRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMagic(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "EMN1" {
		t.Fatalf("preamble = %q", buf.String())
	}
	if err := ReadMagic(&buf); err != nil {
		t.Fatalf("ReadMagic: %v", err)
	}
}

func TestReadMagic_Rejects(t *testing.T) {
	if err := ReadMagic(strings.NewReader("MCP1")); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("wrong preamble: err = %v", err)
	}
	if err := ReadMagic(strings.NewReader("EM")); err == nil || errors.Is(err, ErrInvalidMagic) {
		t.Errorf("short preamble: err = %v", err)
	}
}

func TestSelfSignedCert(t *testing.T) {
	cert, err := SelfSignedCert("Ementa Test")
	if err != nil {
		t.Fatal(err)
	}
	if len(cert.Certificate) != 1 || cert.PrivateKey == nil {
		t.Fatal("incomplete certificate")
	}
	cfg := ServerTLSConfig(cert)
	if len(cfg.NextProtos) != 1 || cfg.NextProtos[0] != ALPN {
		t.Errorf("NextProtos = %v", cfg.NextProtos)
	}
}

func TestClientNotConnected(t *testing.T) {
	c := NewClient("127.0.0.1:1", nil, "test")
	if _, err := c.ListTools(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("err = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Error(err)
	}
}

func TestListenerRoundTrip(t *testing.T) {
	cert, err := SelfSignedCert("Ementa Test")
	if err != nil {
		t.Fatal(err)
	}
	srv := server.NewMCPServer("ementa-test", "0", server.WithToolCapabilities(false))
	srv.AddTool(mcp.NewTool("echo", mcp.WithString("text")), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(req.GetString("text", "")), nil
	})

	ln, err := NewListener("127.0.0.1:0", ServerTLSConfig(cert), srv, nil)
	if err != nil {
		t.Skipf("udp listen unavailable: %v", err)
	}
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go ln.Serve(ctx)

	c := NewClient(ln.Addr().String(), nil, "test")
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Close()

	tools, err := c.ListTools(ctx)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != "echo" {
		t.Fatalf("tools = %+v", tools.Tools)
	}

	res, err := c.CallTool(ctx, "echo", map[string]any{"text": "Knedlíky"})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok || text.Text != "Knedlíky" {
		t.Errorf("content = %#v", res.Content)
	}
}
