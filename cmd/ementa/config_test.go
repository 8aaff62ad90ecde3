package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Addr != ":8420" || cfg.CatalogsDir != "" || cfg.MCPAddr != "" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`
addr: ":9000"
catalogs_dir: /srv/ementa/catalogs
default_catalog: praha
transport: http
mcp_addr: ":8421"
tls:
  cert_file: cert.pem
  key_file: key.pem
log_level: debug
speech:
  enabled: true
  rate: 160
export:
  title: Menu
  image_ext: .jpg
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" || cfg.DefaultCatalog != "praha" || cfg.Transport != "http" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MCPAddr != ":8421" {
		t.Errorf("mcp_addr = %q", cfg.MCPAddr)
	}
	if cfg.TLS.KeyFile != "key.pem" {
		t.Errorf("tls.key_file = %q", cfg.TLS.KeyFile)
	}
	if !cfg.Speech.Enabled || cfg.Speech.Rate != 160 {
		t.Errorf("speech = %+v", cfg.Speech)
	}
	if cfg.Speech.Voice != "cs" {
		t.Errorf("unset speech.voice = %q, want default cs", cfg.Speech.Voice)
	}

	opts := cfg.Export.options()
	if opts.Title != "Menu" || opts.ImageExt != ".jpg" {
		t.Errorf("export options = %+v", opts)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"bad.yaml":       "addr: [\n",
		"transport.yaml": "transport: carrier-pigeon\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(path, discard); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn, "error": slog.LevelError} {
		got, err := parseLevel(in)
		if err != nil || got != want {
			t.Errorf("parseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
