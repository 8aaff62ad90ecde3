package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hazyhaar/ementa/pkg/export"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr           string `yaml:"addr"`
	CatalogsDir    string `yaml:"catalogs_dir"` // empty serves the built-in catalog
	DefaultCatalog string `yaml:"default_catalog"`
	Transport      string `yaml:"transport"` // "http" or "quic"
	MCPAddr        string `yaml:"mcp_addr"`  // standalone MCP-over-QUIC listener for transport http
	TLS            struct {
		CertFile string `yaml:"cert_file"`
		KeyFile  string `yaml:"key_file"`
	} `yaml:"tls"`
	LogLevel string       `yaml:"log_level"`
	Speech   speechConfig `yaml:"speech"`
	Export   exportConfig `yaml:"export"`
}

type speechConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
	Voice   string `yaml:"voice"`
	Rate    int    `yaml:"rate"`
}

type exportConfig struct {
	Title         string `yaml:"title"`
	ImageBaseURL  string `yaml:"image_base_url"`
	ImageExt      string `yaml:"image_ext"`
	DetailBaseURL string `yaml:"detail_base_url"`
}

func (e exportConfig) options() export.Options {
	return export.Options{
		Title:         e.Title,
		ImageBaseURL:  e.ImageBaseURL,
		ImageExt:      e.ImageExt,
		DetailBaseURL: e.DetailBaseURL,
	}
}

func defaultConfig() config {
	return config{
		Addr:      ":8420",
		Transport: "http",
		LogLevel:  "info",
		Speech:    speechConfig{Voice: "cs"},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string, logger *slog.Logger) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	switch cfg.Transport {
	case "http", "quic":
	default:
		return cfg, fmt.Errorf("config %s: unknown transport %q (want http or quic)", path, cfg.Transport)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
