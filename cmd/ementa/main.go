// Command ementa serves, searches and exports dish catalogs.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer

	cfgPath  string
	catalog  string
	logLevel string
	asJSON   bool

	cfg    config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:          "ementa",
		Short:        "Dish catalog search, export and API server",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "config.yaml", "path to config file")
	pf.StringVarP(&a.catalog, "catalog", "c", "", "catalog id (default from config)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.BoolVar(&a.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(
		a.serveCmd(),
		a.searchCmd(),
		a.showCmd(),
		a.catalogsCmd(),
		a.exportCmd(),
		a.speakCmd(),
		a.importCmd(),
		a.mcpCmd(),
	)
	return root
}

func (a *app) init() error {
	boot := slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg, err := loadConfig(a.cfgPath, boot)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.catalog == "" {
		a.catalog = cfg.DefaultCatalog
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) registry() (*menu.Registry, error) {
	reg := menu.NewRegistry(a.cfg.CatalogsDir, a.cfg.DefaultCatalog)
	if err := reg.Load(); err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	return reg, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
