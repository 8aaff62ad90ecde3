package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hazyhaar/ementa/pkg/importer"
	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/spf13/cobra"
)

const importTimeout = 10 * time.Minute

func (a *app) importCmd() *cobra.Command {
	var m menu.Manifest
	var outDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a catalog directory from a SQLite database or a CSV file",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&m.ID, "id", "", "catalog id (required)")
	pf.StringVar(&m.Title, "title", "", "catalog title")
	pf.StringVar(&m.Locale, "locale", "cs", "catalog locale, used for sorting")
	pf.StringVar(&m.Version, "catalog-version", "", "catalog version")
	pf.StringVar(&m.Source, "source", "", "source description (default derived from input)")
	pf.StringVarP(&outDir, "output-dir", "o", "", "catalogs directory to write <id>/ into (default catalogs_dir)")

	target := func() (string, error) {
		if m.ID == "" {
			return "", fmt.Errorf("--id is required")
		}
		if outDir != "" {
			return outDir, nil
		}
		if a.cfg.CatalogsDir == "" {
			return "", fmt.Errorf("--output-dir is required when catalogs_dir is not configured")
		}
		return a.cfg.CatalogsDir, nil
	}
	report := func(c *menu.Catalog, root string) {
		dir := filepath.Join(root, c.ID())
		a.logger.Info("catalog imported", "catalog", c.ID(), "dishes", c.Len(), "dir", dir)
		fmt.Fprintf(a.out, "%s: %d dishes -> %s\n", c.ID(), c.Len(), dir)
	}

	sqliteCmd := &cobra.Command{
		Use:   "sqlite <db-path>",
		Short: "Import dishes from a SQLite dish database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := target()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
			defer cancel()
			c, err := importer.FromSQLite(ctx, args[0], dir, m)
			if err != nil {
				return err
			}
			report(c, dir)
			return nil
		},
	}

	csvCmd := &cobra.Command{
		Use:   "csv <path-or-url>",
		Short: "Import dishes from a CSV file (local path or http(s) URL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := target()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
			defer cancel()
			c, err := importer.FromCSV(ctx, args[0], dir, m)
			if err != nil {
				return err
			}
			report(c, dir)
			return nil
		},
	}
	f := csvCmd.Flags()
	f.StringVar(&m.Format.Delimiter, "delimiter", ",", "field delimiter")
	f.StringVar(&m.Format.Encoding, "encoding", "", "source encoding, e.g. windows-1250 (default UTF-8)")
	f.BoolVar(&m.Format.HasHeader, "header", true, "first row names the columns")
	f.StringVar(&m.Format.ListSeparator, "list-separator", "|", "separator inside ingredients and images cells")

	cmd.AddCommand(sqliteCmd, csvCmd)
	return cmd
}
