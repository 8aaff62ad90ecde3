package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/ementa/pkg/menu"
)

// FromSQLite reads every dish from the SQLite database at dbPath and writes
// the catalog described by m under outDir.
func FromSQLite(ctx context.Context, dbPath, outDir string, m menu.Manifest) (*menu.Catalog, error) {
	if m.ID == "" {
		return nil, fmt.Errorf("import: catalog id is required")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	db, err := OpenDishDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, err := db.Dishes(ctx)
	if err != nil {
		return nil, err
	}
	if m.Source == "" {
		m.Source = "sqlite:" + filepath.Base(dbPath)
	}
	return writeCatalog(outDir, m, records)
}

// FromCSV reads dishes from a CSV file (or an http(s) URL) laid out as
// described by m.Format and writes the catalog under outDir.
func FromCSV(ctx context.Context, src, outDir string, m menu.Manifest) (*menu.Catalog, error) {
	if m.ID == "" {
		return nil, fmt.Errorf("import: catalog id is required")
	}

	path := src
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		tmp, err := os.MkdirTemp("", "ementa-import-")
		if err != nil {
			return nil, fmt.Errorf("temp dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		path = filepath.Join(tmp, "dishes.csv")
		if err := downloadFile(ctx, src, path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	records, err := menu.DecodeCSV(f, m.Format)
	if err != nil {
		return nil, err
	}
	if m.Source == "" {
		m.Source = src
	}
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	return writeCatalog(outDir, m, records)
}
