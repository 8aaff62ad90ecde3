package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/ementa/pkg/menu"
	"gopkg.in/yaml.v3"
)

// downloadFile downloads url to dest with retries and timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 2 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}

// writeCatalog validates records as a catalog and writes
// outDir/<id>/{manifest.yaml,dishes.yaml,data.gob}. The snapshot carries the
// ids assigned during validation so they survive reloads.
func writeCatalog(outDir string, m menu.Manifest, records []menu.Dish) (*menu.Catalog, error) {
	c, err := menu.NewCatalog(m.Meta(), records)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(outDir, m.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	dishes := c.Dishes()
	data, err := yaml.Marshal(dishes)
	if err != nil {
		return nil, fmt.Errorf("marshal dishes: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dishes.yaml"), data, 0o644); err != nil {
		return nil, fmt.Errorf("write dishes: %w", err)
	}
	if err := menu.SaveGob(filepath.Join(dir, menu.SnapshotFile), dishes); err != nil {
		return nil, err
	}

	m.DataFile = "dishes.yaml"
	m.Format = menu.FormatSpec{}
	if err := menu.WriteManifest(filepath.Join(dir, menu.ManifestFile), &m); err != nil {
		return nil, err
	}
	return c, nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
