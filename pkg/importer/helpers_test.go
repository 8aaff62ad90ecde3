package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/ementa/pkg/menu"
)

func TestDownloadFile(t *testing.T) {
	content := "id,name\nk,Koleno\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "dishes.csv")
	if err := downloadFile(context.Background(), ts.URL, dest); err != nil {
		t.Fatalf("downloadFile: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", string(data), content)
	}
}

func TestDownloadFile_Retry(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "retry.txt")
	if err := downloadFile(context.Background(), ts.URL, dest); err != nil {
		t.Fatalf("downloadFile with retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDownloadFile_AllFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	if err := downloadFile(context.Background(), ts.URL, filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("expected error after 3 failed attempts")
	}
}

func TestWriteCatalog(t *testing.T) {
	out := t.TempDir()
	records := []menu.Dish{
		{Name: "Kulajda", Ingredients: []string{"Cogumelos", "Endro"}},
		{ID: "tat", Name: "Tatarák"},
	}

	c, err := writeCatalog(out, menu.Manifest{ID: "sopas", Title: "Sopas", Locale: "cs"}, records)
	if err != nil {
		t.Fatalf("writeCatalog: %v", err)
	}

	for _, name := range []string{menu.ManifestFile, menu.SnapshotFile, "dishes.yaml"} {
		if _, err := os.Stat(filepath.Join(out, "sopas", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	loaded, err := menu.LoadCatalog(filepath.Join(out, "sopas"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if loaded.Len() != 2 || loaded.Meta().Title != "Sopas" {
		t.Errorf("loaded = %d dishes, meta %+v", loaded.Len(), loaded.Meta())
	}
	// Generated ids are persisted, not re-derived.
	if loaded.Dishes()[0].ID != c.Dishes()[0].ID {
		t.Errorf("id changed across reload: %q vs %q", loaded.Dishes()[0].ID, c.Dishes()[0].ID)
	}

	// The YAML copy alone is enough to rebuild the catalog.
	os.Remove(filepath.Join(out, "sopas", menu.SnapshotFile))
	fromYAML, err := menu.LoadCatalog(filepath.Join(out, "sopas"))
	if err != nil {
		t.Fatalf("LoadCatalog without gob: %v", err)
	}
	if _, err := fromYAML.Dish("tat"); err != nil {
		t.Errorf("Dish(tat): %v", err)
	}
}

func TestWriteCatalog_Invalid(t *testing.T) {
	_, err := writeCatalog(t.TempDir(), menu.Manifest{ID: "bad"}, []menu.Dish{{Name: ""}})
	if err == nil {
		t.Error("expected validation error")
	}
}
