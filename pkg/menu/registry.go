package menu

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Registry holds every loaded catalog. Catalogs themselves are immutable;
// a reload swaps the whole set at once.
type Registry struct {
	mu        sync.RWMutex
	catalogs  map[string]*Catalog
	dir       string
	defaultID string
}

// NewRegistry creates an empty registry reading catalogs from dir.
// An empty dir means the built-in catalog only. defaultID selects the catalog
// served when a caller names none; empty picks the first id in sorted order.
func NewRegistry(dir, defaultID string) *Registry {
	return &Registry{
		catalogs:  make(map[string]*Catalog),
		dir:       dir,
		defaultID: defaultID,
	}
}

// Load scans the catalogs directory and loads every catalog in it.
func (r *Registry) Load() error {
	loaded := make(map[string]*Catalog)

	if r.dir == "" {
		c, err := Builtin()
		if err != nil {
			return err
		}
		loaded[c.ID()] = c
	} else {
		entries, err := os.ReadDir(r.dir)
		if err != nil {
			return fmt.Errorf("read catalogs dir %s: %w", r.dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(r.dir, entry.Name())
			if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
				continue
			}
			c, err := LoadCatalog(dir)
			if err != nil {
				return fmt.Errorf("load catalog %s: %w", entry.Name(), err)
			}
			if _, dup := loaded[c.ID()]; dup {
				return fmt.Errorf("catalog id %q declared twice (in %s)", c.ID(), entry.Name())
			}
			loaded[c.ID()] = c
		}
	}

	r.mu.Lock()
	r.catalogs = loaded
	r.mu.Unlock()
	return nil
}

// Reload re-reads every catalog from disk.
func (r *Registry) Reload() error {
	return r.Load()
}

// Catalog returns the catalog with the given id; "" selects the default one.
func (r *Registry) Catalog(id string) (*Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id == "" {
		id = r.defaultLocked()
	}
	c, ok := r.catalogs[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrCatalogNotFound)
	}
	return c, nil
}

func (r *Registry) defaultLocked() string {
	if r.defaultID != "" {
		return r.defaultID
	}
	ids := make([]string, 0, len(r.catalogs))
	for id := range r.catalogs {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return ids[0]
}

// Search runs a query against one catalog.
func (r *Registry) Search(catalogID, query string) ([]Dish, error) {
	c, err := r.Catalog(catalogID)
	if err != nil {
		return nil, err
	}
	return Search(c, query), nil
}

// CatalogInfo is the public summary of a loaded catalog.
type CatalogInfo struct {
	Meta
	Dishes int `json:"dishes"`
}

// List returns a summary of every catalog, sorted by id.
func (r *Registry) List() []CatalogInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]CatalogInfo, 0, len(r.catalogs))
	for _, c := range r.catalogs {
		infos = append(infos, CatalogInfo{Meta: c.Meta(), Dishes: c.Len()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Count returns the number of loaded catalogs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.catalogs)
}

// TotalDishes returns the number of dishes across all catalogs.
func (r *Registry) TotalDishes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, c := range r.catalogs {
		total += c.Len()
	}
	return total
}
