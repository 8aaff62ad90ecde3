package menu

import (
	"embed"
	"fmt"
	"path"
)

//go:embed catalogs/ementa/manifest.yaml catalogs/ementa/dishes.yaml
var builtinFS embed.FS

const builtinDir = "catalogs/ementa"

// Builtin returns the catalog compiled into the binary: forty Czech dishes
// with Portuguese descriptions.
func Builtin() (*Catalog, error) {
	data, err := builtinFS.ReadFile(path.Join(builtinDir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("builtin manifest: %w", err)
	}
	m, err := ParseManifest(data, "builtin")
	if err != nil {
		return nil, err
	}

	f, err := builtinFS.Open(path.Join(builtinDir, m.DataFile))
	if err != nil {
		return nil, fmt.Errorf("builtin dishes: %w", err)
	}
	defer f.Close()

	records, err := DecodeYAML(f)
	if err != nil {
		return nil, fmt.Errorf("builtin: %w", err)
	}
	return NewCatalog(m.Meta(), records)
}
