package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a catalog directory: its identity and where its dishes live.
type Manifest struct {
	ID       string     `yaml:"id" json:"id"`
	Title    string     `yaml:"title" json:"title"`
	Locale   string     `yaml:"locale" json:"locale"`
	Version  string     `yaml:"version" json:"version"`
	Source   string     `yaml:"source" json:"source"`
	DataFile string     `yaml:"data_file" json:"data_file"`
	Format   FormatSpec `yaml:"format,omitempty" json:"-"`
}

// FormatSpec describes a CSV data file.
type FormatSpec struct {
	Delimiter     string `yaml:"delimiter,omitempty"`
	Encoding      string `yaml:"encoding,omitempty"`
	HasHeader     bool   `yaml:"has_header,omitempty"`
	ListSeparator string `yaml:"list_separator,omitempty"`
}

// Meta converts the manifest into catalog metadata.
func (m *Manifest) Meta() Meta {
	return Meta{
		ID:      m.ID,
		Title:   m.Title,
		Locale:  m.Locale,
		Version: m.Version,
		Source:  m.Source,
	}
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses manifest YAML; name is only used in errors.
func ParseManifest(data []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", name, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", name)
	}
	if m.DataFile == "" {
		m.DataFile = "dishes.yaml"
	}
	return &m, nil
}

// WriteManifest writes m as YAML to path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
