package menu

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// ManifestFile and SnapshotFile are the fixed names inside a catalog directory.
const (
	ManifestFile = "manifest.yaml"
	SnapshotFile = "data.gob"
)

// csvColumns is the column order used when a CSV file has no header.
var csvColumns = []string{"id", "name", "description", "ingredients", "images"}

// LoadCatalog reads dir/manifest.yaml and builds the catalog from the gob
// snapshot if present, else from the manifest's data file.
func LoadCatalog(dir string) (*Catalog, error) {
	m, err := LoadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}

	var records []Dish
	gobPath := filepath.Join(dir, SnapshotFile)
	if _, err := os.Stat(gobPath); err == nil {
		records, err = LoadGob(gobPath)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", m.ID, err)
		}
	} else {
		records, err = loadDataFile(filepath.Join(dir, m.DataFile), m.Format)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", m.ID, err)
		}
	}

	return NewCatalog(m.Meta(), records)
}

func loadDataFile(path string, format FormatSpec) ([]Dish, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(f)
	case ".csv":
		return DecodeCSV(f, format)
	default:
		return nil, fmt.Errorf("unsupported data file %s", filepath.Base(path))
	}
}

// DecodeYAML reads a YAML sequence of dish records.
func DecodeYAML(r io.Reader) ([]Dish, error) {
	var records []Dish
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if err == io.EOF {
			return []Dish{}, nil
		}
		return nil, fmt.Errorf("decode dishes: %w", err)
	}
	return records, nil
}

// DecodeCSV reads dish records from CSV. List columns are split on
// format.ListSeparator ("|" by default); non UTF-8 encodings are transcoded.
func DecodeCSV(r io.Reader, format FormatSpec) ([]Dish, error) {
	if enc := format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}

	cr := csv.NewReader(r)
	if delim := format.Delimiter; delim != "" {
		cr.Comma = []rune(delim)[0]
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	sep := format.ListSeparator
	if sep == "" {
		sep = "|"
	}

	cols := csvColumns
	if format.HasHeader {
		header, err := cr.Read()
		if err == io.EOF {
			return []Dish{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		cols = make([]string, len(header))
		for i, h := range header {
			cols[i] = strings.ToLower(strings.TrimSpace(h))
		}
	}

	records := []Dish{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		var d Dish
		for i, v := range row {
			if i >= len(cols) {
				break
			}
			v = strings.TrimSpace(v)
			switch cols[i] {
			case "id":
				d.ID = v
			case "name":
				d.Name = v
			case "description":
				d.Description = v
			case "ingredients":
				d.Ingredients = splitList(v, sep)
			case "images":
				d.Images = splitList(v, sep)
			}
		}
		records = append(records, d)
	}
	return records, nil
}

func splitList(v, sep string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
