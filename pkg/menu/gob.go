package menu

import (
	"encoding/gob"
	"fmt"
	"os"
)

// LoadGob decodes dish records from a gob snapshot.
func LoadGob(path string) ([]Dish, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var records []Dish
	if err := gob.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return records, nil
}

// SaveGob writes dish records to a gob snapshot at path.
func SaveGob(path string, records []Dish) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(records); err != nil {
		f.Close()
		return fmt.Errorf("encode gob: %w", err)
	}
	return f.Close()
}
