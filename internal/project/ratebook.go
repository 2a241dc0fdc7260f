package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// SaveRateBook writes the rate book to a JSON file.
func SaveRateBook(path string, book model.RateBook) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadRateBook reads a rate book from a JSON file, backfilling missing
// tables and rates so older files keep working. A missing file returns the
// default rate book without error.
func LoadRateBook(path string) (model.RateBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultRateBook(), nil
		}
		return model.RateBook{}, err
	}
	var book model.RateBook
	if err := json.Unmarshal(data, &book); err != nil {
		return model.RateBook{}, err
	}
	book.Normalize()
	return book, nil
}

// LoadOrCreateRateBook loads the rate book from the default path, writing
// the defaults there on first run.
func LoadOrCreateRateBook() (model.RateBook, string, error) {
	path := DefaultRateBookPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		book := model.DefaultRateBook()
		if saveErr := SaveRateBook(path, book); saveErr != nil {
			return book, path, saveErr
		}
		return book, path, nil
	}
	book, err := LoadRateBook(path)
	return book, path, err
}

// RateOverrides are optional per-site rate adjustments loaded from a YAML
// file at startup. Nil pointer fields leave the corresponding rate alone;
// the Finishes map overrides individual finish rates by name.
type RateOverrides struct {
	StructuralRate *float64           `yaml:"structural_rate"`
	InteriorRate   *float64           `yaml:"interior_rate"`
	FoundationRate *float64           `yaml:"foundation_rate"`
	Finishes       map[string]float64 `yaml:"finishes"`
}

// LoadRateOverrides reads the overrides file. A missing file returns
// (nil, nil): overrides are optional.
func LoadRateOverrides(path string) (*RateOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rate overrides: %w", err)
	}
	var overrides RateOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse rate overrides: %w", err)
	}
	return &overrides, nil
}

// Apply writes the overrides into a rate book. A finish name with no entry
// in the book is a configuration error: overriding a typo must not silently
// do nothing.
func (o *RateOverrides) Apply(book *model.RateBook) error {
	if o == nil {
		return nil
	}
	if o.StructuralRate != nil {
		book.StructuralRate = *o.StructuralRate
	}
	if o.InteriorRate != nil {
		book.InteriorRate = *o.InteriorRate
	}
	if o.FoundationRate != nil {
		book.FoundationRate = *o.FoundationRate
	}
	for name, rate := range o.Finishes {
		found := false
		for i := range book.Finishes {
			if book.Finishes[i].Name == name {
				book.Finishes[i].RatePerSqFt = rate
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("rate override for unknown finish %q", name)
		}
	}
	return nil
}
