package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

func TestSaveAndLoadRateBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratebook.json")

	book := model.DefaultRateBook()
	book.StructuralRate = 62.5
	if err := book.AddFinish(model.ExteriorFinish{Name: "Brick Veneer", RatePerSqFt: 74.2}); err != nil {
		t.Fatalf("AddFinish: %v", err)
	}

	if err := SaveRateBook(path, book); err != nil {
		t.Fatalf("SaveRateBook: %v", err)
	}
	loaded, err := LoadRateBook(path)
	if err != nil {
		t.Fatalf("LoadRateBook: %v", err)
	}

	if loaded.StructuralRate != 62.5 {
		t.Errorf("StructuralRate = %v", loaded.StructuralRate)
	}
	if _, err := loaded.FinishFor("Brick Veneer"); err != nil {
		t.Errorf("custom finish lost: %v", err)
	}
}

func TestLoadRateBookMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	book, err := LoadRateBook(path)
	if err != nil {
		t.Fatalf("LoadRateBook: %v", err)
	}
	if len(book.Finishes) != 5 {
		t.Errorf("finishes = %d, want 5 built-ins", len(book.Finishes))
	}
}

func TestLoadRateBookBackfillsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	// An older file with only a structural rate.
	if err := os.WriteFile(path, []byte(`{"structural_rate": 48}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	book, err := LoadRateBook(path)
	if err != nil {
		t.Fatalf("LoadRateBook: %v", err)
	}
	if book.StructuralRate != 48 {
		t.Errorf("StructuralRate = %v", book.StructuralRate)
	}
	def := model.DefaultRateBook()
	if book.InteriorRate != def.InteriorRate || book.FoundationRate != def.FoundationRate {
		t.Error("missing rates not backfilled")
	}
	if len(book.Finishes) != 5 {
		t.Errorf("finishes = %d, want backfilled built-ins", len(book.Finishes))
	}
}

func TestLoadRateOverridesMissingFileIsNil(t *testing.T) {
	overrides, err := LoadRateOverrides(filepath.Join(t.TempDir(), "rates.yaml"))
	if err != nil {
		t.Fatalf("LoadRateOverrides: %v", err)
	}
	if overrides != nil {
		t.Errorf("overrides = %+v, want nil", overrides)
	}
	// Applying nil overrides is a no-op, not a crash.
	book := model.DefaultRateBook()
	if err := overrides.Apply(&book); err != nil {
		t.Errorf("Apply(nil): %v", err)
	}
}

func TestRateOverridesApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	yaml := `structural_rate: 61.0
foundation_rate: 31.25
finishes:
  Curtain Wall: 199.99
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	overrides, err := LoadRateOverrides(path)
	if err != nil {
		t.Fatalf("LoadRateOverrides: %v", err)
	}
	book := model.DefaultRateBook()
	if err := overrides.Apply(&book); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if book.StructuralRate != 61.0 {
		t.Errorf("StructuralRate = %v", book.StructuralRate)
	}
	if book.FoundationRate != 31.25 {
		t.Errorf("FoundationRate = %v", book.FoundationRate)
	}
	// Interior untouched.
	if book.InteriorRate != model.DefaultRateBook().InteriorRate {
		t.Errorf("InteriorRate = %v, want unchanged", book.InteriorRate)
	}
	finish, err := book.FinishFor(model.ExteriorCurtainWall)
	if err != nil {
		t.Fatalf("FinishFor: %v", err)
	}
	if finish.RatePerSqFt != 199.99 {
		t.Errorf("Curtain Wall rate = %v", finish.RatePerSqFt)
	}
}

func TestRateOverridesUnknownFinishRejected(t *testing.T) {
	overrides := &RateOverrides{Finishes: map[string]float64{"Glass Brick": 50}}
	book := model.DefaultRateBook()
	if err := overrides.Apply(&book); err == nil {
		t.Error("expected an error for an unknown finish override")
	}
}

func TestLoadRateOverridesBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadRateOverrides(path); err == nil {
		t.Error("expected a parse error")
	}
}
