package project

import (
	"path/filepath"
	"testing"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := model.NewTemplateStore()
	p := model.DefaultParameters()
	p.NumFloors = 12
	p.EnsureFloorDetails()
	store.Add(model.NewBuildingTemplate("Mid-rise", "12-storey box", p))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates: %v", err)
	}
	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("templates = %d, want 1", len(loaded.Templates))
	}
	tpl := loaded.Templates[0]
	if tpl.Name != "Mid-rise" {
		t.Errorf("name = %q", tpl.Name)
	}
	if tpl.Params.NumFloors != 12 {
		t.Errorf("floors = %d, want 12", tpl.Params.NumFloors)
	}
	if tpl.CreatedAt == "" {
		t.Error("CreatedAt missing")
	}
}

func TestLoadTemplatesMissingFile(t *testing.T) {
	loaded, err := LoadTemplates(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if loaded.Templates == nil {
		t.Error("Templates should be an empty slice, not nil")
	}
	if len(loaded.Templates) != 0 {
		t.Errorf("templates = %d, want 0", len(loaded.Templates))
	}
}
