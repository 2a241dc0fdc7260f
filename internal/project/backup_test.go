package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

func TestExportImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Theme = "dark"
	book := model.DefaultRateBook()
	book.InteriorRate = 91
	templates := model.NewTemplateStore()
	templates.Add(model.NewBuildingTemplate("Tower", "", model.DefaultParameters()))
	buildings := []*model.Building{
		{ID: 2, Name: "HQ", Params: model.DefaultParameters()},
	}

	if err := ExportAllData(path, cfg, book, templates, buildings); err != nil {
		t.Fatalf("ExportAllData: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData: %v", err)
	}
	if backup.Version != "1.0.0" {
		t.Errorf("version = %q", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("CreatedAt missing")
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("theme = %q", backup.Config.Theme)
	}
	if backup.RateBook.InteriorRate != 91 {
		t.Errorf("interior rate = %v", backup.RateBook.InteriorRate)
	}
	if len(backup.Templates.Templates) != 1 {
		t.Errorf("templates = %d", len(backup.Templates.Templates))
	}

	restored := backup.ToBuildings()
	if len(restored) != 1 || restored[0].ID != 2 || restored[0].Name != "HQ" {
		t.Errorf("restored buildings = %+v", restored)
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected an error for a versionless backup")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte("junk"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected a parse error")
	}
}
