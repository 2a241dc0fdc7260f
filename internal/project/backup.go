package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// BackupData is the top-level structure for import/export of all
// application data in one file.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	RateBook  model.RateBook      `json:"rate_book"`
	Templates model.TemplateStore `json:"templates"`
	Buildings []BuildingSnapshot  `json:"buildings"`
}

// ExportAllData exports the config, rate book, templates, and building set
// to a single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, book model.RateBook, templates model.TemplateStore, buildings []*model.Building) error {
	snapshots := make([]BuildingSnapshot, 0, len(buildings))
	for _, b := range buildings {
		snapshots = append(snapshots, BuildingSnapshot{
			ID:       b.ID,
			Name:     b.Name,
			Position: b.Position,
			Params:   b.Params,
		})
	}
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		RateBook:  book,
		Templates: templates,
		Buildings: snapshots,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentFiles == nil {
		backup.Config.RecentFiles = []string{}
	}
	backup.RateBook.Normalize()
	for i := range backup.Buildings {
		backup.Buildings[i].Params.Normalize()
	}
	return backup, nil
}

// ToBuildings converts the backup's snapshots into live buildings.
func (b BackupData) ToBuildings() []*model.Building {
	buildings := make([]*model.Building, 0, len(b.Buildings))
	for _, s := range b.Buildings {
		buildings = append(buildings, &model.Building{
			ID:       s.ID,
			Name:     s.Name,
			Position: s.Position,
			Params:   s.Params,
		})
	}
	return buildings
}
