package project

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// BuildingSnapshot is the persisted form of one building. Derived metrics
// and thumbnails are never stored; they are rebuilt on load.
type BuildingSnapshot struct {
	ID       int                      `json:"id"`
	Name     string                   `json:"name"`
	Position model.Position           `json:"position"`
	Params   model.BuildingParameters `json:"params"`
}

// SaveBuildings serializes the building set into the store.
func SaveBuildings(store Store, buildings []*model.Building) error {
	snapshots := make([]BuildingSnapshot, 0, len(buildings))
	for _, b := range buildings {
		snapshots = append(snapshots, BuildingSnapshot{
			ID:       b.ID,
			Name:     b.Name,
			Position: b.Position,
			Params:   b.Params,
		})
	}
	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal buildings: %w", err)
	}
	if err := store.Write(data); err != nil {
		return fmt.Errorf("failed to write building store: %w", err)
	}
	return nil
}

// LoadBuildings reads the building set back from the store. An empty store
// yields nil. Corrupt data is discarded -- the store is cleared, the problem
// logged, and nil returned so the caller falls back to a fresh default
// building; a bad file never crashes the application.
//
// Legacy snapshots are upgraded on the way in: a missing
// global_complexity_factor loads as 0, floor entries carrying a bare numeric
// complexity become explicit custom overrides (FloorSpec.UnmarshalJSON), a
// floor list whose length disagrees with num_floors is repaired, and numeric
// fields are clamped.
func LoadBuildings(store Store) ([]*model.Building, error) {
	data, err := store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read building store: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var snapshots []BuildingSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		log.Printf("discarding corrupt building store: %v", err)
		if clearErr := store.Clear(); clearErr != nil {
			log.Printf("failed to clear corrupt building store: %v", clearErr)
		}
		return nil, nil
	}

	buildings := make([]*model.Building, 0, len(snapshots))
	for _, s := range snapshots {
		s.Params.Normalize()
		buildings = append(buildings, &model.Building{
			ID:       s.ID,
			Name:     s.Name,
			Position: s.Position,
			Params:   s.Params,
		})
	}
	return buildings, nil
}
