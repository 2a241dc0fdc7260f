package model

// AppConfig holds application-wide preferences and default parameters.
type AppConfig struct {
	// Defaults applied to newly created buildings
	DefaultNumFloors     int     `json:"default_num_floors"`
	DefaultFloorHeight   float64 `json:"default_floor_height"`
	DefaultWallThickness float64 `json:"default_wall_thickness"`
	DefaultExteriorType  string  `json:"default_exterior_type"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentFiles      []string `json:"recent_files"`
	Theme            string   `json:"theme"`             // "light", "dark", "system"
	ShowMetricHints  bool     `json:"show_metric_hints"` // show meter equivalents next to entries
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultParameters().
func DefaultAppConfig() AppConfig {
	defaults := DefaultParameters()
	return AppConfig{
		DefaultNumFloors:     defaults.NumFloors,
		DefaultFloorHeight:   defaults.TypicalFloorHeight,
		DefaultWallThickness: defaults.WallThickness,
		DefaultExteriorType:  defaults.ExteriorType,
		AutoSaveInterval:     0,
		RecentFiles:          []string{},
		Theme:                "system",
		ShowMetricHints:      true,
	}
}

// ApplyToParameters copies the configured defaults into a parameter set.
// Used when creating a new building so it inherits the user's preferences.
func (c AppConfig) ApplyToParameters(p *BuildingParameters) {
	if c.DefaultNumFloors > 0 {
		p.NumFloors = c.DefaultNumFloors
	}
	if c.DefaultFloorHeight > 0 {
		p.TypicalFloorHeight = ClampFloorHeight(c.DefaultFloorHeight)
	}
	if c.DefaultWallThickness > 0 {
		p.WallThickness = c.DefaultWallThickness
	}
	if c.DefaultExteriorType != "" {
		p.ExteriorType = c.DefaultExteriorType
	}
	p.FloorDetails = nil
	p.EnsureFloorDetails()
}
