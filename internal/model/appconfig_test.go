package model

import "testing"

func TestDefaultAppConfigMatchesParameterDefaults(t *testing.T) {
	cfg := DefaultAppConfig()
	p := DefaultParameters()

	if cfg.DefaultNumFloors != p.NumFloors {
		t.Errorf("expected %d default floors, got %d", p.NumFloors, cfg.DefaultNumFloors)
	}
	if cfg.DefaultFloorHeight != p.TypicalFloorHeight {
		t.Errorf("expected default height %.2f, got %.2f", p.TypicalFloorHeight, cfg.DefaultFloorHeight)
	}
	if cfg.DefaultExteriorType != p.ExteriorType {
		t.Errorf("expected default exterior %s, got %s", p.ExteriorType, cfg.DefaultExteriorType)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected system theme, got %s", cfg.Theme)
	}
}

func TestApplyToParametersOverridesDefaults(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultNumFloors = 8
	cfg.DefaultFloorHeight = 11.5
	cfg.DefaultExteriorType = ExteriorCurtainWall

	p := DefaultParameters()
	cfg.ApplyToParameters(&p)

	if p.NumFloors != 8 {
		t.Errorf("expected 8 floors, got %d", p.NumFloors)
	}
	if len(p.FloorDetails) != 8 {
		t.Errorf("expected floor list re-synthesized to 8, got %d", len(p.FloorDetails))
	}
	if p.FloorDetails[7].Height != 11.5 {
		t.Errorf("expected new floors at 11.5, got %.2f", p.FloorDetails[7].Height)
	}
	if p.ExteriorType != ExteriorCurtainWall {
		t.Errorf("expected curtain wall, got %s", p.ExteriorType)
	}
}

func TestApplyToParametersIgnoresZeroValues(t *testing.T) {
	var cfg AppConfig
	p := DefaultParameters()
	before := p.NumFloors
	cfg.ApplyToParameters(&p)

	if p.NumFloors != before {
		t.Errorf("zero config should not change floor count, got %d", p.NumFloors)
	}
	if p.ExteriorType != ExteriorPunchedWindow {
		t.Errorf("zero config should not change exterior, got %s", p.ExteriorType)
	}
}
