package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Exterior finish names built into the rate table.
const (
	ExteriorCurtainWall   = "Curtain Wall"
	ExteriorWindowWall    = "Window Wall"
	ExteriorPunchedWindow = "Punched Window"
	ExteriorPrecastPanel  = "Precast Panel"
	ExteriorMetalPanel    = "Metal Panel"
)

// ErrUnknownFinish reports an exterior type with no entry in the rate table.
// Unknown finishes reject the estimate instead of silently defaulting.
var ErrUnknownFinish = errors.New("unknown exterior type")

// ExteriorFinish is one facade system: a cost rate plus the wall color the
// renderer paints it with.
type ExteriorFinish struct {
	Name        string  `json:"name"`
	RatePerSqFt float64 `json:"rate_per_sq_ft"`
	R           uint8   `json:"r"`
	G           uint8   `json:"g"`
	B           uint8   `json:"b"`
}

// BuiltinFinishes returns the standard facade systems, $/sq ft of wall area.
func BuiltinFinishes() []ExteriorFinish {
	return []ExteriorFinish{
		{Name: ExteriorCurtainWall, RatePerSqFt: 185.32, R: 0x9f, G: 0xc5, B: 0xe8},
		{Name: ExteriorWindowWall, RatePerSqFt: 146.91, R: 0x6f, G: 0xa8, B: 0xdc},
		{Name: ExteriorPunchedWindow, RatePerSqFt: 105.78, R: 0xb4, G: 0xa7, B: 0x96},
		{Name: ExteriorPrecastPanel, RatePerSqFt: 92.40, R: 0xcc, G: 0xcc, B: 0xc4},
		{Name: ExteriorMetalPanel, RatePerSqFt: 127.65, R: 0x8e, G: 0x93, B: 0x9e},
	}
}

// ComplexityPreset is a named complexity factor selectable per floor.
type ComplexityPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Factor float64 `json:"factor"` // percent, 0-100
}

// NewComplexityPreset creates a preset with a generated ID.
func NewComplexityPreset(name string, factor float64) ComplexityPreset {
	return ComplexityPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Factor: ClampComplexity(factor),
	}
}

// RateBook holds every rate the estimator consults: base per-area rates,
// the finish table (built-in plus user-defined), and complexity presets.
type RateBook struct {
	StructuralRate float64            `json:"structural_rate"` // $/sq ft of footprint per floor
	InteriorRate   float64            `json:"interior_rate"`   // $/sq ft of footprint per floor
	FoundationRate float64            `json:"foundation_rate"` // $/sq ft of ground footprint
	Finishes       []ExteriorFinish   `json:"finishes"`
	Presets        []ComplexityPreset `json:"presets"`
}

// DefaultRateBook returns the built-in rate table.
func DefaultRateBook() RateBook {
	return RateBook{
		StructuralRate: 55.00,
		InteriorRate:   85.00,
		FoundationRate: 28.50,
		Finishes:       BuiltinFinishes(),
		Presets: []ComplexityPreset{
			NewComplexityPreset("Standard", 0),
			NewComplexityPreset("Articulated Facade", 15),
			NewComplexityPreset("Stepped Terraces", 25),
			NewComplexityPreset("Landmark", 40),
		},
	}
}

// FinishFor returns the finish with the given name. A missing name is a
// configuration error, not a fallback.
func (rb RateBook) FinishFor(name string) (ExteriorFinish, error) {
	for _, f := range rb.Finishes {
		if f.Name == name {
			return f, nil
		}
	}
	return ExteriorFinish{}, fmt.Errorf("%w: %q", ErrUnknownFinish, name)
}

// FinishNames returns the finish names for UI dropdowns.
func (rb RateBook) FinishNames() []string {
	names := make([]string, len(rb.Finishes))
	for i, f := range rb.Finishes {
		names[i] = f.Name
	}
	return names
}

// AddFinish appends a user-defined finish. Duplicate names are rejected so
// the name stays a unique lookup key.
func (rb *RateBook) AddFinish(f ExteriorFinish) error {
	for _, existing := range rb.Finishes {
		if existing.Name == f.Name {
			return fmt.Errorf("finish %q already exists", f.Name)
		}
	}
	rb.Finishes = append(rb.Finishes, f)
	return nil
}

// RemoveFinish removes a finish by name. Returns true if found and removed.
func (rb *RateBook) RemoveFinish(name string) bool {
	for i, f := range rb.Finishes {
		if f.Name == name {
			rb.Finishes = append(rb.Finishes[:i], rb.Finishes[i+1:]...)
			return true
		}
	}
	return false
}

// FindPresetByID returns a pointer to the preset with the given ID, or nil.
func (rb *RateBook) FindPresetByID(id string) *ComplexityPreset {
	for i := range rb.Presets {
		if rb.Presets[i].ID == id {
			return &rb.Presets[i]
		}
	}
	return nil
}

// FindPresetByName returns a pointer to the first preset with the given
// name, or nil.
func (rb *RateBook) FindPresetByName(name string) *ComplexityPreset {
	for i := range rb.Presets {
		if rb.Presets[i].Name == name {
			return &rb.Presets[i]
		}
	}
	return nil
}

// PresetNames returns preset names for UI dropdowns.
func (rb *RateBook) PresetNames() []string {
	names := make([]string, len(rb.Presets))
	for i, p := range rb.Presets {
		names[i] = p.Name
	}
	return names
}

// RemovePreset removes a preset by ID. Returns true if found and removed.
func (rb *RateBook) RemovePreset(id string) bool {
	for i, p := range rb.Presets {
		if p.ID == id {
			rb.Presets = append(rb.Presets[:i], rb.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// Normalize backfills missing tables and non-positive rates after load so
// older rate book files keep working.
func (rb *RateBook) Normalize() {
	def := DefaultRateBook()
	if rb.StructuralRate <= 0 {
		rb.StructuralRate = def.StructuralRate
	}
	if rb.InteriorRate <= 0 {
		rb.InteriorRate = def.InteriorRate
	}
	if rb.FoundationRate <= 0 {
		rb.FoundationRate = def.FoundationRate
	}
	if len(rb.Finishes) == 0 {
		rb.Finishes = def.Finishes
	}
	if rb.Presets == nil {
		rb.Presets = []ComplexityPreset{}
	}
}

// Validate reports configuration errors in the parameters that clamping must
// not repair: unknown enum values and exterior types absent from the table.
func (p BuildingParameters) Validate(rb RateBook) error {
	if !p.ShapeType.Valid() {
		return fmt.Errorf("unknown shape type %q", p.ShapeType)
	}
	if !p.StepDirection.Valid() {
		return fmt.Errorf("unknown step direction %q", p.StepDirection)
	}
	if _, err := rb.FinishFor(p.ExteriorType); err != nil {
		return err
	}
	for i, f := range p.FloorDetails {
		if !f.ComplexitySource.Valid() {
			return fmt.Errorf("floor %d: unknown complexity source %q", i, f.ComplexitySource)
		}
	}
	return nil
}
