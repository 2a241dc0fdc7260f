package registry

import (
	"fmt"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// Field names a building parameter targeted by a Change.
type Field string

const (
	FieldName               Field = "name"
	FieldShapeType          Field = "shape_type"
	FieldNumFloors          Field = "num_floors"
	FieldBuildingLength     Field = "building_length"
	FieldBuildingDepth      Field = "building_depth"
	FieldTypicalFloorHeight Field = "typical_floor_height"
	FieldStepDirection      Field = "step_direction"
	FieldStepAmount         Field = "step_amount"
	FieldWallThickness      Field = "wall_thickness"
	FieldGlobalComplexity   Field = "global_complexity_factor"
	FieldWindowsPerFloor    Field = "windows_per_floor"
	FieldWindowWidth        Field = "window_width"
	FieldWindowHeight       Field = "window_height"
	FieldExteriorType       Field = "exterior_type"

	// Per-floor fields; Change.Floor selects the floor index.
	FieldFloorHeight     Field = "floor_height"
	FieldFloorUseGlobal  Field = "floor_use_global"
	FieldFloorPreset     Field = "floor_preset"     // Text = preset id
	FieldFloorComplexity Field = "floor_complexity" // Number = custom value
)

// Change is one parameter mutation expressed as a command. The UI translates
// widget events into Changes; tests drive the core through the same path.
// Numeric payloads ride in Number, enum display names / preset ids / the
// building name in Text.
type Change struct {
	Field  Field
	Floor  int
	Number float64
	Text   string
}

// Apply executes a parameter change on a building, then synchronously
// recomputes its metrics and redraws it. Numeric inputs are clamped to their
// nearest bound, never rejected; enum and name inputs fail fast without
// touching the building. Returns the refreshed metrics.
func (r *Registry) Apply(id int, c Change) (*model.CalculatedMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buildings[id]
	if !ok {
		return nil, fmt.Errorf("apply %s to %d: %w", c.Field, id, ErrNotFound)
	}

	if err := r.applyChangeLocked(b, c); err != nil {
		return nil, err
	}
	b.Params.Normalize()
	if err := r.recomputeLocked(b); err != nil {
		return nil, err
	}
	return &b.Metrics, nil
}

func (r *Registry) applyChangeLocked(b *model.Building, c Change) error {
	p := &b.Params
	switch c.Field {
	case FieldName:
		if c.Text == "" {
			return fmt.Errorf("building name cannot be empty")
		}
		b.Name = c.Text

	case FieldShapeType:
		shape, err := parseShapeType(c.Text)
		if err != nil {
			return err
		}
		p.ShapeType = shape

	case FieldNumFloors:
		p.NumFloors = int(c.Number)
		p.EnsureFloorDetails()

	case FieldBuildingLength:
		p.BuildingLength = c.Number
	case FieldBuildingDepth:
		p.BuildingDepth = c.Number
	case FieldStepAmount:
		p.StepAmount = c.Number
	case FieldWallThickness:
		p.WallThickness = c.Number
	case FieldGlobalComplexity:
		p.GlobalComplexityFactor = c.Number
	case FieldWindowsPerFloor:
		p.WindowsPerFloor = int(c.Number)
	case FieldWindowWidth:
		p.WindowWidth = c.Number
	case FieldWindowHeight:
		p.WindowHeight = c.Number

	case FieldTypicalFloorHeight:
		// Mass-edit: floors the user never touched directly follow the
		// typical height; explicitly edited floors keep their value.
		p.TypicalFloorHeight = model.ClampFloorHeight(c.Number)
		for i := range p.FloorDetails {
			if !p.FloorDetails[i].HeightIsCustom {
				p.FloorDetails[i].Height = p.TypicalFloorHeight
			}
		}

	case FieldStepDirection:
		dir, err := parseStepDirection(c.Text)
		if err != nil {
			return err
		}
		p.StepDirection = dir

	case FieldExteriorType:
		if _, err := r.rates.FinishFor(c.Text); err != nil {
			return err
		}
		p.ExteriorType = c.Text

	case FieldFloorHeight:
		f, err := floorAt(p, c.Floor)
		if err != nil {
			return err
		}
		f.Height = model.ClampFloorHeight(c.Number)
		f.HeightIsCustom = true

	case FieldFloorUseGlobal:
		f, err := floorAt(p, c.Floor)
		if err != nil {
			return err
		}
		f.SetComplexity(model.SourceGlobal, 0)

	case FieldFloorPreset:
		f, err := floorAt(p, c.Floor)
		if err != nil {
			return err
		}
		preset := r.rates.FindPresetByID(c.Text)
		if preset == nil {
			return fmt.Errorf("unknown complexity preset %q", c.Text)
		}
		f.SetComplexity(model.SourcePreset, preset.Factor)

	case FieldFloorComplexity:
		f, err := floorAt(p, c.Floor)
		if err != nil {
			return err
		}
		f.SetComplexity(model.SourceCustom, c.Number)

	default:
		return fmt.Errorf("unknown parameter field %q", c.Field)
	}
	return nil
}

func floorAt(p *model.BuildingParameters, i int) (*model.FloorSpec, error) {
	if i < 0 || i >= len(p.FloorDetails) {
		return nil, fmt.Errorf("floor %d out of range (building has %d)", i, len(p.FloorDetails))
	}
	return &p.FloorDetails[i], nil
}

// parseShapeType accepts either the canonical enum value or the UI display
// name. Anything else is a configuration error, not a default.
func parseShapeType(s string) (model.ShapeType, error) {
	if st := model.ShapeType(s); st.Valid() {
		return st, nil
	}
	for _, opt := range model.ShapeTypeOptions() {
		if opt == s {
			return model.ShapeTypeFromString(s), nil
		}
	}
	return "", fmt.Errorf("unknown shape type %q", s)
}

func parseStepDirection(s string) (model.StepDirection, error) {
	if d := model.StepDirection(s); d.Valid() {
		return d, nil
	}
	for _, opt := range model.StepDirectionOptions() {
		if opt == s {
			return model.StepDirectionFromString(s), nil
		}
	}
	return "", fmt.Errorf("unknown step direction %q", s)
}
