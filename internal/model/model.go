package model

import "encoding/json"

// All lengths are feet, areas square feet, rates dollars per square foot.
const (
	MinFloorHeight = 8.2  // 2.5 m
	MaxFloorHeight = 88.6 // 27 m
	MinComplexity  = 0.0
	MaxComplexity  = 100.0
	MaxFloors      = 100 // UI cap on floor count

	MinWallThickness = 0.33 // 0.1 m

	RoofThickness   = 1.64   // roof slab thickness
	BuildingSpacing = 328.08 // site grid pitch between buildings (100 m)
	BuildingsPerRow = 5
)

// ShapeType selects the footprint shape of a building volume.
type ShapeType string

const (
	ShapeBox    ShapeType = "box"     // Solid rectangular footprint
	ShapeCShape ShapeType = "c_shape" // Rectangle with a notch open on one depth face
)

func (s ShapeType) String() string {
	switch s {
	case ShapeCShape:
		return "C-Shape"
	default:
		return "Box"
	}
}

// Valid reports whether s is a known shape type.
func (s ShapeType) Valid() bool {
	return s == ShapeBox || s == ShapeCShape
}

// ShapeTypeOptions returns display names for UI dropdowns.
func ShapeTypeOptions() []string {
	return []string{"Box", "C-Shape"}
}

// ShapeTypeFromString maps a display name back to a ShapeType.
func ShapeTypeFromString(s string) ShapeType {
	if s == "C-Shape" {
		return ShapeCShape
	}
	return ShapeBox
}

// StepDirection selects which plan axis shrinks or grows per floor.
type StepDirection string

const (
	StepNone     StepDirection = "none"
	StepInwardX  StepDirection = "inward_x"  // Floors shrink along the length axis
	StepInwardZ  StepDirection = "inward_z"  // Floors shrink along the depth axis
	StepOutwardX StepDirection = "outward_x" // Floors grow along the length axis
	StepOutwardZ StepDirection = "outward_z" // Floors grow along the depth axis
)

func (d StepDirection) String() string {
	switch d {
	case StepInwardX:
		return "Inward X"
	case StepInwardZ:
		return "Inward Z"
	case StepOutwardX:
		return "Outward X"
	case StepOutwardZ:
		return "Outward Z"
	default:
		return "None"
	}
}

// Valid reports whether d is a known step direction.
func (d StepDirection) Valid() bool {
	switch d {
	case StepNone, StepInwardX, StepInwardZ, StepOutwardX, StepOutwardZ:
		return true
	}
	return false
}

// Inward reports whether the direction shrinks the plan.
func (d StepDirection) Inward() bool {
	return d == StepInwardX || d == StepInwardZ
}

// AlongX reports whether the direction changes the length axis.
func (d StepDirection) AlongX() bool {
	return d == StepInwardX || d == StepOutwardX
}

// StepDirectionOptions returns display names for UI dropdowns.
func StepDirectionOptions() []string {
	return []string{"None", "Inward X", "Inward Z", "Outward X", "Outward Z"}
}

// StepDirectionFromString maps a display name back to a StepDirection.
func StepDirectionFromString(s string) StepDirection {
	switch s {
	case "Inward X":
		return StepInwardX
	case "Inward Z":
		return StepInwardZ
	case "Outward X":
		return StepOutwardX
	case "Outward Z":
		return StepOutwardZ
	default:
		return StepNone
	}
}

// ComplexitySource states where a floor's complexity factor comes from.
type ComplexitySource string

const (
	SourceGlobal ComplexitySource = "global"       // Inherit the building-wide factor
	SourcePreset ComplexitySource = "preset"       // Copied from a named complexity preset
	SourceCustom ComplexitySource = "custom_value" // Entered directly for this floor
)

func (s ComplexitySource) String() string {
	switch s {
	case SourcePreset:
		return "Preset"
	case SourceCustom:
		return "Custom Value"
	default:
		return "Global"
	}
}

// Valid reports whether s is a known complexity source.
func (s ComplexitySource) Valid() bool {
	switch s {
	case SourceGlobal, SourcePreset, SourceCustom:
		return true
	}
	return false
}

// ComplexitySourceOptions returns display names for UI dropdowns.
func ComplexitySourceOptions() []string {
	return []string{"Global", "Preset", "Custom Value"}
}

// ComplexitySourceFromString maps a display name back to a ComplexitySource.
func ComplexitySourceFromString(s string) ComplexitySource {
	switch s {
	case "Preset":
		return SourcePreset
	case "Custom Value":
		return SourceCustom
	default:
		return SourceGlobal
	}
}

// FloorSpec holds the per-floor overrides for one storey.
// ComplexityFactor is nil exactly when ComplexitySource is SourceGlobal.
type FloorSpec struct {
	Height           float64          `json:"height"` // ft, slab to slab
	HeightIsCustom   bool             `json:"height_is_custom,omitempty"`
	ComplexitySource ComplexitySource `json:"complexity_factor_source"`
	ComplexityFactor *float64         `json:"complexity_factor,omitempty"` // percent, 0-100
}

// NewFloorSpec returns a floor at the given height inheriting the global
// complexity factor.
func NewFloorSpec(height float64) FloorSpec {
	return FloorSpec{
		Height:           ClampFloorHeight(height),
		ComplexitySource: SourceGlobal,
	}
}

// EffectiveComplexity resolves the complexity factor used for this floor.
func (f FloorSpec) EffectiveComplexity(global float64) float64 {
	if f.ComplexitySource != SourceGlobal && f.ComplexityFactor != nil {
		return *f.ComplexityFactor
	}
	return global
}

// SetComplexity assigns an override value and source, maintaining the
// source/value invariant.
func (f *FloorSpec) SetComplexity(source ComplexitySource, factor float64) {
	if source == SourceGlobal {
		f.ComplexitySource = SourceGlobal
		f.ComplexityFactor = nil
		return
	}
	v := ClampComplexity(factor)
	f.ComplexitySource = source
	f.ComplexityFactor = &v
}

// Normalize clamps the height and repairs the source/value invariant.
func (f *FloorSpec) Normalize() {
	f.Height = ClampFloorHeight(f.Height)
	if f.ComplexitySource == "" {
		f.ComplexitySource = SourceGlobal
	}
	switch {
	case f.ComplexitySource == SourceGlobal:
		f.ComplexityFactor = nil
	case f.ComplexityFactor == nil:
		f.ComplexitySource = SourceGlobal
	default:
		v := ClampComplexity(*f.ComplexityFactor)
		f.ComplexityFactor = &v
	}
}

// UnmarshalJSON accepts the current schema as well as legacy floor entries
// that carried a bare numeric complexity_factor with no source field.
func (f *FloorSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Height           float64           `json:"height"`
		HeightIsCustom   bool              `json:"height_is_custom"`
		ComplexitySource *ComplexitySource `json:"complexity_factor_source"`
		ComplexityFactor *float64          `json:"complexity_factor"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Height = raw.Height
	f.HeightIsCustom = raw.HeightIsCustom
	f.ComplexityFactor = raw.ComplexityFactor
	switch {
	case raw.ComplexitySource != nil:
		f.ComplexitySource = *raw.ComplexitySource
	case raw.ComplexityFactor != nil:
		// Legacy entry: a bare complexity value means an explicit override.
		f.ComplexitySource = SourceCustom
	default:
		f.ComplexitySource = SourceGlobal
	}
	return nil
}

// BuildingParameters is the full configuration for one building volume.
type BuildingParameters struct {
	ShapeType              ShapeType     `json:"shape_type"`
	NumFloors              int           `json:"num_floors"`
	FloorDetails           []FloorSpec   `json:"floor_details"` // index = floor number, 0 = ground
	BuildingLength         float64       `json:"building_length"`
	BuildingDepth          float64       `json:"building_depth"`
	TypicalFloorHeight     float64       `json:"typical_floor_height"` // applied to newly added floors
	StepDirection          StepDirection `json:"step_direction"`
	StepAmount             float64       `json:"step_amount"` // ft of inset/outset per floor index
	WallThickness          float64       `json:"wall_thickness"`
	GlobalComplexityFactor float64       `json:"global_complexity_factor"` // percent, 0-100
	WindowsPerFloor        int           `json:"windows_per_floor"`        // reserved for opening cutouts
	WindowWidth            float64       `json:"window_width"`             // reserved
	WindowHeight           float64       `json:"window_height"`            // reserved
	ExteriorType           string        `json:"exterior_type"`            // name key into the finish table
}

func DefaultParameters() BuildingParameters {
	p := BuildingParameters{
		ShapeType:              ShapeBox,
		NumFloors:              3,
		BuildingLength:         98.43, // 30 m
		BuildingDepth:          65.62, // 20 m
		TypicalFloorHeight:     13.12, // 4 m
		StepDirection:          StepNone,
		StepAmount:             0,
		WallThickness:          1.64, // 0.5 m
		GlobalComplexityFactor: 0,
		WindowsPerFloor:        4,
		WindowWidth:            4.92,
		WindowHeight:           5.91,
		ExteriorType:           ExteriorPunchedWindow,
	}
	p.EnsureFloorDetails()
	return p
}

// EnsureFloorDetails grows or truncates FloorDetails so its length matches
// NumFloors. New floors default to the typical height with the global
// complexity source; truncation discards the removed floors' overrides.
func (p *BuildingParameters) EnsureFloorDetails() {
	if p.NumFloors < 0 {
		p.NumFloors = 0
	}
	if p.NumFloors > MaxFloors {
		p.NumFloors = MaxFloors
	}
	for len(p.FloorDetails) < p.NumFloors {
		p.FloorDetails = append(p.FloorDetails, NewFloorSpec(p.TypicalFloorHeight))
	}
	if len(p.FloorDetails) > p.NumFloors {
		p.FloorDetails = p.FloorDetails[:p.NumFloors]
	}
}

// Normalize repairs numeric fields by clamping to the nearest bound and
// backfills empty enum fields. Out-of-range input is corrected, never
// rejected; unknown non-empty enum values are left for Validate to report.
func (p *BuildingParameters) Normalize() {
	if p.ShapeType == "" {
		p.ShapeType = ShapeBox
	}
	if p.StepDirection == "" {
		p.StepDirection = StepNone
	}
	if p.ExteriorType == "" {
		p.ExteriorType = ExteriorPunchedWindow
	}
	if p.WallThickness < MinWallThickness {
		p.WallThickness = MinWallThickness
	}
	if p.BuildingLength < 2*p.WallThickness {
		p.BuildingLength = 2 * p.WallThickness
	}
	if p.BuildingDepth < 2*p.WallThickness {
		p.BuildingDepth = 2 * p.WallThickness
	}
	p.TypicalFloorHeight = ClampFloorHeight(p.TypicalFloorHeight)
	if p.StepAmount < 0 {
		p.StepAmount = 0
	}
	p.GlobalComplexityFactor = ClampComplexity(p.GlobalComplexityFactor)
	if p.WindowsPerFloor < 0 {
		p.WindowsPerFloor = 0
	}
	if p.WindowWidth < 0 {
		p.WindowWidth = 0
	}
	if p.WindowHeight < 0 {
		p.WindowHeight = 0
	}
	p.EnsureFloorDetails()
	for i := range p.FloorDetails {
		p.FloorDetails[i].Normalize()
	}
}

// TotalHeight returns the stacked height of all floors.
func (p BuildingParameters) TotalHeight() float64 {
	var h float64
	for _, f := range p.FloorDetails {
		h += f.Height
	}
	return h
}

// Clone returns a deep copy, including per-floor override pointers.
func (p BuildingParameters) Clone() BuildingParameters {
	cp := p
	cp.FloorDetails = make([]FloorSpec, len(p.FloorDetails))
	for i, f := range p.FloorDetails {
		cp.FloorDetails[i] = f
		if f.ComplexityFactor != nil {
			v := *f.ComplexityFactor
			cp.FloorDetails[i].ComplexityFactor = &v
		}
	}
	return cp
}

// ClampFloorHeight bounds a floor height to the allowed range.
func ClampFloorHeight(h float64) float64 {
	return clamp(h, MinFloorHeight, MaxFloorHeight)
}

// ClampComplexity bounds a complexity factor to the allowed percent range.
func ClampComplexity(c float64) float64 {
	return clamp(c, MinComplexity, MaxComplexity)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Position is a world-space location for laying buildings out on the site grid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlanPoint is a 2D coordinate in the horizontal plan, in feet.
type PlanPoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Outline represents a closed plan polygon as a sequence of points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []PlanPoint

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max PlanPoint) {
	if len(o) == 0 {
		return PlanPoint{}, PlanPoint{}
	}
	min = PlanPoint{X: o[0].X, Z: o[0].Z}
	max = PlanPoint{X: o[0].X, Z: o[0].Z}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// Translate shifts all points by dx, dz.
func (o Outline) Translate(dx, dz float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = PlanPoint{X: p.X + dx, Z: p.Z + dz}
	}
	return result
}

// FloorGeometry holds the derived plan quantities for one floor.
type FloorGeometry struct {
	Width         float64 `json:"width"`          // stepped plan dimension along X
	Depth         float64 `json:"depth"`          // stepped plan dimension along Z
	FootprintArea float64 `json:"footprint_area"` // sq ft
	Perimeter     float64 `json:"perimeter"`      // ft
	RawWallArea   float64 `json:"raw_wall_area"`  // perimeter * floor height
	YOffset       float64 `json:"y_offset"`       // floor bottom above ground
}

// RoofGeometry describes the slab capping the floor stack.
type RoofGeometry struct {
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Thickness float64 `json:"thickness"`
	YOffset   float64 `json:"y_offset"`
}

// FloorSolid is the renderer-facing description of one floor volume.
type FloorSolid struct {
	Shape         ShapeType `json:"shape"`
	Width         float64   `json:"width"`
	Depth         float64   `json:"depth"`
	Height        float64   `json:"height"`
	YOffset       float64   `json:"y_offset"`
	WallThickness float64   `json:"wall_thickness"`
}

// RoofSolid is the renderer-facing description of the roof slab.
type RoofSolid struct {
	Width   float64 `json:"width"`
	Depth   float64 `json:"depth"`
	Height  float64 `json:"height"`
	YOffset float64 `json:"y_offset"`
}

// FloorCost is one floor's contribution to the estimate.
type FloorCost struct {
	Multiplier float64 `json:"multiplier"` // 1 + effective complexity / 100
	Exterior   float64 `json:"exterior"`
	Structural float64 `json:"structural"`
	Interior   float64 `json:"interior"`
}

// Subtotal returns the floor's combined contribution.
func (fc FloorCost) Subtotal() float64 {
	return fc.Exterior + fc.Structural + fc.Interior
}

// CostBreakdown holds the aggregated construction estimate in exact dollars.
// Rounding up to whole dollars is a presentation concern, not done here.
type CostBreakdown struct {
	Foundation float64     `json:"foundation"`
	Structural float64     `json:"structural"`
	Interior   float64     `json:"interior"`
	Exterior   float64     `json:"exterior"`
	Total      float64     `json:"total"`
	PerFloor   []FloorCost `json:"per_floor,omitempty"`
}

// CalculatedMetrics is rebuilt on every geometry pass and never hand-edited.
// It is derived state and is excluded from building snapshots.
type CalculatedMetrics struct {
	Floors []FloorGeometry `json:"floors"`
	Roof   *RoofGeometry   `json:"roof,omitempty"`
	Cost   CostBreakdown   `json:"cost"`
}

// GrossFloorArea returns the summed footprint area of all floors.
func (m CalculatedMetrics) GrossFloorArea() float64 {
	var total float64
	for _, f := range m.Floors {
		total += f.FootprintArea
	}
	return total
}

// ExteriorWallArea returns the summed raw wall area of all floors.
func (m CalculatedMetrics) ExteriorWallArea() float64 {
	var total float64
	for _, f := range m.Floors {
		total += f.RawWallArea
	}
	return total
}

// GroundPerimeter returns floor 0's perimeter, or 0 for an empty building.
func (m CalculatedMetrics) GroundPerimeter() float64 {
	if len(m.Floors) == 0 {
		return 0
	}
	return m.Floors[0].Perimeter
}

// Building is one registry entry: identity, placement, parameters, and the
// derived metrics for display.
type Building struct {
	ID       int                `json:"id"`
	Name     string             `json:"name"`
	Position Position           `json:"position"`
	Params   BuildingParameters `json:"params"`

	Metrics   CalculatedMetrics `json:"-"`
	Thumbnail []byte            `json:"-"` // renderer snapshot, empty when capture failed
}
