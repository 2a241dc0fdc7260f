package engine

import (
	"math"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// DeriveFloors computes the stepped plan dimensions and derived quantities
// for every floor of a building. Floor 0 sits at y = 0; each floor's YOffset
// is the summed height of the floors below it. The function is pure: callers
// store the result into the building's CalculatedMetrics.
func DeriveFloors(p model.BuildingParameters) []model.FloorGeometry {
	floors := make([]model.FloorGeometry, 0, len(p.FloorDetails))
	var yOffset float64

	for i, spec := range p.FloorDetails {
		w, d := SteppedPlan(p, i)
		area, perimeter := planQuantities(p.ShapeType, w, d, p.WallThickness)

		floors = append(floors, model.FloorGeometry{
			Width:         w,
			Depth:         d,
			FootprintArea: area,
			Perimeter:     perimeter,
			RawWallArea:   perimeter * spec.Height,
			YOffset:       yOffset,
		})
		yOffset += spec.Height
	}
	return floors
}

// DeriveRoof computes the slab capping the floor stack, reusing the top
// floor's stepped plan. Returns nil for an empty building.
func DeriveRoof(p model.BuildingParameters) *model.RoofGeometry {
	if len(p.FloorDetails) == 0 {
		return nil
	}
	w, d := SteppedPlan(p, len(p.FloorDetails)-1)
	return &model.RoofGeometry{
		Width:     w,
		Depth:     d,
		Thickness: model.RoofThickness,
		YOffset:   p.TotalHeight(),
	}
}

// SteppedPlan returns the plan dimensions of floor i after applying the
// stepping rule. The offset is cumulative: delta = stepAmount * i, applied
// to exactly one axis. Inward stepping is floored at twice the wall
// thickness so the footprint never degenerates; outward stepping is
// unbounded.
func SteppedPlan(p model.BuildingParameters, i int) (width, depth float64) {
	width, depth = p.BuildingLength, p.BuildingDepth
	if p.StepDirection == model.StepNone || p.StepAmount == 0 || i <= 0 {
		return width, depth
	}

	delta := 2 * p.StepAmount * float64(i)
	minDim := 2 * p.WallThickness

	switch {
	case p.StepDirection.Inward() && p.StepDirection.AlongX():
		width = math.Max(width-delta, minDim)
	case p.StepDirection.Inward():
		depth = math.Max(depth-delta, minDim)
	case p.StepDirection.AlongX():
		width += delta
	default:
		depth += delta
	}
	return width, depth
}

// planQuantities computes footprint area and perimeter for one floor plan.
//
// The C-shape is an outer rectangle minus a notch open on one depth face:
// the notch removes a (w-2t) x (d-t) strip, leaving two arms of width t and
// a spine of depth t. Its perimeter uses the traced-outline approximation
// 2w + 4d - 4t rather than the exact polygon length; the DXF exporter draws
// the exact outline, but cost quantities are defined in terms of this
// formula.
func planQuantities(shape model.ShapeType, w, d, wallThickness float64) (area, perimeter float64) {
	switch shape {
	case model.ShapeCShape:
		effW := math.Max(w, 2*wallThickness)
		effD := math.Max(d, 2*wallThickness)
		area = effW*effD - (effW-2*wallThickness)*(effD-wallThickness)
		perimeter = 2*effW + 4*effD - 4*wallThickness
	default:
		area = w * d
		perimeter = 2 * (w + d)
	}
	return area, perimeter
}

// BuildSolids converts derived floor geometry into the renderer-facing solid
// list plus the roof slab. Returns (nil, nil) for an empty building.
func BuildSolids(p model.BuildingParameters, floors []model.FloorGeometry) ([]model.FloorSolid, *model.RoofSolid) {
	if len(floors) == 0 {
		return nil, nil
	}
	solids := make([]model.FloorSolid, len(floors))
	for i, f := range floors {
		solids[i] = model.FloorSolid{
			Shape:         p.ShapeType,
			Width:         f.Width,
			Depth:         f.Depth,
			Height:        p.FloorDetails[i].Height,
			YOffset:       f.YOffset,
			WallThickness: p.WallThickness,
		}
	}
	roofGeo := DeriveRoof(p)
	roof := &model.RoofSolid{
		Width:   roofGeo.Width,
		Depth:   roofGeo.Depth,
		Height:  roofGeo.Thickness,
		YOffset: roofGeo.YOffset,
	}
	return solids, roof
}

// FootprintOutline returns the exact plan polygon for a floor, origin at the
// plan's min corner. Box is a rectangle; C-shape is the true 8-vertex
// outline with the notch open on the +Z depth face. Drawings use this exact
// polygon even though cost perimeters keep the approximate formula.
func FootprintOutline(shape model.ShapeType, w, d, wallThickness float64) model.Outline {
	if shape != model.ShapeCShape {
		return model.Outline{
			{X: 0, Z: 0},
			{X: w, Z: 0},
			{X: w, Z: d},
			{X: 0, Z: d},
		}
	}
	t := wallThickness
	effW := math.Max(w, 2*t)
	effD := math.Max(d, 2*t)
	return model.Outline{
		{X: 0, Z: 0},
		{X: effW, Z: 0},
		{X: effW, Z: effD},
		{X: effW - t, Z: effD},
		{X: effW - t, Z: t},
		{X: t, Z: t},
		{X: t, Z: effD},
		{X: 0, Z: effD},
	}
}
