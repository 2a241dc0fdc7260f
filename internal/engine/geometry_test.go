package engine

import (
	"testing"

	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioParams is the binding reference building: 60 x 45 m box, three
// 12 m floors, 5 m walls, no stepping.
func scenarioParams() model.BuildingParameters {
	p := model.DefaultParameters()
	p.ShapeType = model.ShapeBox
	p.NumFloors = 3
	p.BuildingLength = 196.85
	p.BuildingDepth = 147.64
	p.TypicalFloorHeight = 39.37
	p.WallThickness = 16.4
	p.StepDirection = model.StepNone
	p.StepAmount = 0
	p.ExteriorType = model.ExteriorPunchedWindow
	p.GlobalComplexityFactor = 0
	p.FloorDetails = nil
	p.EnsureFloorDetails()
	return p
}

func TestDeriveFloors_BoxReferenceBuilding(t *testing.T) {
	floors := DeriveFloors(scenarioParams())

	require.Len(t, floors, 3)
	for _, f := range floors {
		assert.InDelta(t, 689.0, f.Perimeter, 0.1)
		assert.InDelta(t, 29062, f.FootprintArea, 5)
		assert.Equal(t, f.Perimeter*39.37, f.RawWallArea)
	}
}

func TestDeriveFloors_BoxExactFormulas(t *testing.T) {
	p := model.DefaultParameters()
	floors := DeriveFloors(p)

	require.Len(t, floors, p.NumFloors)
	for i, f := range floors {
		assert.Equal(t, 2*(f.Width+f.Depth), f.Perimeter, "floor %d", i)
		assert.Equal(t, f.Width*f.Depth, f.FootprintArea, "floor %d", i)
		assert.Equal(t, f.Perimeter*p.FloorDetails[i].Height, f.RawWallArea, "floor %d", i)
	}
}

func TestDeriveFloors_InwardSteppingIsCumulative(t *testing.T) {
	p := scenarioParams()
	p.StepDirection = model.StepInwardX
	p.StepAmount = 3.28

	floors := DeriveFloors(p)

	require.Len(t, floors, 3)
	assert.InDelta(t, 196.85, floors[0].Width, 0.01)
	assert.InDelta(t, 190.29, floors[1].Width, 0.01)
	assert.InDelta(t, 183.73, floors[2].Width, 0.01)
	// Only the stepped axis changes.
	for _, f := range floors {
		assert.InDelta(t, 147.64, f.Depth, 0.01)
	}
}

func TestDeriveFloors_OutwardSteppingGrows(t *testing.T) {
	p := scenarioParams()
	p.StepDirection = model.StepOutwardZ
	p.StepAmount = 2

	floors := DeriveFloors(p)

	require.Len(t, floors, 3)
	assert.InDelta(t, 147.64, floors[0].Depth, 0.01)
	assert.InDelta(t, 151.64, floors[1].Depth, 0.01)
	assert.InDelta(t, 155.64, floors[2].Depth, 0.01)
	for _, f := range floors {
		assert.InDelta(t, 196.85, f.Width, 0.01)
	}
}

func TestDeriveFloors_InwardSteppingClampsAtWallPair(t *testing.T) {
	p := scenarioParams()
	p.StepDirection = model.StepInwardX
	p.StepAmount = 500 // would drive the width far negative

	floors := DeriveFloors(p)

	require.Len(t, floors, 3)
	assert.Equal(t, 196.85, floors[0].Width)
	assert.Equal(t, 2*p.WallThickness, floors[1].Width)
	assert.Equal(t, 2*p.WallThickness, floors[2].Width)
}

func TestDeriveFloors_YOffsetsStack(t *testing.T) {
	p := scenarioParams()
	p.FloorDetails[1].Height = 20

	floors := DeriveFloors(p)

	require.Len(t, floors, 3)
	assert.Equal(t, 0.0, floors[0].YOffset)
	assert.Equal(t, 39.37, floors[1].YOffset)
	assert.Equal(t, 59.37, floors[2].YOffset)
}

func TestDeriveFloors_EmptyBuilding(t *testing.T) {
	p := scenarioParams()
	p.NumFloors = 0
	p.EnsureFloorDetails()

	assert.Empty(t, DeriveFloors(p))
	assert.Nil(t, DeriveRoof(p))
}

func TestDeriveFloors_CShapeQuantities(t *testing.T) {
	p := scenarioParams()
	p.ShapeType = model.ShapeCShape
	wt := p.WallThickness

	floors := DeriveFloors(p)

	require.Len(t, floors, 3)
	w, d := 196.85, 147.64
	wantArea := w*d - (w-2*wt)*(d-wt)
	wantPerimeter := 2*w + 4*d - 4*wt
	assert.InDelta(t, wantArea, floors[0].FootprintArea, 1e-9)
	assert.InDelta(t, wantPerimeter, floors[0].Perimeter, 1e-9)
	assert.Equal(t, floors[0].Perimeter*39.37, floors[0].RawWallArea)
}

func TestDeriveFloors_CShapeArmsStaySolid(t *testing.T) {
	p := scenarioParams()
	p.ShapeType = model.ShapeCShape
	p.BuildingLength = 10 // below 2 * wallThickness (32.8)
	p.BuildingDepth = 12

	floors := DeriveFloors(p)

	require.Len(t, floors, 3)
	wt := p.WallThickness
	// Both axes floored at 2*wt: the notch degenerates to depth wt.
	wantArea := (2*wt)*(2*wt) - 0*(2*wt-wt)
	assert.InDelta(t, wantArea, floors[0].FootprintArea, 1e-9)
	assert.Positive(t, floors[0].Perimeter)
}

func TestDeriveRoof_UsesTopFloorSteppedPlan(t *testing.T) {
	p := scenarioParams()
	p.StepDirection = model.StepInwardX
	p.StepAmount = 3.28

	roof := DeriveRoof(p)

	require.NotNil(t, roof)
	assert.InDelta(t, 183.73, roof.Width, 0.01)
	assert.InDelta(t, 147.64, roof.Depth, 0.01)
	assert.Equal(t, model.RoofThickness, roof.Thickness)
	assert.InDelta(t, 3*39.37, roof.YOffset, 1e-9)
}

func TestBuildSolids(t *testing.T) {
	p := scenarioParams()
	floors := DeriveFloors(p)

	solids, roof := BuildSolids(p, floors)

	require.Len(t, solids, 3)
	require.NotNil(t, roof)
	assert.Equal(t, model.ShapeBox, solids[0].Shape)
	assert.Equal(t, floors[2].Width, solids[2].Width)
	assert.Equal(t, floors[2].YOffset, solids[2].YOffset)
	assert.Equal(t, 39.37, solids[1].Height)
	assert.Equal(t, p.WallThickness, solids[0].WallThickness)
	assert.Equal(t, p.TotalHeight(), roof.YOffset)
}

func TestBuildSolids_Empty(t *testing.T) {
	p := scenarioParams()
	p.NumFloors = 0
	p.EnsureFloorDetails()

	solids, roof := BuildSolids(p, DeriveFloors(p))
	assert.Nil(t, solids)
	assert.Nil(t, roof)
}

func TestFootprintOutline_Box(t *testing.T) {
	o := FootprintOutline(model.ShapeBox, 10, 6, 1)
	require.Len(t, o, 4)
	min, max := o.BoundingBox()
	assert.Equal(t, model.PlanPoint{}, min)
	assert.Equal(t, model.PlanPoint{X: 10, Z: 6}, max)
}

func TestFootprintOutline_CShapeHasEightVertices(t *testing.T) {
	o := FootprintOutline(model.ShapeCShape, 10, 6, 1)
	require.Len(t, o, 8)
	min, max := o.BoundingBox()
	assert.Equal(t, model.PlanPoint{}, min)
	assert.Equal(t, model.PlanPoint{X: 10, Z: 6}, max)
	// The notch corners sit one wall thickness in from the arms.
	assert.Contains(t, o, model.PlanPoint{X: 1, Z: 1})
	assert.Contains(t, o, model.PlanPoint{X: 9, Z: 1})
}
