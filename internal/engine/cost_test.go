package engine

import (
	"testing"

	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateCost_ReferenceBuildingExteriorRate(t *testing.T) {
	p := scenarioParams()
	book := model.DefaultRateBook()
	floors := DeriveFloors(p)

	cost, err := EstimateCost(p, floors, book)

	require.NoError(t, err)
	require.Len(t, cost.PerFloor, 3)
	for i, fc := range cost.PerFloor {
		assert.Equal(t, 1.0, fc.Multiplier)
		assert.InDelta(t, floors[i].RawWallArea*105.78, fc.Exterior, 1e-6)
	}
	assert.InDelta(t, floors[0].FootprintArea*book.FoundationRate, cost.Foundation, 1e-6)
	assert.InDelta(t, cost.Foundation+cost.Structural+cost.Interior+cost.Exterior, cost.Total, 1e-6)
}

func TestEstimateCost_UnknownFinishRejected(t *testing.T) {
	p := scenarioParams()
	p.ExteriorType = "Chrome Plated"

	_, err := EstimateCost(p, DeriveFloors(p), model.DefaultRateBook())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownFinish)
}

func TestEstimateCost_MultiplierMonotonic(t *testing.T) {
	book := model.DefaultRateBook()
	p := scenarioParams()
	base, err := EstimateCost(p, DeriveFloors(p), book)
	require.NoError(t, err)

	raised := p.Clone()
	raised.FloorDetails[1].SetComplexity(model.SourceCustom, 30)
	bumped, err := EstimateCost(raised, DeriveFloors(raised), book)
	require.NoError(t, err)

	assert.Greater(t, bumped.PerFloor[1].Exterior, base.PerFloor[1].Exterior)
	assert.Greater(t, bumped.PerFloor[1].Structural, base.PerFloor[1].Structural)
	assert.Greater(t, bumped.PerFloor[1].Interior, base.PerFloor[1].Interior)
	assert.Greater(t, bumped.Total, base.Total)
}

func TestEstimateCost_OverrideIsolatedToItsFloor(t *testing.T) {
	book := model.DefaultRateBook()
	p := scenarioParams()
	p.GlobalComplexityFactor = 10
	base, err := EstimateCost(p, DeriveFloors(p), book)
	require.NoError(t, err)

	raised := p.Clone()
	raised.FloorDetails[1].SetComplexity(model.SourceCustom, 45)
	bumped, err := EstimateCost(raised, DeriveFloors(raised), book)
	require.NoError(t, err)

	assert.Equal(t, base.PerFloor[0], bumped.PerFloor[0])
	assert.Equal(t, base.PerFloor[2], bumped.PerFloor[2])
	assert.NotEqual(t, base.PerFloor[1], bumped.PerFloor[1])
}

func TestEstimateCost_FoundationUsesGlobalMultiplierOnly(t *testing.T) {
	book := model.DefaultRateBook()
	p := scenarioParams()
	p.GlobalComplexityFactor = 20
	p.FloorDetails[0].SetComplexity(model.SourceCustom, 80)

	cost, err := EstimateCost(p, DeriveFloors(p), book)
	require.NoError(t, err)

	floors := DeriveFloors(p)
	// Floor 0's own override scales its running costs but not the foundation.
	assert.InDelta(t, floors[0].FootprintArea*book.FoundationRate*1.20, cost.Foundation, 1e-6)
	assert.Equal(t, 1.80, cost.PerFloor[0].Multiplier)
}

func TestEstimateCost_EmptyBuildingIsFree(t *testing.T) {
	p := scenarioParams()
	p.NumFloors = 0
	p.EnsureFloorDetails()

	cost, err := EstimateCost(p, DeriveFloors(p), model.DefaultRateBook())

	require.NoError(t, err)
	assert.Zero(t, cost.Foundation)
	assert.Zero(t, cost.Total)
	assert.Empty(t, cost.PerFloor)
}

func TestComputeMetrics(t *testing.T) {
	p := scenarioParams()
	book := model.DefaultRateBook()

	m, err := ComputeMetrics(p, book)

	require.NoError(t, err)
	assert.Len(t, m.Floors, 3)
	require.NotNil(t, m.Roof)
	assert.Positive(t, m.Cost.Total)
	assert.InDelta(t, 3*29062.93, m.GrossFloorArea(), 5)
}

func TestComputeMetrics_PropagatesFinishError(t *testing.T) {
	p := scenarioParams()
	p.ExteriorType = "nope"

	_, err := ComputeMetrics(p, model.DefaultRateBook())
	assert.ErrorIs(t, err, model.ErrUnknownFinish)
}
