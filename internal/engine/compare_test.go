package engine

import (
	"testing"

	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareFinishes(t *testing.T) {
	p := scenarioParams()
	book := model.DefaultRateBook()

	rows, err := CompareFinishes(p, book)

	require.NoError(t, err)
	require.Len(t, rows, len(book.Finishes))

	var current int
	for i, row := range rows {
		assert.Equal(t, book.Finishes[i].Name, row.Finish.Name)
		if row.IsCurrent {
			current++
			assert.Zero(t, row.DeltaTotal)
		}
	}
	assert.Equal(t, 1, current)
}

func TestCompareFinishes_OrderedByExteriorRate(t *testing.T) {
	p := scenarioParams()
	book := model.DefaultRateBook()

	rows, err := CompareFinishes(p, book)
	require.NoError(t, err)

	// Same geometry, so exterior cost ranks exactly with the finish rate.
	for i, row := range rows {
		for j, other := range rows {
			if book.Finishes[i].RatePerSqFt < book.Finishes[j].RatePerSqFt {
				assert.Less(t, row.Exterior, other.Exterior)
			}
		}
	}
}

func TestCompareFinishes_UnknownCurrentFinish(t *testing.T) {
	p := scenarioParams()
	p.ExteriorType = "bogus"

	_, err := CompareFinishes(p, model.DefaultRateBook())
	assert.ErrorIs(t, err, model.ErrUnknownFinish)
}

func TestCheckPerimeter(t *testing.T) {
	p := scenarioParams()
	m, err := ComputeMetrics(p, model.DefaultRateBook())
	require.NoError(t, err)

	exact := m.GroundPerimeter()

	check := CheckPerimeter(m, exact+0.005)
	assert.True(t, check.Match)
	assert.Equal(t, "Match", check.Summary())

	check = CheckPerimeter(m, exact+0.5)
	assert.False(t, check.Match)
	assert.Contains(t, check.Summary(), "Mismatch")
	assert.Equal(t, exact, check.Calculated)
}

func TestCheckPerimeter_EmptyBuilding(t *testing.T) {
	check := CheckPerimeter(model.CalculatedMetrics{}, 0)
	assert.True(t, check.Match)
}

func TestFitFloorsToArea(t *testing.T) {
	p := scenarioParams()
	perFloor := 196.85 * 147.64

	fit, err := FitFloorsToArea(p, 5*perFloor)

	require.NoError(t, err)
	assert.Equal(t, 5, fit.NumFloors)
	assert.InDelta(t, 5*perFloor, fit.GrossFloorArea, 1)
}

func TestFitFloorsToArea_RejectsNonPositiveTarget(t *testing.T) {
	_, err := FitFloorsToArea(scenarioParams(), 0)
	assert.Error(t, err)
}

func TestCheckLayout(t *testing.T) {
	a := &model.Building{ID: 1, Name: "North Tower", Params: scenarioParams()}
	b := &model.Building{ID: 2, Name: "South Tower", Params: scenarioParams()}
	b.Position = model.Position{X: model.BuildingSpacing}

	assert.Empty(t, CheckLayout([]*model.Building{a, b}))

	// Move the second building onto the first.
	b.Position = model.Position{X: 50}
	warnings := CheckLayout([]*model.Building{a, b})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "North Tower")
	assert.Contains(t, warnings[0], "South Tower")
}

func TestCheckLayout_OutwardSteppingWidensExtent(t *testing.T) {
	p := scenarioParams()
	p.StepDirection = model.StepOutwardX
	p.StepAmount = 80 // top floor overhangs by 320 ft

	w, d := MaxPlanExtent(p)
	assert.InDelta(t, 196.85+2*80*2, w, 0.01)
	assert.InDelta(t, 147.64, d, 0.01)

	a := &model.Building{ID: 1, Name: "A", Params: p}
	b := &model.Building{ID: 2, Name: "B", Params: scenarioParams()}
	b.Position = model.Position{X: model.BuildingSpacing}

	// The grid pitch that separates two unstepped buildings no longer does.
	assert.NotEmpty(t, CheckLayout([]*model.Building{a, b}))
}
