package engine

import (
	"fmt"
	"math"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// FloorFit is one candidate floor count evaluated by FitFloorsToArea.
type FloorFit struct {
	NumFloors      int
	GrossFloorArea float64
	Deviation      float64 // absolute difference from the target
}

// FitFloorsToArea searches for the floor count whose gross floor area comes
// closest to a target, holding every other parameter fixed. Added floors use
// the typical height with the global complexity source, matching what a
// resize would produce. The search is exhaustive over [1, MaxFloors]: with
// stepping, area is not monotonic in floor count, so bisection is unsafe.
// Ties prefer the lower floor count.
func FitFloorsToArea(p model.BuildingParameters, targetArea float64) (FloorFit, error) {
	if targetArea <= 0 {
		return FloorFit{}, fmt.Errorf("target area must be positive, got %.2f", targetArea)
	}

	best := FloorFit{Deviation: math.Inf(1)}
	for n := 1; n <= model.MaxFloors; n++ {
		trial := p.Clone()
		trial.NumFloors = n
		trial.EnsureFloorDetails()

		var gross float64
		for _, f := range DeriveFloors(trial) {
			gross += f.FootprintArea
		}

		deviation := math.Abs(gross - targetArea)
		if deviation < best.Deviation {
			best = FloorFit{NumFloors: n, GrossFloorArea: gross, Deviation: deviation}
		}
	}
	return best, nil
}
