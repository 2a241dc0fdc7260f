package engine

import "github.com/jaj-pcl/MassPlan/internal/model"

// EstimateCost aggregates the construction estimate for a building from its
// derived floor geometry and the rate book.
//
// Each floor's exterior, structural, and interior costs are scaled by a
// layered multiplier 1 + effectiveComplexity/100, where the effective
// complexity is the floor's override when one is set and the building-wide
// factor otherwise. The foundation is a site-wide base cost: floor 0's
// footprint at the foundation rate, scaled by the GLOBAL multiplier only --
// a per-floor override on floor 0 does not apply to it.
//
// An exterior type absent from the rate book rejects the estimate; silent
// fallback rates would mask configuration typos as mispriced estimates.
// The returned values are exact; rounding up to whole dollars is left to
// presentation.
func EstimateCost(p model.BuildingParameters, floors []model.FloorGeometry, book model.RateBook) (model.CostBreakdown, error) {
	finish, err := book.FinishFor(p.ExteriorType)
	if err != nil {
		return model.CostBreakdown{}, err
	}

	var breakdown model.CostBreakdown
	breakdown.PerFloor = make([]model.FloorCost, 0, len(floors))

	for i, f := range floors {
		effective := p.GlobalComplexityFactor
		if i < len(p.FloorDetails) {
			effective = p.FloorDetails[i].EffectiveComplexity(p.GlobalComplexityFactor)
		}
		multiplier := 1 + effective/100

		fc := model.FloorCost{
			Multiplier: multiplier,
			Exterior:   f.RawWallArea * finish.RatePerSqFt * multiplier,
			Structural: f.FootprintArea * book.StructuralRate * multiplier,
			Interior:   f.FootprintArea * book.InteriorRate * multiplier,
		}
		breakdown.PerFloor = append(breakdown.PerFloor, fc)
		breakdown.Exterior += fc.Exterior
		breakdown.Structural += fc.Structural
		breakdown.Interior += fc.Interior
	}

	if len(floors) > 0 {
		globalMultiplier := 1 + p.GlobalComplexityFactor/100
		breakdown.Foundation = floors[0].FootprintArea * book.FoundationRate * globalMultiplier
	}

	breakdown.Total = breakdown.Foundation + breakdown.Structural +
		breakdown.Interior + breakdown.Exterior
	return breakdown, nil
}

// ComputeMetrics runs the full geometry and cost pass for one parameter set.
// This is what the registry stores into a building after every mutation.
func ComputeMetrics(p model.BuildingParameters, book model.RateBook) (model.CalculatedMetrics, error) {
	floors := DeriveFloors(p)
	cost, err := EstimateCost(p, floors, book)
	if err != nil {
		return model.CalculatedMetrics{}, err
	}
	return model.CalculatedMetrics{
		Floors: floors,
		Roof:   DeriveRoof(p),
		Cost:   cost,
	}, nil
}
