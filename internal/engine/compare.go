package engine

import "github.com/jaj-pcl/MassPlan/internal/model"

// FinishComparison holds the estimate for one candidate exterior finish.
type FinishComparison struct {
	Finish     model.ExteriorFinish
	Exterior   float64
	Total      float64
	DeltaTotal float64 // Total minus the current finish's total
	IsCurrent  bool
}

// CompareFinishes re-estimates a building under every finish in the rate
// book, enabling a side-by-side what-if view of facade choices. Geometry is
// derived once; only the exterior rate varies between rows. Results follow
// the rate book's finish order, with DeltaTotal relative to the building's
// current finish.
func CompareFinishes(p model.BuildingParameters, book model.RateBook) ([]FinishComparison, error) {
	floors := DeriveFloors(p)

	current, err := EstimateCost(p, floors, book)
	if err != nil {
		return nil, err
	}

	results := make([]FinishComparison, 0, len(book.Finishes))
	for _, finish := range book.Finishes {
		trial := p
		trial.ExteriorType = finish.Name
		cost, err := EstimateCost(trial, floors, book)
		if err != nil {
			return nil, err
		}
		results = append(results, FinishComparison{
			Finish:     finish,
			Exterior:   cost.Exterior,
			Total:      cost.Total,
			DeltaTotal: cost.Total - current.Total,
			IsCurrent:  finish.Name == p.ExteriorType,
		})
	}
	return results, nil
}
