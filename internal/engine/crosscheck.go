package engine

import (
	"fmt"
	"math"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// PerimeterTolerance is the absolute tolerance for the perimeter cross-check.
const PerimeterTolerance = 0.01

// PerimeterCheck is the result of comparing a user-supplied perimeter against
// the calculated ground-floor perimeter. Purely advisory; it never feeds back
// into the model.
type PerimeterCheck struct {
	Given      float64
	Calculated float64
	Match      bool
}

// CheckPerimeter compares a user-supplied value against floor 0's perimeter
// within PerimeterTolerance.
func CheckPerimeter(m model.CalculatedMetrics, given float64) PerimeterCheck {
	calc := m.GroundPerimeter()
	return PerimeterCheck{
		Given:      given,
		Calculated: calc,
		Match:      math.Abs(given-calc) <= PerimeterTolerance,
	}
}

// Summary formats the check for display.
func (c PerimeterCheck) Summary() string {
	if c.Match {
		return "Match"
	}
	return fmt.Sprintf("Mismatch: calculated %.2f ft", c.Calculated)
}
