package engine

import (
	"fmt"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// siteRect is a building's maximal plan extent on the site grid.
type siteRect struct {
	x, z, w, d float64
}

// MaxPlanExtent returns the largest plan dimensions reached by any floor.
// With outward stepping the upper floors overhang the ground footprint, so
// layout checks must use the maximum, not floor 0.
func MaxPlanExtent(p model.BuildingParameters) (width, depth float64) {
	width, depth = p.BuildingLength, p.BuildingDepth
	for i := range p.FloorDetails {
		w, d := SteppedPlan(p, i)
		if w > width {
			width = w
		}
		if d > depth {
			depth = d
		}
	}
	return width, depth
}

// CheckLayout warns when two buildings' maximal footprints overlap on the
// site grid. Each building occupies a rectangle at its world position with
// its maximal plan extent. Advisory only: the registry still places and
// keeps overlapping buildings.
func CheckLayout(buildings []*model.Building) []string {
	rects := make([]siteRect, len(buildings))
	for i, b := range buildings {
		w, d := MaxPlanExtent(b.Params)
		rects[i] = siteRect{x: b.Position.X, z: b.Position.Z, w: w, d: d}
	}

	var warnings []string
	for i := 0; i < len(buildings); i++ {
		for j := i + 1; j < len(buildings); j++ {
			if rectsOverlap(rects[i], rects[j]) {
				warnings = append(warnings, fmt.Sprintf(
					"buildings %q and %q overlap on the site grid",
					buildings[i].Name, buildings[j].Name))
			}
		}
	}
	return warnings
}

// rectsOverlap returns true when two rectangles overlap, not merely touch.
func rectsOverlap(a, b siteRect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.z < b.z+b.d && a.z+a.d > b.z
}
