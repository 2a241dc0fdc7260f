// Package export writes cost reports, QR building labels, DXF floor plans,
// and XLSX cost schedules for estimator buildings.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/jaj-pcl/MassPlan/internal/engine"
	"github.com/jaj-pcl/MassPlan/internal/model"
)

// Report layout constants for portrait US Letter, all in mm.
const (
	pageMargin   = 12.0
	titleHeight  = 10.0
	rowHeight    = 6.0
	sectionGap   = 4.0
	legendSwatch = 4.0
)

// floorPalette cycles across floors in the report legend and table stripes.
var floorPalette = [][3]int{
	{0x9f, 0xc5, 0xe8},
	{0xb6, 0xd7, 0xa8},
	{0xff, 0xe5, 0x99},
	{0xea, 0x99, 0x99},
	{0xd5, 0xa6, 0xbd},
	{0xa2, 0xc4, 0xc9},
}

// CeilDollars formats an amount rounded up to whole dollars, the same
// ceiling the cost tab applies on screen.
func CeilDollars(v float64) string {
	return "$" + groupThousands(math.Ceil(v))
}

// groupThousands renders a non-negative whole amount with comma separators.
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// WriteCostReport writes a one-building cost report PDF: parameter summary,
// per-floor geometry and cost table, breakdown totals, and a finish
// comparison table.
func WriteCostReport(path string, b *model.Building, book model.RateBook) error {
	if b == nil {
		return fmt.Errorf("no building to report")
	}

	floors := engine.DeriveFloors(b.Params)
	breakdown, err := engine.EstimateCost(b.Params, floors, book)
	if err != nil {
		return fmt.Errorf("estimate for report: %w", err)
	}
	comparisons, err := engine.CompareFinishes(b.Params, book)
	if err != nil {
		return fmt.Errorf("finish comparison for report: %w", err)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	// Title block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pageMargin, pageMargin)
	pdf.CellFormat(contentW, titleHeight, fmt.Sprintf("Cost Report - %s", b.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Building #%d  |  %s  |  %d floors  |  %s exterior",
		b.ID, b.Params.ShapeType.String(), b.Params.NumFloors, b.Params.ExteriorType), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(sectionGap)

	writeParameterSummary(pdf, contentW, b.Params)
	pdf.Ln(sectionGap)
	writeFloorTable(pdf, contentW, b.Params, floors, breakdown)
	pdf.Ln(sectionGap)
	writeBreakdown(pdf, contentW, floors, breakdown)
	pdf.Ln(sectionGap)
	writeFinishComparison(pdf, contentW, comparisons)

	return pdf.OutputFileAndClose(path)
}

// writeParameterSummary prints the input parameters in two label/value columns.
func writeParameterSummary(pdf *fpdf.Fpdf, contentW float64, p model.BuildingParameters) {
	sectionHeader(pdf, contentW, "Parameters")

	rows := [][2]string{
		{"Shape", p.ShapeType.String()},
		{"Length x Depth", fmt.Sprintf("%.2f ft x %.2f ft", p.BuildingLength, p.BuildingDepth)},
		{"Floors", fmt.Sprintf("%d", p.NumFloors)},
		{"Typical floor height", fmt.Sprintf("%.2f ft", p.TypicalFloorHeight)},
		{"Wall thickness", fmt.Sprintf("%.2f ft", p.WallThickness)},
		{"Step", fmt.Sprintf("%s, %.2f ft per floor", p.StepDirection.String(), p.StepAmount)},
		{"Global complexity", fmt.Sprintf("%.0f%%", p.GlobalComplexityFactor)},
		{"Exterior finish", p.ExteriorType},
	}

	pdf.SetFont("Helvetica", "", 9)
	half := contentW / 2
	for i := 0; i < len(rows); i += 2 {
		pdf.SetX(pageMargin)
		for j := i; j < i+2 && j < len(rows); j++ {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(half*0.45, 5.5, rows[j][0], "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(half*0.55, 5.5, rows[j][1], "", 0, "L", false, 0, "")
		}
		pdf.Ln(5.5)
	}
}

// writeFloorTable prints the per-floor geometry and cost rows, striped with
// the floor palette.
func writeFloorTable(pdf *fpdf.Fpdf, contentW float64, p model.BuildingParameters, floors []model.FloorGeometry, bd model.CostBreakdown) {
	sectionHeader(pdf, contentW, "Floors")

	headers := []string{"Floor", "Plan (ft)", "Area (sf)", "Perim (ft)", "Wall (sf)", "Cx", "Structural", "Interior", "Exterior", "Subtotal"}
	widths := []float64{0.07, 0.14, 0.10, 0.10, 0.10, 0.06, 0.11, 0.11, 0.11, 0.10}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(60, 60, 60)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(pageMargin)
	for i, h := range headers {
		pdf.CellFormat(contentW*widths[i], rowHeight, h, "", 0, "C", true, 0, "")
	}
	pdf.Ln(rowHeight)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8)
	for i, fg := range floors {
		var fc model.FloorCost
		if i < len(bd.PerFloor) {
			fc = bd.PerFloor[i]
		}
		c := floorPalette[i%len(floorPalette)]
		pdf.SetFillColor(c[0], c[1], c[2])

		cx := (fc.Multiplier - 1) * 100
		cells := []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.1f x %.1f", fg.Width, fg.Depth),
			fmt.Sprintf("%.1f", fg.FootprintArea),
			fmt.Sprintf("%.2f", fg.Perimeter),
			fmt.Sprintf("%.1f", fg.RawWallArea),
			fmt.Sprintf("%.0f%%", cx),
			CeilDollars(fc.Structural),
			CeilDollars(fc.Interior),
			CeilDollars(fc.Exterior),
			CeilDollars(fc.Subtotal()),
		}
		pdf.SetX(pageMargin)
		for j, cell := range cells {
			align := "R"
			if j < 2 {
				align = "C"
			}
			pdf.CellFormat(contentW*widths[j], rowHeight, cell, "", 0, align, true, 0, "")
		}
		pdf.Ln(rowHeight)
	}
}

// writeBreakdown prints the aggregated estimate with the display ceiling.
func writeBreakdown(pdf *fpdf.Fpdf, contentW float64, floors []model.FloorGeometry, bd model.CostBreakdown) {
	sectionHeader(pdf, contentW, "Cost Breakdown")

	var gross, wall float64
	for _, fg := range floors {
		gross += fg.FootprintArea
		wall += fg.RawWallArea
	}

	rows := [][2]string{
		{"Gross floor area", fmt.Sprintf("%.1f sf", gross)},
		{"Exterior wall area", fmt.Sprintf("%.1f sf", wall)},
		{"Foundation", CeilDollars(bd.Foundation)},
		{"Structural", CeilDollars(bd.Structural)},
		{"Interior", CeilDollars(bd.Interior)},
		{"Exterior", CeilDollars(bd.Exterior)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.SetX(pageMargin)
		pdf.CellFormat(contentW*0.30, 5.5, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5.5, row[1], "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(pageMargin)
	pdf.CellFormat(contentW*0.30, 7, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.25, 7, CeilDollars(bd.Total), "T", 1, "R", false, 0, "")
}

// writeFinishComparison prints the what-if table across every finish in
// the rate book, marking the active one.
func writeFinishComparison(pdf *fpdf.Fpdf, contentW float64, comparisons []engine.FinishComparison) {
	sectionHeader(pdf, contentW, "Finish Comparison")

	headers := []string{"Finish", "Rate ($/sf)", "Exterior", "Total", "Delta"}
	widths := []float64{0.30, 0.15, 0.18, 0.20, 0.17}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(60, 60, 60)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(pageMargin)
	for i, h := range headers {
		pdf.CellFormat(contentW*widths[i], rowHeight, h, "", 0, "C", true, 0, "")
	}
	pdf.Ln(rowHeight)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8)
	for i, cmp := range comparisons {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		name := cmp.Finish.Name
		if cmp.IsCurrent {
			name += " (current)"
			pdf.SetFont("Helvetica", "B", 8)
		}
		delta := ""
		if !cmp.IsCurrent {
			sign := "+"
			if cmp.DeltaTotal < 0 {
				sign = "-"
			}
			delta = sign + CeilDollars(math.Abs(cmp.DeltaTotal))
		}

		// Swatch of the finish's render color next to the name.
		pdf.SetX(pageMargin)
		y := pdf.GetY()
		pdf.SetDrawColor(120, 120, 120)
		oldR, oldG, oldB := pdf.GetFillColor()
		pdf.SetFillColor(int(cmp.Finish.R), int(cmp.Finish.G), int(cmp.Finish.B))
		pdf.Rect(pageMargin+1, y+(rowHeight-legendSwatch)/2, legendSwatch, legendSwatch, "FD")
		pdf.SetFillColor(oldR, oldG, oldB)

		pdf.SetX(pageMargin + legendSwatch + 3)
		pdf.CellFormat(contentW*widths[0]-legendSwatch-3, rowHeight, name, "", 0, "L", true, 0, "")
		pdf.CellFormat(contentW*widths[1], rowHeight, fmt.Sprintf("%.2f", cmp.Finish.RatePerSqFt), "", 0, "R", true, 0, "")
		pdf.CellFormat(contentW*widths[2], rowHeight, CeilDollars(cmp.Exterior), "", 0, "R", true, 0, "")
		pdf.CellFormat(contentW*widths[3], rowHeight, CeilDollars(cmp.Total), "", 0, "R", true, 0, "")
		pdf.CellFormat(contentW*widths[4], rowHeight, delta, "", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 8)
	}
}

// sectionHeader prints a bold section title with a rule under it.
func sectionHeader(pdf *fpdf.Fpdf, contentW float64, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(pageMargin)
	pdf.CellFormat(contentW, 7, title, "", 1, "L", false, 0, "")
	y := pdf.GetY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(pageMargin, y, pageMargin+contentW, y)
	pdf.Ln(1.5)
}
