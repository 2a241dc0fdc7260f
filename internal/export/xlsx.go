package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/jaj-pcl/MassPlan/internal/engine"
	"github.com/jaj-pcl/MassPlan/internal/model"
)

// WriteCostScheduleXLSX writes a workbook with a per-floor cost schedule
// and a breakdown block for one building.
func WriteCostScheduleXLSX(path string, b *model.Building, book model.RateBook) error {
	if b == nil {
		return fmt.Errorf("no building to export")
	}

	floors := engine.DeriveFloors(b.Params)
	breakdown, err := engine.EstimateCost(b.Params, floors, book)
	if err != nil {
		return fmt.Errorf("estimate for schedule: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cost Schedule"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"3C3C3C"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 44})
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("bold style: %w", err)
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Cost Schedule - %s", b.Name))
	f.SetCellStyle(sheet, "A1", "A1", boldStyle)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("%s, %d floors, %s exterior",
		b.Params.ShapeType, b.Params.NumFloors, b.Params.ExteriorType))

	headers := []string{"Floor", "Width (ft)", "Depth (ft)", "Area (sf)", "Perimeter (ft)",
		"Wall Area (sf)", "Complexity (%)", "Structural", "Interior", "Exterior", "Subtotal"}
	const headerRow = 4
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	f.SetCellStyle(sheet, first, last, headerStyle)

	row := headerRow + 1
	for i, fg := range floors {
		var fc model.FloorCost
		if i < len(breakdown.PerFloor) {
			fc = breakdown.PerFloor[i]
		}
		values := []interface{}{
			i,
			round2(fg.Width),
			round2(fg.Depth),
			round2(fg.FootprintArea),
			round2(fg.Perimeter),
			round2(fg.RawWallArea),
			round2((fc.Multiplier - 1) * 100),
			fc.Structural,
			fc.Interior,
			fc.Exterior,
			fc.Subtotal(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		moneyFirst, _ := excelize.CoordinatesToCellName(8, row)
		moneyLast, _ := excelize.CoordinatesToCellName(11, row)
		f.SetCellStyle(sheet, moneyFirst, moneyLast, moneyStyle)
		row++
	}

	// Breakdown block
	row += 1
	blocks := []struct {
		label string
		value float64
	}{
		{"Foundation", breakdown.Foundation},
		{"Structural", breakdown.Structural},
		{"Interior", breakdown.Interior},
		{"Exterior", breakdown.Exterior},
		{"Total", breakdown.Total},
	}
	for _, blk := range blocks {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(sheet, labelCell, blk.label)
		f.SetCellValue(sheet, valueCell, blk.value)
		f.SetCellStyle(sheet, valueCell, valueCell, moneyStyle)
		if blk.label == "Total" {
			f.SetCellStyle(sheet, labelCell, labelCell, boldStyle)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "K", 13)

	return f.SaveAs(path)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
