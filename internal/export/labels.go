package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// LabelInfo holds the data encoded into each building placard's QR code.
type LabelInfo struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Shape       string  `json:"shape"`
	NumFloors   int     `json:"floors"`
	Length      float64 `json:"length_ft"`
	Depth       float64 `json:"depth_ft"`
	TotalHeight float64 `json:"height_ft"`
	GrossArea   float64 `json:"gross_area_sf"`
	Exterior    string  `json:"exterior"`
	TotalCost   float64 `json:"total_cost"`
}

// Label layout constants for Avery 5160-compatible sheets (3 columns,
// 10 rows per US Letter page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// WriteBuildingLabels generates a PDF of QR-coded placards, one per
// building, on a standard label sheet (Avery 5160). The QR payload is the
// building snapshot as JSON.
func WriteBuildingLabels(path string, buildings []*model.Building) error {
	if len(buildings) == 0 {
		return fmt.Errorf("no buildings to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	n := 0
	for _, b := range buildings {
		if b == nil {
			continue
		}
		if n%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := n % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, labelInfoFor(b)); err != nil {
			return fmt.Errorf("render label for %q: %w", b.Name, err)
		}
		n++
	}

	if n == 0 {
		return fmt.Errorf("no buildings to generate labels for")
	}

	return pdf.OutputFileAndClose(path)
}

func labelInfoFor(b *model.Building) LabelInfo {
	return LabelInfo{
		ID:          b.ID,
		Name:        b.Name,
		Shape:       b.Params.ShapeType.String(),
		NumFloors:   b.Params.NumFloors,
		Length:      b.Params.BuildingLength,
		Depth:       b.Params.BuildingDepth,
		TotalHeight: b.Params.TotalHeight(),
		GrossArea:   b.Metrics.GrossFloorArea(),
		Exterior:    b.Params.ExteriorType,
		TotalCost:   math.Ceil(b.Metrics.Cost.Total),
	}
}

// renderLabel draws a single placard at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_building_%d", info.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text block on the left
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4, truncate(info.Name, 22), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+4.5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s, %d floors", info.Shape, info.NumFloors), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+8)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%.0f x %.0f x %.0f ft", info.Length, info.Depth, info.TotalHeight), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+11.5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%.0f sf gross", info.GrossArea), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+15)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(textW, 3.5, CeilDollars(info.TotalCost), "", 1, "L", false, 0, "")

	return nil
}

// truncate shortens a string for the fixed label width.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "~"
}
