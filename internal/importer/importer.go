// Package importer reads building lists from CSV, Excel, and DXF files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// ImportedBuilding is one building parsed from an import source.
type ImportedBuilding struct {
	Name   string
	Params model.BuildingParameters
}

// ImportResult holds the results of an import operation. Row-level problems
// land in Errors or Warnings without aborting the rest of the file.
type ImportResult struct {
	Buildings []ImportedBuilding
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// An index of -1 means the column is absent.
type ColumnMapping struct {
	Name          int
	Shape         int
	Length        int
	Depth         int
	Floors        int
	FloorHeight   int
	WallThickness int
	StepDirection int
	StepAmount    int
	Complexity    int
	Exterior      int
}

// headerAliases maps canonical column roles to their accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"name":           {"name", "building", "building name", "label", "id"},
	"shape":          {"shape", "shape type", "footprint", "type"},
	"length":         {"length", "len", "width", "w", "x", "length ft", "length (ft)"},
	"depth":          {"depth", "d", "y", "z", "depth ft", "depth (ft)"},
	"floors":         {"floors", "num floors", "floor count", "storeys", "stories", "levels"},
	"floor height":   {"floor height", "typical floor height", "height", "storey height", "story height"},
	"wall thickness": {"wall thickness", "wall", "thickness", "wt"},
	"step direction": {"step direction", "step dir", "stepping", "step"},
	"step amount":    {"step amount", "step ft", "step size", "setback"},
	"complexity":     {"complexity", "complexity factor", "global complexity", "cx"},
	"exterior":       {"exterior", "exterior type", "finish", "facade", "cladding"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// role. Returns the mapping and true if a header was detected, or a default
// positional mapping and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name: -1, Shape: -1, Length: -1, Depth: -1, Floors: -1,
		FloorHeight: -1, WallThickness: -1, StepDirection: -1,
		StepAmount: -1, Complexity: -1, Exterior: -1,
	}

	set := func(dst *int, i int) {
		if *dst == -1 {
			*dst = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					set(&mapping.Name, i)
				case "shape":
					set(&mapping.Shape, i)
				case "length":
					set(&mapping.Length, i)
				case "depth":
					set(&mapping.Depth, i)
				case "floors":
					set(&mapping.Floors, i)
				case "floor height":
					set(&mapping.FloorHeight, i)
				case "wall thickness":
					set(&mapping.WallThickness, i)
				case "step direction":
					set(&mapping.StepDirection, i)
				case "step amount":
					set(&mapping.StepAmount, i)
				case "complexity":
					set(&mapping.Complexity, i)
				case "exterior":
					set(&mapping.Exterior, i)
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: Name, Length, Depth, Floors, Floor Height.
		return ColumnMapping{
			Name: 0, Length: 1, Depth: 2, Floors: 3, FloorHeight: 4,
			Shape: -1, WallThickness: -1, StepDirection: -1,
			StepAmount: -1, Complexity: -1, Exterior: -1,
		}, false
	}

	return mapping, true
}

// parseShape converts a shape cell to a ShapeType. Accepts display names
// and enum keys.
func parseShape(s string) (model.ShapeType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "box", "rectangle", "rect":
		return model.ShapeBox, true
	case "c-shape", "c shape", "c_shape", "c":
		return model.ShapeCShape, true
	default:
		return model.ShapeBox, false
	}
}

// parseStep converts a step direction cell to a StepDirection.
func parseStep(s string) (model.StepDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "-":
		return model.StepNone, true
	case "inward x", "inward_x", "in x":
		return model.StepInwardX, true
	case "inward z", "inward_z", "in z":
		return model.StepInwardZ, true
	case "outward x", "outward_x", "out x":
		return model.StepOutwardX, true
	case "outward z", "outward_z", "out z":
		return model.StepOutwardZ, true
	default:
		return model.StepNone, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a building from a row using the given column mapping.
// Returns the building, an error message, and any warnings. Numeric values
// out of range are clamped; an unknown exterior finish fails the row.
func parseRow(row []string, mapping ColumnMapping, book model.RateBook, rowLabel string, count int) (ImportedBuilding, string, []string) {
	var warnings []string

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Imported Building %d", count+1)
	}

	params := model.DefaultParameters()

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return ImportedBuilding{}, fmt.Sprintf("%s: Missing length value", rowLabel), nil
	}
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return ImportedBuilding{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), nil
	}

	depthStr := getCell(row, mapping.Depth)
	if depthStr == "" {
		return ImportedBuilding{}, fmt.Sprintf("%s: Missing depth value", rowLabel), nil
	}
	depth, err := strconv.ParseFloat(depthStr, 64)
	if err != nil {
		return ImportedBuilding{}, fmt.Sprintf("%s: Invalid depth '%s'", rowLabel, depthStr), nil
	}

	floorsStr := getCell(row, mapping.Floors)
	if floorsStr == "" {
		return ImportedBuilding{}, fmt.Sprintf("%s: Missing floor count", rowLabel), nil
	}
	floors, err := strconv.Atoi(floorsStr)
	if err != nil {
		return ImportedBuilding{}, fmt.Sprintf("%s: Invalid floor count '%s'", rowLabel, floorsStr), nil
	}

	if length <= 0 || depth <= 0 || floors <= 0 {
		return ImportedBuilding{}, fmt.Sprintf("%s: Length, depth, and floors must be positive", rowLabel), nil
	}

	params.BuildingLength = length
	params.BuildingDepth = depth
	params.NumFloors = floors
	params.FloorDetails = nil

	if s := getCell(row, mapping.Shape); s != "" {
		shape, ok := parseShape(s)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown shape '%s', defaulting to Box", rowLabel, s))
		}
		params.ShapeType = shape
	}

	if s := getCell(row, mapping.FloorHeight); s != "" {
		h, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ImportedBuilding{}, fmt.Sprintf("%s: Invalid floor height '%s'", rowLabel, s), nil
		}
		clamped := model.ClampFloorHeight(h)
		if clamped != h {
			warnings = append(warnings, fmt.Sprintf("%s: Floor height %.2f clamped to %.2f ft", rowLabel, h, clamped))
		}
		params.TypicalFloorHeight = clamped
	}

	if s := getCell(row, mapping.WallThickness); s != "" {
		wt, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ImportedBuilding{}, fmt.Sprintf("%s: Invalid wall thickness '%s'", rowLabel, s), nil
		}
		params.WallThickness = wt
	}

	if s := getCell(row, mapping.StepDirection); s != "" {
		dir, ok := parseStep(s)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown step direction '%s', defaulting to None", rowLabel, s))
		}
		params.StepDirection = dir
	}

	if s := getCell(row, mapping.StepAmount); s != "" {
		amt, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ImportedBuilding{}, fmt.Sprintf("%s: Invalid step amount '%s'", rowLabel, s), nil
		}
		params.StepAmount = amt
	}

	if s := getCell(row, mapping.Complexity); s != "" {
		cx, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ImportedBuilding{}, fmt.Sprintf("%s: Invalid complexity '%s'", rowLabel, s), nil
		}
		clamped := model.ClampComplexity(cx)
		if clamped != cx {
			warnings = append(warnings, fmt.Sprintf("%s: Complexity %.1f clamped to %.1f%%", rowLabel, cx, clamped))
		}
		params.GlobalComplexityFactor = clamped
	}

	if s := getCell(row, mapping.Exterior); s != "" {
		if _, err := book.FinishFor(s); err != nil {
			return ImportedBuilding{}, fmt.Sprintf("%s: Unknown exterior finish '%s'", rowLabel, s), nil
		}
		params.ExteriorType = s
	}

	params.Normalize()
	params.EnsureFloorDetails()

	return ImportedBuilding{Name: name, Params: params}, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports buildings from a CSV file. It automatically detects
// the delimiter and maps columns by header names.
func ImportCSV(path string, book model.RateBook) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, book, "Line", warnings)
}

// ImportCSVFromReader imports buildings from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune, book model.RateBook) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, book, "Line", nil)
}

// ImportExcel imports buildings from an Excel (.xlsx) file. Reads the
// first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, book model.RateBook) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, book, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, book model.RateBook, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if mapping.Floors == -1 {
			missing = append(missing, "Floors")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// No recognized header. If the second column is not numeric the
		// first row is probably an unrecognized header; skip it and keep
		// the positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		b, errMsg, warnings := parseRow(row, mapping, book, rowLabel, len(result.Buildings))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Buildings = append(result.Buildings, b)
	}

	if len(result.Buildings) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No buildings found in file")
	}

	return result
}
