package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Length,Depth,Floors\nTower A,100,60,5\nTower B,80,50,3\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Length;Depth;Floors\nTower A;100;60;5\nTower B;80;50;3\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tLength\tDepth\tFloors\nTower A\t100\t60\t5\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Name|Length|Depth|Floors\nTower A|100|60|5\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Name", "Shape", "Length", "Depth", "Floors", "Floor Height", "Exterior"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Name != 0 {
		t.Errorf("expected Name at 0, got %d", mapping.Name)
	}
	if mapping.Shape != 1 {
		t.Errorf("expected Shape at 1, got %d", mapping.Shape)
	}
	if mapping.Length != 2 {
		t.Errorf("expected Length at 2, got %d", mapping.Length)
	}
	if mapping.Depth != 3 {
		t.Errorf("expected Depth at 3, got %d", mapping.Depth)
	}
	if mapping.Floors != 4 {
		t.Errorf("expected Floors at 4, got %d", mapping.Floors)
	}
	if mapping.FloorHeight != 5 {
		t.Errorf("expected FloorHeight at 5, got %d", mapping.FloorHeight)
	}
	if mapping.Exterior != 6 {
		t.Errorf("expected Exterior at 6, got %d", mapping.Exterior)
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	row := []string{"building", "w", "d", "storeys", "cx", "facade"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Name != 0 || mapping.Length != 1 || mapping.Depth != 2 || mapping.Floors != 3 {
		t.Errorf("alias mapping wrong: %+v", mapping)
	}
	if mapping.Complexity != 4 || mapping.Exterior != 5 {
		t.Errorf("alias mapping wrong: %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Tower A", "100", "60", "5", "13"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("numeric row should not be detected as header")
	}
	if mapping.Name != 0 || mapping.Length != 1 || mapping.Depth != 2 || mapping.Floors != 3 || mapping.FloorHeight != 4 {
		t.Errorf("positional mapping wrong: %+v", mapping)
	}
}

// ─── ImportCSV Tests ───────────────────────────────────────

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestImportCSV_FullColumns(t *testing.T) {
	csv := "Name,Shape,Length,Depth,Floors,Floor Height,Wall Thickness,Step Direction,Step Amount,Complexity,Exterior\n" +
		"Tower A,C-Shape,196.85,147.64,8,13.12,1.64,Inward X,3.28,15,Curtain Wall\n" +
		"Tower B,Box,98.43,65.62,3,11.5,1.64,None,0,0,Punched Window\n"
	path := writeTempFile(t, "buildings.csv", csv)

	result := ImportCSV(path, model.DefaultRateBook())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Buildings) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(result.Buildings))
	}

	a := result.Buildings[0]
	if a.Name != "Tower A" {
		t.Errorf("expected name Tower A, got %q", a.Name)
	}
	if a.Params.ShapeType != model.ShapeCShape {
		t.Errorf("expected C-shape, got %s", a.Params.ShapeType)
	}
	if a.Params.NumFloors != 8 || len(a.Params.FloorDetails) != 8 {
		t.Errorf("expected 8 floors with details, got %d/%d", a.Params.NumFloors, len(a.Params.FloorDetails))
	}
	if a.Params.StepDirection != model.StepInwardX || a.Params.StepAmount != 3.28 {
		t.Errorf("step not parsed: %s %.2f", a.Params.StepDirection, a.Params.StepAmount)
	}
	if a.Params.GlobalComplexityFactor != 15 {
		t.Errorf("expected complexity 15, got %.1f", a.Params.GlobalComplexityFactor)
	}
	if a.Params.ExteriorType != model.ExteriorCurtainWall {
		t.Errorf("expected Curtain Wall, got %q", a.Params.ExteriorType)
	}
}

func TestImportCSV_RowErrorsAreNotFatal(t *testing.T) {
	csv := "Name,Length,Depth,Floors\n" +
		"Good,100,60,5\n" +
		"Bad,abc,60,5\n" +
		"Also Good,80,50,3\n"
	path := writeTempFile(t, "buildings.csv", csv)

	result := ImportCSV(path, model.DefaultRateBook())
	if len(result.Buildings) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(result.Buildings))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid length") {
		t.Errorf("unexpected error text: %s", result.Errors[0])
	}
}

func TestImportCSV_UnknownExteriorIsRowError(t *testing.T) {
	csv := "Name,Length,Depth,Floors,Exterior\n" +
		"Tower,100,60,5,Solid Gold\n"
	path := writeTempFile(t, "buildings.csv", csv)

	result := ImportCSV(path, model.DefaultRateBook())
	if len(result.Buildings) != 0 {
		t.Fatalf("expected no buildings, got %d", len(result.Buildings))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Unknown exterior finish") {
		t.Errorf("expected unknown finish error, got %v", result.Errors)
	}
}

func TestImportCSV_ClampsWithWarning(t *testing.T) {
	csv := "Name,Length,Depth,Floors,Floor Height,Complexity\n" +
		"Tower,100,60,5,200,150\n"
	path := writeTempFile(t, "buildings.csv", csv)

	result := ImportCSV(path, model.DefaultRateBook())
	if len(result.Buildings) != 1 {
		t.Fatalf("expected 1 building, got %d (errors: %v)", len(result.Buildings), result.Errors)
	}
	p := result.Buildings[0].Params
	if p.TypicalFloorHeight != model.MaxFloorHeight {
		t.Errorf("expected clamped floor height %.1f, got %.1f", model.MaxFloorHeight, p.TypicalFloorHeight)
	}
	if p.GlobalComplexityFactor != model.MaxComplexity {
		t.Errorf("expected clamped complexity, got %.1f", p.GlobalComplexityFactor)
	}
	clamps := 0
	for _, w := range result.Warnings {
		if strings.Contains(w, "clamped") {
			clamps++
		}
	}
	if clamps != 2 {
		t.Errorf("expected 2 clamp warnings, got %v", result.Warnings)
	}
}

func TestImportCSV_SemicolonDelimiter(t *testing.T) {
	csv := "Name;Length;Depth;Floors\nTower;100;60;5\n"
	path := writeTempFile(t, "buildings.csv", csv)

	result := ImportCSV(path, model.DefaultRateBook())
	if len(result.Buildings) != 1 {
		t.Fatalf("expected 1 building, got %d (errors: %v)", len(result.Buildings), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")
	result := ImportCSV(path, model.DefaultRateBook())
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	csv := "Name,Length,Floors\nTower,100,5\n"
	path := writeTempFile(t, "buildings.csv", csv)

	result := ImportCSV(path, model.DefaultRateBook())
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Depth") {
		t.Errorf("expected missing Depth error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader(t *testing.T) {
	csv := "Name,Length,Depth,Floors\nTower,100,60,5\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',', model.DefaultRateBook())
	if len(result.Buildings) != 1 {
		t.Fatalf("expected 1 building, got %d (errors: %v)", len(result.Buildings), result.Errors)
	}
}

// ─── ImportExcel Tests ─────────────────────────────────────

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildings.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Length", "Depth", "Floors", "Exterior"},
		{"Tower A", 196.85, 147.64, 8, "Metal Panel"},
		{"Tower B", 98.43, 65.62, 3, "Precast Panel"},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(sheet, cell, v)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx fixture: %v", err)
	}
	f.Close()

	result := ImportExcel(path, model.DefaultRateBook())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Buildings) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(result.Buildings))
	}
	if result.Buildings[0].Params.ExteriorType != model.ExteriorMetalPanel {
		t.Errorf("expected Metal Panel, got %q", result.Buildings[0].Params.ExteriorType)
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"), model.DefaultRateBook())
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
