package model

import "testing"

func TestNewBuildingTemplateCopiesParams(t *testing.T) {
	p := DefaultParameters()
	p.FloorDetails[0].SetComplexity(SourceCustom, 12)

	tpl := NewBuildingTemplate("Office Block", "Three storey box", p)
	if tpl.ID == "" {
		t.Error("expected generated ID")
	}
	if tpl.CreatedAt == "" || tpl.UpdatedAt == "" {
		t.Error("expected timestamps set")
	}

	// Mutating the source must not change the template.
	p.FloorDetails[0].SetComplexity(SourceCustom, 77)
	if *tpl.Params.FloorDetails[0].ComplexityFactor != 12 {
		t.Errorf("template factor changed to %.1f", *tpl.Params.FloorDetails[0].ComplexityFactor)
	}
}

func TestTemplateToParametersIsIndependent(t *testing.T) {
	tpl := NewBuildingTemplate("Tower", "", DefaultParameters())
	p := tpl.ToParameters()
	p.BuildingLength = 500
	p.FloorDetails[0].Height = 20

	if tpl.Params.BuildingLength == 500 {
		t.Error("parameter mutation leaked into template")
	}
	if tpl.Params.FloorDetails[0].Height == 20 {
		t.Error("floor mutation leaked into template")
	}
}

func TestTemplateStoreAddRemoveFind(t *testing.T) {
	ts := NewTemplateStore()
	a := NewBuildingTemplate("A", "", DefaultParameters())
	b := NewBuildingTemplate("B", "", DefaultParameters())
	ts.Add(a)
	ts.Add(b)

	if len(ts.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(ts.Templates))
	}
	if found := ts.FindByID(a.ID); found == nil || found.Name != "A" {
		t.Error("FindByID did not return template A")
	}
	if found := ts.FindByName("B"); found == nil || found.ID != b.ID {
		t.Error("FindByName did not return template B")
	}

	names := ts.Names()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected names %v", names)
	}

	if !ts.Remove(a.ID) {
		t.Error("expected removal of template A")
	}
	if ts.Remove("missing") {
		t.Error("expected false for missing ID")
	}
	if len(ts.Templates) != 1 {
		t.Errorf("expected 1 template left, got %d", len(ts.Templates))
	}
}
