package ui

import (
	"fmt"
	"testing"

	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/jaj-pcl/MassPlan/internal/registry"
)

// ─────────────────────────────────────────────
// History Stack Tests
// ─────────────────────────────────────────────

func TestHistory_EmptyStacks(t *testing.T) {
	h := NewHistory()
	if h.CanUndo() {
		t.Error("new history should not allow undo")
	}
	if h.CanRedo() {
		t.Error("new history should not allow redo")
	}
	if _, ok := h.Undo(Snapshot{}); ok {
		t.Error("Undo on empty stack should return false")
	}
	if _, ok := h.Redo(Snapshot{}); ok {
		t.Error("Redo on empty stack should return false")
	}
}

func TestHistory_PushUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(Snapshot{Label: "first"})
	h.Push(Snapshot{Label: "second"})
	if !h.CanUndo() {
		t.Fatal("expected CanUndo after pushes")
	}

	s, ok := h.Undo(Snapshot{Label: "current"})
	if !ok {
		t.Fatal("Undo failed")
	}
	if s.Label != "second" {
		t.Errorf("Undo returned %q, want %q", s.Label, "second")
	}
	if !h.CanRedo() {
		t.Error("expected CanRedo after undo")
	}

	r, ok := h.Redo(s)
	if !ok {
		t.Fatal("Redo failed")
	}
	if r.Label != "current" {
		t.Errorf("Redo returned %q, want %q", r.Label, "current")
	}
}

func TestHistory_PushClearsRedoStack(t *testing.T) {
	h := NewHistory()
	h.Push(Snapshot{Label: "a"})
	h.Undo(Snapshot{Label: "b"})
	if !h.CanRedo() {
		t.Fatal("expected redo available")
	}

	h.Push(Snapshot{Label: "c"})
	if h.CanRedo() {
		t.Error("Push should clear the redo stack")
	}
}

func TestHistory_DepthCap(t *testing.T) {
	h := NewHistory()
	for i := 0; i < defaultMaxDepth+10; i++ {
		h.Push(Snapshot{Label: fmt.Sprintf("edit %d", i)})
	}
	if got := len(h.undoStack); got != defaultMaxDepth {
		t.Fatalf("undo stack has %d entries, want %d", got, defaultMaxDepth)
	}
	// The oldest entries are the ones evicted.
	if h.undoStack[0].Label != "edit 10" {
		t.Errorf("oldest retained snapshot is %q, want %q", h.undoStack[0].Label, "edit 10")
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	h.Push(Snapshot{Label: "a"})
	h.Undo(Snapshot{Label: "b"})

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}

// ─────────────────────────────────────────────
// Snapshot Round-Trip Tests
// ─────────────────────────────────────────────

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(model.DefaultRateBook())
}

func TestMakeSnapshot_CapturesState(t *testing.T) {
	reg := testRegistry(t)
	a, err := reg.Create("Tower A", model.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Create("Tower B", model.DefaultParameters()); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Select(a.ID); err != nil {
		t.Fatal(err)
	}

	s := MakeSnapshot(reg, "Edit Tower A")
	if len(s.Buildings) != 2 {
		t.Fatalf("snapshot holds %d buildings, want 2", len(s.Buildings))
	}
	if s.SelectedID != a.ID {
		t.Errorf("snapshot SelectedID = %d, want %d", s.SelectedID, a.ID)
	}
	if s.Label != "Edit Tower A" {
		t.Errorf("snapshot Label = %q", s.Label)
	}
}

func TestMakeSnapshot_DeepCopiesParams(t *testing.T) {
	reg := testRegistry(t)
	b, err := reg.Create("Tower", model.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}

	s := MakeSnapshot(reg, "before edit")
	before := s.Buildings[0].Params.NumFloors

	if err := reg.Resize(b.ID, before+3); err != nil {
		t.Fatal(err)
	}
	if s.Buildings[0].Params.NumFloors != before {
		t.Error("snapshot params mutated by a later registry edit")
	}
}

func TestRestoreSnapshot_RoundTrip(t *testing.T) {
	reg := testRegistry(t)
	a, err := reg.Create("Tower A", model.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	b, err := reg.Create("Tower B", model.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Select(a.ID); err != nil {
		t.Fatal(err)
	}
	s := MakeSnapshot(reg, "before delete")

	if err := reg.Delete(b.ID); err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 1 {
		t.Fatalf("registry has %d buildings after delete, want 1", reg.Len())
	}

	RestoreSnapshot(reg, s)
	if reg.Len() != 2 {
		t.Fatalf("registry has %d buildings after restore, want 2", reg.Len())
	}
	if reg.SelectedID() != a.ID {
		t.Errorf("SelectedID = %d after restore, want %d", reg.SelectedID(), a.ID)
	}
	restored, ok := reg.Get(b.ID)
	if !ok {
		t.Fatal("deleted building missing after restore")
	}
	if restored.Name != "Tower B" {
		t.Errorf("restored building named %q, want %q", restored.Name, "Tower B")
	}
	if restored.Metrics.Cost.Total <= 0 {
		t.Error("restore should recompute the cost estimate")
	}
}

func TestRestoreSnapshot_SkippedSelectionFallsBack(t *testing.T) {
	reg := testRegistry(t)

	bad := model.DefaultParameters()
	bad.ExteriorType = "Unobtainium"
	s := Snapshot{
		Buildings: []*model.Building{
			{ID: 1, Name: "Good", Params: model.DefaultParameters()},
			{ID: 2, Name: "Bad", Params: bad},
		},
		SelectedID: 2,
		Label:      "checkpoint",
	}

	RestoreSnapshot(reg, s)
	if reg.Len() != 1 {
		t.Fatalf("registry has %d buildings, want 1 (invalid one skipped)", reg.Len())
	}
	if reg.SelectedID() != 1 {
		t.Errorf("SelectedID = %d, want fallback to 1", reg.SelectedID())
	}
}

func TestRestoreSnapshot_KeepsStoredCopyIntact(t *testing.T) {
	reg := testRegistry(t)
	b, err := reg.Create("Tower", model.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	s := MakeSnapshot(reg, "checkpoint")
	floors := s.Buildings[0].Params.NumFloors

	RestoreSnapshot(reg, s)
	if err := reg.Resize(b.ID, floors+5); err != nil {
		t.Fatal(err)
	}

	if s.Buildings[0].Params.NumFloors != floors {
		t.Error("stored snapshot mutated after restore plus edit")
	}
}
