package ui

import (
	"log"

	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/jaj-pcl/MassPlan/internal/registry"
)

const defaultMaxDepth = 50

// Snapshot captures the full building registry state at a point in time.
type Snapshot struct {
	Buildings  []*model.Building
	SelectedID int
	Label      string // Human-readable description (e.g. "Delete Building")
}

// History manages undo/redo stacks of registry snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MakeSnapshot deep-copies the registry's buildings and selection.
// Derived metrics and thumbnails are not carried; restoring recomputes them.
func MakeSnapshot(reg *registry.Registry, label string) Snapshot {
	var buildings []*model.Building
	for _, b := range reg.List() {
		buildings = append(buildings, &model.Building{
			ID:       b.ID,
			Name:     b.Name,
			Position: b.Position,
			Params:   b.Params.Clone(),
		})
	}
	return Snapshot{
		Buildings:  buildings,
		SelectedID: reg.SelectedID(),
		Label:      label,
	}
}

// RestoreSnapshot replaces the registry contents with the snapshot's state.
// The snapshot's buildings are copied again so the stored snapshot stays
// untouched by later edits.
func RestoreSnapshot(reg *registry.Registry, s Snapshot) {
	var buildings []*model.Building
	for _, b := range s.Buildings {
		buildings = append(buildings, &model.Building{
			ID:       b.ID,
			Name:     b.Name,
			Position: b.Position,
			Params:   b.Params.Clone(),
		})
	}
	reg.Restore(buildings)
	if s.SelectedID != 0 {
		// Restore may have skipped the snapshot's selection if its
		// parameters failed validation; keep Restore's fallback choice.
		if _, err := reg.Select(s.SelectedID); err != nil {
			log.Printf("restore snapshot selection %d: %v", s.SelectedID, err)
		}
	}
}
