// Package registry manages the collection of buildings: creation, selection,
// deletion, resizing, and the parameter-change command interface. It owns the
// 0-or-1 selection invariant and the monotonic id counter, and keeps the
// selected building's derived metrics fresh.
package registry

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jaj-pcl/MassPlan/internal/engine"
	"github.com/jaj-pcl/MassPlan/internal/model"
)

// ErrNotFound reports an operation on a building id absent from the registry.
var ErrNotFound = errors.New("building not found")

// SceneRenderer is the rendering collaborator. DrawBuilding returns the PNG
// snapshot used as the building's thumbnail; ReleaseBuilding frees whatever
// the renderer holds for a deleted building. Both may fail without affecting
// registry state.
type SceneRenderer interface {
	DrawBuilding(b *model.Building, solids []model.FloorSolid, roof *model.RoofSolid, finish model.ExteriorFinish) ([]byte, error)
	ReleaseBuilding(id int) error
}

// Registry is the ordered building collection. Every method takes the mutex,
// so each command is atomic with respect to a building's derived state; a
// reentrant mutation cannot interleave with a recompute for the same
// building.
type Registry struct {
	mu         sync.Mutex
	buildings  map[int]*model.Building
	order      []int // insertion order of live ids
	nextID     int   // monotonic, never reused after deletes
	selectedID int   // 0 = no selection
	rates      model.RateBook
	scene      SceneRenderer
}

// New creates an empty registry estimating against the given rate book.
func New(rates model.RateBook) *Registry {
	return &Registry{
		buildings: make(map[int]*model.Building),
		nextID:    1,
		rates:     rates,
	}
}

// SetScene attaches the rendering collaborator. May be nil (headless use).
func (r *Registry) SetScene(scene SceneRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scene = scene
}

// Rates returns the rate book the registry estimates with.
func (r *Registry) Rates() model.RateBook {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rates
}

// SetRates swaps the rate book and refreshes the selected building.
func (r *Registry) SetRates(rates model.RateBook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = rates
	if b, ok := r.buildings[r.selectedID]; ok {
		if err := r.recomputeLocked(b); err != nil {
			log.Printf("recompute building %d after rate change: %v", b.ID, err)
		}
	}
}

// Create adds a building with the given name and parameters, places it on
// the site grid, selects it, and computes its metrics. Parameters are
// normalized (numeric clamps) first; enum or exterior-type errors reject the
// creation.
func (r *Registry) Create(name string, params model.BuildingParameters) (*model.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	params.Normalize()
	if err := params.Validate(r.rates); err != nil {
		return nil, fmt.Errorf("create building: %w", err)
	}

	id := r.nextID
	r.nextID++
	if name == "" {
		name = fmt.Sprintf("Building %d", id)
	}

	b := &model.Building{
		ID:       id,
		Name:     name,
		Position: gridPosition(id),
		Params:   params,
	}
	r.buildings[id] = b
	r.order = append(r.order, id)
	r.selectedID = id

	if err := r.recomputeLocked(b); err != nil {
		// Validate covered the finish lookup, so this is unreachable in
		// practice, but a failed compute must not leave a half-built entry.
		delete(r.buildings, id)
		r.order = r.order[:len(r.order)-1]
		r.selectedID = 0
		if len(r.order) > 0 {
			r.selectedID = r.order[0]
		}
		return nil, err
	}
	return b, nil
}

// CreateDefault adds a building with the default parameter set.
func (r *Registry) CreateDefault() (*model.Building, error) {
	return r.Create("", model.DefaultParameters())
}

// gridPosition lays buildings out on a fixed grid, BuildingsPerRow per row.
// Placement derives from the monotonic id, so deletes never cause later
// buildings to land on top of survivors.
func gridPosition(id int) model.Position {
	col := (id - 1) % model.BuildingsPerRow
	row := (id - 1) / model.BuildingsPerRow
	return model.Position{
		X: float64(col) * model.BuildingSpacing,
		Z: float64(row) * model.BuildingSpacing,
	}
}

// Select makes the building with the given id the selection and recomputes
// its metrics. Siblings are not recomputed: metrics are only guaranteed
// fresh for the selected building.
func (r *Registry) Select(id int) (*model.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buildings[id]
	if !ok {
		return nil, fmt.Errorf("select %d: %w", id, ErrNotFound)
	}
	r.selectedID = id
	if err := r.recomputeLocked(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a building and releases its scene resources. The first
// remaining building (in insertion order) becomes the selection, or the
// selection clears when the registry empties. Deleting a non-selected
// building keeps the current selection.
func (r *Registry) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buildings[id]; !ok {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	delete(r.buildings, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.scene != nil {
		if err := r.scene.ReleaseBuilding(id); err != nil {
			log.Printf("release scene resources for building %d: %v", id, err)
		}
	}

	if r.selectedID != id {
		return nil
	}
	r.selectedID = 0
	if len(r.order) > 0 {
		r.selectedID = r.order[0]
		if err := r.recomputeLocked(r.buildings[r.selectedID]); err != nil {
			log.Printf("recompute building %d after delete: %v", r.selectedID, err)
		}
	}
	return nil
}

// Resize changes a building's floor count, clamped to [0, MaxFloors]. Growth
// appends default floors at the current typical height; shrinking truncates,
// discarding the removed floors' overrides irrecoverably.
func (r *Registry) Resize(id, numFloors int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buildings[id]
	if !ok {
		return fmt.Errorf("resize %d: %w", id, ErrNotFound)
	}
	b.Params.NumFloors = numFloors
	b.Params.EnsureFloorDetails()
	return r.recomputeLocked(b)
}

// Get returns the building with the given id.
func (r *Registry) Get(id int) (*model.Building, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buildings[id]
	return b, ok
}

// Selected returns the selected building, if any.
func (r *Registry) Selected() (*model.Building, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buildings[r.selectedID]
	return b, ok
}

// SelectedID returns the selected building's id, or 0 when none.
func (r *Registry) SelectedID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selectedID
}

// List returns the live buildings in insertion order.
func (r *Registry) List() []*model.Building {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Building, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.buildings[id])
	}
	return out
}

// Len returns the number of live buildings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buildings)
}

// LayoutWarnings reports site-grid overlaps between the live buildings.
func (r *Registry) LayoutWarnings() []string {
	return engine.CheckLayout(r.List())
}

// Restore replaces the registry contents with loaded buildings, typically
// after deserializing a project file. The id counter resumes past the
// highest restored id, the first building becomes the selection, and every
// building's metrics are recomputed so batch consumers (listings, label
// sheets) never see stale zeros. Buildings with invalid parameters are
// skipped with a log line rather than failing the whole load.
func (r *Registry) Restore(buildings []*model.Building) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buildings = make(map[int]*model.Building)
	r.order = nil
	r.selectedID = 0
	maxID := 0

	for _, b := range buildings {
		if b == nil {
			continue
		}
		b.Params.Normalize()
		if err := b.Params.Validate(r.rates); err != nil {
			log.Printf("skipping building %d %q on load: %v", b.ID, b.Name, err)
			continue
		}
		r.buildings[b.ID] = b
		r.order = append(r.order, b.ID)
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	r.nextID = maxID + 1

	for _, id := range r.order {
		if err := r.recomputeLocked(r.buildings[id]); err != nil {
			log.Printf("recompute building %d after load: %v", id, err)
		}
	}
	if len(r.order) > 0 {
		r.selectedID = r.order[0]
	}
}

// recomputeLocked rebuilds the building's metrics and redraws it. Callers
// hold the mutex.
func (r *Registry) recomputeLocked(b *model.Building) error {
	metrics, err := engine.ComputeMetrics(b.Params, r.rates)
	if err != nil {
		return fmt.Errorf("compute metrics for building %d: %w", b.ID, err)
	}
	b.Metrics = metrics
	r.redrawLocked(b)
	return nil
}

// redrawLocked hands the building to the scene renderer and stores the
// returned snapshot. Draw failures are logged and clear the thumbnail,
// never fatal.
func (r *Registry) redrawLocked(b *model.Building) {
	if r.scene == nil {
		return
	}
	finish, err := r.rates.FinishFor(b.Params.ExteriorType)
	if err != nil {
		log.Printf("redraw building %d: %v", b.ID, err)
		b.Thumbnail = nil
		return
	}
	solids, roof := engine.BuildSolids(b.Params, b.Metrics.Floors)
	snapshot, err := r.scene.DrawBuilding(b, solids, roof, finish)
	if err != nil {
		log.Printf("redraw building %d: %v", b.ID, err)
		b.Thumbnail = nil
		return
	}
	b.Thumbnail = snapshot
}
