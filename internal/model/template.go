package model

import (
	"time"

	"github.com/google/uuid"
)

// BuildingTemplate represents a reusable building configuration used as a
// starting point when creating new buildings.
type BuildingTemplate struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
	Params      BuildingParameters `json:"params"`
}

// NewBuildingTemplate creates a new template from the given parameters.
// The parameters are deep-copied so later edits don't leak into the template.
func NewBuildingTemplate(name, description string, params BuildingParameters) BuildingTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return BuildingTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Params:      params.Clone(),
	}
}

// ToParameters returns an independent copy of the template's parameters.
func (t BuildingTemplate) ToParameters() BuildingParameters {
	p := t.Params.Clone()
	p.Normalize()
	return p
}

// TemplateStore holds a collection of building templates.
type TemplateStore struct {
	Templates []BuildingTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []BuildingTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t BuildingTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *BuildingTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name,
// or nil.
func (ts *TemplateStore) FindByName(name string) *BuildingTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
