// Package schema resolves field paths against user-defined object types and
// validates runtime values against field definitions.
package schema

import (
	"iter"
	"slices"

	"github.com/dukex/flowlint/pkg/models"
)

// Registry maps object type ids to their schemas. Iteration follows insertion
// order so that rankings built from it are stable.
type Registry struct {
	ids     []string
	schemas map[string]*models.ObjectTypeSchema
}

// NewRegistry returns a registry holding schemas in the given order.
func NewRegistry(schemas ...*models.ObjectTypeSchema) *Registry {
	r := &Registry{
		ids:     make([]string, 0, len(schemas)),
		schemas: make(map[string]*models.ObjectTypeSchema, len(schemas)),
	}

	for _, s := range schemas {
		r.Add(s)
	}

	return r
}

// Add registers s. Re-adding an id replaces the schema but keeps its position.
func (r *Registry) Add(s *models.ObjectTypeSchema) {
	if s == nil {
		return
	}

	if _, exists := r.schemas[s.ID]; !exists {
		r.ids = append(r.ids, s.ID)
	}

	r.schemas[s.ID] = s
}

// Get returns the schema registered under id.
func (r *Registry) Get(id string) (*models.ObjectTypeSchema, bool) {
	if r == nil {
		return nil, false
	}

	s, ok := r.schemas[id]

	return s, ok
}

// Len returns the number of registered schemas. A nil registry is empty.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.ids)
}

// IDs returns the registered ids in insertion order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}

	return slices.Clone(r.ids)
}

// All iterates over the registered schemas in insertion order.
func (r *Registry) All() iter.Seq2[string, *models.ObjectTypeSchema] {
	return func(yield func(string, *models.ObjectTypeSchema) bool) {
		if r == nil {
			return
		}

		for _, id := range r.ids {
			if !yield(id, r.schemas[id]) {
				return
			}
		}
	}
}

// Resolve returns the definition of fieldPath within the object type id.
func (r *Registry) Resolve(objectTypeID, fieldPath string) (*models.FieldDefinition, bool) {
	s, ok := r.Get(objectTypeID)
	if !ok {
		return nil, false
	}

	field := ResolveField(s.Fields, fieldPath, r)

	return field, field != nil
}
