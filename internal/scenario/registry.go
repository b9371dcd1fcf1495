package scenario

import (
	"errors"
	"io/fs"
	"sort"
)

// Registry holds loaded course definitions and provides lookup utilities.
type Registry struct {
	byID map[string]*Def
	all  []Def
}

// NewRegistry creates a registry from loaded course definitions.
func NewRegistry(defs []Def) *Registry {
	registry := &Registry{
		byID: make(map[string]*Def),
		all:  defs,
	}
	for i := range defs {
		registry.byID[defs[i].ID] = &defs[i]
	}
	return registry
}

// LoadRegistry loads and validates every embedded course definition.
func LoadRegistry() (*Registry, error) {
	names, err := fs.Glob(dataFS, "*.json")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("no embedded courses found")
	}
	sort.Strings(names)

	defs := make([]Def, 0, len(names))
	for _, name := range names {
		def, err := Load[Def](name)
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return NewRegistry(defs), nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the course with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *Def {
	return r.byID[id]
}

// All returns all course definitions.
func (r *Registry) All() []Def {
	return r.all
}

// IDs returns the IDs of all courses in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.all))
	for _, d := range r.all {
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of courses in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
