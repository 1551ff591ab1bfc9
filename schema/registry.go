package schema

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidSchema = errors.New("invalid schema")
	ErrUnknownTable  = errors.New("unknown table")
)

// Registry is the immutable catalog of models, built once at startup.
// Nothing on it mutates after NewRegistry returns; every accessor returns
// copies.
type Registry struct {
	models []Model
	byID   map[int]int
	byName map[string]int

	// primary field name -> index into models
	primaryOwner map[string]int
	// model ID -> foreign fields elsewhere that reference its primary key
	dependents map[int][]Dependency
}

// NewRegistry validates models and precomputes the foreign-key graph.
func NewRegistry(models []Model) (*Registry, error) {
	r := &Registry{
		byID:         make(map[int]int),
		byName:       make(map[string]int),
		primaryOwner: make(map[string]int),
		dependents:   make(map[int][]Dependency),
	}

	sorted := make([]Model, len(models))
	copy(sorted, models)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for i, m := range sorted {
		m = m.clone()
		sorted[i] = m

		if err := checkModel(m); err != nil {
			return nil, err
		}
		if _, dup := r.byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate table id %d", ErrInvalidSchema, m.ID)
		}
		if _, dup := r.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate table name %q", ErrInvalidSchema, m.Name)
		}
		r.byID[m.ID] = i
		r.byName[m.Name] = i

		pk := m.Primary().Name
		if other, dup := r.primaryOwner[pk]; dup {
			return nil, fmt.Errorf("%w: field %q is primary in both %q and %q",
				ErrInvalidSchema, pk, sorted[other].Name, m.Name)
		}
		r.primaryOwner[pk] = i
	}
	r.models = sorted

	for _, m := range r.models {
		for col, f := range m.Fields {
			if f.Key != ForeignKey {
				continue
			}
			owner, ok := r.primaryOwner[f.Name]
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s references no primary key",
					ErrInvalidSchema, m.Name, f.Name)
			}
			target := r.models[owner].ID
			r.dependents[target] = append(r.dependents[target], Dependency{Model: m, Column: col})
		}
	}

	return r, nil
}

func checkModel(m Model) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: table %d has no name", ErrInvalidSchema, m.ID)
	}
	if m.ID < 0 {
		return fmt.Errorf("%w: table %q has negative id", ErrInvalidSchema, m.Name)
	}
	if len(m.Fields) == 0 {
		return fmt.Errorf("%w: table %q has no fields", ErrInvalidSchema, m.Name)
	}
	if m.Fields[0].Key != PrimaryKey {
		return fmt.Errorf("%w: first field of %q must be the primary key", ErrInvalidSchema, m.Name)
	}

	seen := make(map[string]bool, len(m.Fields))
	for i, f := range m.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %q field %d has no name", ErrInvalidSchema, m.Name, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %q declares %q twice", ErrInvalidSchema, m.Name, f.Name)
		}
		seen[f.Name] = true
		if i > 0 && f.Key == PrimaryKey {
			return fmt.Errorf("%w: %q has more than one primary key", ErrInvalidSchema, m.Name)
		}
		switch f.Type {
		case Integer, Float, Text, Boolean:
		default:
			return fmt.Errorf("%w: %s.%s has unknown type %q", ErrInvalidSchema, m.Name, f.Name, f.Type)
		}
		switch f.Key {
		case NoKey, PrimaryKey, ForeignKey:
		default:
			return fmt.Errorf("%w: %s.%s has unknown key role %q", ErrInvalidSchema, m.Name, f.Name, f.Key)
		}
	}
	if m.Fields[0].Type != Integer {
		return fmt.Errorf("%w: primary key of %q must be int", ErrInvalidSchema, m.Name)
	}
	return nil
}

// Models returns the catalog ordered by ID.
func (r *Registry) Models() []Model {
	out := make([]Model, len(r.models))
	for i, m := range r.models {
		out[i] = m.clone()
	}
	return out
}

func (r *Registry) ByID(id int) (Model, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Model{}, false
	}
	return r.models[i].clone(), true
}

func (r *Registry) ByName(name string) (Model, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Model{}, false
	}
	return r.models[i].clone(), true
}

// Resolve accepts a table name or its numeric ID.
func (r *Registry) Resolve(identifier string) (Model, error) {
	if m, ok := r.ByName(identifier); ok {
		return m, nil
	}
	for _, m := range r.models {
		if strings.EqualFold(m.Name, identifier) {
			return m.clone(), nil
		}
	}
	if id, err := strconv.Atoi(identifier); err == nil {
		if m, ok := r.ByID(id); ok {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w: %q", ErrUnknownTable, identifier)
}

// PrimaryOwner returns the model in which the named field is the primary key.
func (r *Registry) PrimaryOwner(field string) (Model, bool) {
	i, ok := r.primaryOwner[field]
	if !ok {
		return Model{}, false
	}
	return r.models[i].clone(), true
}

// Dependents lists the foreign fields that reference the primary key of model id.
func (r *Registry) Dependents(id int) []Dependency {
	deps := r.dependents[id]
	out := make([]Dependency, len(deps))
	for i, d := range deps {
		out[i] = Dependency{Model: d.Model.clone(), Column: d.Column}
	}
	return out
}

// clone copies the field slice and the pointers it holds so a returned model
// cannot reach back into the registry.
func (m Model) clone() Model {
	fields := make([]Field, len(m.Fields))
	for i, f := range m.Fields {
		if f.Default != nil {
			def := *f.Default
			f.Default = &def
		}
		if f.Check != nil {
			check := *f.Check
			f.Check = &check
		}
		fields[i] = f
	}
	m.Fields = fields
	return m
}

// IsMarker reports whether a store line is a delimiter line.
func IsMarker(line string) bool {
	return strings.HasPrefix(line, MarkerPrefix)
}
