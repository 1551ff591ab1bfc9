// Package integrity enforces foreign keys across tables. A foreign field
// references the table in which a field of the same name is the primary key.
// Values are checked before a create or amend is committed; afterwards they
// are kept valid only by cascading deletes, which always need confirmation.
package integrity

import (
	"errors"
	"fmt"

	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/store"
	"github.com/Alex-H307/cafe-system/table"
)

var (
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCascadeDeclined     = errors.New("cascading delete not confirmed")
	ErrNoPrimaryOwner      = errors.New("field is not a primary key anywhere")
)

// ForeignKeyError names the offending field and value.
type ForeignKeyError struct {
	Field string
	Value string
	Table string // table where Field is the primary key
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("%v: %s %q does not exist in %s", ErrForeignKeyViolation, e.Field, e.Value, e.Table)
}

func (e *ForeignKeyError) Unwrap() error {
	return ErrForeignKeyViolation
}

// Dependent is a row that references, directly or through other dependents,
// the row being deleted.
type Dependent struct {
	Table  string
	Record table.Record
	// Depth is 1 for rows referencing the deleted row directly.
	Depth int
}

// ConfirmFunc is asked once per cascading delete with the full dependent set.
type ConfirmFunc func(dependents []Dependent) bool

type Checker struct {
	registry *schema.Registry
	store    *store.Store
}

func New(registry *schema.Registry, st *store.Store) *Checker {
	return &Checker{registry: registry, store: st}
}

// Table opens a table on the checker's store.
func (c *Checker) Table(model schema.Model) *table.Table {
	return table.New(model, c.store)
}

// ForeignKeyExists reports whether value is a primary key in the table where
// field is declared primary.
func (c *Checker) ForeignKeyExists(value, field string) (bool, error) {
	owner, ok := c.registry.PrimaryOwner(field)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNoPrimaryOwner, field)
	}
	return c.Table(owner).ExistsWhere(value, 0)
}

// CheckForeignKeys verifies every foreign field of a full record.
func (c *Checker) CheckForeignKeys(model schema.Model, rec table.Record) error {
	for col, f := range model.Fields {
		if f.Key != schema.ForeignKey || col >= len(rec) {
			continue
		}
		if err := c.CheckField(f.Name, rec[col]); err != nil {
			return err
		}
	}
	return nil
}

// CheckField verifies one foreign field value without writing anything.
func (c *Checker) CheckField(field, value string) error {
	ok, err := c.ForeignKeyExists(value, field)
	if err != nil {
		return err
	}
	if !ok {
		owner, _ := c.registry.PrimaryOwner(field)
		return &ForeignKeyError{Field: field, Value: value, Table: owner.Name}
	}
	return nil
}

// Create checks the foreign fields of values and then creates the row.
func (c *Checker) Create(model schema.Model, values []string) (table.Record, error) {
	if len(values) == len(model.Fields)-1 {
		if err := c.CheckForeignKeys(model, append(table.Record{""}, values...)); err != nil {
			return nil, err
		}
	}
	return c.Table(model).Create(values)
}

// Amend checks value when field is foreign and then amends the row.
func (c *Checker) Amend(model schema.Model, pk, field, value string) error {
	if col, ok := model.FieldIndex(field); ok && model.Fields[col].Key == schema.ForeignKey {
		if err := c.CheckField(field, value); err != nil {
			return err
		}
	}
	return c.Table(model).Amend(pk, field, value)
}

// FindDependents returns every row that would have to go with the row pk of
// model, following the dependency graph transitively. Rows are listed in
// discovery order, nearest first.
func (c *Checker) FindDependents(model schema.Model, pk string) ([]Dependent, error) {
	type node struct {
		model schema.Model
		key   string
		depth int
	}

	visited := map[string]bool{visitKey(model.ID, pk): true}
	queue := []node{{model: model, key: pk}}
	var out []Dependent

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, dep := range c.registry.Dependents(n.model.ID) {
			rows, err := c.Table(dep.Model).Where(dep.Column, n.key)
			if err != nil {
				return nil, fmt.Errorf("scan %s for %s %s: %w", dep.Model.Name, n.model.Primary().Name, n.key, err)
			}
			for _, r := range rows {
				k := visitKey(dep.Model.ID, r.Key())
				if visited[k] {
					continue
				}
				visited[k] = true
				out = append(out, Dependent{Table: dep.Model.Name, Record: r, Depth: n.depth + 1})
				queue = append(queue, node{model: dep.Model, key: r.Key(), depth: n.depth + 1})
			}
		}
	}
	return out, nil
}

// Delete removes row pk of model along with its dependents. When dependents
// exist, confirm decides; a nil confirm or a refusal deletes nothing and
// returns ErrCascadeDeclined. Dependents are removed deepest first, the row
// itself last. The returned slice lists the dependents that were found.
func (c *Checker) Delete(model schema.Model, pk string, confirm ConfirmFunc) ([]Dependent, error) {
	t := c.Table(model)
	rec, ok, err := t.Get(pk)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", table.ErrRowNotFound, model.Name, pk)
	}
	pk = rec.Key()

	deps, err := c.FindDependents(model, pk)
	if err != nil {
		return nil, err
	}
	if len(deps) > 0 && (confirm == nil || !confirm(deps)) {
		return deps, ErrCascadeDeclined
	}

	for i := len(deps) - 1; i >= 0; i-- {
		dm, ok := c.registry.ByName(deps[i].Table)
		if !ok {
			return deps, fmt.Errorf("%w: %q", schema.ErrUnknownTable, deps[i].Table)
		}
		if err := c.Table(dm).Delete(deps[i].Record.Key()); err != nil {
			return deps, fmt.Errorf("delete dependent %s %s: %w", dm.Name, deps[i].Record.Key(), err)
		}
	}
	if err := t.Delete(pk); err != nil {
		return deps, err
	}
	return deps, nil
}

func visitKey(id int, pk string) string {
	return fmt.Sprintf("%d/%s", id, pk)
}
