package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// MarkerPrefix starts every delimiter line in the store.
const MarkerPrefix = "#~"

type KeyRole string

const (
	NoKey      KeyRole = ""
	PrimaryKey KeyRole = "primary"
	ForeignKey KeyRole = "foreign"
)

type ValueType string

const (
	Integer ValueType = "int"
	Float   ValueType = "float"
	Text    ValueType = "text"
	Boolean ValueType = "bool"
)

type CheckKind string

const (
	FormatCheck CheckKind = "format"
	RangeCheck  CheckKind = "range"
)

// Check is an extra validation rule attached to a field, e.g. format:email or range:168.
type Check struct {
	Kind CheckKind
	Arg  string
}

type Field struct {
	Name      string
	Key       KeyRole
	Type      ValueType
	MaxLength int // 0 means unbounded
	Default   *string
	Check     *Check
	Required  bool
}

// Model is one fixed table definition. Fields[0] is always the primary key.
type Model struct {
	ID     int
	Name   string
	Fields []Field
}

// Marker returns the delimiter line that opens this model's segment.
func (m Model) Marker() string {
	return MarkerPrefix + strconv.Itoa(m.ID)
}

// Primary returns the primary-key field.
func (m Model) Primary() Field {
	return m.Fields[0]
}

func (m Model) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

// FieldIndex returns the column of the named field.
func (m Model) FieldIndex(name string) (int, bool) {
	for i, f := range m.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Compare returns the declared comparator for a column.
func (m Model) Compare(column int) Comparator {
	if column < 0 || column >= len(m.Fields) {
		return CompareText
	}
	return ComparatorFor(m.Fields[column].Type)
}

func (m Model) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, strings.Join(m.FieldNames(), ", "))
}

// Dependency is a foreign field in Model that references another model's primary key.
type Dependency struct {
	Model  Model
	Column int
}
