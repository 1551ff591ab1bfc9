// Package table binds one schema model to the store and exposes CRUD and
// lookup operations over the model's segment.
//
// Rows are addressed two ways. Get, Delete and Amend take the primary-key
// value and are the handles callers should hold on to. DeleteAt and AmendAt
// take the ordinal position of a row in the segment as currently persisted;
// that position shifts whenever an earlier row is removed and has no
// relation to the order in which Lookup sorts its snapshot.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/search"
	"github.com/Alex-H307/cafe-system/store"
)

// EmptyListing is the line ListAll emits for a table without rows.
const EmptyListing = "No Records (0)"

// Record is one row: field values aligned with the model's fields.
type Record []string

// Key returns the primary-key value.
func (r Record) Key() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

func (r Record) String() string {
	return strings.Join(r, " ")
}

type Table struct {
	model schema.Model
	store *store.Store
}

func New(model schema.Model, st *store.Store) *Table {
	return &Table{model: model, store: st}
}

func (t *Table) Model() schema.Model {
	return t.model
}

func (t *Table) Name() string {
	return t.model.Name
}

func (t *Table) load() ([]string, store.Segment, error) {
	lines, err := t.store.LoadAll()
	if err != nil {
		return nil, store.Segment{}, err
	}
	return lines, store.LocateSegment(lines, t.model.Marker()), nil
}

func toRecords(lines []string) []Record {
	rows := make([]Record, len(lines))
	for i, line := range lines {
		rows[i] = store.SplitRecord(line)
	}
	return rows
}

// Rows returns every row in persisted order.
func (t *Table) Rows() ([]Record, error) {
	lines, seg, err := t.load()
	if err != nil {
		return nil, err
	}
	return toRecords(seg.Lines(lines)), nil
}

// Len returns the number of rows in the segment.
func (t *Table) Len() (int, error) {
	_, seg, err := t.load()
	if err != nil {
		return 0, err
	}
	return seg.Len(), nil
}

// Create stores a new row. values holds every field except the primary key,
// which is assigned here.
func (t *Table) Create(values []string) (Record, error) {
	if want := len(t.model.Fields) - 1; len(values) != want {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d",
			ErrFieldCountMismatch, t.model.Name, want, len(values))
	}
	for i, v := range values {
		if err := checkValue(t.model.Fields[i+1].Name, v); err != nil {
			return nil, err
		}
	}

	lines, seg, err := t.load()
	if err != nil {
		return nil, err
	}

	next := highestKey(seg.Lines(lines)) + 1
	if stored, ok := store.NextKey(lines, t.model.ID); ok && stored > next {
		next = stored
	}

	rec := make(Record, 0, len(t.model.Fields))
	rec = append(rec, strconv.Itoa(next))
	rec = append(rec, values...)

	lines = store.Append(lines, t.model.Marker(), store.JoinRecord(rec))
	lines = store.SetNextKey(lines, t.model.ID, next+1)
	if err := t.store.PersistAll(lines); err != nil {
		return nil, err
	}
	return rec, nil
}

// highestKey returns the largest parseable primary key, or -1.
func highestKey(lines []string) int {
	highest := -1
	for _, line := range lines {
		key := line
		if i := strings.Index(line, store.Separator); i >= 0 {
			key = line[:i]
		}
		if n, err := strconv.Atoi(key); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// DeleteAt removes the row at an ordinal position in the persisted segment.
func (t *Table) DeleteAt(position int) error {
	lines, seg, err := t.load()
	if err != nil {
		return err
	}
	if position < 0 || position >= seg.Len() {
		return fmt.Errorf("%w: %s has %d rows, got position %d",
			ErrIndexOutOfRange, t.model.Name, seg.Len(), position)
	}
	return t.store.PersistAll(store.Remove(lines, seg.Start+position))
}

// Delete removes the row whose primary key is pk.
func (t *Table) Delete(pk string) error {
	lines, seg, err := t.load()
	if err != nil {
		return err
	}
	i, ok := indexOfKey(seg.Lines(lines), pk)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrRowNotFound, t.model.Name, pk)
	}
	return t.store.PersistAll(store.Remove(lines, seg.Start+i))
}

// AmendAt replaces one field of the row at an ordinal position.
func (t *Table) AmendAt(position int, field, value string) error {
	lines, seg, err := t.load()
	if err != nil {
		return err
	}
	if position < 0 || position >= seg.Len() {
		return fmt.Errorf("%w: %s has %d rows, got position %d",
			ErrIndexOutOfRange, t.model.Name, seg.Len(), position)
	}
	return t.amend(lines, seg.Start+position, field, value)
}

// Amend replaces one field of the row whose primary key is pk.
func (t *Table) Amend(pk, field, value string) error {
	lines, seg, err := t.load()
	if err != nil {
		return err
	}
	i, ok := indexOfKey(seg.Lines(lines), pk)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrRowNotFound, t.model.Name, pk)
	}
	return t.amend(lines, seg.Start+i, field, value)
}

func (t *Table) amend(lines []string, at int, field, value string) error {
	column, ok := t.model.FieldIndex(field)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, t.model.Name, field)
	}
	if column == 0 {
		return fmt.Errorf("%w: %s.%s", ErrImmutableField, t.model.Name, field)
	}
	if err := checkValue(field, value); err != nil {
		return err
	}

	rec := store.SplitRecord(lines[at])
	if column >= len(rec) {
		return fmt.Errorf("%w: stored row %q has %d fields", ErrFieldCountMismatch, rec[0], len(rec))
	}
	rec[column] = value
	return t.store.PersistAll(store.Replace(lines, at, store.JoinRecord(rec)))
}

// Get returns the row whose primary key is pk.
func (t *Table) Get(pk string) (Record, bool, error) {
	lines, seg, err := t.load()
	if err != nil {
		return nil, false, err
	}
	rows := seg.Lines(lines)
	i, ok := indexOfKey(rows, pk)
	if !ok {
		return nil, false, nil
	}
	return store.SplitRecord(rows[i]), true, nil
}

// ExistsWhere reports whether any row holds value at column.
func (t *Table) ExistsWhere(value string, column int) (bool, error) {
	rows, err := t.Where(column, value)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Where returns every row holding value at column, in persisted order.
func (t *Table) Where(column int, value string) ([]Record, error) {
	if column < 0 || column >= len(t.model.Fields) {
		return nil, fmt.Errorf("%w: %s has %d fields, got column %d",
			ErrIndexOutOfRange, t.model.Name, len(t.model.Fields), column)
	}
	rows, err := t.Rows()
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, r := range rows {
		if column < len(r) && r[column] == value {
			out = append(out, r)
		}
	}
	return out, nil
}

// Lookup sorts a snapshot of the rows by field and binary-searches it using
// the field's declared comparator. A miss returns false and no error. The
// matched row carries its primary key; its position in the snapshot is not
// a valid argument to DeleteAt or AmendAt.
func (t *Table) Lookup(field, value string) (Record, bool, error) {
	column, ok := t.model.FieldIndex(field)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, t.model.Name, field)
	}
	rows, err := t.Rows()
	if err != nil {
		return nil, false, err
	}
	snapshot := make([][]string, len(rows))
	for i, r := range rows {
		snapshot[i] = r
	}
	found, ok := search.Lookup(snapshot, column, value, t.model.Compare(column))
	if !ok {
		return nil, false, nil
	}
	return Record(found), true, nil
}

// ListAll renders the field names followed by every row in persisted order.
func (t *Table) ListAll() ([]string, error) {
	rows, err := t.Rows()
	if err != nil {
		return nil, err
	}
	out := []string{strings.Join(t.model.FieldNames(), " ")}
	if len(rows) == 0 {
		return append(out, EmptyListing), nil
	}
	for _, r := range rows {
		out = append(out, r.String())
	}
	return out, nil
}

func indexOfKey(lines []string, pk string) (int, bool) {
	pk = normalizeKey(pk)
	for i, line := range lines {
		key := line
		if j := strings.Index(line, store.Separator); j >= 0 {
			key = line[:j]
		}
		if key == pk {
			return i, true
		}
	}
	return -1, false
}

func normalizeKey(pk string) string {
	pk = strings.TrimSpace(pk)
	if n, err := strconv.Atoi(pk); err == nil && n >= 0 {
		return strconv.Itoa(n)
	}
	return pk
}

// checkValue rejects values that would break the line format: the field
// separator is not escaped, and a line break would end the record.
func checkValue(field, value string) error {
	if strings.Contains(value, store.Separator) {
		return fmt.Errorf("%w: %s contains the field separator %q", ErrInvalidValue, field, store.Separator)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: %s contains a line break", ErrInvalidValue, field)
	}
	return nil
}
