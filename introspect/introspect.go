package introspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/store"
)

type SegmentReport struct {
	Marker       string
	TableID      int
	TableName    string // empty for segments no table owns
	Rows         int
	Malformed    []int    // ordinal positions whose field count is wrong
	DuplicateKey []string // primary keys seen more than once
}

type DanglingKey struct {
	Table string
	Key   string // primary key of the referencing row
	Field string
	Value string
}

type Report struct {
	Segments  []SegmentReport
	Unknown   []string // markers with no table in the registry
	Stray     int      // lines before the first delimiter
	Dangling  []DanglingKey
	NextKeys  map[int]int
	TotalRows int
}

// Healthy reports whether the store has no structural or referential problems.
func (r *Report) Healthy() bool {
	if len(r.Unknown) > 0 || r.Stray > 0 || len(r.Dangling) > 0 {
		return false
	}
	for _, s := range r.Segments {
		if len(s.Malformed) > 0 || len(s.DuplicateKey) > 0 {
			return false
		}
	}
	return true
}

// InspectStore decodes the store once and reports on every segment. It never
// writes to the file.
func InspectStore(registry *schema.Registry, st *store.Store) (*Report, error) {
	lines, err := st.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}

	report := &Report{NextKeys: map[int]int{}}
	keys := map[int]map[string]bool{}
	type ref struct {
		table, key, field, value string
	}
	var refs []ref

	for _, seg := range store.Segments(lines) {
		if seg.Marker == "" {
			report.Stray += seg.Len()
			continue
		}
		if seg.Marker == store.SequenceMarker {
			continue
		}

		id, err := strconv.Atoi(strings.TrimPrefix(seg.Marker, schema.MarkerPrefix))
		model, ok := schema.Model{}, false
		if err == nil {
			model, ok = registry.ByID(id)
		}
		if !ok {
			report.Unknown = append(report.Unknown, seg.Marker)
			continue
		}

		sr := SegmentReport{Marker: seg.Marker, TableID: id, TableName: model.Name, Rows: seg.Len()}
		seen := map[string]bool{}
		for pos, line := range seg.Lines(lines) {
			rec := store.SplitRecord(line)
			if len(rec) != len(model.Fields) {
				sr.Malformed = append(sr.Malformed, pos)
				continue
			}
			if seen[rec[0]] {
				sr.DuplicateKey = append(sr.DuplicateKey, rec[0])
			}
			seen[rec[0]] = true
			for col, f := range model.Fields {
				if f.Key == schema.ForeignKey {
					refs = append(refs, ref{table: model.Name, key: rec[0], field: f.Name, value: rec[col]})
				}
			}
		}
		if existing, dup := keys[id]; dup {
			for k := range seen {
				existing[k] = true
			}
		} else {
			keys[id] = seen
		}
		report.TotalRows += sr.Rows
		report.Segments = append(report.Segments, sr)
	}

	for _, model := range registry.Models() {
		if next, ok := store.NextKey(lines, model.ID); ok {
			report.NextKeys[model.ID] = next
		}
	}

	for _, r := range refs {
		owner, ok := registry.PrimaryOwner(r.field)
		if ok && keys[owner.ID][r.value] {
			continue
		}
		report.Dangling = append(report.Dangling, DanglingKey{Table: r.table, Key: r.key, Field: r.field, Value: r.value})
	}

	return report, nil
}
