// Package store owns the single obfuscated store file. It decodes the whole
// file into lines, locates a table's segment by its delimiter line and
// writes the whole file back. Every call is a full read or a full rewrite;
// there is no journal and no atomic rename, so an interrupted write can
// truncate the file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Alex-H307/cafe-system/cipher"
	"github.com/Alex-H307/cafe-system/schema"
)

const (
	// Separator joins the field values of one record line.
	Separator = ","
	// SequenceMarker opens the segment that holds primary-key high-water marks.
	SequenceMarker = schema.MarkerPrefix + "seq"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Ensure creates an empty store file if none exists.
func (s *Store) Ensure() error {
	f, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("create store %s: %w", s.path, err)
	}
	return f.Close()
}

// LoadAll reads and decodes the whole file. A missing file is created empty.
// An empty file yields no lines.
func (s *Store) LoadAll() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	plain, err := cipher.Decrypt(string(data))
	if err != nil {
		return nil, fmt.Errorf("decode store %s: %w", s.path, err)
	}
	return strings.Split(plain, "\n"), nil
}

// PersistAll encodes lines and overwrites the file. Encoding happens first,
// so a line the cipher cannot represent leaves the file untouched.
func (s *Store) PersistAll(lines []string) error {
	encoded, err := cipher.Encrypt(strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(encoded), 0644); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}

// Segment is a half-open run of record lines [Start, End) inside the decoded
// file. Marker is the index of the delimiter line, or -1 when the segment has
// not been created yet; Start and End then both point at end of file.
type Segment struct {
	Marker int
	Start  int
	End    int
}

func (seg Segment) Found() bool {
	return seg.Marker >= 0
}

func (seg Segment) Len() int {
	return seg.End - seg.Start
}

// Lines returns the record lines of seg. The slice aliases lines.
func (seg Segment) Lines(lines []string) []string {
	return lines[seg.Start:seg.End]
}

// LocateSegment finds the segment opened by marker. Marker lines match
// exactly; any delimiter line ends the segment.
func LocateSegment(lines []string, marker string) Segment {
	for i, line := range lines {
		if line != marker {
			continue
		}
		end := i + 1
		for end < len(lines) && !schema.IsMarker(lines[end]) {
			end++
		}
		return Segment{Marker: i, Start: i + 1, End: end}
	}
	return Segment{Marker: -1, Start: len(lines), End: len(lines)}
}

// Append adds line at the end of marker's segment, creating the segment at
// end of file if it does not exist.
func Append(lines []string, marker, line string) []string {
	seg := LocateSegment(lines, marker)
	if !seg.Found() {
		return append(lines, marker, line)
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:seg.End]...)
	out = append(out, line)
	return append(out, lines[seg.End:]...)
}

// Replace swaps the line at absolute index i.
func Replace(lines []string, i int, line string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	out[i] = line
	return out
}

// Remove drops the line at absolute index i.
func Remove(lines []string, i int) []string {
	out := make([]string, 0, len(lines)-1)
	out = append(out, lines[:i]...)
	return append(out, lines[i+1:]...)
}

// SplitRecord splits a record line into its field values.
func SplitRecord(line string) []string {
	return strings.Split(line, Separator)
}

func JoinRecord(values []string) string {
	return strings.Join(values, Separator)
}

// Marked is one delimiter line and the extent of its segment.
type Marked struct {
	Marker string
	Segment
}

// Segments lists every segment in file order, plus any lines that precede the
// first delimiter as a segment with an empty marker.
func Segments(lines []string) []Marked {
	var out []Marked
	i := 0
	for i < len(lines) && !schema.IsMarker(lines[i]) {
		i++
	}
	if i > 0 {
		out = append(out, Marked{Segment: Segment{Marker: -1, Start: 0, End: i}})
	}
	for i < len(lines) {
		start := i + 1
		end := start
		for end < len(lines) && !schema.IsMarker(lines[end]) {
			end++
		}
		out = append(out, Marked{Marker: lines[i], Segment: Segment{Marker: i, Start: start, End: end}})
		i = end
	}
	return out
}
