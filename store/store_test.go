package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alex-H307/cafe-system/cipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "db.txt"))
}

func TestLoadAllCreatesMissingFile(t *testing.T) {
	st := newStore(t)
	lines, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, lines)

	info, err := os.Stat(st.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestPersistAllRoundTrip(t *testing.T) {
	st := newStore(t)
	lines := []string{"#~0", "0,Ada,Lovelace", "#~1"}
	require.NoError(t, st.PersistAll(lines))

	raw, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Lovelace")

	got, err := st.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestPersistAllRejectsUnencodable(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.PersistAll([]string{"#~0", "0,ok"}))
	before, err := os.ReadFile(st.Path())
	require.NoError(t, err)

	err = st.PersistAll([]string{"#~0", "0,50%"})
	assert.ErrorIs(t, err, cipher.ErrUnknownSymbol)

	after, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLocateSegment(t *testing.T) {
	lines := []string{"#~0", "0,a", "1,b", "#~1", "#~10", "0,x"}

	seg := LocateSegment(lines, "#~0")
	assert.True(t, seg.Found())
	assert.Equal(t, Segment{Marker: 0, Start: 1, End: 3}, seg)
	assert.Equal(t, []string{"0,a", "1,b"}, seg.Lines(lines))

	empty := LocateSegment(lines, "#~1")
	assert.True(t, empty.Found())
	assert.Zero(t, empty.Len())

	ten := LocateSegment(lines, "#~10")
	assert.Equal(t, []string{"0,x"}, ten.Lines(lines))

	missing := LocateSegment(lines, "#~7")
	assert.False(t, missing.Found())
	assert.Equal(t, len(lines), missing.Start)
	assert.Zero(t, missing.Len())
}

func TestAppend(t *testing.T) {
	lines := []string{"#~0", "0,a", "#~1", "0,x"}

	got := Append(lines, "#~0", "1,b")
	assert.Equal(t, []string{"#~0", "0,a", "1,b", "#~1", "0,x"}, got)
	assert.Equal(t, []string{"#~0", "0,a", "#~1", "0,x"}, lines, "input must not change")

	got = Append(lines, "#~5", "0,new")
	assert.Equal(t, []string{"#~0", "0,a", "#~1", "0,x", "#~5", "0,new"}, got)
}

func TestReplaceAndRemove(t *testing.T) {
	lines := []string{"#~0", "0,a", "1,b"}

	assert.Equal(t, []string{"#~0", "0,z", "1,b"}, Replace(lines, 1, "0,z"))
	assert.Equal(t, []string{"#~0", "1,b"}, Remove(lines, 1))
	assert.Equal(t, []string{"#~0", "0,a", "1,b"}, lines)
}

func TestSegments(t *testing.T) {
	lines := []string{"junk", "#~0", "0,a", "#~seq", "0,1", "#~3"}
	segs := Segments(lines)
	require.Len(t, segs, 4)

	assert.Equal(t, "", segs[0].Marker)
	assert.Equal(t, 1, segs[0].Len())
	assert.Equal(t, "#~0", segs[1].Marker)
	assert.Equal(t, 1, segs[1].Len())
	assert.Equal(t, SequenceMarker, segs[2].Marker)
	assert.Equal(t, "#~3", segs[3].Marker)
	assert.Zero(t, segs[3].Len())
}

func TestSplitJoinRecord(t *testing.T) {
	assert.Equal(t, []string{"0", "Ada", ""}, SplitRecord("0,Ada,"))
	assert.Equal(t, "0,Ada,", JoinRecord([]string{"0", "Ada", ""}))
}

func TestSequence(t *testing.T) {
	var lines []string
	_, ok := NextKey(lines, 0)
	assert.False(t, ok)

	lines = SetNextKey(lines, 0, 3)
	lines = SetNextKey(lines, 4, 9)
	next, ok := NextKey(lines, 0)
	require.True(t, ok)
	assert.Equal(t, 3, next)

	lines = SetNextKey(lines, 0, 4)
	next, _ = NextKey(lines, 0)
	assert.Equal(t, 4, next)
	next, _ = NextKey(lines, 4)
	assert.Equal(t, 9, next)

	assert.Equal(t, []string{SequenceMarker, "0,4", "4,9"}, lines)
}
