package introspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(t *testing.T) *schema.Registry {
	t.Helper()
	r, err := schema.NewRegistry([]schema.Model{
		{ID: 0, Name: "Customers", Fields: []schema.Field{
			{Name: "customerID", Key: schema.PrimaryKey, Type: schema.Integer},
			{Name: "name", Type: schema.Text},
		}},
		{ID: 1, Name: "Orders", Fields: []schema.Field{
			{Name: "orderID", Key: schema.PrimaryKey, Type: schema.Integer},
			{Name: "customerID", Key: schema.ForeignKey, Type: schema.Integer},
		}},
	})
	require.NoError(t, err)
	return r
}

func TestInspectHealthyStore(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "db.txt"))
	require.NoError(t, st.PersistAll([]string{
		"#~0", "0,Ada", "1,Grace",
		"#~1", "0,1",
		store.SequenceMarker, "0,2", "1,1",
	}))

	report, err := InspectStore(registry(t), st)
	require.NoError(t, err)
	assert.True(t, report.Healthy())
	assert.Equal(t, 3, report.TotalRows)
	require.Len(t, report.Segments, 2)
	assert.Equal(t, "Customers", report.Segments[0].TableName)
	assert.Equal(t, 2, report.Segments[0].Rows)
	assert.Equal(t, map[int]int{0: 2, 1: 1}, report.NextKeys)
}

func TestInspectFindsProblems(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "db.txt"))
	require.NoError(t, st.PersistAll([]string{
		"stray",
		"#~0", "0,Ada", "0,Ada again", "1",
		"#~1", "0,7",
		"#~9", "0,x",
	}))
	before, err := os.ReadFile(st.Path())
	require.NoError(t, err)

	report, err := InspectStore(registry(t), st)
	require.NoError(t, err)
	assert.False(t, report.Healthy())
	assert.Equal(t, 1, report.Stray)
	assert.Equal(t, []string{"#~9"}, report.Unknown)

	customers := report.Segments[0]
	assert.Equal(t, []int{2}, customers.Malformed)
	assert.Equal(t, []string{"0"}, customers.DuplicateKey)

	require.Len(t, report.Dangling, 1)
	assert.Equal(t, DanglingKey{Table: "Orders", Key: "0", Field: "customerID", Value: "7"}, report.Dangling[0])

	after, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInspectEmptyStore(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "db.txt"))
	report, err := InspectStore(registry(t), st)
	require.NoError(t, err)
	assert.True(t, report.Healthy())
	assert.Zero(t, report.TotalRows)
}
