package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alex-H307/cafe-system/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultRegistry(t *testing.T) {
	r, err := LoadDefaultRegistry()
	require.NoError(t, err)

	want := []string{
		"Staff Details", "Account Details", "Computer Reservations", "Computer Status",
		"Repair Reservations", "Stocks", "Customer Details", "Transaction History",
	}
	models := r.Models()
	require.Len(t, models, len(want))
	for i, m := range models {
		assert.Equal(t, i, m.ID)
		assert.Equal(t, want[i], m.Name)
	}

	staff, _ := r.ByName("Staff Details")
	assert.Len(t, staff.Fields, 9)
	salary := staff.Fields[8]
	require.NotNil(t, salary.Check)
	assert.Equal(t, schema.RangeCheck, salary.Check.Kind)
	assert.Equal(t, "99999", salary.Check.Arg)

	account, _ := r.ByName("Account Details")
	require.NotNil(t, account.Fields[3].Default)
	assert.Equal(t, "Password", *account.Fields[3].Default)

	status, _ := r.ByName("Computer Status")
	require.NotNil(t, status.Fields[1].Default)
	assert.Equal(t, "0", *status.Fields[1].Default)
	assert.False(t, status.Fields[4].Required)

	customers, _ := r.ByName("Customer Details")
	deps := r.Dependents(customers.ID)
	names := []string{}
	for _, d := range deps {
		names = append(names, d.Model.Name)
	}
	assert.ElementsMatch(t, []string{"Computer Reservations", "Repair Reservations"}, names)
}

func TestLoadRegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := `tables:
  - id: 0
    name: Pets
    fields:
      - {name: petID, key: primary, type: int, required: true}
      - {name: name, type: text, max_length: 10, check: {format: name}}
      - {name: weight, type: float, check: {range: 80.5}}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	pets, ok := r.ByName("Pets")
	require.True(t, ok)
	assert.Equal(t, "80.5", pets.Fields[2].Check.Arg)
	assert.Equal(t, schema.FormatCheck, pets.Fields[1].Check.Kind)
}

func TestLoadRegistryEmptyPathUsesDefault(t *testing.T) {
	r, err := LoadRegistry("")
	require.NoError(t, err)
	assert.Len(t, r.Models(), 8)
}

func TestLoadRegistryErrors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadRegistryFromBytes([]byte("tables: [unclosed"))
	assert.Error(t, err)

	_, err = LoadModelsFromBytes([]byte(`tables:
  - id: 0
    name: A
    fields:
      - {name: a, key: primary, type: int, check: {format: name, range: 3}}
`))
	assert.Error(t, err)

	_, err = LoadRegistryFromBytes([]byte(`tables:
  - id: 0
    name: A
    fields:
      - {name: a, type: int}
`))
	assert.ErrorIs(t, err, schema.ErrInvalidSchema)
}
