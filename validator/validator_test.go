package validator

import (
	"testing"

	"github.com/Alex-H307/cafe-system/loader"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasType(errs []ValidationError, typ string) bool {
	for _, e := range errs {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestValidateDefaultCatalog(t *testing.T) {
	models, err := loader.LoadDefaultModels()
	require.NoError(t, err)

	result := ValidateModels(models)
	assert.True(t, result.Valid, "%+v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.True(t, hasType(result.Info, "foreign_key"))
}

func TestValidateModelsReportsEverything(t *testing.T) {
	id := schema.Field{Name: "id", Key: schema.PrimaryKey, Type: schema.Integer}
	models := []schema.Model{
		{ID: 0, Name: "A", Fields: []schema.Field{
			id,
			{Name: "b", Type: schema.Text},
			{Name: "b", Type: schema.Text},
			{Name: "ref", Key: schema.ForeignKey, Type: schema.Integer},
			{Name: "c", Type: schema.Text, MaxLength: 5, Check: &schema.Check{Kind: schema.FormatCheck, Arg: "postcode"}},
			{Name: "d", Type: schema.Integer, Default: strPtr("x")},
		}},
		{ID: 0, Name: "B;", Fields: []schema.Field{id}},
		{ID: 2, Name: "C"},
	}

	result := ValidateModels(models)
	assert.False(t, result.Valid)
	for _, typ := range []string{"duplicate_field", "foreign_key", "check", "duplicate_id", "table_name", "duplicate_primary", "no_fields"} {
		assert.True(t, hasType(result.Errors, typ), typ)
	}
	assert.True(t, hasType(result.Warnings, "max_length"))
	assert.True(t, hasType(result.Warnings, "default_value"))
}
