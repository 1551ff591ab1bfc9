package generator

import (
	"strings"
	"testing"

	"github.com/Alex-H307/cafe-system/loader"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableName(t *testing.T) {
	assert.Equal(t, "staff_details", TableName(schema.Model{Name: "Staff Details"}))
	assert.Equal(t, "stocks", TableName(schema.Model{Name: "Stocks"}))
	assert.Equal(t, "a_b", TableName(schema.Model{Name: " A -- B "}))
}

func TestSQLType(t *testing.T) {
	assert.Equal(t, "bigint", SQLType(schema.Field{Type: schema.Integer}))
	assert.Equal(t, "double precision", SQLType(schema.Field{Type: schema.Float}))
	assert.Equal(t, "boolean", SQLType(schema.Field{Type: schema.Boolean, MaxLength: 1}))
	assert.Equal(t, "varchar(30)", SQLType(schema.Field{Type: schema.Text, MaxLength: 30}))
	assert.Equal(t, "text", SQLType(schema.Field{Type: schema.Text}))
}

func TestGenerateSQL(t *testing.T) {
	r, err := loader.LoadDefaultRegistry()
	require.NoError(t, err)

	stmts, err := GenerateSQL(r)
	require.NoError(t, err)

	models := r.Models()
	var foreign int
	for _, m := range models {
		for _, f := range m.Fields {
			if f.Key == schema.ForeignKey {
				foreign++
			}
		}
	}
	require.Len(t, stmts, len(models)+foreign)

	for i, m := range models {
		assert.True(t, strings.HasPrefix(stmts[i], `CREATE TABLE "`+TableName(m)+`"`), stmts[i])
	}
	assert.Contains(t, stmts[0], `"staffID" bigint PRIMARY KEY`)
	assert.Contains(t, stmts[0], `"staffFirstName" varchar(30) NOT NULL`)

	fks := strings.Join(stmts[len(models):], "\n")
	assert.Contains(t, fks, `ALTER TABLE "account_details" ADD CONSTRAINT "fk_account_details_staffid" FOREIGN KEY ("staffID") REFERENCES "staff_details" ("staffID") ON DELETE CASCADE;`)
}

func TestGenerateDropSQL(t *testing.T) {
	r, err := loader.LoadDefaultRegistry()
	require.NoError(t, err)

	drops := GenerateDropSQL(r)
	require.Len(t, drops, 8)
	assert.Equal(t, `DROP TABLE IF EXISTS "transaction_history" CASCADE;`, drops[0])
	assert.Equal(t, `DROP TABLE IF EXISTS "staff_details" CASCADE;`, drops[7])
}

func TestConvertValue(t *testing.T) {
	v, err := ConvertValue(schema.Field{Name: "n", Type: schema.Integer, Required: true}, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = ConvertValue(schema.Field{Name: "f", Type: schema.Float, Required: true}, "1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = ConvertValue(schema.Field{Name: "b", Type: schema.Boolean, Required: true}, "1")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = ConvertValue(schema.Field{Name: "c", Type: schema.Text}, NoneValue)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ConvertValue(schema.Field{Name: "c", Type: schema.Text, Required: true}, "None")
	require.NoError(t, err)
	assert.Equal(t, "None", v)

	_, err = ConvertValue(schema.Field{Name: "n", Type: schema.Integer, Required: true}, "abc")
	assert.Error(t, err)
}
