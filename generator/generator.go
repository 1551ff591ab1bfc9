package generator

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Alex-H307/cafe-system/schema"
)

// NoneValue marks an optional field left empty in the store.
const NoneValue = "None"

// TableName converts a display name such as "Staff Details" to staff_details.
func TableName(m schema.Model) string {
	var b strings.Builder
	prevUnderscore := true
	for _, r := range m.Name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			prevUnderscore = false
		case !prevUnderscore:
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// SQLType maps a field to its PostgreSQL column type.
func SQLType(f schema.Field) string {
	switch f.Type {
	case schema.Integer:
		return "bigint"
	case schema.Float:
		return "double precision"
	case schema.Boolean:
		return "boolean"
	}
	if f.MaxLength > 0 {
		return fmt.Sprintf("varchar(%d)", f.MaxLength)
	}
	return "text"
}

// GenerateSQL returns CREATE TABLE statements for every model followed by
// the foreign-key constraints, so creation order does not matter.
func GenerateSQL(registry *schema.Registry) ([]string, error) {
	var sqlStatements []string
	for _, m := range registry.Models() {
		sqlStatements = append(sqlStatements, generateCreateTable(m))
	}
	fks, err := GenerateForeignKeys(registry)
	if err != nil {
		return nil, err
	}
	return append(sqlStatements, fks...), nil
}

// GenerateForeignKeys returns one ALTER TABLE per foreign field.
func GenerateForeignKeys(registry *schema.Registry) ([]string, error) {
	var sqlStatements []string
	for _, m := range registry.Models() {
		for _, f := range m.Fields {
			if f.Key != schema.ForeignKey {
				continue
			}
			owner, ok := registry.PrimaryOwner(f.Name)
			if !ok {
				return nil, fmt.Errorf("generate foreign key %s.%s: no primary owner", m.Name, f.Name)
			}
			stmt := fmt.Sprintf(`ALTER TABLE "%s" ADD CONSTRAINT "fk_%s_%s" FOREIGN KEY ("%s") REFERENCES "%s" ("%s") ON DELETE CASCADE;`,
				TableName(m),
				TableName(m),
				strings.ToLower(f.Name),
				f.Name,
				TableName(owner),
				owner.Primary().Name,
			)
			sqlStatements = append(sqlStatements, stmt)
		}
	}
	return sqlStatements, nil
}

// GenerateDropSQL drops every table in reverse ID order.
func GenerateDropSQL(registry *schema.Registry) []string {
	models := registry.Models()
	sqlStatements := make([]string, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		sqlStatements = append(sqlStatements, fmt.Sprintf(`DROP TABLE IF EXISTS "%s" CASCADE;`, TableName(models[i])))
	}
	return sqlStatements
}

func generateCreateTable(m schema.Model) string {
	var cols []string
	for i, f := range m.Fields {
		col := fmt.Sprintf(`"%s" %s`, f.Name, SQLType(f))
		if i == 0 {
			col += " PRIMARY KEY"
		} else if f.Required {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	return fmt.Sprintf("CREATE TABLE \"%s\" (\n  %s\n);", TableName(m), strings.Join(cols, ",\n  "))
}

// ConvertValue turns a stored cell into the value pgx should send.
func ConvertValue(f schema.Field, v string) (interface{}, error) {
	if !f.Required && (v == "" || v == NoneValue) {
		return nil, nil
	}
	switch f.Type {
	case schema.Integer:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an int", f.Name, v)
		}
		return n, nil
	case schema.Float:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a float", f.Name, v)
		}
		return n, nil
	case schema.Boolean:
		b, ok := schema.ParseBool(v)
		if !ok {
			return nil, fmt.Errorf("%s: %q is not a bool", f.Name, v)
		}
		return b, nil
	}
	return v, nil
}
