package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alex-H307/cafe-system/cipher"
	"github.com/Alex-H307/cafe-system/schema"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

func (r *ValidationResult) addError(typ, table, field, msg string) {
	r.Errors = append(r.Errors, ValidationError{Type: typ, Table: table, Field: field, Message: msg, Severity: "error"})
}

func (r *ValidationResult) addWarning(typ, table, field, msg string) {
	r.Warnings = append(r.Warnings, ValidationError{Type: typ, Table: table, Field: field, Message: msg, Severity: "warning"})
}

func (r *ValidationResult) addInfo(typ, table, field, msg string) {
	r.Info = append(r.Info, ValidationError{Type: typ, Table: table, Field: field, Message: msg, Severity: "info"})
}

var formatKinds = map[string]bool{
	"phone": true, "name": true, "email": true, "address": true,
	"time": true, "date": true, "position": true,
}

// ValidateModels lints a catalog before it becomes a registry. Everything
// schema.NewRegistry would reject is an error here; questionable but legal
// definitions are warnings.
func ValidateModels(models []schema.Model) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	ids := map[int]string{}
	names := map[string]bool{}
	primaries := map[string]string{}

	for _, model := range models {
		if strings.TrimSpace(model.Name) == "" {
			result.addError("table_name", "", "", fmt.Sprintf("Table %d has no name", model.ID))
		} else if !cipher.Supports(model.Name) {
			result.addError("table_name", model.Name, "", "Table name uses symbols the store cannot encode")
		}
		if other, dup := ids[model.ID]; dup {
			result.addError("duplicate_id", model.Name, "", fmt.Sprintf("Table id %d is already used by '%s'", model.ID, other))
		}
		ids[model.ID] = model.Name
		if names[model.Name] {
			result.addError("duplicate_table", model.Name, "", fmt.Sprintf("Duplicate table name '%s'", model.Name))
		}
		names[model.Name] = true

		validateFields(model, result)

		if len(model.Fields) > 0 && model.Fields[0].Key == schema.PrimaryKey {
			pk := model.Fields[0].Name
			if other, dup := primaries[pk]; dup {
				result.addError("duplicate_primary", model.Name, pk,
					fmt.Sprintf("Field '%s' is already the primary key of '%s'", pk, other))
			}
			primaries[pk] = model.Name
		}
	}

	// Cross-table validations
	for _, model := range models {
		for _, f := range model.Fields {
			if f.Key != schema.ForeignKey {
				continue
			}
			owner, ok := primaries[f.Name]
			if !ok {
				result.addError("foreign_key", model.Name, f.Name,
					fmt.Sprintf("Foreign field '%s' matches no primary key", f.Name))
				continue
			}
			result.addInfo("foreign_key", model.Name, f.Name, fmt.Sprintf("References '%s'", owner))
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateFields(model schema.Model, result *ValidationResult) {
	if len(model.Fields) == 0 {
		result.addError("no_fields", model.Name, "", fmt.Sprintf("Table '%s' must have at least one field", model.Name))
		return
	}

	seen := map[string]bool{}
	for i, f := range model.Fields {
		if f.Name == "" {
			result.addError("field_name", model.Name, "", fmt.Sprintf("Field %d has no name", i))
			continue
		}
		if seen[f.Name] {
			result.addError("duplicate_field", model.Name, f.Name, fmt.Sprintf("Duplicate field name '%s'", f.Name))
			continue
		}
		seen[f.Name] = true

		switch f.Type {
		case schema.Integer, schema.Float, schema.Text, schema.Boolean:
		default:
			result.addError("data_type", model.Name, f.Name, fmt.Sprintf("Unsupported type '%s'", f.Type))
		}

		switch {
		case i == 0 && f.Key != schema.PrimaryKey:
			result.addError("primary_key", model.Name, f.Name, "First field must be the primary key")
		case i > 0 && f.Key == schema.PrimaryKey:
			result.addError("primary_key", model.Name, f.Name, "Only the first field may be the primary key")
		case i == 0 && f.Type != schema.Integer:
			result.addError("primary_key", model.Name, f.Name, "Primary key must be int")
		}

		if f.Type == schema.Text && f.MaxLength == 0 && f.Key == schema.NoKey {
			result.addWarning("max_length", model.Name, f.Name, "Text field has no maximum length")
		}

		if f.Default != nil {
			if _, err := ValidateValue(withoutDefault(f), *f.Default); err != nil {
				result.addWarning("default_value", model.Name, f.Name,
					fmt.Sprintf("Default '%s' fails its own field rules: %v", *f.Default, err))
			}
		}

		if f.Check != nil {
			switch f.Check.Kind {
			case schema.FormatCheck:
				if !formatKinds[f.Check.Arg] {
					result.addError("check", model.Name, f.Name, fmt.Sprintf("Unknown format '%s'", f.Check.Arg))
				}
			case schema.RangeCheck:
				if _, err := strconv.ParseFloat(f.Check.Arg, 64); err != nil {
					result.addError("check", model.Name, f.Name, fmt.Sprintf("Range bound '%s' is not a number", f.Check.Arg))
				}
				if f.Type != schema.Integer && f.Type != schema.Float {
					result.addWarning("check", model.Name, f.Name, "Range check on a non-numeric field")
				}
			default:
				result.addError("check", model.Name, f.Name, fmt.Sprintf("Unknown check kind '%s'", f.Check.Kind))
			}
		}
	}
}

func withoutDefault(f schema.Field) schema.Field {
	f.Default = nil
	return f
}
