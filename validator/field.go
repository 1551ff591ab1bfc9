package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/table"
)

// NoneValue is stored for an optional field left empty.
const NoneValue = "None"

// Positions lists the staff roles accepted by the position format.
var Positions = []string{"Manager", "Counter Attendant", "Repairman", "Maintenance"}

var (
	emailPattern   = regexp.MustCompile(`^\b\w+@[A-Za-z\d]+\.[A-Za-z]{2,}\b`)
	addressPattern = regexp.MustCompile(`^[0-9]{1,3} [A-Za-z ]+ [A-Za-z]+ [A-Z]{1,2}[0-9][A-Z0-9]? [0-9][A-Z]{2}`)
	timePattern    = regexp.MustCompile(`^(2[0-3]:[0-5][0-9]|[0-1][0-9]:[0-5][0-9])`)
	datePattern    = regexp.MustCompile(`^[0-3][0-9]/[0-1][0-9]/[0-9][0-9]`)

	maxDayOfMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// CheckType reports whether value parses as t.
func CheckType(value string, t schema.ValueType) bool {
	switch t {
	case schema.Integer:
		_, err := strconv.Atoi(strings.TrimSpace(value))
		return err == nil
	case schema.Float:
		_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil
	case schema.Boolean:
		_, ok := schema.ParseBool(value)
		return ok
	case schema.Text:
		return true
	}
	return false
}

// CheckLength reports whether value fits in maxLength runes; 0 is unbounded.
func CheckLength(value string, maxLength int) bool {
	return maxLength <= 0 || len([]rune(value)) <= maxLength
}

// CheckRange reports whether min <= value <= max.
func CheckRange(value, max, min float64) bool {
	return value >= min && value <= max
}

// CheckDate reports whether day exists in month, allowing 29 February.
func CheckDate(day, month int) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= maxDayOfMonth[month-1]
}

// CheckFormat applies a named format rule.
func CheckFormat(value, kind string) bool {
	switch kind {
	case "phone":
		if len(value) != 11 {
			return false
		}
		for _, r := range value {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	case "name":
		for _, r := range value {
			if unicode.IsDigit(r) {
				return false
			}
		}
		return true
	case "email":
		return emailPattern.MatchString(value)
	case "address":
		return addressPattern.MatchString(value)
	case "time":
		return timePattern.MatchString(value)
	case "date":
		if !datePattern.MatchString(value) {
			return false
		}
		parts := strings.Split(value, "/")
		day, _ := strconv.Atoi(parts[0])
		month, _ := strconv.Atoi(parts[1])
		return CheckDate(day, month)
	case "position":
		for _, p := range Positions {
			if value == p {
				return true
			}
		}
		return false
	}
	return false
}

// FieldError describes why a value was refused for a field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s for %s", e.Reason, e.Field)
}

// ValidateValue resolves defaults for an empty input and checks the result
// against the field rules. It returns the value to store.
func ValidateValue(f schema.Field, value string) (string, error) {
	if value == "" && f.Default != nil && *f.Default != "" {
		value = *f.Default
	}
	if value == "" && !f.Required {
		return NoneValue, nil
	}
	if value == "" {
		return "", &FieldError{Field: f.Name, Reason: "value (required)"}
	}
	if !CheckType(value, f.Type) {
		return "", &FieldError{Field: f.Name, Reason: "type"}
	}
	if !CheckLength(value, f.MaxLength) {
		return "", &FieldError{Field: f.Name, Reason: "length"}
	}
	if f.Check == nil {
		return value, nil
	}

	switch f.Check.Kind {
	case schema.FormatCheck:
		if !CheckFormat(value, f.Check.Arg) {
			return "", &FieldError{Field: f.Name, Reason: "format"}
		}
	case schema.RangeCheck:
		max, err := strconv.ParseFloat(f.Check.Arg, 64)
		if err != nil {
			return "", &FieldError{Field: f.Name, Reason: "range rule"}
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || !CheckRange(n, max, 0) {
			return "", &FieldError{Field: f.Name, Reason: "range"}
		}
	}
	return value, nil
}

// ValidateRecord validates the non-key values of a new row in field order.
func ValidateRecord(m schema.Model, values []string) ([]string, error) {
	if len(values) != len(m.Fields)-1 {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d",
			table.ErrFieldCountMismatch, m.Name, len(m.Fields)-1, len(values))
	}
	out := make([]string, len(values))
	for i, v := range values {
		checked, err := ValidateValue(m.Fields[i+1], v)
		if err != nil {
			return nil, err
		}
		out[i] = checked
	}
	return out, nil
}
