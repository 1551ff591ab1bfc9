package schema

import (
	"strconv"
	"strings"
)

// Comparator orders two stored cell values. It returns -1, 0 or +1.
type Comparator func(a, b string) int

// ComparatorFor picks the comparator declared by a value type.
func ComparatorFor(t ValueType) Comparator {
	switch t {
	case Integer:
		return CompareInt
	case Float:
		return CompareFloat
	case Boolean:
		return CompareBool
	default:
		return CompareText
	}
}

func CompareText(a, b string) int {
	return strings.Compare(a, b)
}

// CompareInt orders base-10 integers numerically. If either side does not
// parse, both are compared as text so the ordering stays total.
func CompareInt(a, b string) int {
	x, errA := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	y, errB := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	if errA != nil || errB != nil {
		return CompareText(a, b)
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func CompareFloat(a, b string) int {
	x, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	y, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA != nil || errB != nil {
		return CompareText(a, b)
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func CompareBool(a, b string) int {
	x, okA := ParseBool(a)
	y, okB := ParseBool(b)
	if !okA || !okB {
		return CompareText(a, b)
	}
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	}
	return 1
}

// ParseBool accepts the stored forms 0/1 and true/false.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}
