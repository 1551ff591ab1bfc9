// Package search implements the lookup path used by tables: an exchange
// sort of an in-memory snapshot followed by a binary search over it.
package search

import "github.com/Alex-H307/cafe-system/schema"

// Sort orders rows by column with an exchange sort, repeating full passes
// until one makes no swap. Equal keys keep no particular order. Rows too
// short to have the column sort first.
func Sort(rows [][]string, column int, cmp schema.Comparator) {
	for n := len(rows); n > 1; n-- {
		swapped := false
		for i := 0; i < n-1; i++ {
			if compareRows(rows[i], rows[i+1], column, cmp) > 0 {
				rows[i], rows[i+1] = rows[i+1], rows[i]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// Find binary-searches rows, which must already be sorted by column with cmp.
// It returns the index of a matching row in rows.
func Find(rows [][]string, column int, value string, cmp schema.Comparator) (int, bool) {
	low, high := 0, len(rows)-1
	for low <= high {
		mid := low + (high-low)/2
		if column >= len(rows[mid]) {
			low = mid + 1
			continue
		}
		switch c := cmp(rows[mid][column], value); {
		case c == 0:
			return mid, true
		case c < 0:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return -1, false
}

// Lookup copies rows, sorts the copy and searches it. rows is left untouched.
func Lookup(rows [][]string, column int, value string, cmp schema.Comparator) ([]string, bool) {
	snapshot := make([][]string, len(rows))
	copy(snapshot, rows)
	Sort(snapshot, column, cmp)
	i, ok := Find(snapshot, column, value, cmp)
	if !ok {
		return nil, false
	}
	return snapshot[i], true
}

func compareRows(a, b []string, column int, cmp schema.Comparator) int {
	aShort, bShort := column >= len(a), column >= len(b)
	switch {
	case aShort && bShort:
		return 0
	case aShort:
		return -1
	case bShort:
		return 1
	}
	return cmp(a[column], b[column])
}
