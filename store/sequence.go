package store

import (
	"strconv"
)

// The sequence segment keeps one "<tableID>,<next>" line per table so that a
// deleted primary key, including the current maximum, is never handed out
// again.

// NextKey returns the stored next primary key for a table.
func NextKey(lines []string, tableID int) (int, bool) {
	seg := LocateSegment(lines, SequenceMarker)
	id := strconv.Itoa(tableID)
	for _, line := range seg.Lines(lines) {
		parts := SplitRecord(line)
		if len(parts) != 2 || parts[0] != id {
			continue
		}
		next, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, false
		}
		return next, true
	}
	return 0, false
}

// SetNextKey records next as the table's high-water mark.
func SetNextKey(lines []string, tableID, next int) []string {
	seg := LocateSegment(lines, SequenceMarker)
	id := strconv.Itoa(tableID)
	line := JoinRecord([]string{id, strconv.Itoa(next)})
	for i := seg.Start; i < seg.End; i++ {
		parts := SplitRecord(lines[i])
		if len(parts) == 2 && parts[0] == id {
			return Replace(lines, i, line)
		}
	}
	return Append(lines, SequenceMarker, line)
}
