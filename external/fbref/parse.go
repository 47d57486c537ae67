package fbref

import (
	"strconv"
	"strings"
)

// Stat cells are messy: thousands separators, percent signs, penalty
// suffixes like "12 (3)", or nothing at all. These parsers take the
// leading numeric portion and default to zero rather than failing a
// whole row over one cell.

func IntValue(s string) int {
	return int(FloatValue(s))
}

func FloatValue(s string) float64 {
	s = cleanNumber(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// OptionalInt distinguishes an empty cell from a real zero.
func OptionalInt(s string) *int {
	if cleanNumber(s) == "" {
		return nil
	}
	v := IntValue(s)
	return &v
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if i := strings.IndexAny(s, " ("); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
