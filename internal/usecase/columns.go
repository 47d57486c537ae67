package usecase

import "strings"

// The source renames stat columns between table variants, so values are
// located by shape rather than exact name. Flattened names look like
// "Performance_Gls" or "Playing Time_Min"; matching works on the full
// name and its trailing segment.

func pickColumn(columns []string, pred func(string) bool) (string, bool) {
	for _, col := range columns {
		if pred(col) {
			return col, true
		}
	}
	return "", false
}

// isGoalsColumn accepts plain goal counts but not expected or
// non-penalty variants.
func isGoalsColumn(col string) bool {
	return strings.HasSuffix(col, "Gls") &&
		!strings.Contains(col, "x") &&
		!strings.Contains(col, "np")
}

func isAssistsColumn(col string) bool {
	return strings.HasSuffix(col, "Ast") && !strings.Contains(col, "x")
}

// isPlayerColumn locates the player name column even when flattening
// left a parent segment in front of it.
func isPlayerColumn(col string) bool {
	return strings.Contains(strings.ToLower(col), "player")
}

// isMinutesColumn rejects per-90 derivatives.
func isMinutesColumn(col string) bool {
	return strings.Contains(col, "Min") &&
		!strings.Contains(strings.ToLower(col), "per")
}

// lastSegmentIs matches a column whose trailing header segment equals
// name exactly, e.g. "Tackles_Tkl" for "Tkl".
func lastSegmentIs(name string) func(string) bool {
	return func(col string) bool {
		parts := strings.Split(col, "_")
		return parts[len(parts)-1] == name
	}
}

func columnValue(row map[string]string, columns []string, pred func(string) bool) (string, bool) {
	col, ok := pickColumn(columns, pred)
	if !ok {
		return "", false
	}
	v, ok := row[col]
	return v, ok
}
