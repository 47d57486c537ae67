package fbref

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// MatchRow is one row of a squad's match log.
type MatchRow struct {
	Date         time.Time
	Competition  string
	Round        string
	Venue        string
	Result       string
	GoalsFor     *int
	GoalsAgainst *int
	Opponent     string
	Attendance   *int
}

// ParseMatchLog reads the "Scores & Fixtures" log from a squad page.
// Rows without a parseable date are dropped; future fixtures keep nil
// scores.
func ParseMatchLog(html string) ([]MatchRow, error) {
	tables, err := parseTables(html)
	if err != nil {
		return nil, err
	}

	var log *Table
	for _, t := range tables {
		if strings.HasPrefix(t.ID, "matchlogs") {
			log = t
			break
		}
	}
	if log == nil {
		return nil, crerr.New("no match log table on squad page")
	}

	var rows []MatchRow
	for _, r := range log.Rows {
		date, err := time.Parse("2006-01-02", r["Date"])
		if err != nil {
			continue
		}
		rows = append(rows, MatchRow{
			Date:         date,
			Competition:  r["Comp"],
			Round:        r["Round"],
			Venue:        r["Venue"],
			Result:       r["Result"],
			GoalsFor:     OptionalInt(r["GF"]),
			GoalsAgainst: OptionalInt(r["GA"]),
			Opponent:     r["Opponent"],
			Attendance:   OptionalInt(r["Attendance"]),
		})
	}
	return rows, nil
}
