package match

import (
	"fmt"
	"time"
)

// Match is a single fixture persisted from a team's match log.
// Scores and attendance are nil for fixtures that have not been played.
// AwayTeamID is nil unless the opponent was resolved against teams already
// known from the directory page.
type Match struct {
	ID          int64
	Date        time.Time
	HomeTeamID  int64
	AwayTeamID  *int64
	HomeScore   *int
	AwayScore   *int
	Competition string
	Round       string
	Venue       string
	Attendance  *int
}

func (m Match) Validate() error {
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.HomeTeamID <= 0 {
		return fmt.Errorf("match home team id is required")
	}

	return nil
}

// Played reports whether both scores are present.
func (m Match) Played() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}
