package squadstat

import "fmt"

// SquadStat is one team's aggregate season line. Unique per
// (team, season, competition); created once and never merged afterwards.
type SquadStat struct {
	ID           int64
	TeamID       int64
	Season       string
	Competition  string
	GoalsFor     int
	GoalsAgainst int
	Possession   float64
	Tackles      int
	TacklesWon   int
	Blocks       int
	Interceptions int
	Clearances   int
}

func (s SquadStat) Validate() error {
	if s.TeamID <= 0 {
		return fmt.Errorf("squad stat team id is required")
	}
	if s.Season == "" {
		return fmt.Errorf("squad stat season is required")
	}
	if s.Competition == "" {
		return fmt.Errorf("squad stat competition is required")
	}

	return nil
}
