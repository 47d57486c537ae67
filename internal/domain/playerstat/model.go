package playerstat

import "fmt"

// PlayerStat is one player's season line. Unique per
// (player, season, competition); created once and never merged afterwards.
type PlayerStat struct {
	ID          int64
	PlayerID    int64
	Season      string
	Competition string
	Minutes     int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	XG          float64
	NPXG        float64
	XAG         float64
}

func (s PlayerStat) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("player stat player id is required")
	}
	if s.Season == "" {
		return fmt.Errorf("player stat season is required")
	}
	if s.Competition == "" {
		return fmt.Errorf("player stat competition is required")
	}

	return nil
}

// TopScorer is the denormalized row served by the top scorer listing.
type TopScorer struct {
	PlayerName string
	TeamName   string
	Goals      int
	Assists    int
	Minutes    int
}
