package httpapi

type TeamDTO struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`
}

type MatchDTO struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	HomeTeamID  int64  `json:"homeTeamId"`
	AwayTeamID  *int64 `json:"awayTeamId,omitempty"`
	HomeScore   *int   `json:"homeScore,omitempty"`
	AwayScore   *int   `json:"awayScore,omitempty"`
	Competition string `json:"competition,omitempty"`
	Round       string `json:"round,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Attendance  *int   `json:"attendance,omitempty"`
}

type SquadStatDTO struct {
	TeamID        int64   `json:"teamId"`
	Season        string  `json:"season"`
	Competition   string  `json:"competition"`
	GoalsFor      int     `json:"goalsFor"`
	GoalsAgainst  int     `json:"goalsAgainst"`
	Possession    float64 `json:"possession"`
	Tackles       int     `json:"tackles"`
	TacklesWon    int     `json:"tacklesWon"`
	Blocks        int     `json:"blocks"`
	Interceptions int     `json:"interceptions"`
	Clearances    int     `json:"clearances"`
}

type StandingDTO struct {
	Rank         int    `json:"rank"`
	TeamID       int64  `json:"teamId"`
	TeamName     string `json:"teamName"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalDiff     int    `json:"goalDiff"`
	Points       int    `json:"points"`
}

type TopScorerDTO struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"playerName"`
	TeamName   string `json:"teamName"`
	Goals      int    `json:"goals"`
	Assists    int    `json:"assists"`
	Minutes    int    `json:"minutes"`
}

type SummaryDTO struct {
	Teams       int `json:"teams"`
	Players     int `json:"players"`
	Matches     int `json:"matches"`
	SquadStats  int `json:"squadStats"`
	PlayerStats int `json:"playerStats"`
}
