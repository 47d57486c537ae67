package usecase

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/match"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/playerstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/squadstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/team"
)

const defaultTopScorerLimit = 10

// StandingRow is one line of a computed league table.
type StandingRow struct {
	TeamID       int64
	TeamName     string
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
}

// EntityCounts is a stored-data census across every table.
type EntityCounts struct {
	Teams       int
	Players     int
	Matches     int
	SquadStats  int
	PlayerStats int
}

// StatsService answers read queries over whatever previous runs stored.
type StatsService struct {
	stores      Stores
	season      string
	competition string
}

func NewStatsService(provider StoreProvider, season, competition string) *StatsService {
	return &StatsService{stores: provider.Stores(), season: season, competition: competition}
}

// Standings recomputes the table from played matches: three points for
// a win, one for a draw, goal difference then goals scored as
// tiebreakers. Away credit requires a resolved away team; matches with
// an unknown opponent count for the home side only.
func (s *StatsService) Standings(ctx context.Context) ([]StandingRow, error) {
	ctx, span := startSpan(ctx, "stats.standings")
	defer span.End()

	matches, err := s.stores.Matches.ListPlayed(ctx, s.competition)
	if err != nil {
		return nil, err
	}
	teams, err := s.stores.Teams.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make(map[int64]*StandingRow, len(teams))
	for _, t := range teams {
		rows[t.ID] = &StandingRow{TeamID: t.ID, TeamName: t.Name}
	}

	for _, m := range matches {
		home := rows[m.HomeTeamID]
		if home != nil {
			creditMatch(home, *m.HomeScore, *m.AwayScore)
		}
		if m.AwayTeamID != nil {
			if away := rows[*m.AwayTeamID]; away != nil {
				creditMatch(away, *m.AwayScore, *m.HomeScore)
			}
		}
	}

	table := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})
	return table, nil
}

func creditMatch(row *StandingRow, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDiff = row.GoalsFor - row.GoalsAgainst
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += 3
	case scored == conceded:
		row.Draws++
		row.Points++
	default:
		row.Losses++
	}
}

func (s *StatsService) TopScorers(ctx context.Context, limit int) ([]playerstat.TopScorer, error) {
	ctx, span := startSpan(ctx, "stats.top_scorers")
	defer span.End()

	if limit <= 0 {
		limit = defaultTopScorerLimit
	}
	return s.stores.PlayerStats.ListTopScorers(ctx, s.season, s.competition, limit)
}

func (s *StatsService) Teams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startSpan(ctx, "stats.teams")
	defer span.End()

	return s.stores.Teams.List(ctx)
}

func (s *StatsService) TeamMatches(ctx context.Context, teamID int64) ([]match.Match, error) {
	ctx, span := startSpan(ctx, "stats.team_matches")
	defer span.End()

	_, found, err := s.stores.Teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, crerr.Wrapf(ErrNotFound, "team %d", teamID)
	}
	return s.stores.Matches.ListByTeam(ctx, teamID)
}

func (s *StatsService) TeamSeason(ctx context.Context, teamID int64) (squadstat.SquadStat, error) {
	ctx, span := startSpan(ctx, "stats.team_season")
	defer span.End()

	stat, found, err := s.stores.SquadStats.GetByTeam(ctx, teamID, s.season, s.competition)
	if err != nil {
		return squadstat.SquadStat{}, err
	}
	if !found {
		return squadstat.SquadStat{}, crerr.Wrapf(ErrNotFound, "squad stats for team %d", teamID)
	}
	return stat, nil
}

func (s *StatsService) Counts(ctx context.Context) (EntityCounts, error) {
	ctx, span := startSpan(ctx, "stats.counts")
	defer span.End()

	var counts EntityCounts
	var err error
	if counts.Teams, err = s.stores.Teams.Count(ctx); err != nil {
		return EntityCounts{}, err
	}
	if counts.Players, err = s.stores.Players.Count(ctx); err != nil {
		return EntityCounts{}, err
	}
	if counts.Matches, err = s.stores.Matches.Count(ctx); err != nil {
		return EntityCounts{}, err
	}
	if counts.SquadStats, err = s.stores.SquadStats.Count(ctx); err != nil {
		return EntityCounts{}, err
	}
	if counts.PlayerStats, err = s.stores.PlayerStats.Count(ctx); err != nil {
		return EntityCounts{}, err
	}
	return counts, nil
}
