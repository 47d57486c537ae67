package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/match"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/player"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/playerstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/team"
	"github.com/MironKaigorodcev/ETLfootball/internal/infrastructure/repository/memory"
	"github.com/MironKaigorodcev/ETLfootball/internal/usecase"
)

func seedTeams(t *testing.T, provider *memory.StoreProvider, names ...string) []team.Team {
	t.Helper()
	stores := provider.Stores()
	teams := make([]team.Team, 0, len(names))
	for i, name := range names {
		created, err := stores.Teams.Create(context.Background(), team.Team{
			ExternalID: string(rune('a' + i)),
			Name:       name,
		})
		require.NoError(t, err)
		teams = append(teams, created)
	}
	return teams
}

func playedMatch(home, away team.Team, homeScore, awayScore int, day int) match.Match {
	return match.Match{
		Date:        time.Date(2023, 9, day, 0, 0, 0, 0, time.UTC),
		HomeTeamID:  home.ID,
		AwayTeamID:  &away.ID,
		HomeScore:   &homeScore,
		AwayScore:   &awayScore,
		Competition: "Premier League",
		Venue:       "Home",
	}
}

func TestStandings(t *testing.T) {
	t.Parallel()

	provider := memory.NewStoreProvider()
	teams := seedTeams(t, provider, "Arsenal", "Chelsea", "Fulham")
	arsenal, chelsea, fulham := teams[0], teams[1], teams[2]

	stores := provider.Stores()
	ctx := context.Background()
	for _, m := range []match.Match{
		playedMatch(arsenal, chelsea, 3, 1, 1),
		playedMatch(chelsea, fulham, 2, 2, 2),
		playedMatch(fulham, arsenal, 0, 2, 3),
	} {
		_, err := stores.Matches.Create(ctx, m)
		require.NoError(t, err)
	}
	// An unplayed fixture must not count.
	_, err := stores.Matches.Create(ctx, match.Match{
		Date:        time.Date(2023, 9, 20, 0, 0, 0, 0, time.UTC),
		HomeTeamID:  arsenal.ID,
		Competition: "Premier League",
		Venue:       "Home",
	})
	require.NoError(t, err)

	table, err := usecase.NewStatsService(provider, "2023-2024", "Premier League").Standings(ctx)
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, "Arsenal", table[0].TeamName)
	assert.Equal(t, 6, table[0].Points)
	assert.Equal(t, 2, table[0].Played)
	assert.Equal(t, 4, table[0].GoalDiff)

	assert.Equal(t, "Chelsea", table[1].TeamName)
	assert.Equal(t, 1, table[1].Points)
	assert.Equal(t, -2, table[1].GoalDiff)

	assert.Equal(t, "Fulham", table[2].TeamName)
	assert.Equal(t, 1, table[2].Points)
	assert.Equal(t, -2, table[2].GoalDiff)
	assert.Equal(t, 2, table[2].GoalsFor, "fulham scored fewer than chelsea and sorts below")
}

func TestStandingsUnresolvedAwayCountsHomeOnly(t *testing.T) {
	t.Parallel()

	provider := memory.NewStoreProvider()
	teams := seedTeams(t, provider, "Arsenal")
	arsenal := teams[0]

	home, away := 2, 0
	_, err := provider.Stores().Matches.Create(context.Background(), match.Match{
		Date:        time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		HomeTeamID:  arsenal.ID,
		HomeScore:   &home,
		AwayScore:   &away,
		Competition: "Premier League",
		Venue:       "Home",
	})
	require.NoError(t, err)

	table, err := usecase.NewStatsService(provider, "2023-2024", "Premier League").Standings(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 1, table[0].Played)
}

func TestTopScorersOrdering(t *testing.T) {
	t.Parallel()

	provider := memory.NewStoreProvider()
	teams := seedTeams(t, provider, "Arsenal")
	stores := provider.Stores()
	ctx := context.Background()

	lines := []struct {
		name    string
		goals   int
		assists int
	}{
		{"Low Scorer", 5, 1},
		{"Top Scorer", 20, 4},
		{"Equal Goals More Assists", 20, 9},
	}
	for _, line := range lines {
		p, err := stores.Players.Create(ctx, player.Player{Name: line.name, TeamID: teams[0].ID})
		require.NoError(t, err)
		_, err = stores.PlayerStats.Create(ctx, playerstat.PlayerStat{
			PlayerID:    p.ID,
			Season:      "2023-2024",
			Competition: "Premier League",
			Goals:       line.goals,
			Assists:     line.assists,
		})
		require.NoError(t, err)
	}

	svc := usecase.NewStatsService(provider, "2023-2024", "Premier League")

	scorers, err := svc.TopScorers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, scorers, 2)
	assert.Equal(t, "Equal Goals More Assists", scorers[0].PlayerName)
	assert.Equal(t, "Top Scorer", scorers[1].PlayerName)
	assert.Equal(t, "Arsenal", scorers[0].TeamName)

	all, err := svc.TopScorers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "zero limit falls back to the default")
}

func TestTeamMatchesUnknownTeam(t *testing.T) {
	t.Parallel()

	svc := usecase.NewStatsService(memory.NewStoreProvider(), "2023-2024", "Premier League")
	_, err := svc.TeamMatches(context.Background(), 42)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestTeamSeasonNotScraped(t *testing.T) {
	t.Parallel()

	provider := memory.NewStoreProvider()
	teams := seedTeams(t, provider, "Arsenal")

	svc := usecase.NewStatsService(provider, "2023-2024", "Premier League")
	_, err := svc.TeamSeason(context.Background(), teams[0].ID)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}
