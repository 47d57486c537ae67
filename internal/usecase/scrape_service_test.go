package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MironKaigorodcev/ETLfootball/internal/infrastructure/repository/memory"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/logging"
	"github.com/MironKaigorodcev/ETLfootball/internal/usecase"
)

const leagueURL = "/en/comps/9/2023-2024/2023-2024-Premier-League-Stats"

type stubFetcher struct {
	pages map[string]string
	fail  map[string]bool
	calls []string
}

func (f *stubFetcher) Get(_ context.Context, path string) (string, bool, error) {
	f.calls = append(f.calls, path)
	if f.fail[path] {
		return "", false, nil
	}
	html, ok := f.pages[path]
	if !ok {
		return "", false, nil
	}
	return html, true, nil
}

func leagueFixture() string {
	return `<table class="stats_table" id="results_overall">
<thead><tr><th>Rk</th><th>Squad</th></tr></thead>
<tbody>
<tr><th>1</th><td data-stat="squad"><a href="/en/squads/18bb7c10/Arsenal-Stats">Arsenal</a></td></tr>
<tr><th>2</th><td data-stat="squad"><a href="/en/squads/cff3d9bb/Chelsea-Stats">Chelsea</a></td></tr>
</tbody></table>`
}

func teamFixture(name, opponent, homeDate, awayDate string) string {
	return fmt.Sprintf(`
<div>
<!--
<table id="stats_squads_standard_for">
<thead><tr><th></th><th></th><th colspan="1">Performance</th></tr>
<tr><th>Squad</th><th>Poss</th><th>Gls</th></tr></thead>
<tbody><tr><th>%[1]s</th><td>55.5</td><td>80</td></tr></tbody>
</table>
<table id="stats_squads_standard_against">
<thead><tr><th></th><th></th><th colspan="1">Performance</th></tr>
<tr><th>Squad</th><th>Poss</th><th>Gls</th></tr></thead>
<tbody><tr><th>vs %[1]s</th><td>44.5</td><td>30</td></tr></tbody>
</table>
<table id="stats_squads_defense_for">
<thead><tr><th></th><th colspan="2">Tackles</th><th colspan="1">Blocks</th><th></th><th></th></tr>
<tr><th>Squad</th><th>Tkl</th><th>TklW</th><th>Blocks</th><th>Int</th><th>Clr</th></tr></thead>
<tbody><tr><th>%[1]s</th><td>600</td><td>350</td><td>400</td><td>280</td><td>700</td></tr></tbody>
</table>
<table id="stats_standard_9">
<thead>
<tr><th></th><th></th><th></th><th colspan="1">Playing Time</th><th colspan="4">Performance</th><th colspan="3">Expected</th></tr>
<tr><th>Player</th><th>Nation</th><th>Pos</th><th>Min</th><th>Gls</th><th>Ast</th><th>CrdY</th><th>CrdR</th><th>xG</th><th>npxG</th><th>xAG</th></tr>
</thead>
<tbody>
<tr><th>%[1]s Striker</th><td>eng ENG</td><td>FW</td><td>2,500</td><td>20</td><td>7</td><td>3</td><td>0</td><td>18.2</td><td>15.1</td><td>6.3</td></tr>
<tr><th>%[1]s Keeper</th><td>br BRA</td><td>GK</td><td>3,400</td><td>0</td><td>0</td><td>1</td><td>0</td><td>0.0</td><td>0.0</td><td>0.1</td></tr>
<tr><th>Squad Total</th><td></td><td></td><td>34,200</td><td>80</td><td>55</td><td>60</td><td>2</td><td>75.0</td><td>70.0</td><td>50.0</td></tr>
</tbody>
</table>
-->
</div>
<table id="matchlogs_for">
<thead><tr><th>Date</th><th>Comp</th><th>Round</th><th>Venue</th><th>Result</th><th>GF</th><th>GA</th><th>Opponent</th><th>Attendance</th></tr></thead>
<tbody>
<tr><th>%[3]s</th><td>Premier League</td><td>Matchweek 1</td><td>Home</td><td>W</td><td>2</td><td>1</td><td>%[2]s</td><td>60,000</td></tr>
<tr><th>%[4]s</th><td>Premier League</td><td>Matchweek 2</td><td>Away</td><td>L</td><td>1</td><td>2</td><td>%[2]s</td><td>40,000</td></tr>
</tbody>
</table>`, name, opponent, homeDate, awayDate)
}

func fixtureFetcher() *stubFetcher {
	return &stubFetcher{
		pages: map[string]string{
			leagueURL: leagueFixture(),
			"/en/squads/18bb7c10/Arsenal-Stats": teamFixture("Arsenal", "Chelsea", "2023-09-02", "2024-01-13"),
			"/en/squads/cff3d9bb/Chelsea-Stats": teamFixture("Chelsea", "Arsenal", "2024-01-13", "2023-09-02"),
		},
		fail: map[string]bool{},
	}
}

func testScrapeService(fetcher usecase.Fetcher, provider usecase.StoreProvider) *usecase.ScrapeService {
	return usecase.NewScrapeService(fetcher, provider, usecase.ScrapeConfig{
		LeagueURL:   leagueURL,
		Season:      "2023-2024",
		Competition: "Premier League",
	}, logging.NewNop())
}

func TestScrapeRunStoresEverything(t *testing.T) {
	t.Parallel()

	provider := memory.NewStoreProvider()
	svc := testScrapeService(fixtureFetcher(), provider)

	sum, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TeamsDiscovered)
	assert.Equal(t, 2, sum.TeamsStored)
	assert.Equal(t, 0, sum.TeamsFailed)
	assert.Equal(t, 4, sum.PlayersCreated, "two real players per team, totals skipped")
	assert.Equal(t, 2, sum.MatchesCreated, "only the home half of each log is stored")
	assert.Equal(t, 2, sum.SquadStatsCreated)
	assert.Equal(t, 4, sum.PlayerStatsCreated)

	// Arsenal is scraped first, so its opponent is not yet known;
	// Chelsea's home match resolves against the already stored Arsenal.
	assert.Equal(t, 1, sum.AwayTeamsUnresolved)

	stores := provider.Stores()
	ctx := context.Background()

	arsenal, found, err := stores.Teams.GetByExternalID(ctx, "18bb7c10")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Arsenal", arsenal.Name)

	stat, found, err := stores.SquadStats.GetByTeam(ctx, arsenal.ID, "2023-2024", "Premier League")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 80, stat.GoalsFor)
	assert.Equal(t, 30, stat.GoalsAgainst)
	assert.InDelta(t, 55.5, stat.Possession, 1e-9)
	assert.Equal(t, 600, stat.Tackles)
	assert.Equal(t, 350, stat.TacklesWon)
	assert.Equal(t, 400, stat.Blocks)
	assert.Equal(t, 280, stat.Interceptions)
	assert.Equal(t, 700, stat.Clearances)

	striker, found, err := stores.Players.GetByNameAndTeam(ctx, "Arsenal Striker", arsenal.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "FW", striker.Position)
	assert.Equal(t, "ENG", striker.Nationality, "nation cell keeps only the trailing code")
	assert.Equal(t, "18bb7c10_0", striker.ExternalID)

	matches, err := stores.Matches.ListByTeam(ctx, arsenal.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2, "home match plus the resolved away side of Chelsea's home match")
}

func TestScrapeRunIsIdempotent(t *testing.T) {
	t.Parallel()

	provider := memory.NewStoreProvider()
	svc := testScrapeService(fixtureFetcher(), provider)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	sum, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.PlayersCreated)
	assert.Equal(t, 0, sum.MatchesCreated)
	assert.Equal(t, 2, sum.MatchesSkipped)
	assert.Equal(t, 0, sum.SquadStatsCreated)
	assert.Equal(t, 2, sum.SquadStatsSkipped)
	assert.Equal(t, 0, sum.PlayerStatsCreated)
	assert.Equal(t, 4, sum.PlayerStatsSkipped)

	counts, err := usecase.NewStatsService(provider, "2023-2024", "Premier League").Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usecase.EntityCounts{Teams: 2, Players: 4, Matches: 2, SquadStats: 2, PlayerStats: 4}, counts)
}

func TestScrapeRunLeaguePageUnavailable(t *testing.T) {
	t.Parallel()

	fetcher := fixtureFetcher()
	fetcher.fail[leagueURL] = true
	svc := testScrapeService(fetcher, memory.NewStoreProvider())

	_, err := svc.Run(context.Background())
	require.ErrorIs(t, err, usecase.ErrSourceUnavailable, "a run cannot start without the directory")
}

func TestScrapeRunSkipsUnreachableTeam(t *testing.T) {
	t.Parallel()

	fetcher := fixtureFetcher()
	fetcher.fail["/en/squads/18bb7c10/Arsenal-Stats"] = true
	provider := memory.NewStoreProvider()
	svc := testScrapeService(fetcher, provider)

	sum, err := svc.Run(context.Background())
	require.NoError(t, err, "one dead squad page does not kill the run")
	assert.Equal(t, 1, sum.TeamsSkipped)
	assert.Equal(t, 1, sum.TeamsStored)

	teams, err := provider.Stores().Teams.List(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Chelsea", teams[0].Name)
}

func TestScrapeRunTeamLimit(t *testing.T) {
	t.Parallel()

	fetcher := fixtureFetcher()
	provider := memory.NewStoreProvider()
	svc := usecase.NewScrapeService(fetcher, provider, usecase.ScrapeConfig{
		LeagueURL:   leagueURL,
		Season:      "2023-2024",
		Competition: "Premier League",
		TeamLimit:   1,
	}, logging.NewNop())

	sum, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TeamsDiscovered)
	assert.Equal(t, 1, sum.TeamsStored)
	assert.Len(t, fetcher.calls, 2, "league page and one squad page")
}

func TestScrapeRunIgnoresOtherCompetitions(t *testing.T) {
	t.Parallel()

	teamPage := `
<table id="matchlogs_for">
<thead><tr><th>Date</th><th>Comp</th><th>Round</th><th>Venue</th><th>Result</th><th>GF</th><th>GA</th><th>Opponent</th><th>Attendance</th></tr></thead>
<tbody>
<tr><th>2024-01-07</th><td>FA Cup</td><td>Third round proper</td><td>Home</td><td>W</td><td>5</td><td>0</td><td>Liverpool</td><td>59,000</td></tr>
<tr><th>2024-02-20</th><td>Champions Lg</td><td>Round of 16</td><td>Home</td><td>D</td><td>1</td><td>1</td><td>Porto</td><td>59,500</td></tr>
<tr><th>2024-03-09</th><td>Premier League</td><td>Matchweek 28</td><td>Home</td><td>W</td><td>2</td><td>1</td><td>Brentford</td><td>60,000</td></tr>
</tbody>
</table>`

	fetcher := &stubFetcher{
		pages: map[string]string{
			leagueURL: `<table class="stats_table" id="results_overall"><tbody>
<tr><td data-stat="squad"><a href="/en/squads/18bb7c10/Arsenal-Stats">Arsenal</a></td></tr>
</tbody></table>`,
			"/en/squads/18bb7c10/Arsenal-Stats": teamPage,
		},
		fail: map[string]bool{},
	}

	provider := memory.NewStoreProvider()
	svc := testScrapeService(fetcher, provider)

	sum, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.MatchesCreated, "cup and European rows stay out of the league table")

	ctx := context.Background()
	stores := provider.Stores()
	arsenal, found, err := stores.Teams.GetByExternalID(ctx, "18bb7c10")
	require.NoError(t, err)
	require.True(t, found)

	matches, err := stores.Matches.ListByTeam(ctx, arsenal.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Premier League", matches[0].Competition)
	assert.Equal(t, "Matchweek 28", matches[0].Round)
}

func TestScrapeRunPlayerColumnUnderParentSegment(t *testing.T) {
	t.Parallel()

	teamPage := `
<div>
<!--
<table id="stats_standard_9">
<thead>
<tr><th colspan="1">Bio</th><th></th><th></th><th colspan="1">Performance</th></tr>
<tr><th>Player</th><th>Nation</th><th>Pos</th><th>Gls</th></tr>
</thead>
<tbody>
<tr><th>Eddie Example</th><td>eng ENG</td><td>FW</td><td>9</td></tr>
<tr><th>Squad Total</th><td></td><td></td><td>80</td></tr>
</tbody>
</table>
-->
</div>`

	fetcher := &stubFetcher{
		pages: map[string]string{
			leagueURL: `<table class="stats_table" id="results_overall"><tbody>
<tr><td data-stat="squad"><a href="/en/squads/18bb7c10/Arsenal-Stats">Arsenal</a></td></tr>
</tbody></table>`,
			"/en/squads/18bb7c10/Arsenal-Stats": teamPage,
		},
		fail: map[string]bool{},
	}

	provider := memory.NewStoreProvider()
	svc := testScrapeService(fetcher, provider)

	sum, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.PlayersCreated, "the name column is found under a labelled parent header")

	ctx := context.Background()
	stores := provider.Stores()
	arsenal, found, err := stores.Teams.GetByExternalID(ctx, "18bb7c10")
	require.NoError(t, err)
	require.True(t, found)

	p, found, err := stores.Players.GetByNameAndTeam(ctx, "Eddie Example", arsenal.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "FW", p.Position)

	stat, err := usecase.NewStatsService(provider, "2023-2024", "Premier League").TopScorers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stat, 1)
	assert.Equal(t, 9, stat[0].Goals)
}

func TestScrapeRunRejectsMissingConfig(t *testing.T) {
	t.Parallel()

	svc := usecase.NewScrapeService(fixtureFetcher(), memory.NewStoreProvider(), usecase.ScrapeConfig{}, logging.NewNop())
	_, err := svc.Run(context.Background())
	require.ErrorIs(t, err, usecase.ErrInvalidArgument)
}

func TestScrapeRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := testScrapeService(fixtureFetcher(), memory.NewStoreProvider())
	_, err := svc.Run(ctx)
	require.Error(t, err)
}
