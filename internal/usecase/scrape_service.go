package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/external/fbref"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/match"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/player"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/playerstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/squadstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/team"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/logging"
)

// Fetcher retrieves one page of the source site. ok is false when the
// page stayed out of reach after retries; only a dead context is an error.
type Fetcher interface {
	Get(ctx context.Context, path string) (html string, ok bool, err error)
}

type ScrapeConfig struct {
	LeagueURL   string
	Season      string
	Competition string
	// TeamLimit > 0 truncates the directory, for debug runs.
	TeamLimit int
}

// ScrapeSummary is what one run did, per entity. Skipped counts are
// idempotency hits: the row already existed and was left untouched.
type ScrapeSummary struct {
	TeamsDiscovered     int
	TeamsStored         int
	TeamsSkipped        int
	TeamsFailed         int
	PlayersCreated      int
	MatchesCreated      int
	MatchesSkipped      int
	AwayTeamsUnresolved int
	SquadStatsCreated   int
	SquadStatsSkipped   int
	PlayerStatsCreated  int
	PlayerStatsSkipped  int
}

// ScrapeService walks a league one squad page at a time and reconciles
// everything it finds into the store. Each team is one transaction; a
// failure rolls that team back and the run moves on.
type ScrapeService struct {
	fetcher  Fetcher
	provider StoreProvider
	cfg      ScrapeConfig
	logger   *logging.Logger
}

func NewScrapeService(fetcher Fetcher, provider StoreProvider, cfg ScrapeConfig, logger *logging.Logger) *ScrapeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScrapeService{fetcher: fetcher, provider: provider, cfg: cfg, logger: logger}
}

func (s *ScrapeService) Run(ctx context.Context) (ScrapeSummary, error) {
	ctx, span := startSpan(ctx, "scrape.run")
	defer span.End()

	var sum ScrapeSummary
	if s.cfg.LeagueURL == "" || s.cfg.Season == "" || s.cfg.Competition == "" {
		return sum, crerr.Wrap(ErrInvalidArgument, "league url, season and competition are required")
	}

	html, ok, err := s.fetcher.Get(ctx, s.cfg.LeagueURL)
	if err != nil {
		return sum, err
	}
	if !ok {
		return sum, crerr.Wrapf(ErrSourceUnavailable, "league page %s", s.cfg.LeagueURL)
	}

	teams, err := fbref.ParseTeamDirectory(html)
	if err != nil {
		return sum, crerr.WithSecondaryError(ErrSourceUnavailable, err)
	}
	sum.TeamsDiscovered = len(teams)

	if s.cfg.TeamLimit > 0 && len(teams) > s.cfg.TeamLimit {
		teams = teams[:s.cfg.TeamLimit]
		s.logger.InfoContext(ctx, "directory truncated for debug run", "limit", s.cfg.TeamLimit)
	}

	// Opponent names in match logs resolve against the directory, the
	// only place team names and ids appear together.
	externalByName := make(map[string]string, len(teams))
	for _, d := range teams {
		externalByName[normalizeName(d.Name)] = d.ExternalID
	}

	s.logger.InfoContext(ctx, "scrape started",
		"teams", len(teams), "season", s.cfg.Season, "competition", s.cfg.Competition)

	for _, desc := range teams {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		if err := s.scrapeTeam(ctx, desc, externalByName, &sum); err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			sum.TeamsFailed++
			s.logger.ErrorContext(ctx, "team failed, moving on", "team", desc.Name, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "scrape finished",
		"teams_stored", sum.TeamsStored,
		"teams_skipped", sum.TeamsSkipped,
		"teams_failed", sum.TeamsFailed,
		"players_created", sum.PlayersCreated,
		"matches_created", sum.MatchesCreated,
		"squad_stats_created", sum.SquadStatsCreated,
		"player_stats_created", sum.PlayerStatsCreated)

	return sum, nil
}

// teamOutcome accumulates inside one transaction and merges into the
// run summary only after the commit, so a rollback leaves counters true.
type teamOutcome struct {
	playersCreated     int
	matchesCreated     int
	matchesSkipped     int
	awayUnresolved     int
	squadStatsCreated  int
	squadStatsSkipped  int
	playerStatsCreated int
	playerStatsSkipped int
}

func (s *ScrapeService) scrapeTeam(ctx context.Context, desc fbref.TeamDescriptor, externalByName map[string]string, sum *ScrapeSummary) error {
	ctx, span := startSpan(ctx, "scrape.team")
	defer span.End()

	html, ok, err := s.fetcher.Get(ctx, desc.RelativeURL)
	if err != nil {
		return err
	}
	if !ok {
		sum.TeamsSkipped++
		s.logger.WarnContext(ctx, "squad page unreachable, skipping team", "team", desc.Name)
		return nil
	}

	tables, err := fbref.ExtractStatTables(html)
	if err != nil {
		return crerr.Wrapf(err, "squad page of %s", desc.Name)
	}

	matchRows, err := fbref.ParseMatchLog(html)
	if err != nil {
		s.logger.WarnContext(ctx, "no usable match log", "team", desc.Name, "error", err)
		matchRows = nil
	}

	var out teamOutcome
	err = s.provider.WithinTx(ctx, func(ctx context.Context, st Stores) error {
		t, err := s.ensureTeam(ctx, st, desc)
		if err != nil {
			return err
		}
		if err := s.reconcileMatches(ctx, st, t, matchRows, externalByName, &out); err != nil {
			return err
		}
		if err := s.reconcileSquadStats(ctx, st, t, tables, &out); err != nil {
			return err
		}
		return s.reconcilePlayerStats(ctx, st, t, tables, &out)
	})
	if err != nil {
		return err
	}

	sum.TeamsStored++
	sum.PlayersCreated += out.playersCreated
	sum.MatchesCreated += out.matchesCreated
	sum.MatchesSkipped += out.matchesSkipped
	sum.AwayTeamsUnresolved += out.awayUnresolved
	sum.SquadStatsCreated += out.squadStatsCreated
	sum.SquadStatsSkipped += out.squadStatsSkipped
	sum.PlayerStatsCreated += out.playerStatsCreated
	sum.PlayerStatsSkipped += out.playerStatsSkipped

	s.logger.InfoContext(ctx, "team stored",
		"team", desc.Name,
		"matches", out.matchesCreated,
		"players", out.playersCreated,
		"player_stats", out.playerStatsCreated)
	return nil
}

func (s *ScrapeService) ensureTeam(ctx context.Context, st Stores, desc fbref.TeamDescriptor) (team.Team, error) {
	existing, found, err := st.Teams.GetByExternalID(ctx, desc.ExternalID)
	if err != nil {
		return team.Team{}, err
	}
	if found {
		return existing, nil
	}
	return st.Teams.Create(ctx, team.Team{
		ExternalID: desc.ExternalID,
		Name:       desc.Name,
		URL:        desc.RelativeURL,
	})
}

// reconcileMatches stores the home half of the log only; the same
// fixture appears as an away row on the opponent's page and would
// otherwise be written twice. The log mixes cup and European fixtures
// in with the league, so rows outside the configured competition are
// dropped before anything else.
func (s *ScrapeService) reconcileMatches(ctx context.Context, st Stores, t team.Team, rows []fbref.MatchRow, externalByName map[string]string, out *teamOutcome) error {
	for _, row := range rows {
		if !strings.EqualFold(row.Competition, s.cfg.Competition) {
			continue
		}
		if !strings.EqualFold(row.Venue, "Home") {
			continue
		}

		exists, err := st.Matches.ExistsByDateAndHomeTeam(ctx, row.Date, t.ID)
		if err != nil {
			return err
		}
		if exists {
			out.matchesSkipped++
			continue
		}

		var awayID *int64
		if extID, ok := externalByName[normalizeName(row.Opponent)]; ok {
			away, found, err := st.Teams.GetByExternalID(ctx, extID)
			if err != nil {
				return err
			}
			if found {
				awayID = &away.ID
			}
		}
		if awayID == nil {
			out.awayUnresolved++
			s.logger.DebugContext(ctx, "opponent not resolved", "team", t.Name, "opponent", row.Opponent)
		}

		if _, err := st.Matches.Create(ctx, match.Match{
			Date:        row.Date,
			HomeTeamID:  t.ID,
			AwayTeamID:  awayID,
			HomeScore:   row.GoalsFor,
			AwayScore:   row.GoalsAgainst,
			Competition: row.Competition,
			Round:       row.Round,
			Venue:       row.Venue,
			Attendance:  row.Attendance,
		}); err != nil {
			return err
		}
		out.matchesCreated++
	}
	return nil
}

func (s *ScrapeService) reconcileSquadStats(ctx context.Context, st Stores, t team.Team, tables fbref.StatTables, out *teamOutcome) error {
	exists, err := st.SquadStats.Exists(ctx, t.ID, s.cfg.Season, s.cfg.Competition)
	if err != nil {
		return err
	}
	if exists {
		out.squadStatsSkipped++
		return nil
	}

	standard, row := findSquadRow(tables, t.Name, "standard", "for")
	if standard == nil {
		s.logger.WarnContext(ctx, "no squad standard table, skipping squad stats", "team", t.Name)
		return nil
	}

	stat := squadstat.SquadStat{
		TeamID:      t.ID,
		Season:      s.cfg.Season,
		Competition: s.cfg.Competition,
	}
	if v, ok := columnValue(row, standard.Columns, isGoalsColumn); ok {
		stat.GoalsFor = fbref.IntValue(v)
	}
	if v, ok := columnValue(row, standard.Columns, lastSegmentIs("Poss")); ok {
		stat.Possession = fbref.FloatValue(v)
	}

	// The "against" variant of the same table carries goals conceded.
	if against, row := findSquadRow(tables, t.Name, "standard", "against"); against != nil {
		if v, ok := columnValue(row, against.Columns, isGoalsColumn); ok {
			stat.GoalsAgainst = fbref.IntValue(v)
		}
	}

	if defense, row := findSquadRow(tables, t.Name, "defense", "for"); defense != nil {
		if v, ok := columnValue(row, defense.Columns, lastSegmentIs("Tkl")); ok {
			stat.Tackles = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, defense.Columns, lastSegmentIs("TklW")); ok {
			stat.TacklesWon = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, defense.Columns, lastSegmentIs("Blocks")); ok {
			stat.Blocks = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, defense.Columns, lastSegmentIs("Int")); ok {
			stat.Interceptions = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, defense.Columns, lastSegmentIs("Clr")); ok {
			stat.Clearances = fbref.IntValue(v)
		}
	}

	if _, err := st.SquadStats.Create(ctx, stat); err != nil {
		return err
	}
	out.squadStatsCreated++
	return nil
}

func (s *ScrapeService) reconcilePlayerStats(ctx context.Context, st Stores, t team.Team, tables fbref.StatTables, out *teamOutcome) error {
	table := findPlayerTable(tables, "standard")
	if table == nil {
		s.logger.WarnContext(ctx, "no player standard table, skipping player stats", "team", t.Name)
		return nil
	}

	nameCol, ok := pickColumn(table.Columns, isPlayerColumn)
	if !ok {
		nameCol = "Player"
	}

	for i, row := range table.Rows {
		name := strings.TrimSpace(row[nameCol])
		if name == "" || name == "Player" || strings.Contains(name, "Total") {
			continue
		}

		p, err := s.ensurePlayer(ctx, st, t, name, i, row, out)
		if err != nil {
			return err
		}

		exists, err := st.PlayerStats.Exists(ctx, p.ID, s.cfg.Season, s.cfg.Competition)
		if err != nil {
			return err
		}
		if exists {
			out.playerStatsSkipped++
			continue
		}

		stat := playerstat.PlayerStat{
			PlayerID:    p.ID,
			Season:      s.cfg.Season,
			Competition: s.cfg.Competition,
		}
		if v, ok := columnValue(row, table.Columns, isMinutesColumn); ok {
			stat.Minutes = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, table.Columns, isGoalsColumn); ok {
			stat.Goals = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, table.Columns, isAssistsColumn); ok {
			stat.Assists = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, table.Columns, lastSegmentIs("CrdY")); ok {
			stat.YellowCards = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, table.Columns, lastSegmentIs("CrdR")); ok {
			stat.RedCards = fbref.IntValue(v)
		}
		if v, ok := columnValue(row, table.Columns, lastSegmentIs("xG")); ok {
			stat.XG = fbref.FloatValue(v)
		}
		if v, ok := columnValue(row, table.Columns, lastSegmentIs("npxG")); ok {
			stat.NPXG = fbref.FloatValue(v)
		}
		if v, ok := columnValue(row, table.Columns, lastSegmentIs("xAG")); ok {
			stat.XAG = fbref.FloatValue(v)
		}

		if _, err := st.PlayerStats.Create(ctx, stat); err != nil {
			return err
		}
		out.playerStatsCreated++
	}
	return nil
}

// ensurePlayer resolves by (name, team) since the source exposes no
// player id inside stat tables. New players get a synthetic external id
// from the team and row position; it is stable only while the table
// order is, which idempotent skips make acceptable.
func (s *ScrapeService) ensurePlayer(ctx context.Context, st Stores, t team.Team, name string, rowIndex int, row map[string]string, out *teamOutcome) (player.Player, error) {
	existing, found, err := st.Players.GetByNameAndTeam(ctx, name, t.ID)
	if err != nil {
		return player.Player{}, err
	}
	if found {
		return existing, nil
	}

	created, err := st.Players.Create(ctx, player.Player{
		ExternalID:  fmt.Sprintf("%s_%d", t.ExternalID, rowIndex),
		Name:        name,
		Position:    strings.TrimSpace(row["Pos"]),
		Nationality: nationality(row["Nation"]),
		TeamID:      t.ID,
	})
	if err != nil {
		return player.Player{}, err
	}
	out.playersCreated++
	return created, nil
}

func findSquadRow(tables fbref.StatTables, teamName, category, side string) (*fbref.Table, map[string]string) {
	for id, table := range tables.Squad {
		if !strings.Contains(id, category) || !strings.HasSuffix(id, side) {
			continue
		}
		for _, row := range table.Rows {
			squad := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(row["Squad"]), "vs "))
			if strings.EqualFold(squad, teamName) {
				return table, row
			}
		}
		// Team pages list a single squad; league pages need the name
		// match above.
		if len(table.Rows) == 1 {
			return table, table.Rows[0]
		}
	}
	return nil, nil
}

func findPlayerTable(tables fbref.StatTables, category string) *fbref.Table {
	for id, table := range tables.Player {
		if strings.Contains(id, category) {
			return table
		}
	}
	return nil
}

// nationality cells look like "eng ENG"; the trailing code is the one
// worth keeping.
func nationality(v string) string {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
