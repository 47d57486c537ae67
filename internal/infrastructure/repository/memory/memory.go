// Package memory holds in-memory repositories mirroring the postgres
// implementations. They back unit tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/match"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/player"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/playerstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/squadstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/domain/team"
	"github.com/MironKaigorodcev/ETLfootball/internal/usecase"
)

// StoreProvider keeps all five repositories over shared state. WithinTx
// runs the unit of work directly; there is no rollback, which is fine for
// the tests it serves.
type StoreProvider struct {
	mu sync.Mutex

	teams       *TeamRepository
	players     *PlayerRepository
	matches     *MatchRepository
	squadStats  *SquadStatRepository
	playerStats *PlayerStatRepository
}

func NewStoreProvider() *StoreProvider {
	p := &StoreProvider{
		teams:       NewTeamRepository(),
		players:     NewPlayerRepository(),
		matches:     NewMatchRepository(),
		squadStats:  NewSquadStatRepository(),
		playerStats: NewPlayerStatRepository(),
	}
	p.playerStats.Bind(p.players, p.teams)
	return p
}

func (p *StoreProvider) Stores() usecase.Stores {
	return usecase.Stores{
		Teams:       p.teams,
		Players:     p.players,
		Matches:     p.matches,
		SquadStats:  p.squadStats,
		PlayerStats: p.playerStats,
	}
}

func (p *StoreProvider) WithinTx(ctx context.Context, fn func(ctx context.Context, s usecase.Stores) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(ctx, p.Stores())
}

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	teams  map[int64]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{nextID: 1, teams: map[int64]team.Team{}}
}

func (r *TeamRepository) GetByExternalID(_ context.Context, externalID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.teams {
		if t.ExternalID == externalID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.teams[id]
	return t, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	if err := t.Validate(); err != nil {
		return team.Team{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.ExternalID == t.ExternalID {
			return team.Team{}, crerr.Newf("team %q already exists", t.ExternalID)
		}
	}
	t.ID = r.nextID
	r.nextID++
	r.teams[t.ID] = t
	return t, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	teams := make([]team.Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (r *TeamRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.teams), nil
}

type PlayerRepository struct {
	mu      sync.RWMutex
	nextID  int64
	players map[int64]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{nextID: 1, players: map[int64]player.Player{}}
}

func (r *PlayerRepository) GetByNameAndTeam(_ context.Context, name string, teamID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) && p.TeamID == teamID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.players[p.ID] = p
	return p, nil
}

func (r *PlayerRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players), nil
}

type MatchRepository struct {
	mu      sync.RWMutex
	nextID  int64
	matches map[int64]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{nextID: 1, matches: map[int64]match.Match{}}
}

func (r *MatchRepository) ExistsByDateAndHomeTeam(_ context.Context, date time.Time, homeTeamID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.matches {
		if m.HomeTeamID == homeTeamID && m.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) (match.Match, error) {
	if err := m.Validate(); err != nil {
		return match.Match{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	r.matches[m.ID] = m
	return m, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []match.Match
	for _, m := range r.matches {
		if m.HomeTeamID == teamID || (m.AwayTeamID != nil && *m.AwayTeamID == teamID) {
			matches = append(matches, m)
		}
	}
	sortMatches(matches)
	return matches, nil
}

func (r *MatchRepository) ListPlayed(_ context.Context, competition string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []match.Match
	for _, m := range r.matches {
		if m.Competition == competition && m.Played() {
			matches = append(matches, m)
		}
	}
	sortMatches(matches)
	return matches, nil
}

func (r *MatchRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches), nil
}

func sortMatches(matches []match.Match) {
	sort.Slice(matches, func(i, j int) bool { return matches[i].Date.Before(matches[j].Date) })
}

type SquadStatRepository struct {
	mu     sync.RWMutex
	nextID int64
	stats  map[int64]squadstat.SquadStat
}

func NewSquadStatRepository() *SquadStatRepository {
	return &SquadStatRepository{nextID: 1, stats: map[int64]squadstat.SquadStat{}}
}

func (r *SquadStatRepository) Exists(_ context.Context, teamID int64, season, competition string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.stats {
		if s.TeamID == teamID && s.Season == season && s.Competition == competition {
			return true, nil
		}
	}
	return false, nil
}

func (r *SquadStatRepository) Create(_ context.Context, s squadstat.SquadStat) (squadstat.SquadStat, error) {
	if err := s.Validate(); err != nil {
		return squadstat.SquadStat{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.stats[s.ID] = s
	return s, nil
}

func (r *SquadStatRepository) GetByTeam(_ context.Context, teamID int64, season, competition string) (squadstat.SquadStat, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.stats {
		if s.TeamID == teamID && s.Season == season && s.Competition == competition {
			return s, true, nil
		}
	}
	return squadstat.SquadStat{}, false, nil
}

func (r *SquadStatRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stats), nil
}

type PlayerStatRepository struct {
	mu      sync.RWMutex
	nextID  int64
	stats   map[int64]playerstat.PlayerStat
	players *PlayerRepository
	teams   *TeamRepository
}

func NewPlayerStatRepository() *PlayerStatRepository {
	return &PlayerStatRepository{nextID: 1, stats: map[int64]playerstat.PlayerStat{}}
}

// Bind wires the player and team repositories the top scorer listing
// joins against.
func (r *PlayerStatRepository) Bind(players *PlayerRepository, teams *TeamRepository) {
	r.players = players
	r.teams = teams
}

func (r *PlayerStatRepository) Exists(_ context.Context, playerID int64, season, competition string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.stats {
		if s.PlayerID == playerID && s.Season == season && s.Competition == competition {
			return true, nil
		}
	}
	return false, nil
}

func (r *PlayerStatRepository) Create(_ context.Context, s playerstat.PlayerStat) (playerstat.PlayerStat, error) {
	if err := s.Validate(); err != nil {
		return playerstat.PlayerStat{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.stats[s.ID] = s
	return s, nil
}

func (r *PlayerStatRepository) ListTopScorers(ctx context.Context, season, competition string, limit int) ([]playerstat.TopScorer, error) {
	r.mu.RLock()
	lines := make([]playerstat.PlayerStat, 0, len(r.stats))
	for _, s := range r.stats {
		if s.Season == season && s.Competition == competition {
			lines = append(lines, s)
		}
	}
	r.mu.RUnlock()

	var scorers []playerstat.TopScorer
	for _, s := range lines {
		entry := playerstat.TopScorer{Goals: s.Goals, Assists: s.Assists, Minutes: s.Minutes}
		if r.players != nil {
			if p, ok := r.players.byID(s.PlayerID); ok {
				entry.PlayerName = p.Name
				if r.teams != nil {
					if t, _, _ := r.teams.GetByID(ctx, p.TeamID); t.ID != 0 {
						entry.TeamName = t.Name
					}
				}
			}
		}
		scorers = append(scorers, entry)
	}

	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Goals != scorers[j].Goals {
			return scorers[i].Goals > scorers[j].Goals
		}
		if scorers[i].Assists != scorers[j].Assists {
			return scorers[i].Assists > scorers[j].Assists
		}
		return scorers[i].PlayerName < scorers[j].PlayerName
	})
	if limit > 0 && len(scorers) > limit {
		scorers = scorers[:limit]
	}
	return scorers, nil
}

func (r *PlayerStatRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stats), nil
}

func (r *PlayerRepository) byID(id int64) (player.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}
