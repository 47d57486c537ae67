package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/squadstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/querybuilder"
)

type squadStatRow struct {
	ID            int64   `db:"id"`
	TeamID        int64   `db:"team_id"`
	Season        string  `db:"season"`
	Competition   string  `db:"competition"`
	GoalsFor      int     `db:"goals_for"`
	GoalsAgainst  int     `db:"goals_against"`
	Possession    float64 `db:"possession"`
	Tackles       int     `db:"tackles"`
	TacklesWon    int     `db:"tackles_won"`
	Blocks        int     `db:"blocks"`
	Interceptions int     `db:"interceptions"`
	Clearances    int     `db:"clearances"`
}

type squadStatInsert struct {
	TeamID        int64   `db:"team_id"`
	Season        string  `db:"season"`
	Competition   string  `db:"competition"`
	GoalsFor      int     `db:"goals_for"`
	GoalsAgainst  int     `db:"goals_against"`
	Possession    float64 `db:"possession"`
	Tackles       int     `db:"tackles"`
	TacklesWon    int     `db:"tackles_won"`
	Blocks        int     `db:"blocks"`
	Interceptions int     `db:"interceptions"`
	Clearances    int     `db:"clearances"`
}

func (r squadStatRow) toDomain() squadstat.SquadStat {
	return squadstat.SquadStat{
		ID:            r.ID,
		TeamID:        r.TeamID,
		Season:        r.Season,
		Competition:   r.Competition,
		GoalsFor:      r.GoalsFor,
		GoalsAgainst:  r.GoalsAgainst,
		Possession:    r.Possession,
		Tackles:       r.Tackles,
		TacklesWon:    r.TacklesWon,
		Blocks:        r.Blocks,
		Interceptions: r.Interceptions,
		Clearances:    r.Clearances,
	}
}

type SquadStatRepository struct {
	q Querier
}

func NewSquadStatRepository(q Querier) *SquadStatRepository {
	return &SquadStatRepository{q: q}
}

func (r *SquadStatRepository) Exists(ctx context.Context, teamID int64, season, competition string) (bool, error) {
	query, args, err := querybuilder.
		Select("COUNT(*)").
		From("squad_stats").
		Where(
			querybuilder.Eq("team_id", teamID),
			querybuilder.Eq("season", season),
			querybuilder.Eq("competition", competition),
		).
		ToSQL()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.q.GetContext(ctx, &count, query, args...); err != nil {
		return false, crerr.Wrap(err, "check squad stat exists")
	}
	return count > 0, nil
}

func (r *SquadStatRepository) Create(ctx context.Context, s squadstat.SquadStat) (squadstat.SquadStat, error) {
	if err := s.Validate(); err != nil {
		return squadstat.SquadStat{}, err
	}

	query, args, err := querybuilder.InsertModel("squad_stats", squadStatInsert{
		TeamID:        s.TeamID,
		Season:        s.Season,
		Competition:   s.Competition,
		GoalsFor:      s.GoalsFor,
		GoalsAgainst:  s.GoalsAgainst,
		Possession:    s.Possession,
		Tackles:       s.Tackles,
		TacklesWon:    s.TacklesWon,
		Blocks:        s.Blocks,
		Interceptions: s.Interceptions,
		Clearances:    s.Clearances,
	}, "RETURNING id")
	if err != nil {
		return squadstat.SquadStat{}, err
	}

	if err := r.q.GetContext(ctx, &s.ID, query, args...); err != nil {
		return squadstat.SquadStat{}, crerr.Wrap(err, "create squad stat")
	}
	return s, nil
}

func (r *SquadStatRepository) GetByTeam(ctx context.Context, teamID int64, season, competition string) (squadstat.SquadStat, bool, error) {
	query, args, err := querybuilder.
		Select("id", "team_id", "season", "competition", "goals_for", "goals_against",
			"possession", "tackles", "tackles_won", "blocks", "interceptions", "clearances").
		From("squad_stats").
		Where(
			querybuilder.Eq("team_id", teamID),
			querybuilder.Eq("season", season),
			querybuilder.Eq("competition", competition),
		).
		ToSQL()
	if err != nil {
		return squadstat.SquadStat{}, false, err
	}

	var row squadStatRow
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squadstat.SquadStat{}, false, nil
		}
		return squadstat.SquadStat{}, false, crerr.Wrap(err, "get squad stat")
	}
	return row.toDomain(), true, nil
}

func (r *SquadStatRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.q, "squad_stats")
}
