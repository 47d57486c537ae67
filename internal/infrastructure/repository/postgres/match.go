package postgres

import (
	"context"
	"database/sql"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/match"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/querybuilder"
)

var matchColumns = []string{
	"id", "date", "home_team_id", "away_team_id", "home_score",
	"away_score", "competition", "round", "venue", "attendance",
}

type matchRow struct {
	ID          int64          `db:"id"`
	Date        time.Time      `db:"date"`
	HomeTeamID  int64          `db:"home_team_id"`
	AwayTeamID  sql.NullInt64  `db:"away_team_id"`
	HomeScore   sql.NullInt64  `db:"home_score"`
	AwayScore   sql.NullInt64  `db:"away_score"`
	Competition sql.NullString `db:"competition"`
	Round       sql.NullString `db:"round"`
	Venue       sql.NullString `db:"venue"`
	Attendance  sql.NullInt64  `db:"attendance"`
}

type matchInsert struct {
	Date        time.Time      `db:"date"`
	HomeTeamID  int64          `db:"home_team_id"`
	AwayTeamID  sql.NullInt64  `db:"away_team_id"`
	HomeScore   sql.NullInt64  `db:"home_score"`
	AwayScore   sql.NullInt64  `db:"away_score"`
	Competition sql.NullString `db:"competition"`
	Round       sql.NullString `db:"round"`
	Venue       sql.NullString `db:"venue"`
	Attendance  sql.NullInt64  `db:"attendance"`
}

func (r matchRow) toDomain() match.Match {
	return match.Match{
		ID:          r.ID,
		Date:        r.Date,
		HomeTeamID:  r.HomeTeamID,
		AwayTeamID:  int64Ptr(r.AwayTeamID),
		HomeScore:   intPtr(r.HomeScore),
		AwayScore:   intPtr(r.AwayScore),
		Competition: r.Competition.String,
		Round:       r.Round.String,
		Venue:       r.Venue.String,
		Attendance:  intPtr(r.Attendance),
	}
}

type MatchRepository struct {
	q Querier
}

func NewMatchRepository(q Querier) *MatchRepository {
	return &MatchRepository{q: q}
}

func (r *MatchRepository) ExistsByDateAndHomeTeam(ctx context.Context, date time.Time, homeTeamID int64) (bool, error) {
	query, args, err := querybuilder.
		Select("COUNT(*)").
		From("matches").
		Where(
			querybuilder.Eq("date", date),
			querybuilder.Eq("home_team_id", homeTeamID),
		).
		ToSQL()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.q.GetContext(ctx, &count, query, args...); err != nil {
		return false, crerr.Wrap(err, "check match exists")
	}
	return count > 0, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	if err := m.Validate(); err != nil {
		return match.Match{}, err
	}

	query, args, err := querybuilder.InsertModel("matches", matchInsert{
		Date:        m.Date,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  nullInt64Ptr(m.AwayTeamID),
		HomeScore:   nullIntPtr(m.HomeScore),
		AwayScore:   nullIntPtr(m.AwayScore),
		Competition: nullString(m.Competition),
		Round:       nullString(m.Round),
		Venue:       nullString(m.Venue),
		Attendance:  nullIntPtr(m.Attendance),
	}, "RETURNING id")
	if err != nil {
		return match.Match{}, err
	}

	if err := r.q.GetContext(ctx, &m.ID, query, args...); err != nil {
		return match.Match{}, crerr.Wrap(err, "create match")
	}
	return m, nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID int64) ([]match.Match, error) {
	query, args, err := querybuilder.
		Select(matchColumns...).
		From("matches").
		Where(querybuilder.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID)).
		OrderBy("date").
		ToSQL()
	if err != nil {
		return nil, err
	}
	return r.selectMatches(ctx, query, args)
}

// ListPlayed returns every finished match of a competition, oldest first.
func (r *MatchRepository) ListPlayed(ctx context.Context, competition string) ([]match.Match, error) {
	query, args, err := querybuilder.
		Select(matchColumns...).
		From("matches").
		Where(
			querybuilder.Eq("competition", competition),
			querybuilder.IsNotNull("home_score"),
			querybuilder.IsNotNull("away_score"),
		).
		OrderBy("date").
		ToSQL()
	if err != nil {
		return nil, err
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list matches")
	}

	matches := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, row.toDomain())
	}
	return matches, nil
}

func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.q, "matches")
}
