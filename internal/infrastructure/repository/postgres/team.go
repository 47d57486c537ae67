package postgres

import (
	"context"
	"database/sql"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/team"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/querybuilder"
)

type teamRow struct {
	ID         int64          `db:"id"`
	ExternalID string         `db:"external_id"`
	Name       string         `db:"name"`
	URL        sql.NullString `db:"url"`
}

type teamInsert struct {
	ExternalID string         `db:"external_id"`
	Name       string         `db:"name"`
	URL        sql.NullString `db:"url"`
}

func (r teamRow) toDomain() team.Team {
	return team.Team{
		ID:         r.ID,
		ExternalID: r.ExternalID,
		Name:       r.Name,
		URL:        r.URL.String,
	}
}

type TeamRepository struct {
	q Querier
}

func NewTeamRepository(q Querier) *TeamRepository {
	return &TeamRepository{q: q}
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID string) (team.Team, bool, error) {
	query, args, err := querybuilder.
		Select("id", "external_id", "name", "url").
		From("teams").
		Where(querybuilder.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, err
	}

	var row teamRow
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrap(err, "get team by external id")
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := querybuilder.
		Select("id", "external_id", "name", "url").
		From("teams").
		Where(querybuilder.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, err
	}

	var row teamRow
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrap(err, "get team by id")
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	if err := t.Validate(); err != nil {
		return team.Team{}, err
	}

	query, args, err := querybuilder.InsertModel("teams", teamInsert{
		ExternalID: t.ExternalID,
		Name:       t.Name,
		URL:        nullString(t.URL),
	}, "RETURNING id")
	if err != nil {
		return team.Team{}, err
	}

	if err := r.q.GetContext(ctx, &t.ID, query, args...); err != nil {
		return team.Team{}, crerr.Wrap(err, "create team")
	}
	return t, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := querybuilder.
		Select("id", "external_id", "name", "url").
		From("teams").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []teamRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list teams")
	}

	teams := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toDomain())
	}
	return teams, nil
}

func (r *TeamRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.q, "teams")
}
