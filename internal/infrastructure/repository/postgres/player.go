package postgres

import (
	"context"
	"database/sql"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/player"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/querybuilder"
)

type playerRow struct {
	ID          int64          `db:"id"`
	ExternalID  sql.NullString `db:"external_id"`
	Name        string         `db:"name"`
	Position    sql.NullString `db:"position"`
	Nationality sql.NullString `db:"nationality"`
	TeamID      int64          `db:"team_id"`
}

type playerInsert struct {
	ExternalID  sql.NullString `db:"external_id"`
	Name        string         `db:"name"`
	Position    sql.NullString `db:"position"`
	Nationality sql.NullString `db:"nationality"`
	TeamID      int64          `db:"team_id"`
}

func (r playerRow) toDomain() player.Player {
	return player.Player{
		ID:          r.ID,
		ExternalID:  r.ExternalID.String,
		Name:        r.Name,
		Position:    r.Position.String,
		Nationality: r.Nationality.String,
		TeamID:      r.TeamID,
	}
}

type PlayerRepository struct {
	q Querier
}

func NewPlayerRepository(q Querier) *PlayerRepository {
	return &PlayerRepository{q: q}
}

func (r *PlayerRepository) GetByNameAndTeam(ctx context.Context, name string, teamID int64) (player.Player, bool, error) {
	query, args, err := querybuilder.
		Select("id", "external_id", "name", "position", "nationality", "team_id").
		From("players").
		Where(
			querybuilder.Eq("name", name),
			querybuilder.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, err
	}

	var row playerRow
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrap(err, "get player by name and team")
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}

	query, args, err := querybuilder.InsertModel("players", playerInsert{
		ExternalID:  nullString(p.ExternalID),
		Name:        p.Name,
		Position:    nullString(p.Position),
		Nationality: nullString(p.Nationality),
		TeamID:      p.TeamID,
	}, "RETURNING id")
	if err != nil {
		return player.Player{}, err
	}

	if err := r.q.GetContext(ctx, &p.ID, query, args...); err != nil {
		return player.Player{}, crerr.Wrap(err, "create player")
	}
	return p, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.q, "players")
}
