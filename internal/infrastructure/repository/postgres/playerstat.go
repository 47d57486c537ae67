package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/MironKaigorodcev/ETLfootball/internal/domain/playerstat"
	"github.com/MironKaigorodcev/ETLfootball/internal/platform/querybuilder"
)

type playerStatInsert struct {
	PlayerID    int64   `db:"player_id"`
	Season      string  `db:"season"`
	Competition string  `db:"competition"`
	Minutes     int     `db:"minutes"`
	Goals       int     `db:"goals"`
	Assists     int     `db:"assists"`
	YellowCards int     `db:"yellow_cards"`
	RedCards    int     `db:"red_cards"`
	XG          float64 `db:"xg"`
	NPXG        float64 `db:"npxg"`
	XAG         float64 `db:"xag"`
}

type topScorerRow struct {
	PlayerName string `db:"player_name"`
	TeamName   string `db:"team_name"`
	Goals      int    `db:"goals"`
	Assists    int    `db:"assists"`
	Minutes    int    `db:"minutes"`
}

type PlayerStatRepository struct {
	q Querier
}

func NewPlayerStatRepository(q Querier) *PlayerStatRepository {
	return &PlayerStatRepository{q: q}
}

func (r *PlayerStatRepository) Exists(ctx context.Context, playerID int64, season, competition string) (bool, error) {
	query, args, err := querybuilder.
		Select("COUNT(*)").
		From("player_stats").
		Where(
			querybuilder.Eq("player_id", playerID),
			querybuilder.Eq("season", season),
			querybuilder.Eq("competition", competition),
		).
		ToSQL()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.q.GetContext(ctx, &count, query, args...); err != nil {
		return false, crerr.Wrap(err, "check player stat exists")
	}
	return count > 0, nil
}

func (r *PlayerStatRepository) Create(ctx context.Context, s playerstat.PlayerStat) (playerstat.PlayerStat, error) {
	if err := s.Validate(); err != nil {
		return playerstat.PlayerStat{}, err
	}

	query, args, err := querybuilder.InsertModel("player_stats", playerStatInsert{
		PlayerID:    s.PlayerID,
		Season:      s.Season,
		Competition: s.Competition,
		Minutes:     s.Minutes,
		Goals:       s.Goals,
		Assists:     s.Assists,
		YellowCards: s.YellowCards,
		RedCards:    s.RedCards,
		XG:          s.XG,
		NPXG:        s.NPXG,
		XAG:         s.XAG,
	}, "RETURNING id")
	if err != nil {
		return playerstat.PlayerStat{}, err
	}

	if err := r.q.GetContext(ctx, &s.ID, query, args...); err != nil {
		return playerstat.PlayerStat{}, crerr.Wrap(err, "create player stat")
	}
	return s, nil
}

func (r *PlayerStatRepository) ListTopScorers(ctx context.Context, season, competition string, limit int) ([]playerstat.TopScorer, error) {
	query, args, err := querybuilder.
		Select("p.name AS player_name", "t.name AS team_name",
			"ps.goals", "ps.assists", "ps.minutes").
		From("player_stats ps JOIN players p ON p.id = ps.player_id JOIN teams t ON t.id = p.team_id").
		Where(
			querybuilder.Eq("ps.season", season),
			querybuilder.Eq("ps.competition", competition),
		).
		OrderBy("ps.goals DESC", "ps.assists DESC", "p.name").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []topScorerRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list top scorers")
	}

	scorers := make([]playerstat.TopScorer, 0, len(rows))
	for _, row := range rows {
		scorers = append(scorers, playerstat.TopScorer{
			PlayerName: row.PlayerName,
			TeamName:   row.TeamName,
			Goals:      row.Goals,
			Assists:    row.Assists,
			Minutes:    row.Minutes,
		})
	}
	return scorers, nil
}

func (r *PlayerStatRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.q, "player_stats")
}
