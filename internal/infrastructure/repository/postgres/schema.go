package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

// Schema bootstrap for scrape runs against a fresh database. The
// statements match db/migrations; use the migration binary for anything
// beyond a first run.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id          BIGSERIAL PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		url         TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id          BIGSERIAL PRIMARY KEY,
		external_id TEXT,
		name        TEXT NOT NULL,
		position    TEXT,
		nationality TEXT,
		team_id     BIGINT NOT NULL REFERENCES teams (id),
		UNIQUE (name, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id           BIGSERIAL PRIMARY KEY,
		date         DATE NOT NULL,
		home_team_id BIGINT NOT NULL REFERENCES teams (id),
		away_team_id BIGINT REFERENCES teams (id),
		home_score   INTEGER,
		away_score   INTEGER,
		competition  TEXT,
		round        TEXT,
		venue        TEXT,
		attendance   INTEGER,
		UNIQUE (date, home_team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS squad_stats (
		id            BIGSERIAL PRIMARY KEY,
		team_id       BIGINT NOT NULL REFERENCES teams (id),
		season        TEXT NOT NULL,
		competition   TEXT NOT NULL,
		goals_for     INTEGER NOT NULL DEFAULT 0,
		goals_against INTEGER NOT NULL DEFAULT 0,
		possession    DOUBLE PRECISION NOT NULL DEFAULT 0,
		tackles       INTEGER NOT NULL DEFAULT 0,
		tackles_won   INTEGER NOT NULL DEFAULT 0,
		blocks        INTEGER NOT NULL DEFAULT 0,
		interceptions INTEGER NOT NULL DEFAULT 0,
		clearances    INTEGER NOT NULL DEFAULT 0,
		UNIQUE (team_id, season, competition)
	)`,
	`CREATE TABLE IF NOT EXISTS player_stats (
		id           BIGSERIAL PRIMARY KEY,
		player_id    BIGINT NOT NULL REFERENCES players (id),
		season       TEXT NOT NULL,
		competition  TEXT NOT NULL,
		minutes      INTEGER NOT NULL DEFAULT 0,
		goals        INTEGER NOT NULL DEFAULT 0,
		assists      INTEGER NOT NULL DEFAULT 0,
		yellow_cards INTEGER NOT NULL DEFAULT 0,
		red_cards    INTEGER NOT NULL DEFAULT 0,
		xg           DOUBLE PRECISION NOT NULL DEFAULT 0,
		npxg         DOUBLE PRECISION NOT NULL DEFAULT 0,
		xag          DOUBLE PRECISION NOT NULL DEFAULT 0,
		UNIQUE (player_id, season, competition)
	)`,
}

func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return crerr.Wrap(err, "ensure schema")
		}
	}
	return nil
}
