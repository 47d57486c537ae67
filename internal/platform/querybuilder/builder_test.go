package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "name").
		From("teams").
		Where(Eq("external_id", "18bb7c10")).
		OrderBy("name").
		Limit(5).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM teams WHERE external_id = $1 ORDER BY name LIMIT 5", sql)
	assert.Equal(t, []any{"18bb7c10"}, args)
}

func TestSelectBuilderConditions(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("COUNT(*)").
		From("matches").
		Where(
			Eq("competition", "Premier League"),
			IsNotNull("home_score"),
			Expr("(home_team_id = ? OR away_team_id = ?)", int64(1), int64(1)),
		).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*) FROM matches WHERE competition = $1 AND home_score IS NOT NULL AND (home_team_id = $2 OR away_team_id = $3)",
		sql)
	assert.Equal(t, []any{"Premier League", int64(1), int64(1)}, args)
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	t.Parallel()

	_, _, err := Select("id").ToSQL()
	require.Error(t, err)
}

func TestInsertBuilderWithSuffix(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("teams").
		Columns("external_id", "name").
		Values("18bb7c10", "Arsenal").
		Suffix("RETURNING id").
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO teams (external_id, name) VALUES ($1, $2) RETURNING id", sql)
	assert.Equal(t, []any{"18bb7c10", "Arsenal"}, args)
}

func TestInsertBuilderRowMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("teams").
		Columns("external_id", "name").
		Values("only-one").
		ToSQL()
	require.Error(t, err)
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ExternalID string `db:"external_id"`
		Name       string `db:"name"`
		Ignored    string `db:"-"`
		Untagged   string
	}

	sql, args, err := InsertModel("teams", row{ExternalID: "x", Name: "Arsenal", Ignored: "no", Untagged: "no"}, "RETURNING id")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO teams (external_id, name) VALUES ($1, $2) RETURNING id", sql)
	assert.Equal(t, []any{"x", "Arsenal"}, args)
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	t.Parallel()

	_, _, err := InsertModel("teams", 42, "")
	require.Error(t, err)
}
