package fbref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squadPage = `
<html><body>
<div>
<!--
<table id="stats_squads_standard_for">
  <thead>
    <tr><th colspan="2" class="over_header"></th><th colspan="2">Performance</th></tr>
    <tr><th>Squad</th><th>Poss</th><th>Gls</th><th>Ast</th></tr>
  </thead>
  <tbody>
    <tr><th>Arsenal</th><td>58.9</td><td>91</td><td>66</td></tr>
  </tbody>
</table>
-->
</div>
<table id="stats_standard_9">
  <thead>
    <tr><th>Player</th><th>Min</th><th>Gls</th></tr>
  </thead>
  <tbody>
    <tr class="thead"><th>Player</th><td>Min</td><td>Gls</td></tr>
    <tr><th>Bukayo Saka</th><td>2,850</td><td>16</td></tr>
    <tr class="spacer"><td></td><td></td><td></td></tr>
  </tbody>
</table>
<table id="matchlogs_for">
  <thead><tr><th>Date</th></tr></thead>
  <tbody><tr><th>2023-08-12</th></tr></tbody>
</table>
</body></html>`

func TestExtractStatTables(t *testing.T) {
	t.Parallel()

	got, err := ExtractStatTables(squadPage)
	require.NoError(t, err)

	require.Contains(t, got.Squad, "stats_squads_standard_for", "comment-hidden tables are parsed")
	require.Contains(t, got.Player, "stats_standard_9")
	assert.NotContains(t, got.Player, "matchlogs_for", "match logs are not stats tables")

	squad := got.Squad["stats_squads_standard_for"]
	assert.Equal(t, []string{"Squad", "Poss", "Performance_Gls", "Performance_Ast"}, squad.Columns)
	require.Len(t, squad.Rows, 1)
	assert.Equal(t, "Arsenal", squad.Rows[0]["Squad"])
	assert.Equal(t, "91", squad.Rows[0]["Performance_Gls"])

	player := got.Player["stats_standard_9"]
	require.Len(t, player.Rows, 1, "repeated header and spacer rows are dropped")
	assert.Equal(t, "Bukayo Saka", player.Rows[0]["Player"])
	assert.Equal(t, "2,850", player.Rows[0]["Min"])
}

func TestClassifyTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id   string
		want tableKind
	}{
		{"stats_squads_standard_for", kindSquad},
		{"stats_squads_defense_against", kindSquad},
		{"stats_standard_9", kindPlayer},
		{"stats_keeper_9", kindPlayer},
		{"matchlogs_for", kindSkip},
		{"results_fixtures", kindSkip},
		{"scores_all", kindSkip},
		{"", kindSkip},
		{"some_other_table", kindSkip},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyTable(tc.id), "id %q", tc.id)
	}
}

func TestFlattenHeaderSingleLevel(t *testing.T) {
	t.Parallel()

	tables, err := parseTables(`<table id="t"><thead><tr><th>A</th><th>B</th></tr></thead><tbody></tbody></table>`)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"A", "B"}, tables[0].Columns)
}

func TestFlattenHeaderAllPlaceholderColumn(t *testing.T) {
	t.Parallel()

	tables, err := parseTables(`<table id="t"><thead>
<tr><th></th><th colspan="2">Performance</th></tr>
<tr><th>Unnamed: 0</th><th>Gls</th><th>Ast</th></tr>
</thead><tbody></tbody></table>`)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Unnamed: 0", "Performance_Gls", "Performance_Ast"}, tables[0].Columns,
		"an all-placeholder column keeps its innermost label")
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2850, IntValue("2,850"))
	assert.Equal(t, 12, IntValue("12 (3)"))
	assert.Equal(t, 0, IntValue(""))
	assert.Equal(t, 0, IntValue("n/a"))
	assert.InDelta(t, 58.9, FloatValue("58.9%"), 1e-9)
	assert.Nil(t, OptionalInt(""))
	if v := OptionalInt("0"); assert.NotNil(t, v) {
		assert.Equal(t, 0, *v)
	}
}
