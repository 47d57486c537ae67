package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalColumnMatching(t *testing.T) {
	t.Parallel()

	assert.True(t, isGoalsColumn("Performance_Gls"))
	assert.True(t, isGoalsColumn("Gls"))
	assert.False(t, isGoalsColumn("Expected_xG"))
	assert.False(t, isGoalsColumn("Per 90 Minutes_npxG"))
	assert.False(t, isGoalsColumn("Performance_Ast"))

	assert.True(t, isAssistsColumn("Performance_Ast"))
	assert.False(t, isAssistsColumn("Expected_xAG"))

	assert.True(t, isMinutesColumn("Playing Time_Min"))
	assert.False(t, isMinutesColumn("Per 90 Minutes_Gls"))
}

func TestColumnPicking(t *testing.T) {
	t.Parallel()

	columns := []string{"Squad", "Tackles_Tkl", "Tackles_TklW", "Int"}

	col, ok := pickColumn(columns, lastSegmentIs("TklW"))
	assert.True(t, ok)
	assert.Equal(t, "Tackles_TklW", col)

	_, ok = pickColumn(columns, lastSegmentIs("Clr"))
	assert.False(t, ok)

	v, ok := columnValue(map[string]string{"Int": "280"}, columns, lastSegmentIs("Int"))
	assert.True(t, ok)
	assert.Equal(t, "280", v)
}
