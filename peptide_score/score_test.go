package peptide_score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
)

func TestScoreSumsPresentDescriptors(t *testing.T) {
	// "ABC": window 3, gap 1 -> ABC, _BC, A_C, AB_
	table := score_table.Table{
		"ABC": {Score: 1.5},
		"A_C": {Score: -0.5},
		"XYZ": {Score: 100},
	}
	assert.InDelta(t, 1.0, Score("ABC", table, reduction.NoReduction), 1e-12)
	assert.InDelta(t, 1.0/3.0, ScoreNormalized("ABC", table, reduction.NoReduction), 1e-12)
}

func TestScoreCountsRepeatedDescriptors(t *testing.T) {
	// "AAAA": window 4 gap 2 -> AAAA, 4 single gaps, 6 double gaps
	table := score_table.Table{"AAAA": {Score: 1}, "_AAA": {Score: 0.25}, "A__A": {Score: 2}}
	assert.InDelta(t, 1+0.25+2, Score("AAAA", table, reduction.NoReduction), 1e-12)
}

func TestScoreUsesReduction(t *testing.T) {
	// RGL under RED6 -> PBA
	table := score_table.Table{"PBA": {Score: 2}, "P_A": {Score: 1}}
	assert.InDelta(t, 3.0, Score("RGL", table, reduction.RED6), 1e-12)
	assert.Zero(t, Score("RGL", table, reduction.NoReduction))
}

func TestScoreEmptyAndMisses(t *testing.T) {
	table := score_table.Table{"ABC": {Score: 1}}
	assert.Zero(t, Score("", table, reduction.NoReduction))
	assert.Zero(t, ScoreNormalized("", table, reduction.NoReduction))
	assert.Zero(t, Score("KKKKK", table, reduction.NoReduction))
	assert.ErrorIs(t, Validate(""), ErrEmptyInput)
	assert.NoError(t, Validate("A"))
}

func TestScoreDoesNotMutateTable(t *testing.T) {
	table := score_table.Table{"ABC": {Positive: 1, Score: 1}}
	before := len(table)
	Score("ABCDEFG", table, reduction.NoReduction)
	assert.Len(t, table, before)
}

func TestContributions(t *testing.T) {
	table := score_table.Table{"AAA": {Score: 0.5}, "_AA": {Score: -2}}
	c := Contributions("AAAA", table, reduction.NoReduction)
	require.Len(t, c, 0) // window is 4 for a 4-mer; none of these keys occur

	c = Contributions("AAA", table, reduction.NoReduction)
	require.Len(t, c, 2)
	assert.Equal(t, "_AA", c[0].Descriptor)
	assert.Equal(t, 1, c[0].Occurrences)
	total := 0.0
	for _, x := range c {
		total += x.Total
	}
	assert.InDelta(t, Score("AAA", table, reduction.NoReduction), total, 1e-12)
}
