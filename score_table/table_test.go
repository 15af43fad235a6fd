package score_table

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peptide_design_go/descriptor_db"
	common "peptide_design_go/utils"
)

func TestBuildLaplaceScore(t *testing.T) {
	table := Build(descriptor_db.Corpus{"XYZ": 3}, descriptor_db.Corpus{})
	e, ok := table["XYZ"]
	require.True(t, ok)
	assert.Equal(t, uint64(3), e.Positive)
	assert.Equal(t, uint64(0), e.Negative)
	assert.InDelta(t, 1.3862943611, e.Score, 1e-9)
}

func TestBuildUnionAndSign(t *testing.T) {
	pos := descriptor_db.Corpus{"AAA": 5, "A_A": 2, "BBB": 1}
	neg := descriptor_db.Corpus{"A_A": 2, "BBB": 4, "CCC": 7}
	table := Build(pos, neg)
	require.Len(t, table, 4)

	for d, e := range table {
		assert.InDelta(t, math.Log(float64(e.Positive+1)/float64(e.Negative+1)), e.Score, 1e-12, d)
		assert.Equal(t, e.Positive > e.Negative, e.Score > 0, d)
		assert.Equal(t, e.Positive == e.Negative, e.Score == 0, d)
	}
	assert.Equal(t, Entry{Positive: 0, Negative: 7, Score: math.Log(1.0 / 8.0)}, table["CCC"])
}

func TestRoundTrip(t *testing.T) {
	table := Build(
		descriptor_db.Corpus{"PBAPP": 12, "P_APP": 3, "__A_P": 1, "BU": 9},
		descriptor_db.Corpus{"PBAPP": 2, "UUUUU": 40, "BU": 9},
	)
	var buf bytes.Buffer
	_, err := table.WriteTo(&buf)
	require.NoError(t, err)

	loaded, err := Load(&buf, "mem")
	require.NoError(t, err)
	require.Len(t, loaded, len(table))
	for d, want := range table {
		got, ok := loaded[d]
		require.True(t, ok, d)
		assert.Equal(t, want.Positive, got.Positive, d)
		assert.Equal(t, want.Negative, got.Negative, d)
		assert.InDelta(t, want.Score, got.Score, 1e-9, d)
	}
}

func TestRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unique_set.tsv")
	table := Build(descriptor_db.Corpus{"ABC": 1}, descriptor_db.Corpus{"ABD": 1})
	require.NoError(t, table.WriteFile(path))
	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, table, loaded)
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	_, err := Table{"XYZ": {Positive: 3, Negative: 0, Score: LogOdds(3, 0)}}.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "XYZ\t[3, 0, 1.3862943611198906]\n", buf.String())
}

func TestLoadReferenceShape(t *testing.T) {
	in := "PBA_P\t[3, 0, 1.3862943611198906]\nPP__B\t[0.0, 2.0, -1.0986122886681098]\r\n\n"
	table, err := Load(strings.NewReader(in), "ref")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), table["PBA_P"].Positive)
	assert.Equal(t, uint64(2), table["PP__B"].Negative)
	assert.InDelta(t, -1.0986122886681098, table["PP__B"].Score, 1e-12)
}

func TestLoadFormatErrors(t *testing.T) {
	cases := map[string]string{
		"no tab":      "ABC [1, 0, 0.69]\n",
		"non numeric": "ABC\t[1, x, 0.69]\n",
		"bad score":   "ABC\t[1, 0, abc]\n",
		"wrong arity": "ABC\t[1, 0]\n",
		"no brackets": "ABC\t1, 0, 0.69\n",
		"negative":    "ABC\t[-1, 0, 0.69]\n",
		"fractional":  "ABC\t[1.5, 0, 0.69]\n",
		"empty key":   "\t[1, 0, 0.69]\n",
	}
	for name, in := range cases {
		_, err := Load(strings.NewReader("GOOD\t[1, 1, 0]\n"+in), "bad.tsv")
		require.Error(t, err, name)
		var fe *common.FormatError
		require.True(t, errors.As(err, &fe), name)
		assert.Equal(t, 2, fe.Line, name)
		assert.Equal(t, "bad.tsv", fe.Source, name)
	}
}

func TestLookupMissScoresZero(t *testing.T) {
	table := Table{"AAA": {Score: 2}}
	s, ok := table.Lookup("BBB")
	assert.False(t, ok)
	assert.Zero(t, s)
	s, ok = table.Lookup("AAA")
	assert.True(t, ok)
	assert.Equal(t, 2.0, s)
}

func TestSummarize(t *testing.T) {
	s, err := Table{}.Summarize()
	require.NoError(t, err)
	assert.Zero(t, s.Descriptors)

	table := Table{"A": {Score: -1}, "B": {Score: 0}, "C": {Score: 2}, "D": {Score: 3}}
	s, err = table.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 4, s.Descriptors)
	assert.Equal(t, -1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.Equal(t, 1.0, s.Median)
	assert.Equal(t, 1.0, s.Mean)
	assert.Equal(t, 0.5, s.PositiveShare)
}
