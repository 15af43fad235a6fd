package kmer_analyzer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peptide_design_go/reduction"
)

func TestGenerateABCD(t *testing.T) {
	got := Generate("ABCD", 3, 1, reduction.NoReduction)
	want := []string{
		"ABC", "BCD",
		"_BC", "A_C", "AB_", "_CD", "B_D", "BC_",
	}
	assert.Equal(t, want, got)
}

func TestGenerateContiguousOnly(t *testing.T) {
	for _, tc := range []struct {
		seq    string
		window int
	}{
		{"ACDEFGHIK", 5}, {"ACD", 3}, {"AC", 5}, {"", 2}, {"MKWV", 1},
	} {
		got := Generate(tc.seq, tc.window, 0, reduction.NoReduction)
		n := len(tc.seq) - tc.window + 1
		if n < 0 {
			n = 0
		}
		require.Len(t, got, n, "%s window %d", tc.seq, tc.window)
		for _, d := range got {
			assert.NotContains(t, d, string(Wildcard))
			assert.Len(t, d, tc.window)
		}
	}
}

func TestGenerateShortSequenceIsEmpty(t *testing.T) {
	assert.Empty(t, Generate("ACD", 4, 2, reduction.NoReduction))
	assert.Empty(t, Generate("", 3, 1, reduction.NoReduction))
	assert.Empty(t, Generate("ACD", 0, 0, reduction.NoReduction))
}

func TestGenerateKeepsCrossGenerationDuplicates(t *testing.T) {
	// "AAAA" windows of 3: two identical windows; generation 1 dedups inside itself only
	got := Generate("AAAA", 3, 2, reduction.NoReduction)
	want := []string{
		"AAA", "AAA",
		"_AA", "A_A", "AA_",
		"__A", "_A_", "A__",
	}
	assert.Equal(t, want, got)
}

func TestGenerateFullGapDepth(t *testing.T) {
	// window 5, depth 3: 1 window, C(5,1)=5, C(5,2)=10, C(5,3)=10
	got := Generate("ACDEF", 5, 3, reduction.NoReduction)
	assert.Len(t, got, 1+5+10+10)
	last := got[len(got)-1]
	assert.Equal(t, 3, strings.Count(last, "_"))
}

func TestGenerateReducesFirst(t *testing.T) {
	got := Generate("AXCD", 3, 0, reduction.RED1) // X is dropped: "ACD" -> "ABB"
	assert.Equal(t, []string{"ABB"}, got)
}

func TestWindowPolicy(t *testing.T) {
	cases := map[int][2]int{0: {0, 0}, 1: {1, 0}, 2: {2, 0}, 3: {3, 1}, 4: {4, 2}, 5: {5, 3}, 18: {5, 3}}
	for length, want := range cases {
		w, g := WindowPolicy(length)
		assert.Equal(t, want, [2]int{w, g}, "length %d", length)
	}
}

func TestDescriptorsAndCounts(t *testing.T) {
	d := Descriptors("ABCD", reduction.NoReduction) // window 4, depth 2
	assert.Len(t, d, 1+4+6)
	counts := CountDescriptors(Generate("AAAA", 3, 0, reduction.NoReduction))
	assert.Equal(t, map[string]int{"AAA": 2}, counts)
}

func TestPrintCounts(t *testing.T) {
	var buf bytes.Buffer
	PrintCounts(&buf, map[string]int{"AB": 1, "BC": 3}, "freq", false)
	assert.Equal(t, "Descriptor\tCount\nBC\t3\nAB\t1\n", buf.String())
}
