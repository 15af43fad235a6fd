package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peptide_design_go/descriptor_db"
	"peptide_design_go/kmer_analyzer"
	"peptide_design_go/peptide_score"
	"peptide_design_go/protparam"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
	"peptide_design_go/seq_generator"
)

type stubAnalyzer struct {
	calls int
}

func (s *stubAnalyzer) Analyze(peptide string) protparam.Properties {
	s.calls++
	return protparam.Properties{HelixFraction: 0.25, Charge: 1.5, HydrophobicitySpacing: 3}
}

// every descriptor of a poly-A peptide scores negative, anything else is neutral
func polyAPenalty(length int) score_table.Table {
	neg := descriptor_db.Corpus{}
	neg.Add(kmer_analyzer.Descriptors(seq_generator.Homopolymer('A', length), reduction.NoReduction))
	return score_table.Build(descriptor_db.Corpus{}, neg)
}

func TestStartErrors(t *testing.T) {
	o := New(score_table.Table{}, Options{RandSeed: 1})

	_, err := o.Start("", 10)
	assert.ErrorIs(t, err, ErrEmptySeed)

	_, err = o.Start("AAA", -1)
	assert.ErrorIs(t, err, ErrNegativeIteration)
}

func TestZeroIterations(t *testing.T) {
	o := New(polyAPenalty(3), Options{RandSeed: 1, Analyzer: &stubAnalyzer{}})

	res, err := o.Optimize("AAA", 0)
	require.NoError(t, err)
	assert.Equal(t, "AAA", res.Final.Sequence)
	assert.Equal(t, res.Seed, res.Final)
	assert.Empty(t, res.Trajectory)
	assert.Zero(t, res.Iterations)
	assert.NotEmpty(t, res.RunID)
}

func TestRunStateMachine(t *testing.T) {
	o := New(score_table.Table{}, Options{RandSeed: 7, Analyzer: &stubAnalyzer{}})
	run, err := o.Start("ACDEF", 2)
	require.NoError(t, err)

	assert.Equal(t, Running, run.State())
	assert.True(t, run.Step())
	assert.False(t, run.Step())
	assert.Equal(t, Done, run.State())

	// a finished run ignores further steps
	assert.False(t, run.Step())
	assert.Len(t, run.Result().Trajectory, 2)
	assert.Equal(t, "DONE", run.State().String())
}

func TestEmptyTableNeverAccepts(t *testing.T) {
	o := New(score_table.Table{}, Options{RandSeed: 3, Analyzer: &stubAnalyzer{}})

	res, err := o.Optimize("KLAKLAK", 50)
	require.NoError(t, err)
	assert.Len(t, res.Trajectory, 50)
	assert.Zero(t, res.Accepted)
	assert.Equal(t, "KLAKLAK", res.Final.Sequence)
	for i, st := range res.Trajectory {
		assert.Equal(t, i, st.Iteration)
		assert.Equal(t, "KLAKLAK", st.Peptide)
		assert.False(t, st.Accepted)
	}
}

func TestGreedyImprovement(t *testing.T) {
	table := polyAPenalty(3)
	o := New(table, Options{RandSeed: 42, Analyzer: &stubAnalyzer{}})

	res, err := o.Optimize("AAA", 200)
	require.NoError(t, err)
	require.Len(t, res.Trajectory, 200)

	assert.Less(t, res.Seed.Fitness, 0.0)
	assert.Greater(t, res.Final.Fitness, res.Seed.Fitness)
	assert.Positive(t, res.Accepted)
	assert.Equal(t, peptide_score.Score(res.Final.Sequence, table, reduction.NoReduction), res.Final.Fitness)

	for i, st := range res.Trajectory {
		if st.Accepted {
			assert.Greater(t, st.TrialScore, st.Score)
		} else {
			assert.LessOrEqual(t, st.TrialScore, st.Score)
		}
		if st.Trial == st.Peptide {
			assert.False(t, st.Accepted, "redrawing the same residue is never a strict improvement")
		}
		if i+1 < len(res.Trajectory) {
			next := res.Trajectory[i+1]
			if st.Accepted {
				assert.Equal(t, st.Trial, next.Peptide)
			} else {
				assert.Equal(t, st.Peptide, next.Peptide)
			}
			assert.GreaterOrEqual(t, next.Score, st.Score)
		}
	}
}

func TestTrajectoryLogsPreStepMetrics(t *testing.T) {
	stub := &stubAnalyzer{}
	o := New(score_table.Table{}, Options{RandSeed: 5, Analyzer: stub})

	res, err := o.Optimize("GIGKFLHSAK", 10)
	require.NoError(t, err)
	for _, st := range res.Trajectory {
		assert.Equal(t, 0.25, st.HelixFraction)
		assert.Equal(t, 1.5, st.Charge)
		assert.Equal(t, 3.0, st.HydrophobicitySpacing)
	}
	// nothing was accepted, so the seed is analyzed once
	assert.Equal(t, 1, stub.calls)
}

func TestSameRandSeedIsReproducible(t *testing.T) {
	table := polyAPenalty(4)
	a, err := New(table, Options{RandSeed: 11, Analyzer: &stubAnalyzer{}}).Optimize("AAAA", 100)
	require.NoError(t, err)
	b, err := New(table, Options{RandSeed: 11, Analyzer: &stubAnalyzer{}}).Optimize("AAAA", 100)
	require.NoError(t, err)

	assert.Equal(t, a.Final, b.Final)
	assert.Equal(t, a.Trajectory, b.Trajectory)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestNormalizedObjective(t *testing.T) {
	table := polyAPenalty(3)
	o := New(table, Options{RandSeed: 1, Normalize: true, Analyzer: &stubAnalyzer{}})

	res, err := o.Optimize("AAA", 0)
	require.NoError(t, err)
	assert.InDelta(t, peptide_score.ScoreNormalized("AAA", table, reduction.NoReduction), res.Seed.Fitness, 1e-12)
	assert.InDelta(t, peptide_score.Score("AAA", table, reduction.NoReduction)/3, res.Seed.Fitness, 1e-12)
}

func TestResultTrajectoryIsCopied(t *testing.T) {
	o := New(score_table.Table{}, Options{RandSeed: 2, Analyzer: &stubAnalyzer{}})
	run, err := o.Start("AAA", 3)
	require.NoError(t, err)
	for run.Step() {
	}

	res := run.Result()
	res.Trajectory[0].Peptide = "changed"
	assert.Equal(t, "AAA", run.Result().Trajectory[0].Peptide)
}
