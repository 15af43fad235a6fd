package score_table

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"peptide_design_go/descriptor_db"
)

// Entry holds the class counts of one descriptor and its log-odds score
type Entry struct {
	Positive uint64
	Negative uint64
	Score    float64
}

// Table maps a descriptor to its entry. It is never written after Build or
// Load returns, so any number of goroutines may read it without locking.
type Table map[string]Entry

// LogOdds is the Laplace smoothed score ln((pos+1)/(neg+1))
func LogOdds(pos, neg uint64) float64 {
	return math.Log((float64(pos) + 1) / (float64(neg) + 1))
}

// Build scores the union of descriptors seen in either corpus.
// A descriptor missing from one corpus counts 0 there.
func Build(positive, negative descriptor_db.Corpus) Table {
	t := make(Table, len(positive)+len(negative))
	for d, pos := range positive {
		neg := negative[d]
		t[d] = Entry{Positive: pos, Negative: neg, Score: LogOdds(pos, neg)}
	}
	for d, neg := range negative {
		if _, done := t[d]; done {
			continue
		}
		t[d] = Entry{Negative: neg, Score: LogOdds(0, neg)}
	}
	return t
}

// Lookup returns the score of d; a miss is not an error and scores 0
func (t Table) Lookup(d string) (float64, bool) {
	e, ok := t[d]
	if !ok {
		return 0, false
	}
	return e.Score, true
}

// Keys returns the descriptors in sorted order
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for d := range t {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	return keys
}

// Summary describes the score distribution of a table
type Summary struct {
	Descriptors   int
	Min           float64
	Median        float64
	Max           float64
	Mean          float64
	PositiveShare float64 // fraction of descriptors with score > 0
}

// Summarize computes the score distribution; an empty table gives a zero Summary
func (t Table) Summarize() (Summary, error) {
	if len(t) == 0 {
		return Summary{}, nil
	}
	scores := make(stats.Float64Data, 0, len(t))
	positive := 0
	for _, e := range t {
		scores = append(scores, e.Score)
		if e.Score > 0 {
			positive++
		}
	}

	s := Summary{Descriptors: len(t), PositiveShare: float64(positive) / float64(len(t))}
	var err error
	if s.Min, err = stats.Min(scores); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(scores); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(scores); err != nil {
		return Summary{}, err
	}
	if s.Mean, err = stats.Mean(scores); err != nil {
		return Summary{}, err
	}
	return s, nil
}
