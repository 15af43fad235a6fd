package peptide_score

import (
	"errors"
	"sort"

	"peptide_design_go/kmer_analyzer"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
)

// ErrEmptyInput is returned by Validate for a zero-length peptide.
// Score itself never fails: an empty peptide simply scores 0.
var ErrEmptyInput = errors.New("empty peptide")

// Validate reports whether peptide can be meaningfully scored
func Validate(peptide string) error {
	if len(peptide) == 0 {
		return ErrEmptyInput
	}
	return nil
}

// Score sums the table score of every descriptor of peptide.
// Descriptors missing from the table contribute 0.
func Score(peptide string, table score_table.Table, scheme reduction.Scheme) float64 {
	total := 0.0
	for _, d := range kmer_analyzer.Descriptors(peptide, scheme) {
		if s, ok := table.Lookup(d); ok {
			total += s
		}
	}
	return total
}

// ScoreNormalized is Score divided by the peptide length (0 for an empty peptide).
// Use it when comparing peptides of different lengths.
func ScoreNormalized(peptide string, table score_table.Table, scheme reduction.Scheme) float64 {
	if len(peptide) == 0 {
		return 0
	}
	return Score(peptide, table, scheme) / float64(len(peptide))
}

// Contribution is one matching descriptor and the total it added to the score
type Contribution struct {
	Descriptor  string  `json:"descriptor"`
	Occurrences int     `json:"occurrences"`
	Score       float64 `json:"score"` // per occurrence
	Total       float64 `json:"total"`
}

// Contributions breaks Score down per distinct descriptor found in the table,
// largest absolute contribution first.
func Contributions(peptide string, table score_table.Table, scheme reduction.Scheme) []Contribution {
	counts := kmer_analyzer.CountDescriptors(kmer_analyzer.Descriptors(peptide, scheme))
	var out []Contribution
	for d, n := range counts {
		s, ok := table.Lookup(d)
		if !ok {
			continue
		}
		out = append(out, Contribution{Descriptor: d, Occurrences: n, Score: s, Total: s * float64(n)})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := abs(out[i].Total), abs(out[j].Total)
		if ai != aj {
			return ai > aj
		}
		return out[i].Descriptor < out[j].Descriptor
	})
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
