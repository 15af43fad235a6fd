// Protparam package computes the physicochemical metrics logged along an
// optimization trajectory: helix propensity, net charge and the spacing of
// hydrophobicity peaks.
package protparam

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Properties of one peptide
type Properties struct {
	HelixFraction         float64 // share of V, I, Y, F, W, L residues (0..1)
	Charge                float64 // net charge at pH 7
	HydrophobicitySpacing float64 // mean distance between Kyte-Doolittle peaks, NaN with fewer than two peaks
}

// Analyzer supplies Properties for a peptide
type Analyzer interface {
	Analyze(peptide string) Properties
}

// ProtParam is the default Analyzer
type ProtParam struct {
	PH     float64 // 0 means 7.0
	Window int     // hydrophobicity window, 0 means 2
}

const helixResidues = "VIYFWL"

// Kyte-Doolittle hydropathy index
var kyteDoolittle = map[byte]float64{
	'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
	'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
	'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
	'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
}

// pK values (EMBOSS set), with terminal overrides by residue
var (
	positivePKs = map[byte]float64{'K': 10.0, 'R': 12.0, 'H': 5.98}
	negativePKs = map[byte]float64{'D': 4.05, 'E': 4.45, 'C': 9.0, 'Y': 10.0}

	nTermPK  = 9.0
	cTermPK  = 2.0
	nTermPKs = map[byte]float64{'A': 7.59, 'M': 7.0, 'S': 6.93, 'P': 8.36, 'T': 6.82, 'V': 7.44, 'E': 7.7}
	cTermPKs = map[byte]float64{'D': 4.55, 'E': 4.75}
)

// Analyze implements Analyzer. An empty peptide yields zero helix and charge and a NaN spacing.
func (p ProtParam) Analyze(peptide string) Properties {
	seq := strings.ToUpper(peptide)
	ph := p.PH
	if ph == 0 {
		ph = 7.0
	}
	window := p.Window
	if window <= 0 {
		window = 2
	}
	return Properties{
		HelixFraction:         HelixFraction(seq),
		Charge:                ChargeAtPH(seq, ph),
		HydrophobicitySpacing: PeakSpacing(Hydropathy(seq, window)),
	}
}

// HelixFraction is the share of helix-favouring residues in seq
func HelixFraction(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(seq); i++ {
		if strings.IndexByte(helixResidues, seq[i]) >= 0 {
			n++
		}
	}
	return float64(n) / float64(len(seq))
}

// ChargeAtPH sums the partial charges of ionizable groups, termini included
func ChargeAtPH(seq string, ph float64) float64 {
	if len(seq) == 0 {
		return 0
	}
	nPK, cPK := nTermPK, cTermPK
	if v, ok := nTermPKs[seq[0]]; ok {
		nPK = v
	}
	if v, ok := cTermPKs[seq[len(seq)-1]]; ok {
		cPK = v
	}

	positive := partialPositive(nPK, ph)
	negative := partialNegative(cPK, ph)
	for i := 0; i < len(seq); i++ {
		if pk, ok := positivePKs[seq[i]]; ok {
			positive += partialPositive(pk, ph)
		}
		if pk, ok := negativePKs[seq[i]]; ok {
			negative += partialNegative(pk, ph)
		}
	}
	return positive - negative
}

func partialPositive(pk, ph float64) float64 {
	return math.Pow(10, pk) / (math.Pow(10, pk) + math.Pow(10, ph))
}

func partialNegative(pk, ph float64) float64 {
	return math.Pow(10, ph) / (math.Pow(10, pk) + math.Pow(10, ph))
}

// Hydropathy returns the windowed Kyte-Doolittle profile of seq (edge weight 1).
// Each value averages the window's outer pairs plus its middle residue.
// Residues without a hydropathy value are left out of their window.
func Hydropathy(seq string, window int) []float64 {
	if window <= 0 || len(seq) < window {
		return nil
	}
	half := window / 2
	sumOfWeights := float64(half)*2 + 1

	profile := make([]float64, 0, len(seq)-window+1)
	for i := 0; i+window <= len(seq); i++ {
		sub := seq[i : i+window]
		score := 0.0
		for j := 0; j < half; j++ {
			front, okF := kyteDoolittle[sub[j]]
			back, okB := kyteDoolittle[sub[window-j-1]]
			if okF && okB {
				score += front + back
			}
		}
		if mid, ok := kyteDoolittle[sub[half]]; ok {
			score += mid
		}
		profile = append(profile, score/sumOfWeights)
	}
	return profile
}

// Peaks returns the indices of local maxima of x. Flat peaks report their
// middle index (rounded down) and the end points are never peaks. Peaks closer
// than distance are thinned, keeping the higher one.
func Peaks(x []float64, distance int) []int {
	var peaks []int
	for i := 1; i < len(x)-1; {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < len(x)-1 && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
				continue
			}
		}
		i++
	}
	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}

	// Highest first; drop any later peak too close to a kept one
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[peaks[order[a]]] > x[peaks[order[b]]] })
	keep := make([]bool, len(peaks))
	removed := make([]bool, len(peaks))
	for _, idx := range order {
		if removed[idx] {
			continue
		}
		keep[idx] = true
		for j := idx - 1; j >= 0 && peaks[idx]-peaks[j] < distance; j-- {
			removed[j] = true
		}
		for j := idx + 1; j < len(peaks) && peaks[j]-peaks[idx] < distance; j++ {
			removed[j] = true
		}
	}
	var thinned []int
	for i, p := range peaks {
		if keep[i] {
			thinned = append(thinned, p)
		}
	}
	return thinned
}

// PeakSpacing is the mean gap between consecutive peaks (minimum distance 2)
func PeakSpacing(profile []float64) float64 {
	peaks := Peaks(profile, 2)
	if len(peaks) < 2 {
		return math.NaN()
	}
	gaps := make([]float64, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		gaps[i-1] = float64(peaks[i] - peaks[i-1])
	}
	return stat.Mean(gaps, nil)
}
