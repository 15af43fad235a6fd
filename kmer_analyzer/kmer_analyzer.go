package kmer_analyzer

import (
	"peptide_design_go/reduction"
)

// Wildcard marks a "don't care" position in a gapped descriptor
const Wildcard = '_'

// WindowPolicy derives the window size and gap depth from the peptide length.
// window = min(length, 5); gap depth is 0 for windows of 2 or less, window-2 otherwise.
func WindowPolicy(length int) (window, gapDepth int) {
	window = length
	if window > 5 {
		window = 5
	}
	if window <= 2 {
		return window, 0
	}
	return window, window - 2
}

// Generate returns the descriptor multiset of seq: every contiguous window of
// length window (generation 0), followed by gapDepth generations of gapped
// variants. Each gapped generation is built from the one before it by
// replacing every non-wildcard position with the wildcard; it is a set
// (first-seen order), but nothing is deduplicated across generations.
func Generate(seq string, window, gapDepth int, scheme reduction.Scheme) []string {
	seq = reduction.Reduce(seq, scheme) // Reduce first (no-op without a scheme)
	if window <= 0 || len(seq) < window {
		return nil // Not a single full window
	}

	descriptors := make([]string, 0, len(seq)-window+1)
	for i := 0; i+window <= len(seq); i++ { // Slides a window of size k across the sequence
		descriptors = append(descriptors, seq[i:i+window])
	}

	current := descriptors
	for depth := 1; depth <= gapDepth && len(current) > 0; depth++ {
		current = gapGeneration(current)
		descriptors = append(descriptors, current...)
	}
	return descriptors
}

// gapGeneration builds the next generation of wildcard descriptors
func gapGeneration(previous []string) []string {
	seen := make(map[string]struct{})
	var next []string
	for _, d := range previous {
		buf := []byte(d)
		for i := range buf {
			if buf[i] == Wildcard {
				continue // Already a gap
			}
			orig := buf[i]
			buf[i] = Wildcard
			gapped := string(buf)
			buf[i] = orig
			if _, dup := seen[gapped]; dup {
				continue
			}
			seen[gapped] = struct{}{}
			next = append(next, gapped)
		}
	}
	return next
}

// Descriptors applies WindowPolicy to the peptide length and generates its descriptors.
// The policy uses the length before reduction, matching how tables are built.
func Descriptors(peptide string, scheme reduction.Scheme) []string {
	window, gap := WindowPolicy(len(peptide))
	return Generate(peptide, window, gap, scheme)
}

// CountDescriptors folds a descriptor list into occurrence counts
func CountDescriptors(descriptors []string) map[string]int {
	counts := make(map[string]int, len(descriptors))
	for _, d := range descriptors {
		counts[d]++
	}
	return counts
}
