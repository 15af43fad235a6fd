// Reduction package collapses the amino-acid alphabet into coarser
// alphabets grouped by a biochemical property.
//
// Schemes:
//
//	RED1  Hydrophobicity                  A = hydrophobic, B = hydrophilic
//	RED2  Physico-chemical                A = hydrophobic, B = hydrophilic, C = aromatic,
//	                                      D = polar, E = acidic, F = basic, G = ionizable
//	RED3  Solvent accessibility           A = low, B = medium, C = high
//	RED4  Hydrophobicity and charge       A = hydrophobic, B = hydrophilic, C = charged
//	RED5  Hydrophobicity and structure    A = hydrophilic, B = hydrophobic, C = structural
//	RED6  Hydrophobicity, size and charge A = large hydrophobic, B = small hydrophobic,
//	                                      P = positive hydrophilic, U = uncharged hydrophilic,
//	                                      N = negative hydrophilic
package reduction

import (
	"fmt"
	"strconv"
	"strings"
)

// Scheme names one alphabet reduction. The zero value means no reduction.
type Scheme int

const (
	NoReduction Scheme = iota
	RED1
	RED2
	RED3
	RED4
	RED5
	RED6
)

// Schemes lists every real reduction in table column order.
var Schemes = []Scheme{RED1, RED2, RED3, RED4, RED5, RED6}

// One row per recognized symbol, one column per scheme (RED1..RED6).
// 'r' and 'J' are kept as arginine-like entries for legacy databases.
var reductionTable = map[byte][6]byte{
	'A': {'A', 'A', 'B', 'B', 'B', 'B'}, // Alanine
	'C': {'B', 'G', 'A', 'A', 'A', 'B'}, // Cysteine
	'D': {'B', 'E', 'C', 'C', 'A', 'N'}, // Aspartic acid
	'E': {'B', 'E', 'C', 'C', 'A', 'N'}, // Glutamic acid
	'F': {'B', 'C', 'A', 'A', 'A', 'B'}, // Phenylalanine
	'G': {'A', 'A', 'B', 'B', 'C', 'B'}, // Glycine
	'H': {'B', 'B', 'B', 'A', 'A', 'P'}, // Histidine
	'I': {'A', 'A', 'A', 'B', 'B', 'A'}, // Isoleucine
	'K': {'B', 'F', 'C', 'C', 'A', 'P'}, // Lysine
	'L': {'A', 'A', 'A', 'B', 'B', 'A'}, // Leucine
	'M': {'A', 'A', 'A', 'B', 'B', 'A'}, // Methionine
	'N': {'B', 'D', 'C', 'A', 'A', 'U'}, // Asparagine
	'P': {'B', 'B', 'C', 'A', 'C', 'B'}, // Proline
	'Q': {'B', 'D', 'C', 'A', 'A', 'U'}, // Glutamine
	'R': {'B', 'F', 'C', 'C', 'A', 'P'}, // Arginine
	'S': {'B', 'D', 'B', 'A', 'A', 'U'}, // Serine
	'T': {'B', 'D', 'B', 'A', 'A', 'U'}, // Threonine
	'V': {'A', 'A', 'A', 'B', 'B', 'A'}, // Valine
	'W': {'B', '-', 'A', 'A', 'A', 'A'}, // Tryptophan
	'Y': {'B', 'G', 'A', 'A', 'A', 'U'}, // Tyrosine
	'r': {'B', 'F', 'C', 'C', 'A', 'P'}, // Arginine (lower case entry)
	'J': {'B', 'F', 'C', 'C', 'A', 'P'}, // Unusual amino acid
}

// Reduce maps every recognized symbol of seq through the scheme table.
// Unrecognized symbols are dropped, so the result may be shorter than seq.
func Reduce(seq string, scheme Scheme) string {
	if scheme == NoReduction {
		return seq
	}
	col := int(scheme) - 1
	if col < 0 || col >= 6 {
		return seq
	}
	out := make([]byte, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		row, ok := reductionTable[seq[i]]
		if !ok {
			continue // silent skip
		}
		out = append(out, row[col])
	}
	return string(out)
}

// Recognized reports whether symbol has an entry in the reduction table.
func Recognized(symbol byte) bool {
	_, ok := reductionTable[symbol]
	return ok
}

// OutputAlphabet returns the distinct symbols a scheme can emit, sorted.
func OutputAlphabet(scheme Scheme) string {
	if scheme == NoReduction {
		return ""
	}
	col := int(scheme) - 1
	seen := make(map[byte]bool)
	for _, row := range reductionTable {
		seen[row[col]] = true
	}
	var b strings.Builder
	for c := 0; c < 256; c++ {
		if seen[byte(c)] {
			b.WriteByte(byte(c))
		}
	}
	return b.String()
}

func (s Scheme) String() string {
	if s == NoReduction {
		return "none"
	}
	return "RED" + strconv.Itoa(int(s))
}

// ParseScheme accepts "RED1".."RED6", "1".."6", or "none" / "".
func ParseScheme(name string) (Scheme, error) {
	v := strings.ToUpper(strings.TrimSpace(name))
	switch v {
	case "", "NONE", "0":
		return NoReduction, nil
	}
	v = strings.TrimPrefix(v, "RED")
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 6 {
		return NoReduction, fmt.Errorf("unknown reduction scheme %q (expected RED1..RED6 or none)", name)
	}
	return Scheme(n), nil
}
