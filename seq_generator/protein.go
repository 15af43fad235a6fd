package seq_generator

import (
	"math/rand"
	"strings"
)

// 20 standard amino acids
const AminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// RandomAminoAcid draws one canonical residue uniformly
func RandomAminoAcid(rng *rand.Rand) byte {
	return AminoAcids[rng.Intn(len(AminoAcids))]
}

// GeneratePeptide returns a random peptide of canonical residues
func GeneratePeptide(rng *rand.Rand, length int) string {
	if length <= 0 {
		return ""
	}
	seq := make([]byte, length)
	for i := range seq {
		seq[i] = RandomAminoAcid(rng)
	}
	return string(seq)
}

// Mutate returns a copy of peptide with the residue at pos replaced by aa
func Mutate(peptide string, pos int, aa byte) string {
	return peptide[:pos] + string(aa) + peptide[pos+1:]
}

// Homopolymer is a run of one residue, e.g. the 18xA optimizer seed
func Homopolymer(aa byte, length int) string {
	return strings.Repeat(string(aa), length)
}

// WrapFasta breaks seq into lines of width residues
func WrapFasta(seq string, width int) string {
	var out strings.Builder
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		out.WriteString(seq[i:end] + "\n")
	}
	return out.String()
}
