package descriptor_db

import (
	"fmt"
	"os"
	"strings"

	common "peptide_design_go/utils"
)

// Peptide length window kept by Clean
const (
	MinPeptideLength = 3
	MaxPeptideLength = 18
)

// Clean keeps peptides of MinPeptideLength..MaxPeptideLength residues.
// UniProt style ids ("sp|P12345|NAME_HUMAN") are cut down to the accession
// and descriptions are dropped.
func Clean(records []common.Record) []common.Record {
	var kept []common.Record
	for _, rec := range records {
		n := len(rec.Sequence)
		if n < MinPeptideLength || n > MaxPeptideLength {
			continue
		}
		id := rec.ID
		if parts := strings.Split(id, "|"); len(parts) > 1 {
			id = parts[1]
		}
		kept = append(kept, common.Record{ID: id, Sequence: rec.Sequence})
	}
	return kept
}

// CleanFile runs Clean over a FASTA file and writes the survivors to outPath.
// It returns how many records were kept out of how many were read.
func CleanFile(inPath, outPath string) (kept, total int, err error) {
	records, err := common.ReadFastaFile(inPath)
	if err != nil {
		return 0, 0, err
	}
	cleaned := Clean(records)

	out, err := os.Create(outPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := common.WriteFasta(out, cleaned); err != nil {
		out.Close()
		return 0, 0, err
	}
	if err := out.Close(); err != nil {
		return 0, 0, fmt.Errorf("failed to close %s: %w", outPath, err)
	}
	return len(cleaned), len(records), nil
}
