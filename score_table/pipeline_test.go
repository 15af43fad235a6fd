package score_table

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peptide_design_go/descriptor_db"
	"peptide_design_go/kmer_analyzer"
	"peptide_design_go/reduction"
	common "peptide_design_go/utils"
)

func writeFasta(t *testing.T, path string, seqs ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	var recs []common.Record
	for i, s := range seqs {
		recs = append(recs, common.Record{ID: "p" + string(rune('0'+i)), Sequence: s})
	}
	require.NoError(t, common.WriteFasta(f, recs))
}

func TestBuildFromFiles(t *testing.T) {
	dir := t.TempDir()
	src := Sources{Positive: filepath.Join(dir, "pos.fasta"), Negative: filepath.Join(dir, "neg.fasta")}
	writeFasta(t, src.Positive, "KLAKLAK", "RRWWRR")
	writeFasta(t, src.Negative, "DDEEDD")

	table, err := BuildFromFiles(context.Background(), src, reduction.RED6, 2)
	require.NoError(t, err)

	pos := descriptor_db.Corpus{}
	pos.Add(kmer_analyzer.Descriptors("KLAKLAK", reduction.RED6))
	pos.Add(kmer_analyzer.Descriptors("RRWWRR", reduction.RED6))
	neg := descriptor_db.Corpus{}
	neg.Add(kmer_analyzer.Descriptors("DDEEDD", reduction.RED6))
	assert.Equal(t, Build(pos, neg), table)

	// D and E both reduce to N under RED6
	e, ok := table["NNNNN"]
	require.True(t, ok)
	assert.Equal(t, uint64(2), e.Negative)
	assert.Less(t, e.Score, 0.0)
}

func TestBuildFromFilesMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	src := Sources{Positive: filepath.Join(dir, "pos.fasta"), Negative: filepath.Join(dir, "neg.fasta")}
	writeFasta(t, src.Positive, "KLAKLAK")
	require.NoError(t, os.WriteFile(src.Negative, []byte(">bad\nKL1AK\n"), 0o644))

	_, err := BuildFromFiles(context.Background(), src, reduction.RED6, 2)
	var fe *common.FormatError
	assert.True(t, errors.As(err, &fe), "got %v", err)
}

func TestBuildFromFilesMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	src := Sources{Positive: filepath.Join(dir, "absent.fasta"), Negative: filepath.Join(dir, "neg.fasta")}
	_, err := BuildFromFiles(context.Background(), src, reduction.RED6, 1)
	assert.Error(t, err)
}
