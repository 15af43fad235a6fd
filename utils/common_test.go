package common

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFasta = `>sp|P0C1|PEP1 first peptide
RGLRRLGRKI
AHGVKKYG
>pep2
GIGKFLHSAK
`

func TestStreamFastaRecords(t *testing.T) {
	var got []Record
	err := StreamFasta(strings.NewReader(sampleFasta), func(rec Record) error {
		got = append(got, rec)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sp|P0C1|PEP1", got[0].ID)
	assert.Equal(t, "RGLRRLGRKIAHGVKKYG", got[0].Sequence)
	assert.Equal(t, "pep2", got[1].ID)
	assert.Equal(t, "GIGKFLHSAK", got[1].Sequence)
}

func TestStreamFastaHandlerErrorStops(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := StreamFasta(strings.NewReader(sampleFasta), func(rec Record) error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWriteFastaRoundTrip(t *testing.T) {
	in := []Record{
		{ID: "a", Sequence: "ACDEFGHIKL"},
		{ID: "b", Sequence: strings.Repeat("W", 75)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteFasta(&buf, in))

	var out []Record
	require.NoError(t, StreamFasta(&buf, func(rec Record) error {
		out = append(out, rec)
		return nil
	}))
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Sequence, out[i].Sequence)
	}
}

func TestReadFastaFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.fasta.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleFasta))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	recs, err := ReadFastaFile(path)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "tool", LogLevelWarn)
	l.Info("hidden %d", 1)
	l.Debug("hidden")
	l.Warn("shown %s", "warn")
	l.Error("shown error")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[tool] ")
	assert.Contains(t, out, "WARN shown warn")
	assert.Contains(t, out, "ERROR shown error")
	assert.Equal(t, LogLevelDebug, ParseLevel("debug"))
	assert.Equal(t, LogLevelInfo, ParseLevel("chatty"))
}
