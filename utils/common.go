// Common package contains commonly used functions that benefit multiple tools
// Exporting these functions from the Common package reduces redundant code
package common

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Record is one FASTA entry. Tools only ever look at Sequence;
// ID and Description are carried through untouched.
type Record struct {
	ID          string
	Description string
	Sequence    string
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenFasta opens a plain or gzip-compressed file. Gzip is detected from the magic bytes.
func OpenFasta(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1F && magic[1] == 0x8B {
		gr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip reader: %w", err)
		}
		return readCloser{Reader: gr, closers: []io.Closer{f, gr}}, nil
	}
	return readCloser{Reader: br, closers: []io.Closer{f}}, nil
}

// FastaHandler is called once per record, in file order
type FastaHandler func(rec Record) error

// StreamFasta parses r and calls handler for each record.
// A handler error stops the stream and is returned wrapped with the record id.
func StreamFasta(r io.Reader, handler FastaHandler) error {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return fmt.Errorf("unexpected sequence type %T", sc.Seq())
		}
		rec := Record{
			ID:          s.Name(),
			Description: s.Description(),
			Sequence:    lettersToString(s.Seq),
		}
		if err := handler(rec); err != nil {
			return fmt.Errorf("handler error (%s): %w", rec.ID, err)
		}
	}
	if err := sc.Error(); err != nil {
		return fmt.Errorf("fasta parse error: %w", err)
	}
	return nil
}

// ReadFastaFile loads every record of a (possibly gzipped) FASTA file into memory
func ReadFastaFile(path string) ([]Record, error) {
	rc, err := OpenFasta(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var records []Record
	err = StreamFasta(rc, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// WriteFasta writes records with 60-column wrapping
func WriteFasta(w io.Writer, records []Record) error {
	fw := fasta.NewWriter(w, 60)
	for _, rec := range records {
		s := linear.NewSeq(rec.ID, stringToLetters(rec.Sequence), alphabet.Protein)
		s.Desc = rec.Description
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("failed to write %s: %w", rec.ID, err)
		}
	}
	return nil
}

func lettersToString(l alphabet.Letters) string {
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = byte(c)
	}
	return string(b)
}

func stringToLetters(s string) []alphabet.Letter {
	l := make([]alphabet.Letter, len(s))
	for i := 0; i < len(s); i++ {
		l[i] = alphabet.Letter(s[i])
	}
	return l
}
