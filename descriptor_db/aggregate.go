package descriptor_db

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"peptide_design_go/kmer_analyzer"
	"peptide_design_go/reduction"
	common "peptide_design_go/utils"
)

// ValidateRecord rejects records that cannot come from a well formed
// peptide database: an empty sequence, or any symbol that is not an ASCII
// letter, '*' or '-'.
func ValidateRecord(rec common.Record) error {
	if len(rec.Sequence) == 0 {
		return &common.FormatError{Source: rec.ID, Reason: "empty sequence"}
	}
	for i := 0; i < len(rec.Sequence); i++ {
		c := rec.Sequence[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '*', c == '-':
		default:
			return &common.FormatError{
				Source: rec.ID,
				Reason: fmt.Sprintf("invalid symbol %q at position %d", c, i+1),
			}
		}
	}
	return nil
}

// Aggregate runs the descriptor generator over every record and counts the
// emitted descriptors into one corpus.
//
// A fixed pool of workers (runtime.NumCPU() when workers <= 0) pulls record
// indices from a channel. Every worker owns a private Corpus; the partial
// corpora are summed by a single merge once all workers are done, so no
// counting map is ever shared. The first malformed record cancels the
// remaining work and its FormatError is returned.
func Aggregate(ctx context.Context, records []common.Record, scheme reduction.Scheme, workers int) (Corpus, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(records) && len(records) > 0 {
		workers = len(records)
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int, workers*2)
	partials := make([]Corpus, workers)

	// Feed records
	g.Go(func() error {
		defer close(jobs)
		for i := range records {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// Worker pool
	for w := 0; w < workers; w++ {
		partial := make(Corpus)
		partials[w] = partial
		g.Go(func() error {
			for i := range jobs {
				rec := records[i]
				if err := ValidateRecord(rec); err != nil {
					return err
				}
				partial.Add(kmer_analyzer.Descriptors(rec.Sequence, scheme))
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Single-threaded merge
	corpus := make(Corpus)
	for _, partial := range partials {
		corpus.Merge(partial)
	}
	return corpus, nil
}
