package score_table

import (
	"context"
	"fmt"

	"peptide_design_go/descriptor_db"
	"peptide_design_go/reduction"
	common "peptide_design_go/utils"
)

// Sources names the two reference databases a table is built from
type Sources struct {
	Positive string
	Negative string
}

// BuildFromFiles aggregates both FASTA databases under scheme and scores the result.
// Either database failing validation aborts the build.
func BuildFromFiles(ctx context.Context, src Sources, scheme reduction.Scheme, workers int) (Table, error) {
	pos, err := aggregateFile(ctx, src.Positive, scheme, workers)
	if err != nil {
		return nil, err
	}
	neg, err := aggregateFile(ctx, src.Negative, scheme, workers)
	if err != nil {
		return nil, err
	}
	return Build(pos, neg), nil
}

func aggregateFile(ctx context.Context, path string, scheme reduction.Scheme, workers int) (descriptor_db.Corpus, error) {
	records, err := common.ReadFastaFile(path)
	if err != nil {
		return nil, err
	}
	corpus, err := descriptor_db.Aggregate(ctx, records, scheme, workers)
	if err != nil {
		return nil, fmt.Errorf("aggregating %s: %w", path, err)
	}
	return corpus, nil
}
