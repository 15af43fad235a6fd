package score_table

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"peptide_design_go/config"
	"peptide_design_go/descriptor_db"
	"peptide_design_go/reduction"
	common "peptide_design_go/utils"
)

// Run_build_table executes the build_table command: optionally clean the raw
// databases, aggregate descriptors from both classes and write the score table.
func Run_build_table(args []string) {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("build_table", flag.ExitOnError)

	pos := fs.String("pos", "pos_db_clean.fasta", "Cleaned positive FASTA database")
	neg := fs.String("neg", "neg_db_clean.fasta", "Cleaned negative FASTA database")
	posDirty := fs.String("pos_dirty", "", "Raw positive database, cleaned into -pos first")
	negDirty := fs.String("neg_dirty", "", "Raw negative database, cleaned into -neg first")
	schemeName := fs.String("scheme", cfg.Scheme.String(), "Reduction scheme: RED1..RED6 or none")
	workers := fs.Int("workers", cfg.Workers, "Aggregation worker count")
	out := fs.String("out", cfg.Table, "Output score table")
	force := fs.Bool("force", false, "Rebuild even if the table is newer than both databases")

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	logger := common.NewLogger("build_table")

	scheme, err := reduction.ParseScheme(*schemeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	for _, job := range []struct{ in, out string }{{*posDirty, *pos}, {*negDirty, *neg}} {
		if job.in == "" {
			continue
		}
		kept, total, err := descriptor_db.CleanFile(job.in, job.out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		logger.Info("Cleaned %s: kept %d of %d records -> %s", job.in, kept, total, job.out)
	}

	if !*force {
		if _, err := os.Stat(*out); err == nil {
			err := common.CheckTableFreshness(*out, *pos, *neg)
			if err == nil {
				logger.Info("%s is up to date, use -force to rebuild", *out)
				return
			}
			logger.Warn("%v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Aggregating %s and %s with %s (%d workers)", *pos, *neg, scheme, *workers)
	table, err := BuildFromFiles(ctx, Sources{Positive: *pos, Negative: *neg}, scheme, *workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := table.WriteFile(*out); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	sum, err := table.Summarize()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger.Info("Wrote %d descriptors to %s", sum.Descriptors, *out)
	logger.Info("Score min %.4f / median %.4f / max %.4f, mean %.4f, %.1f%% positive",
		sum.Min, sum.Median, sum.Max, sum.Mean, sum.PositiveShare*100)
}
