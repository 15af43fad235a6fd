package optimizer

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"peptide_design_go/config"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
	"peptide_design_go/seq_generator"
	common "peptide_design_go/utils"
)

// Run_optimize executes the optimize command.
// Defaults come from config.Load (.env and PEPTIDE_* variables), flags win.
func Run_optimize(args []string) {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("optimize", flag.ExitOnError)

	table := fs.String("table", cfg.Table, "Descriptor score table")
	seed := fs.String("seed", cfg.Seed, "Seed peptide")
	randomLen := fs.Int("random_len", 0, "Start from a random peptide of this length instead of -seed")
	iterations := fs.Int("iterations", cfg.Iterations, "Number of mutation steps")
	schemeName := fs.String("scheme", cfg.Scheme.String(), "Reduction scheme: RED1..RED6 or none")
	normalize := fs.Bool("normalize", false, "Optimize the length-normalized score")
	randSeed := fs.Int64("rand_seed", cfg.RandSeed, "Random seed (0 = time based)")
	out := fs.String("out", "trajectory.csv", "Trajectory CSV output")

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	logger := common.NewLogger("optimize")

	scheme, err := reduction.ParseScheme(*schemeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if *randSeed == 0 {
		*randSeed = time.Now().UnixNano()
	}
	start := *seed
	if *randomLen > 0 {
		start = seq_generator.GeneratePeptide(rand.New(rand.NewSource(*randSeed)), *randomLen)
		logger.Info("Random seed peptide: %s", start)
	}

	t, err := score_table.LoadFile(*table)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger.Debug("Loaded %d descriptors from %s", len(t), *table)

	opt := New(t, Options{Scheme: scheme, Normalize: *normalize, RandSeed: *randSeed})
	res, err := opt.Optimize(start, *iterations)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := WriteTrajectoryFile(*out, res.Trajectory); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	sum := Summarize(res.Trajectory)
	logger.Info("Run %s (%s, %d iterations, rand seed %d)", res.RunID, scheme, res.Iterations, *randSeed)
	logger.Info("Seed:  %s\t%.4f", res.Seed.Sequence, res.Seed.Fitness)
	logger.Info("Final: %s\t%.4f", res.Final.Sequence, res.Final.Fitness)
	logger.Info("Accepted %d of %d moves, mean score %.4f (sd %.4f)", sum.Accepted, sum.Steps, sum.MeanScore, sum.StdDevScore)
	logger.Info("Trajectory written to %s", *out)

	fmt.Println(res.Final.Sequence)
}
