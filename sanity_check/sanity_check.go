package sanity_check

import (
	"fmt"
	"math"
	"os"

	"peptide_design_go/config" // Version control file
	"peptide_design_go/descriptor_db"
	"peptide_design_go/kmer_analyzer"
	"peptide_design_go/optimizer"
	"peptide_design_go/peptide_score"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
)

// SelfTest runs the whole pipeline on two tiny databases: aggregate,
// build, score and a short optimization.
func SelfTest() error {
	pos := descriptor_db.Corpus{}
	pos.Add(kmer_analyzer.Descriptors("KLAKLAK", reduction.RED6))
	neg := descriptor_db.Corpus{}
	neg.Add(kmer_analyzer.Descriptors("DDEEDD", reduction.RED6))
	table := score_table.Build(pos, neg)
	if len(table) == 0 {
		return fmt.Errorf("empty table")
	}

	good := peptide_score.Score("KLAKLAK", table, reduction.RED6)
	bad := peptide_score.Score("DDEEDD", table, reduction.RED6)
	if !(good > 0 && bad < 0) {
		return fmt.Errorf("unexpected scores %.3f / %.3f", good, bad)
	}

	res, err := optimizer.New(table, optimizer.Options{Scheme: reduction.RED6, RandSeed: 1}).Optimize("DDEEDDE", 50)
	if err != nil {
		return err
	}
	if len(res.Trajectory) != 50 || res.Final.Fitness < res.Seed.Fitness || math.IsNaN(res.Final.Fitness) {
		return fmt.Errorf("optimizer run inconsistent")
	}
	return nil
}

// Run performs a simple sanity check to ensure the tool suite is
// running properly printing helpful message and version number.
func Run(args []string) {
	fmt.Printf("Successfully running Peptide Designer! (%s)\n", config.Main_version)
	if err := SelfTest(); err != nil {
		fmt.Fprintln(os.Stderr, "Self test failed:", err)
		os.Exit(1)
	}
	fmt.Println("Self test passed: reduce -> descriptors -> table -> score -> optimize")
}
