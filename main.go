package main

import (
	"fmt"
	"os"
	"strings"

	"peptide_design_go/benchmark"
	version_control "peptide_design_go/config"
	"peptide_design_go/descriptor_db"
	"peptide_design_go/kmer_analyzer"
	"peptide_design_go/optimizer"
	"peptide_design_go/peptide_score"
	"peptide_design_go/sanity_check"
	"peptide_design_go/score_table"
	"peptide_design_go/seq_generator"
	"peptide_design_go/server"
)

// printCustomHelp formats a custom help menu
func printCustomHelp() {
	fmt.Println(`Peptide Designer - Custom Help Menu
Usage:
  peptide_design <tool> [options]

Tools:
  kmer_analyzer		Gapped descriptors of a peptide or FASTA file
  db_overview		Summary statistics of a peptide FASTA database
  build_table		Build the descriptor score table from positive/negative databases
  score			Score one peptide against the table
  ic50			Score a Rel IC50 workbook and correlate
  optimize		Greedy mutation of a seed peptide toward a higher score
  seq_generator		Generate random peptides (FASTA)
  serve			HTTP scoring service
  check			Run diagnostic test

Global Flags:
  -h, -help		Show this help message
  -v, -version		Show version information

Configuration:
  .env and PEPTIDE_* variables set the defaults (seed, iterations, scheme,
  table, workers, rand seed, listen address); tool flags override them.

Benchmarking:
  -benchmark		Must be used in associtation with a tool.
			Displays computational resource usage and
			pertinent operating system information
  `,
	)
	os.Exit(0)
}

func printVersion() {
	fmt.Println("Peptide Designer - Version Information Menu")
	fmt.Println("Central Executable:")
	fmt.Printf("\tPeptide Designer:\t%s\n", version_control.Main_version)
	fmt.Printf("\nModular tools:\n")
	fmt.Printf("\tKmer Analyzer:\t\t%s\n", version_control.Kmer_Analyzer)
	fmt.Printf("\tDB Overview:\t\t%s\n", version_control.DB_Overview)
	fmt.Printf("\tBuild Table:\t\t%s\n", version_control.Build_Table)
	fmt.Printf("\tScore:\t\t\t%s\n", version_control.Score)
	fmt.Printf("\tIC50:\t\t\t%s\n", version_control.IC50)
	fmt.Printf("\tOptimize:\t\t%s\n", version_control.Optimize)
	fmt.Printf("\tSequence Generator:\t%s\n", version_control.Seq_Generator)
	fmt.Printf("\tServe:\t\t\t%s\n", version_control.Serve)
	fmt.Printf("\tSanity Check:\t\t%s\n", version_control.Sanity_check)
	fmt.Printf("\tBenchmark:\t\t%s\n", version_control.Benchmark)

	fmt.Println("")

	os.Exit(0)
}

// Main controller
func main() {

	// If no arguments are given, show help
	if len(os.Args) < 2 {
		printCustomHelp()
	}

	// Scan for executible-specific help flags
	for _, arg := range os.Args[1:] {
		if len(os.Args) < 3 {
			if arg == "-h" || arg == "-help" {
				printCustomHelp()
			}
		}
	}

	// Version request
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "-version" {
			printVersion()
		}
	}

	//
	toolName := os.Args[1]
	toolArgs := os.Args[2:]

	// Check for global --benchmark flag
	benchmarking := false
	var cleanedArgs []string
	for _, arg := range toolArgs {
		if arg == "-benchmark" {
			benchmarking = true
		} else {
			cleanedArgs = append(cleanedArgs, arg)
		}
	}

	// Tool execution wrapper
	run := func() {
		switch toolName {
		case "check":
			sanity_check.Run(cleanedArgs)
		case "kmer_analyzer":
			kmer_analyzer.Run_kmer_analyzer(cleanedArgs)
		case "db_overview":
			descriptor_db.Run_db_overview(cleanedArgs)
		case "build_table":
			score_table.Run_build_table(cleanedArgs)
		case "score":
			peptide_score.Run_score(cleanedArgs)
		case "ic50":
			peptide_score.Run_ic50(cleanedArgs)
		case "optimize":
			optimizer.Run_optimize(cleanedArgs)
		case "seq_generator":
			seq_generator.Run(cleanedArgs)
		case "serve":
			server.Run(cleanedArgs)
		default:
			fmt.Printf("Unknown tool: %s\n", toolName)
			os.Exit(1)
		}
	}

	if benchmarking {
		label := fmt.Sprintf("peptide_design %s %s", toolName, strings.Join(cleanedArgs, " "))
		benchmark.Run(label, run)
	} else {
		run()
	}
}
