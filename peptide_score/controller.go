package peptide_score

import (
	"flag"
	"fmt"
	"io"
	"os"

	"peptide_design_go/config"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
	common "peptide_design_go/utils"
)

// Shared by score and ic50: load the configured table under the chosen scheme
func loadTable(path, schemeName string) (score_table.Table, reduction.Scheme, error) {
	scheme, err := reduction.ParseScheme(schemeName)
	if err != nil {
		return nil, 0, err
	}
	table, err := score_table.LoadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return table, scheme, nil
}

// Run_score executes the score command
func Run_score(args []string) {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("score", flag.ExitOnError)

	peptide := fs.String("peptide", "", "Peptide to score")
	tablePath := fs.String("table", cfg.Table, "Descriptor score table")
	schemeName := fs.String("scheme", cfg.Scheme.String(), "Reduction scheme the table was built with")
	normalize := fs.Bool("normalize", false, "Divide the score by the peptide length")
	verbose := fs.Bool("verbose", false, "List every matching descriptor and its contribution")

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if err := Validate(*peptide); err != nil {
		fmt.Fprintln(os.Stderr, "Error: -peptide is required")
		fs.Usage()
		os.Exit(1)
	}

	table, scheme, err := loadTable(*tablePath, *schemeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if *verbose {
		PrintContributions(os.Stdout, Contributions(*peptide, table, scheme))
	}
	if *normalize {
		fmt.Printf("%s\t%.6f\n", *peptide, ScoreNormalized(*peptide, table, scheme))
	} else {
		fmt.Printf("%s\t%.6f\n", *peptide, Score(*peptide, table, scheme))
	}
}

// PrintContributions writes one tab separated line per matching descriptor
func PrintContributions(w io.Writer, contributions []Contribution) {
	fmt.Fprintln(w, "Descriptor\tOccurrences\tScore\tContribution")
	for _, c := range contributions {
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.6f\n", c.Descriptor, c.Occurrences, c.Score, c.Total)
	}
}

// Run_ic50 executes the ic50 command
func Run_ic50(args []string) {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("ic50", flag.ExitOnError)

	in := fs.String("in", "antimicrobial_peptide_with_IC_50.xlsx", "Workbook with Sequence and Rel IC50 columns")
	out := fs.String("out", "ic50_scored.xlsx", "Annotated workbook output")
	sheet := fs.String("sheet", "", "Sheet name (default: first sheet)")
	tablePath := fs.String("table", cfg.Table, "Descriptor score table")
	schemeName := fs.String("scheme", cfg.Scheme.String(), "Reduction scheme the table was built with")

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	logger := common.NewLogger("ic50")

	table, scheme, err := loadTable(*tablePath, *schemeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	rows, err := AnnotateIC50(*in, *out, *sheet, table, scheme, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	for _, r := range rows {
		logger.Debug("row %d %s score %.4f helix %.1f%% charge %.2f", r.Row, r.Sequence, r.Score, r.HelixFraction*100, r.Charge)
	}

	corr := CorrelateIC50(rows)
	logger.Info("Scored %d peptides -> %s", len(rows), *out)
	logger.Info("Score vs Rel IC50 over %d rows: Pearson %.4f, Spearman %.4f", corr.N, corr.Pearson, corr.Spearman)
}
