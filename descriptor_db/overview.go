package descriptor_db

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/montanaflynn/stats"

	"peptide_design_go/reduction"
	common "peptide_design_go/utils"
)

// Define report structure
type OverviewReport struct {
	FileName       string
	TotalSequences int
	DuplicateIDs   int
	EmptySequences int
	Malformed      int // records ValidateRecord rejects
	InCleanRange   int // records Clean would keep
	TotalResidues  int
	Unrecognized   map[byte]int // symbols with no reduction entry (dropped when reducing)
	Composition    map[byte]int
	MinLength      int
	MaxLength      int
	MeanLength     float64
	MedianLength   float64
}

// Overview summarizes a peptide database before it is aggregated
func Overview(name string, records []common.Record) (OverviewReport, error) {
	report := OverviewReport{
		FileName:       name,
		TotalSequences: len(records),
		Unrecognized:   make(map[byte]int),
		Composition:    make(map[byte]int),
	}

	seen := make(map[string]bool, len(records))
	lengths := make(stats.Float64Data, 0, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			report.DuplicateIDs++
		}
		seen[rec.ID] = true

		n := len(rec.Sequence)
		if n == 0 {
			report.EmptySequences++
		}
		if ValidateRecord(rec) != nil {
			report.Malformed++
		}
		if n >= MinPeptideLength && n <= MaxPeptideLength {
			report.InCleanRange++
		}
		lengths = append(lengths, float64(n))
		report.TotalResidues += n

		for i := 0; i < n; i++ {
			c := rec.Sequence[i]
			report.Composition[c]++
			if !reduction.Recognized(c) {
				report.Unrecognized[c]++
			}
		}
	}

	if len(lengths) == 0 {
		return report, nil
	}
	var err error
	var v float64
	if v, err = stats.Min(lengths); err != nil {
		return report, err
	}
	report.MinLength = int(v)
	if v, err = stats.Max(lengths); err != nil {
		return report, err
	}
	report.MaxLength = int(v)
	if report.MeanLength, err = stats.Mean(lengths); err != nil {
		return report, err
	}
	if report.MedianLength, err = stats.Median(lengths); err != nil {
		return report, err
	}
	return report, nil
}

// Report Generator
func PrintReport(w io.Writer, report OverviewReport) {
	fmt.Fprintf(w, "Peptide Database Report: %s\n", report.FileName)
	fmt.Fprintln(w, "------------------------------------------")
	fmt.Fprintf(w, "Total sequences: %d\n", report.TotalSequences)

	if report.DuplicateIDs > 0 {
		fmt.Fprintf(w, "Duplicate ids found: %d\n", report.DuplicateIDs)
	} else {
		fmt.Fprintln(w, "No duplicate ids found")
	}
	if report.EmptySequences > 0 {
		fmt.Fprintf(w, "Empty sequences: %d\n", report.EmptySequences)
	}
	if report.Malformed > 0 {
		fmt.Fprintf(w, "Malformed records (aggregation would abort): %d\n", report.Malformed)
	} else {
		fmt.Fprintln(w, "All records are well formed")
	}
	fmt.Fprintf(w, "Within %d-%d residues: %d\n", MinPeptideLength, MaxPeptideLength, report.InCleanRange)

	if report.TotalSequences > 0 {
		fmt.Fprintf(w, "\nSequence length statistics:\n")
		fmt.Fprintf(w, "  Shortest: %d aa\n", report.MinLength)
		fmt.Fprintf(w, "  Longest:  %d aa\n", report.MaxLength)
		fmt.Fprintf(w, "  Average:  %.2f aa\n", report.MeanLength)
		fmt.Fprintf(w, "  Median:   %.1f aa\n", report.MedianLength)
	}

	if len(report.Unrecognized) > 0 {
		fmt.Fprintln(w, "\nSymbols without a reduction entry (dropped):")
		for _, c := range sortedBytes(report.Unrecognized) {
			fmt.Fprintf(w, "  %c: %d\n", c, report.Unrecognized[c])
		}
	}

	if report.TotalResidues > 0 {
		fmt.Fprintln(w, "\nResidue composition:")
		for _, c := range sortedBytes(report.Composition) {
			n := report.Composition[c]
			fmt.Fprintf(w, "  %c: %d (%.2f%%)\n", c, n, float64(n)/float64(report.TotalResidues)*100)
		}
	}
}

func sortedBytes(m map[byte]int) []byte {
	keys := make([]byte, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Run_db_overview executes the db_overview command
func Run_db_overview(args []string) {
	fs := flag.NewFlagSet("db_overview", flag.ExitOnError)
	in_file := fs.String("in_file", "", "Peptide FASTA database (plain or gzip)")

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}
	if *in_file == "" {
		fmt.Fprintln(os.Stderr, "Error: -in_file is required")
		fs.Usage()
		os.Exit(1)
	}

	records, err := common.ReadFastaFile(*in_file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	report, err := Overview(*in_file, records)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	PrintReport(os.Stdout, report)
}
