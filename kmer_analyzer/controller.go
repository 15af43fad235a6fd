package kmer_analyzer

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"peptide_design_go/reduction"
	common "peptide_design_go/utils"
)

type kmerData struct {
	Kmer   string
	Count  int
	RelPct float64
}

// Run executes the kmer_analyzer command.
// It expects a peptide (-peptide) or a FASTA file (-in_file) and prints the
// gapped descriptor counts found under the chosen reduction scheme.
func Run_kmer_analyzer(args []string) {

	fs := flag.NewFlagSet("kmer_analyzer", flag.ExitOnError) // Isolated flag set specifically for "kmer_analyzer" subcommand

	peptide := fs.String("peptide", "", "Single peptide to analyze")
	in_file := fs.String("in_file", "", "FASTA file input (plain or gzip)")
	schemeName := fs.String("scheme", "none", "Reduction scheme: RED1..RED6 or none")
	rel_freq := fs.Bool("rel_freq", true, "Output relative frequency (%)")       // Option to toggle descriptor percentage
	sort_by := fs.String("sort_by", "alpha", "Sort output by 'alpha' or 'freq'") // Output sorting option for by alphabetical or by frequency

	if err := fs.Parse(args); err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if (*peptide == "") == (*in_file == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -peptide or -in_file is required")
		fs.Usage()
		os.Exit(1)
	}

	scheme, err := reduction.ParseScheme(*schemeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	counts := make(map[string]int)
	if *peptide != "" {
		counts = CountDescriptors(Descriptors(*peptide, scheme))
	} else {
		records, err := common.ReadFastaFile(*in_file)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		for _, rec := range records {
			for _, d := range Descriptors(rec.Sequence, scheme) {
				counts[d]++
			}
		}
	}

	PrintCounts(os.Stdout, counts, *sort_by, *rel_freq)
}

// PrintCounts writes a descriptor count table sorted by "alpha" or "freq"
func PrintCounts(w io.Writer, counts map[string]int, sortBy string, relFreq bool) {
	total := 0
	for _, c := range counts {
		total += c
	}

	result := make([]kmerData, 0, len(counts))
	for kmer, count := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		result = append(result, kmerData{kmer, count, pct})
	}

	switch sortBy {
	case "freq":
		sort.Slice(result, func(i, j int) bool {
			if result[i].Count != result[j].Count {
				return result[i].Count > result[j].Count
			}
			return result[i].Kmer < result[j].Kmer
		})
	default: // alpha
		sort.Slice(result, func(i, j int) bool {
			return result[i].Kmer < result[j].Kmer
		})
	}

	if relFreq {
		fmt.Fprintln(w, "Descriptor\tCount\tRelative_Freq(%)")
	} else {
		fmt.Fprintln(w, "Descriptor\tCount")
	}
	for _, item := range result {
		if relFreq {
			fmt.Fprintf(w, "%s\t%d\t%.2f\n", item.Kmer, item.Count, item.RelPct)
		} else {
			fmt.Fprintf(w, "%s\t%d\n", item.Kmer, item.Count)
		}
	}
}
