package seq_generator

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	common "peptide_design_go/utils"
)

// For repeated -seq arguments
type SequenceRequest struct {
	ID     string
	Length int
}

type MultiSeqFlag []SequenceRequest

func (m *MultiSeqFlag) String() string { return fmt.Sprint(*m) }
func (m *MultiSeqFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return fmt.Errorf("expected format: name,length")
	}
	length, err := strconv.Atoi(parts[1])
	if err != nil || length <= 0 {
		return fmt.Errorf("invalid length")
	}
	*m = append(*m, SequenceRequest{ID: parts[0], Length: length})
	return nil
}

// Requests expands count random peptides named name_1..name_count with
// lengths drawn uniformly from [minLen, maxLen]
func Requests(rng *rand.Rand, name string, count, minLen, maxLen int) []SequenceRequest {
	if maxLen < minLen {
		maxLen = minLen
	}
	reqs := make([]SequenceRequest, 0, count)
	for i := 1; i <= count; i++ {
		length := minLen + rng.Intn(maxLen-minLen+1)
		id := name
		if count > 1 {
			id = fmt.Sprintf("%s_%d", name, i)
		}
		reqs = append(reqs, SequenceRequest{ID: id, Length: length})
	}
	return reqs
}

// GenerateRecords draws one random peptide per request, in request order
func GenerateRecords(rng *rand.Rand, reqs []SequenceRequest) []common.Record {
	records := make([]common.Record, 0, len(reqs))
	for _, req := range reqs {
		records = append(records, common.Record{ID: req.ID, Sequence: GeneratePeptide(rng, req.Length)})
	}
	return records
}

// Run executes the seq_generator command: random peptides as FASTA, for
// decoy databases or random optimizer seeds.
func Run(args []string) {
	fs := flag.NewFlagSet("seq_generator", flag.ExitOnError)

	name := fs.String("name", "random_pep", "Sequence name (numbered when -count > 1)")
	length := fs.Int("length", 18, "Peptide length (minimum length with -max_length)")
	maxLength := fs.Int("max_length", 0, "Draw lengths uniformly from [-length, -max_length]")
	count := fs.Int("count", 1, "Number of peptides")
	seed := fs.Int64("seed", 0, "Random seed")
	outFile := fs.String("out_file", "", "Output FASTA file")
	gzipOut := fs.Bool("gzip", false, "Compress output with gzip")

	var multiSeq MultiSeqFlag
	fs.Var(&multiSeq, "seq", "Use format name,length (repeatable)")

	err := fs.Parse(args) // Parse inputs
	if err != nil {
		fmt.Println("Error parsing flags:", err) // Check for outright input failures
		os.Exit(1)                               // E.g., expected int by recieved str
	}

	if len(fs.Args()) > 0 { // If unparsed arguments remain:
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args()) // Flag the error and report it
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}

	if *length <= 0 || *count <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -length and -count must be positive.")
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	reqs := []SequenceRequest(multiSeq)
	if len(reqs) == 0 {
		reqs = Requests(rng, *name, *count, *length, *maxLength)
	}
	records := GenerateRecords(rng, reqs)

	if *outFile == "" {
		if *gzipOut {
			fmt.Fprintln(os.Stderr, "Cannot gzip to stdout. Specify -out_file.")
			os.Exit(1)
		}
		for _, rec := range records {
			fmt.Printf(">%s\n%s", rec.ID, WrapFasta(rec.Sequence, 60))
		}
		return
	}

	path := *outFile
	if *gzipOut {
		path += ".gz"
	}
	if err := writeRecords(path, records, *gzipOut); err != nil {
		fmt.Println("Error writing file:", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d sequences to %s\n", len(records), path)
}

func writeRecords(path string, records []common.Record, compress bool) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	var w io.Writer = file
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(file)
		w = gz
	}
	if err := common.WriteFasta(w, records); err != nil {
		file.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			file.Close()
			return err
		}
	}
	return file.Close()
}
