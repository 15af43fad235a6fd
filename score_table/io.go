package score_table

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	common "peptide_design_go/utils"
)

// Flat text form, one descriptor per line:
//
//	descriptor<TAB>[positive, negative, score]

// WriteTo writes the table sorted by descriptor
func (t Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, d := range t.Keys() {
		e := t[d]
		n, err := fmt.Fprintf(bw, "%s\t[%d, %d, %s]\n",
			d, e.Positive, e.Negative, strconv.FormatFloat(e.Score, 'g', -1, 64))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// WriteFile writes the table to path, replacing any existing file
func (t Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := t.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Load parses the flat text form. source names the input in errors.
// Blank lines are skipped; any other malformed line aborts with a *common.FormatError.
func Load(r io.Reader, source string) (Table, error) {
	t := make(Table)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		d, e, err := parseLine(text)
		if err != nil {
			err.Source, err.Line = source, line
			return nil, err
		}
		t[d] = e
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return t, nil
}

// LoadFile opens path and loads it
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scoring table: %w", err)
	}
	defer f.Close()
	return Load(f, path)
}

func parseLine(text string) (string, Entry, *common.FormatError) {
	key, value, found := strings.Cut(text, "\t")
	if !found {
		return "", Entry{}, &common.FormatError{Reason: "missing tab separator"}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", Entry{}, &common.FormatError{Reason: "empty descriptor"}
	}

	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		return "", Entry{}, &common.FormatError{Reason: "value is not a bracketed list"}
	}
	fields := strings.Split(value[1:len(value)-1], ",")
	if len(fields) != 3 {
		return "", Entry{}, &common.FormatError{Reason: fmt.Sprintf("expected 3 entries, found %d", len(fields))}
	}

	var nums [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", Entry{}, &common.FormatError{Reason: fmt.Sprintf("non-numeric entry %d", i+1), Err: err}
		}
		nums[i] = v
	}

	pos, err := count(nums[0])
	if err != nil {
		return "", Entry{}, err
	}
	neg, err := count(nums[1])
	if err != nil {
		return "", Entry{}, err
	}
	return key, Entry{Positive: pos, Negative: neg, Score: nums[2]}, nil
}

// counts may be printed as floats ("3.0") but must be whole and non-negative
func count(v float64) (uint64, *common.FormatError) {
	if v < 0 || v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, &common.FormatError{Reason: fmt.Sprintf("invalid count %v", v)}
	}
	return uint64(v), nil
}
