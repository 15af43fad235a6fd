package peptide_score

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"

	"peptide_design_go/protparam"
	"peptide_design_go/reduction"
	"peptide_design_go/score_table"
)

// Input and output column headers of an IC50 workbook
const (
	SequenceColumn = "Sequence"
	IC50Column     = "Rel IC50"
)

var annotationColumns = []string{"helix_prob", "computed_charge", "space", "score"}

// IC50Row is one measured peptide with its computed annotations
type IC50Row struct {
	Row      int // sheet row, 1 based
	Sequence string
	RelIC50  float64 // NaN when the cell is blank or not numeric
	Score    float64 // length normalized
	protparam.Properties
}

// AnnotateIC50 scores every peptide of the workbook at inPath and writes a copy
// to outPath with helix_prob (percent), computed_charge, space and score columns.
// An empty sheet name selects the first sheet. Rows without a sequence are skipped.
func AnnotateIC50(inPath, outPath, sheet string, table score_table.Table, scheme reduction.Scheme, analyzer protparam.Analyzer) ([]IC50Row, error) {
	if analyzer == nil {
		analyzer = protparam.ProtParam{}
	}
	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.TrimSpace(h)] = i
	}
	seqCol, ok := header[SequenceColumn]
	if !ok {
		return nil, fmt.Errorf("sheet %s has no %q column", sheet, SequenceColumn)
	}
	ic50Col, ok := header[IC50Column]
	if !ok {
		return nil, fmt.Errorf("sheet %s has no %q column", sheet, IC50Column)
	}

	// Reuse annotation columns from an earlier run, append the rest
	outCols := make([]int, len(annotationColumns))
	next := len(rows[0])
	for i, name := range annotationColumns {
		if idx, exists := header[name]; exists {
			outCols[i] = idx
			continue
		}
		outCols[i] = next
		next++
		if err := setCell(f, sheet, outCols[i], 1, name); err != nil {
			return nil, err
		}
	}

	var annotated []IC50Row
	for r := 1; r < len(rows); r++ {
		seq := strings.ToUpper(strings.TrimSpace(cellAt(rows[r], seqCol)))
		if seq == "" {
			continue
		}
		row := IC50Row{
			Row:        r + 1,
			Sequence:   seq,
			RelIC50:    parseFloatOrNaN(cellAt(rows[r], ic50Col)),
			Score:      ScoreNormalized(seq, table, scheme),
			Properties: analyzer.Analyze(seq),
		}
		values := []float64{row.HelixFraction * 100, row.Charge, row.HydrophobicitySpacing, row.Score}
		for i, v := range values {
			var cell interface{} = v
			if math.IsNaN(v) {
				cell = ""
			}
			if err := setCell(f, sheet, outCols[i], row.Row, cell); err != nil {
				return nil, err
			}
		}
		annotated = append(annotated, row)
	}

	if err := f.SaveAs(outPath); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", outPath, err)
	}
	return annotated, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func parseFloatOrNaN(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Correlation of score against Rel IC50 over rows where both are finite
type Correlation struct {
	N        int
	Pearson  float64
	Spearman float64
}

// CorrelateIC50 reports Pearson and Spearman correlation of score vs Rel IC50.
// Both are NaN with fewer than two usable rows.
func CorrelateIC50(rows []IC50Row) Correlation {
	var scores, ic50 []float64
	for _, r := range rows {
		if isFinite(r.Score) && isFinite(r.RelIC50) {
			scores = append(scores, r.Score)
			ic50 = append(ic50, r.RelIC50)
		}
	}
	c := Correlation{N: len(scores), Pearson: math.NaN(), Spearman: math.NaN()}
	if c.N < 2 {
		return c
	}
	c.Pearson = stat.Correlation(scores, ic50, nil)
	c.Spearman = stat.Correlation(ranks(scores), ranks(ic50), nil)
	return c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ranks assigns 1 based ranks, ties share their average rank
func ranks(x []float64) []float64 {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	r := make([]float64, len(x))
	for i := 0; i < len(order); {
		j := i
		for j+1 < len(order) && x[order[j+1]] == x[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			r[order[k]] = avg
		}
		i = j + 1
	}
	return r
}
