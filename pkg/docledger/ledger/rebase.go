// Package ledger implements the row-level operations on a tracking sheet:
// locating the anchor row for an update, inserting a row beneath it, and
// rebasing the formulas and hyperlinks the insertion displaced.
package ledger

import (
	"regexp"
	"strconv"

	"github.com/docledger/docledger-go/pkg/docledger/models"
)

var (
	cellRefPattern  = regexp.MustCompile(`([A-Z]+)(\d+)`)
	tableRefPattern = regexp.MustCompile(`\[@[^\]]*\]`)
)

// RebaseFormula rewrites every A1-style cell reference in the formula whose
// row number is at or below insertionRow, incrementing it by one. Rows above
// the insertion point and column letters are never altered. References
// inside a structured-table span like "Table[@Column]" are left untouched.
//
// The transform is pure text rewriting per reference; a reference whose row
// number does not fit an int is left as-is.
func RebaseFormula(formula string, insertionRow int) string {
	spans := tableRefPattern.FindAllStringIndex(formula, -1)

	return replaceAllSubmatchFunc(formula, func(start, end int, col, row string) string {
		for _, span := range spans {
			if start >= span[0] && end <= span[1] {
				return formula[start:end]
			}
		}
		n, err := strconv.Atoi(row)
		if err != nil {
			return formula[start:end]
		}
		if n >= insertionRow {
			return col + strconv.Itoa(n+1)
		}
		return formula[start:end]
	})
}

// RebaseHyperlink applies the same row-shift rewriting to a hyperlink
// target, e.g. an internal "#Sheet1!A26" reference.
func RebaseHyperlink(target string, insertionRow int) string {
	return RebaseFormula(target, insertionRow)
}

// replaceAllSubmatchFunc runs repl over every cell reference match,
// passing match bounds and the column/row submatches.
func replaceAllSubmatchFunc(s string, repl func(start, end int, col, row string) string) string {
	matches := cellRefPattern.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var out []byte
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		col := s[m[2]:m[3]]
		row := s[m[4]:m[5]]
		out = append(out, s[last:start]...)
		out = append(out, repl(start, end, col, row)...)
		last = end
	}
	out = append(out, s[last:]...)
	return string(out)
}

// RebaseStats counts the cells touched by a whole-sheet rebase pass.
type RebaseStats struct {
	// Formulas is the number of formula cells rewritten.
	Formulas int
	// Hyperlinks is the number of hyperlink targets rewritten.
	Hyperlinks int
	// Failures is the number of cells left unmodified because they could
	// not be safely rewritten.
	Failures int
	// SkippedRows is the number of ledger rows skipped because their
	// status column is empty.
	SkippedRows int
}

// Add accumulates the counts of another pass.
func (s *RebaseStats) Add(o RebaseStats) {
	s.Formulas += o.Formulas
	s.Hyperlinks += o.Hyperlinks
	s.Failures += o.Failures
	s.SkippedRows += o.SkippedRows
}

// RebaseBelow rewrites every formula and hyperlink in rows fromRow through
// the end of the sheet using insertionRow as the shift threshold. Ledger
// rows with an empty status column are skipped entirely; header rows are
// always processed. A cell whose rewrite panics is left unmodified and
// counted as a failure.
func RebaseBelow(sheet *models.Sheet, insertionRow, fromRow int) RebaseStats {
	var stats RebaseStats
	maxCol := sheet.MaxCol()

	for row := fromRow; row <= sheet.MaxRow(); row++ {
		if row >= models.FirstLedgerRow && sheet.Value(row, models.ColStatus) == "" {
			stats.SkippedRows++
			continue
		}
		for col := 1; col <= maxCol; col++ {
			cell := sheet.Peek(row, col)
			if cell == nil {
				continue
			}
			if cell.Formula != "" {
				if rebased, ok := tryRebase(cell.Formula, insertionRow); ok {
					if rebased != cell.Formula {
						cell.Formula = rebased
						stats.Formulas++
					}
				} else {
					stats.Failures++
				}
			}
			if cell.Hyperlink != nil && cell.Hyperlink.Target != "" {
				if rebased, ok := tryRebase(cell.Hyperlink.Target, insertionRow); ok {
					if rebased != cell.Hyperlink.Target {
						cell.Hyperlink.Target = rebased
						stats.Hyperlinks++
					}
				} else {
					stats.Failures++
				}
			}
		}
	}
	return stats
}

// tryRebase isolates a single cell rewrite so one malformed formula never
// aborts the insertion.
func tryRebase(s string, insertionRow int) (result string, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = s, false
		}
	}()
	return RebaseFormula(s, insertionRow), true
}
