package models

import (
	"fmt"
	"strconv"
	"time"
)

// Sheet is an ordered collection of rows. Rows and columns are addressed
// 1-based to match spreadsheet conventions; the backing slices grow on
// demand, so reading an unpopulated coordinate returns an empty cell.
type Sheet struct {
	Name string
	rows [][]*Cell
}

// NewSheet returns an empty sheet with the given name.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name}
}

// MaxRow returns the highest populated row index, 0 for an empty sheet.
func (s *Sheet) MaxRow() int {
	return len(s.rows)
}

// MaxCol returns the highest populated column index across all rows.
func (s *Sheet) MaxCol() int {
	max := 0
	for _, row := range s.rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Cell returns the cell at the 1-based coordinate, allocating it (and any
// intermediate rows) if absent.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 1 || col < 1 {
		panic(fmt.Sprintf("models: cell coordinate out of range: row %d, col %d", row, col))
	}
	for len(s.rows) < row {
		s.rows = append(s.rows, nil)
	}
	r := s.rows[row-1]
	for len(r) < col {
		r = append(r, &Cell{})
	}
	s.rows[row-1] = r
	return r[col-1]
}

// Peek returns the cell at the coordinate without allocating, or nil.
func (s *Sheet) Peek(row, col int) *Cell {
	if row < 1 || col < 1 || row > len(s.rows) {
		return nil
	}
	r := s.rows[row-1]
	if col > len(r) {
		return nil
	}
	return r[col-1]
}

// Value returns the string form of the cell value at the coordinate.
func (s *Sheet) Value(row, col int) string {
	c := s.Peek(row, col)
	if c == nil || c.Formula != "" {
		return ""
	}
	return c.String()
}

// SetValue sets a plain value at the coordinate, clearing any formula.
func (s *Sheet) SetValue(row, col int, value interface{}) {
	c := s.Cell(row, col)
	c.Value = value
	c.Formula = ""
}

// SetFormula sets a formula at the coordinate, clearing any plain value.
func (s *Sheet) SetFormula(row, col int, formula string) {
	c := s.Cell(row, col)
	c.Formula = formula
	c.Value = nil
}

// InsertRow opens a new empty row at the 1-based index, shifting that row
// and everything below it down by one. It changes physical positions only;
// rebasing the formulas and hyperlinks that now point one row short is the
// caller's job.
func (s *Sheet) InsertRow(at int) {
	if at < 1 {
		panic(fmt.Sprintf("models: insert row out of range: %d", at))
	}
	for len(s.rows) < at-1 {
		s.rows = append(s.rows, nil)
	}
	idx := at - 1
	s.rows = append(s.rows, nil)
	copy(s.rows[idx+1:], s.rows[idx:])
	s.rows[idx] = nil
}

// LastDataRow returns the last ledger row whose status column is populated,
// or HeaderRows if the sheet holds no ledger data. Inserting after the
// returned index appends to the end of the ledger.
func (s *Sheet) LastDataRow() int {
	last := HeaderRows
	for row := FirstLedgerRow; row <= s.MaxRow(); row++ {
		if s.Value(row, ColStatus) != "" {
			last = row
		}
	}
	return last
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("02.01.2006")
	default:
		return fmt.Sprintf("%v", t)
	}
}
