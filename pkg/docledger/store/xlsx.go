// Package store is the persistence boundary of the ledger: it loads a
// tracking workbook into the in-memory model and serializes the whole model
// back on commit. Nothing outside this package touches the xlsx container.
package store

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/docledger/docledger-go/pkg/docledger/models"
	"github.com/xuri/excelize/v2"
)

// XLSXStore reads and writes tracking workbooks through excelize. One store
// instance owns one open workbook file for the duration of a batch.
type XLSXStore struct {
	file *excelize.File
	path string
}

// Open loads the workbook at path.
func Open(path string) (*XLSXStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &XLSXStore{file: f, path: path}, nil
}

// Close releases the underlying file handle.
func (s *XLSXStore) Close() error {
	return s.file.Close()
}

// Load reads every sheet into the in-memory model: cell values, formulas,
// hyperlinks, and style handles for the used range.
func (s *XLSXStore) Load() (*models.Workbook, error) {
	wb := &models.Workbook{Path: s.path}

	for _, sheetName := range s.file.GetSheetList() {
		sheet := wb.AddSheet(sheetName)
		rows, err := s.file.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}

		for rowIdx, row := range rows {
			rowNum := rowIdx + 1
			for colIdx, value := range row {
				colNum := colIdx + 1
				cellName, err := excelize.CoordinatesToCellName(colNum, rowNum)
				if err != nil {
					return nil, err
				}

				cell := sheet.Cell(rowNum, colNum)
				if value != "" {
					cell.Value = value
				}
				if formula, err := s.file.GetCellFormula(sheetName, cellName); err == nil && formula != "" {
					cell.Formula = normalizeFormula(formula)
					cell.Value = nil
				}
				if hasLink, target, err := s.file.GetCellHyperLink(sheetName, cellName); err == nil && hasLink {
					cell.Hyperlink = &models.Hyperlink{Target: target, Display: value}
				}
				if styleID, err := s.file.GetCellStyle(sheetName, cellName); err == nil {
					cell.StyleID = styleID
				}
			}
		}
	}
	return wb, nil
}

// Save serializes the whole model back onto the workbook and writes it to
// its path. Every cell of the model range is written, so row shifts carried
// out in the model overwrite the stale positions on disk. This is the only
// write in the engine's lifecycle; a locked or unwritable target surfaces
// here.
func (s *XLSXStore) Save(wb *models.Workbook) error {
	for _, sheet := range wb.Sheets {
		if err := s.saveSheet(sheet); err != nil {
			return err
		}
	}
	if err := s.file.SaveAs(wb.Path); err != nil {
		return fmt.Errorf("save workbook %s: %w", wb.Path, err)
	}
	return nil
}

func (s *XLSXStore) saveSheet(sheet *models.Sheet) error {
	maxCol := sheet.MaxCol()
	for row := 1; row <= sheet.MaxRow(); row++ {
		for col := 1; col <= maxCol; col++ {
			cellName, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			cell := sheet.Peek(row, col)
			if cell == nil {
				cell = &models.Cell{}
			}

			switch {
			case cell.Formula != "":
				if err := s.file.SetCellFormula(sheet.Name, cellName, strings.TrimPrefix(cell.Formula, "=")); err != nil {
					return fmt.Errorf("sheet %q cell %s: %w", sheet.Name, cellName, err)
				}
			default:
				if err := s.file.SetCellValue(sheet.Name, cellName, cell.Value); err != nil {
					return fmt.Errorf("sheet %q cell %s: %w", sheet.Name, cellName, err)
				}
			}
			if cell.Hyperlink != nil {
				err := s.file.SetCellHyperLink(sheet.Name, cellName, cell.Hyperlink.Target, "External",
					excelize.HyperlinkOpts{Display: &cell.Hyperlink.Display})
				if err != nil {
					return fmt.Errorf("sheet %q cell %s hyperlink: %w", sheet.Name, cellName, err)
				}
			}
			if cell.StyleID != 0 {
				if err := s.file.SetCellStyle(sheet.Name, cellName, cellName, cell.StyleID); err != nil {
					return fmt.Errorf("sheet %q cell %s style: %w", sheet.Name, cellName, err)
				}
			}
		}
	}
	return nil
}

func normalizeFormula(formula string) string {
	if strings.HasPrefix(formula, "=") {
		return formula
	}
	return "=" + formula
}

// datePattern matches the DD.MM.YYYY text form metadata dates arrive in.
var datePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// ParseDateValue converts a DD.MM.YYYY string into a time.Time so the
// store writes it as a date cell. Anything else, including the sentinel
// texts "aktuell gültig" and "-", is returned verbatim.
func ParseDateValue(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if !datePattern.MatchString(trimmed) {
		return value
	}
	t, err := time.Parse("02.01.2006", trimmed)
	if err != nil {
		return value
	}
	return t
}
