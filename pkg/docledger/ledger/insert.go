package ledger

import (
	"fmt"

	"github.com/docledger/docledger-go/pkg/docledger/identity"
	"github.com/docledger/docledger-go/pkg/docledger/models"
)

// InsertResult describes one physical row insertion.
type InsertResult struct {
	// NewRow is the 1-based index of the inserted row.
	NewRow int
	// Stats accumulates the rebase counts of the clone and the
	// whole-sheet pass.
	Stats RebaseStats
}

// InsertAfter opens a new row immediately below anchorRow, clones the
// anchor's formatting, values, formulas and hyperlinks into it, and rebases
// the rest of the sheet so existing references stay correct.
//
// Cloned formulas are rebased with the anchor row as threshold: a reference
// to row R >= anchor in the anchor's formula becomes R+1 in the clone, so
// self-references follow the new row. Everything strictly below the new row
// is then rebased with threshold anchor+1, leaving references at or above
// the anchor untouched.
func InsertAfter(sheet *models.Sheet, anchorRow int) InsertResult {
	newRow := anchorRow + 1
	sheet.InsertRow(newRow)

	res := InsertResult{NewRow: newRow}
	maxCol := sheet.MaxCol()
	for col := 1; col <= maxCol; col++ {
		src := sheet.Peek(anchorRow, col)
		if src == nil {
			continue
		}
		dst := sheet.Cell(newRow, col)
		dst.StyleID = src.StyleID
		if src.Formula != "" {
			if rebased, ok := tryRebase(src.Formula, anchorRow); ok {
				dst.Formula = rebased
				res.Stats.Formulas++
			} else {
				dst.Formula = src.Formula
				res.Stats.Failures++
			}
		} else {
			dst.Value = src.Value
		}
		if src.Hyperlink != nil {
			link := *src.Hyperlink
			if rebased, ok := tryRebase(link.Target, anchorRow); ok {
				link.Target = rebased
				res.Stats.Hyperlinks++
			} else {
				res.Stats.Failures++
			}
			dst.Hyperlink = &link
		}
	}

	res.Stats.Add(RebaseBelow(sheet, anchorRow+1, newRow+1))
	return res
}

// SetDisplayFormula writes the derived concatenation formula into column I
// of the given row. It must reference the row's own B/C/D cells, so it is
// set explicitly rather than trusting the generic clone-and-rebase step.
func SetDisplayFormula(sheet *models.Sheet, row int) {
	formula := fmt.Sprintf(`=CONCATENATE(B%d,"-",C%d,"_",D%d)`, row, row, row)
	sheet.SetFormula(row, models.ColDisplay, formula)
}

// FillIdentity writes the status code and the parsed identity parts of the
// incoming filename into columns A through D of the row.
func FillIdentity(sheet *models.Sheet, row int, status models.Status, id identity.Identity) {
	sheet.SetValue(row, models.ColStatus, string(status))
	sheet.SetValue(row, models.ColDocID, id.ID)
	sheet.SetValue(row, models.ColVersion, id.VersionLang)
	sheet.SetValue(row, models.ColTitle, id.Title)
}

// WriteLink sets the column J hyperlink of the row. The display text is the
// filesystem path; when exists is false it carries a "(Not Found)" marker
// and no link target is set, matching how dead links are surfaced in the
// ledger.
func WriteLink(sheet *models.Sheet, row int, path string, target string, exists bool) {
	cell := sheet.Cell(row, models.ColLink)
	cell.Formula = ""
	if !exists {
		cell.Value = path + " (Not Found)"
		cell.Hyperlink = nil
		return
	}
	cell.Value = path
	cell.Hyperlink = &models.Hyperlink{Target: target, Display: path}
}
