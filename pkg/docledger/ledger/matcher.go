package ledger

import (
	"strings"

	"github.com/docledger/docledger-go/pkg/docledger/identity"
	"github.com/docledger/docledger-go/pkg/docledger/models"
)

// Match is one ledger row whose document identity equals that of an
// incoming filename.
type Match struct {
	Sheet  *models.Sheet
	Row    int
	Status models.Status
}

// FindMatches scans every sheet from the header offset to the last
// populated row and returns all rows matching the filename's document
// identity, in sheet order then row order. The last element models "most
// recent version currently in the ledger" and is the ordinary-path anchor.
func FindMatches(wb *models.Workbook, filename string) []Match {
	var matches []Match
	for _, sheet := range wb.Sheets {
		for row := models.FirstLedgerRow; row <= sheet.MaxRow(); row++ {
			cell := sheet.Value(row, models.ColDocID)
			if cell == "" {
				continue
			}
			if identity.SameDocument(filename, cell) {
				matches = append(matches, Match{
					Sheet:  sheet,
					Row:    row,
					Status: models.Status(sheet.Value(row, models.ColStatus)),
				})
			}
		}
	}
	return matches
}

// FindInPlaceCandidate returns the first candidate-status row whose column
// B is an exact string match (not just identity match) for the filename's
// document ID. Such a placeholder row is activated in place instead of
// growing the ledger. Returns nil when the fast path does not apply.
//
// The exact-match requirement is deliberate: a whitespace or case variant
// in column B makes the fast path miss and the update fall through to the
// ordinary path.
func FindInPlaceCandidate(wb *models.Workbook, filename string) *Match {
	docID, ok := identity.ExtractID(filename)
	if !ok {
		return nil
	}
	for _, sheet := range wb.Sheets {
		for row := models.FirstLedgerRow; row <= sheet.MaxRow(); row++ {
			if models.Status(sheet.Value(row, models.ColStatus)) != models.StatusCandidate {
				continue
			}
			if strings.TrimSpace(sheet.Value(row, models.ColDocID)) == docID {
				return &Match{Sheet: sheet, Row: row, Status: models.StatusCandidate}
			}
		}
	}
	return nil
}

// BootstrapAnchor is the insertion target selected for a first-version
// document.
type BootstrapAnchor struct {
	Sheet *models.Sheet
	Row   int
	// AtEnd is true when no row shares the document's prefix and the
	// insertion falls back to the end of a sheet.
	AtEnd bool
}

// FindBootstrapAnchor selects where a first-version (V1) document is
// inserted. Among rows whose column B shares the filename's two-letter-group
// prefix, it picks the one with the highest numeric suffix; ties on suffix
// are broken by the highest major version in column C. When no row shares
// the prefix, it falls back to the end of the first sheet holding any row
// with the prefix, or failing that the end of the first sheet.
func FindBootstrapAnchor(wb *models.Workbook, filename string) BootstrapAnchor {
	prefix, ok := identity.ExtractPrefix(filename)

	for _, sheet := range wb.Sheets {
		if !ok {
			break
		}
		maxSuffix := -1
		anchorRow := 0
		for row := models.FirstLedgerRow; row <= sheet.MaxRow(); row++ {
			docID := sheet.Value(row, models.ColDocID)
			if docID == "" || !samePrefix(prefix, docID) {
				continue
			}
			suffix, okSuffix := identity.NumericSuffix(docID)
			if !okSuffix {
				continue
			}
			if suffix > maxSuffix {
				maxSuffix = suffix
				anchorRow = row
			}
		}
		if anchorRow == 0 {
			continue
		}
		// Ties on the suffix: prefer the row with the highest version.
		maxVersion := -1
		for row := models.FirstLedgerRow; row <= sheet.MaxRow(); row++ {
			docID := sheet.Value(row, models.ColDocID)
			if docID == "" || !samePrefix(prefix, docID) {
				continue
			}
			suffix, okSuffix := identity.NumericSuffix(docID)
			if !okSuffix || suffix != maxSuffix {
				continue
			}
			version, okVersion := identity.VersionMajor(sheet.Value(row, models.ColVersion))
			if !okVersion {
				version = 0
			}
			if version > maxVersion {
				maxVersion = version
				anchorRow = row
			}
		}
		return BootstrapAnchor{Sheet: sheet, Row: anchorRow}
	}

	// No suffix/version anchor; append to the sheet holding the prefix.
	if ok {
		for _, sheet := range wb.Sheets {
			for row := models.FirstLedgerRow; row <= sheet.MaxRow(); row++ {
				docID := sheet.Value(row, models.ColDocID)
				if docID != "" && samePrefix(prefix, docID) {
					return BootstrapAnchor{Sheet: sheet, Row: sheet.LastDataRow(), AtEnd: true}
				}
			}
		}
	}
	if len(wb.Sheets) == 0 {
		return BootstrapAnchor{}
	}
	first := wb.Sheets[0]
	return BootstrapAnchor{Sheet: first, Row: first.LastDataRow(), AtEnd: true}
}

func samePrefix(prefix, docID string) bool {
	p, ok := identity.ExtractPrefix(docID)
	return ok && p == prefix
}
