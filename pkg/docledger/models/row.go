package models

// Ledger column layout (1-based). Columns A through J of the tracking
// sheet; H is unused by the ledger.
const (
	ColStatus       = 1  // A: lifecycle status code
	ColDocID        = 2  // B: document ID, e.g. "AB-CD-001"
	ColVersion      = 3  // C: version-language tag, e.g. "V1.0-DE"
	ColTitle        = 4  // D: free-text title
	ColValidFrom    = 5  // E: valid-from date
	ColBlockedFrom  = 6  // F: blocked-from date or CurrentlyValid
	ColLastReviewed = 7  // G: last-reviewed date or NotReviewed
	ColDisplay      = 9  // I: derived concatenation formula
	ColLink         = 10 // J: hyperlink to the document file
)

// HeaderRows is the number of header/metadata rows at the top of every
// tracking sheet. Ledger data starts at FirstLedgerRow and the header rows
// are never touched.
const (
	HeaderRows     = 8
	FirstLedgerRow = HeaderRows + 1
)

// Status is the lifecycle status code in column A.
type Status string

const (
	// StatusActive marks the single live row of a document.
	StatusActive Status = "A"
	// StatusCandidate marks a placeholder row awaiting activation.
	StatusCandidate Status = "C"
	// StatusExpired marks a superseded row.
	StatusExpired Status = "E"
)

// Sentinel texts used in the date columns instead of date values.
const (
	// CurrentlyValid is written to column F of a freshly inserted row.
	CurrentlyValid = "aktuell gültig"
	// NotReviewed is written to column G of a freshly inserted row.
	NotReviewed = "-"
)

// LedgerRow is a read-only snapshot of one ledger row, used for match
// results and inspection output. Mutations go through the Sheet.
type LedgerRow struct {
	SheetName    string
	Row          int
	Status       Status
	DocID        string
	Version      string
	Title        string
	ValidFrom    string
	BlockedFrom  string
	LastReviewed string
}

// SnapshotRow reads the ledger columns of the given row.
func (s *Sheet) SnapshotRow(row int) LedgerRow {
	return LedgerRow{
		SheetName:    s.Name,
		Row:          row,
		Status:       Status(s.Value(row, ColStatus)),
		DocID:        s.Value(row, ColDocID),
		Version:      s.Value(row, ColVersion),
		Title:        s.Value(row, ColTitle),
		ValidFrom:    s.Value(row, ColValidFrom),
		BlockedFrom:  s.Value(row, ColBlockedFrom),
		LastReviewed: s.Value(row, ColLastReviewed),
	}
}
