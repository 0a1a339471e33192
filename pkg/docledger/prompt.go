package docledger

// DocumentInfo identifies the document an update is running for, shown to
// the operator alongside the metadata prompt.
type DocumentInfo struct {
	Filename  string
	DocID     string
	SheetName string
	RowNum    int
	Bootstrap bool
}

// RowMetadata carries the user-maintained validity columns E, F, G of one
// ledger row. Values are text; DD.MM.YYYY strings become date cells at the
// persistence boundary, everything else is stored verbatim.
type RowMetadata struct {
	ValidFrom    string
	BlockedFrom  string
	LastReviewed string
}

// MetadataRequest is handed to the prompt collaborator. FoundRow is nil
// when there is no anchor row to annotate (bootstrap and in-place paths);
// otherwise it is pre-populated with the anchor's current values. NewRow
// carries the defaults for the freshly written row.
type MetadataRequest struct {
	Document DocumentInfo
	FoundRow *RowMetadata
	NewRow   RowMetadata
}

// MetadataValues is what the prompt returns on confirmation.
type MetadataValues struct {
	FoundRow *RowMetadata
	NewRow   RowMetadata
}

// MetadataPrompt collects validity metadata from an external collaborator.
// Collect blocks until the operator confirms or cancels; cancellation is
// reported as ErrPromptCancelled. There is no timeout: a stalled prompt
// blocks the batch.
type MetadataPrompt interface {
	Collect(req MetadataRequest) (*MetadataValues, error)
}

// AcceptDefaults is a MetadataPrompt that confirms every request with its
// pre-populated values, for non-interactive runs.
type AcceptDefaults struct{}

// Collect returns the request's own defaults.
func (AcceptDefaults) Collect(req MetadataRequest) (*MetadataValues, error) {
	return &MetadataValues{FoundRow: req.FoundRow, NewRow: req.NewRow}, nil
}
