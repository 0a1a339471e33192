package docledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/docledger/docledger-go/pkg/docledger/identity"
	"github.com/docledger/docledger-go/pkg/docledger/ledger"
	"github.com/docledger/docledger-go/pkg/docledger/models"
	"github.com/docledger/docledger-go/pkg/docledger/store"
)

// State is one step of the update state machine. The engine is synchronous
// and single-threaded; the only suspension point is AwaitingMetadata, where
// control passes to the prompt collaborator.
type State string

const (
	StateIdle             State = "idle"
	StateSearching        State = "searching"
	StateInPlaceUpdate    State = "in_place_update"
	StateOrdinaryInsert   State = "ordinary_insert"
	StateBootstrapInsert  State = "bootstrap_insert"
	StateNoMatch          State = "no_match"
	StateAwaitingMetadata State = "awaiting_metadata"
	StateCommitting       State = "committing"
	StateSaved            State = "saved"
	StateFailed           State = "failed"
)

// Outcome classifies how one file's update ended.
type Outcome string

const (
	OutcomeInPlace      Outcome = "in_place"
	OutcomeInserted     Outcome = "inserted"
	OutcomeBootstrapped Outcome = "bootstrapped"
	OutcomeNoMatch      Outcome = "no_match"
)

// UpdateRequest is one file of a batch.
type UpdateRequest struct {
	// Prefix is the document ID prefix supplied by the caller; trailing
	// hyphens are normalized away.
	Prefix string
	// Filename is the incoming document's filename (no directory).
	Filename string
	// Group is the multi-format group the file belongs to, if any. The
	// group's priority file decides the hyperlink path and whether the
	// metadata prompt is shown.
	Group *models.DocumentGroup
}

// UpdateResult reports one file's run through the state machine.
type UpdateResult struct {
	Filename  string
	Outcome   Outcome
	SheetName string
	// Row is the ledger row written: the inserted row for the insert
	// paths, the updated row for the in-place path.
	Row int
	// Stats holds the rebase counts of the insertion, zero for the
	// in-place and no-match paths.
	Stats ledger.RebaseStats
	// PromptCancelled is true when the operator cancelled the metadata
	// prompt; the structural changes were still committed.
	PromptCancelled bool
	// FallbackParse is true when the filename did not fit the structured
	// grammar and the looser split was used for columns B/C/D.
	FallbackParse bool
}

// Engine runs document updates against one open workbook. Not safe for
// concurrent use; a batch owns the workbook for its whole duration.
type Engine struct {
	store Store
	opts  Options
	log   *zap.Logger
	state State
}

// New returns an engine committing through the given store.
func New(st Store, opts Options) *Engine {
	opts = opts.normalized()
	return &Engine{
		store: st,
		opts:  opts,
		log:   opts.Logger,
		state: StateIdle,
	}
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

func (e *Engine) transition(s State) {
	e.log.Debug("state transition", zap.String("from", string(e.state)), zap.String("to", string(s)))
	e.state = s
}

// UpdateLedger runs one file through the full update: locate the anchor,
// mutate the model, collect metadata, commit. A missing match and a
// cancelled prompt are reported in the result, not as errors; only
// persistence failures and an unusable workbook return a non-nil error.
func (e *Engine) UpdateLedger(wb *models.Workbook, req UpdateRequest) (*UpdateResult, error) {
	req.Prefix = strings.TrimRight(req.Prefix, "-")
	parsed := identity.Parse(req.Filename)

	result := &UpdateResult{
		Filename:      req.Filename,
		FallbackParse: parsed.Quality == identity.QualityFallback,
	}
	if result.FallbackParse {
		e.log.Warn("filename did not fit the structured grammar, using fallback split",
			zap.String("filename", req.Filename))
	}

	e.transition(StateSearching)
	e.log.Info("searching ledger",
		zap.String("filename", req.Filename),
		zap.String("prefix", req.Prefix),
		zap.Int("sheets", len(wb.Sheets)))

	if m := ledger.FindInPlaceCandidate(wb, req.Filename); m != nil {
		return e.updateInPlace(wb, req, parsed, m, result)
	}
	if identity.IsBootstrap(req.Filename) {
		return e.bootstrapInsert(wb, req, parsed, result)
	}
	matches := ledger.FindMatches(wb, req.Filename)
	if len(matches) == 0 {
		e.transition(StateNoMatch)
		e.log.Warn("no matching row and not a first-version file",
			zap.String("filename", req.Filename))
		result.Outcome = OutcomeNoMatch
		return result, nil
	}
	return e.ordinaryInsert(wb, req, parsed, matches[len(matches)-1], result)
}

// updateInPlace activates a candidate placeholder row without growing the
// ledger: status flips to active, identity columns are overwritten, and
// only new-row metadata is collected.
func (e *Engine) updateInPlace(wb *models.Workbook, req UpdateRequest, parsed identity.Identity, m *ledger.Match, result *UpdateResult) (*UpdateResult, error) {
	e.transition(StateInPlaceUpdate)
	sheet, row := m.Sheet, m.Row
	e.log.Info("activating candidate row in place",
		zap.String("sheet", sheet.Name), zap.Int("row", row),
		zap.String("doc_id", parsed.ID))

	ledger.FillIdentity(sheet, row, models.StatusActive, parsed)
	e.writeLink(sheet, row, req, e.opts.TargetDir)

	promptReq := MetadataRequest{
		Document: e.documentInfo(req, parsed, sheet.Name, row, false),
		NewRow: RowMetadata{
			ValidFrom:    sheet.Value(row, models.ColValidFrom),
			BlockedFrom:  sheet.Value(row, models.ColBlockedFrom),
			LastReviewed: sheet.Value(row, models.ColLastReviewed),
		},
	}
	result.PromptCancelled = e.collectMetadata(req, promptReq, sheet, 0, row)

	result.Outcome = OutcomeInPlace
	result.SheetName = sheet.Name
	result.Row = row
	return result, e.commit(wb)
}

// ordinaryInsert expires the anchor row and inserts the replacement
// directly beneath it.
func (e *Engine) ordinaryInsert(wb *models.Workbook, req UpdateRequest, parsed identity.Identity, anchor ledger.Match, result *UpdateResult) (*UpdateResult, error) {
	e.transition(StateOrdinaryInsert)
	sheet, anchorRow := anchor.Sheet, anchor.Row
	oldStatus := anchor.Status
	e.log.Info("inserting below anchor",
		zap.String("sheet", sheet.Name), zap.Int("anchor_row", anchorRow),
		zap.String("old_status", string(oldStatus)))

	sheet.SetValue(anchorRow, models.ColStatus, string(models.StatusExpired))

	ins := ledger.InsertAfter(sheet, anchorRow)
	newRow := ins.NewRow
	result.Stats = ins.Stats

	// The new row carries the anchor's pre-flip status; the anchor is the
	// one that expired.
	ledger.FillIdentity(sheet, newRow, oldStatus, parsed)
	ledger.SetDisplayFormula(sheet, newRow)

	// Anchor link moves to the archive copy, the new row links the live
	// copy, both in the same transaction.
	e.writeLink(sheet, anchorRow, req, e.opts.ArchiveDir)
	e.writeLink(sheet, newRow, req, e.opts.TargetDir)

	found := &RowMetadata{
		ValidFrom:    sheet.Value(anchorRow, models.ColValidFrom),
		BlockedFrom:  sheet.Value(anchorRow, models.ColBlockedFrom),
		LastReviewed: sheet.Value(anchorRow, models.ColLastReviewed),
	}
	defaults := RowMetadata{
		ValidFrom:    found.ValidFrom,
		BlockedFrom:  models.CurrentlyValid,
		LastReviewed: models.NotReviewed,
	}
	applyMetadata(sheet, newRow, defaults)

	promptReq := MetadataRequest{
		Document: e.documentInfo(req, parsed, sheet.Name, anchorRow, false),
		FoundRow: found,
		NewRow:   defaults,
	}
	result.PromptCancelled = e.collectMetadata(req, promptReq, sheet, anchorRow, newRow)

	result.Outcome = OutcomeInserted
	result.SheetName = sheet.Name
	result.Row = newRow
	return result, e.commit(wb)
}

// bootstrapInsert places a first-version document: no anchor to expire,
// the insertion point comes from the prefix/version maximization search.
func (e *Engine) bootstrapInsert(wb *models.Workbook, req UpdateRequest, parsed identity.Identity, result *UpdateResult) (*UpdateResult, error) {
	e.transition(StateBootstrapInsert)
	anchor := ledger.FindBootstrapAnchor(wb, req.Filename)
	if anchor.Sheet == nil {
		e.transition(StateFailed)
		return nil, fmt.Errorf("workbook %s has no sheets", wb.Path)
	}
	if anchor.AtEnd {
		e.log.Warn("no suffix anchor for first-version file, appending at end of sheet",
			zap.String("sheet", anchor.Sheet.Name), zap.Int("row", anchor.Row),
			zap.String("filename", req.Filename))
	} else {
		e.log.Info("bootstrap anchor selected",
			zap.String("sheet", anchor.Sheet.Name), zap.Int("row", anchor.Row))
	}

	sheet := anchor.Sheet
	ins := ledger.InsertAfter(sheet, anchor.Row)
	newRow := ins.NewRow
	result.Stats = ins.Stats

	ledger.FillIdentity(sheet, newRow, models.StatusActive, parsed)
	ledger.SetDisplayFormula(sheet, newRow)
	e.writeLink(sheet, newRow, req, e.opts.TargetDir)

	defaults := RowMetadata{
		BlockedFrom:  models.CurrentlyValid,
		LastReviewed: models.NotReviewed,
	}
	applyMetadata(sheet, newRow, defaults)

	promptReq := MetadataRequest{
		Document: e.documentInfo(req, parsed, sheet.Name, newRow, true),
		NewRow:   defaults,
	}
	result.PromptCancelled = e.collectMetadata(req, promptReq, sheet, 0, newRow)

	result.Outcome = OutcomeBootstrapped
	result.SheetName = sheet.Name
	result.Row = newRow
	return result, e.commit(wb)
}

// collectMetadata suspends at AwaitingMetadata, then writes the returned
// values. foundRow 0 means there is no anchor row to annotate. Returns true
// when the prompt was cancelled; the pre-populated defaults then stand.
func (e *Engine) collectMetadata(req UpdateRequest, promptReq MetadataRequest, sheet *models.Sheet, foundRow, newRow int) (cancelled bool) {
	if !e.shouldPrompt(req) {
		e.log.Info("skipping metadata prompt for non-priority file",
			zap.String("filename", req.Filename))
		return false
	}

	e.transition(StateAwaitingMetadata)
	values, err := e.opts.Prompt.Collect(promptReq)
	if err != nil {
		if errors.Is(err, ErrPromptCancelled) {
			e.log.Warn("metadata prompt cancelled, keeping defaults",
				zap.String("filename", req.Filename))
			return true
		}
		e.log.Error("metadata prompt failed, keeping defaults", zap.Error(err))
		return true
	}

	if values.FoundRow != nil && foundRow > 0 {
		applyMetadata(sheet, foundRow, *values.FoundRow)
	}
	applyMetadata(sheet, newRow, values.NewRow)
	return false
}

// shouldPrompt gates the prompt to the priority file of a multi-format
// group, so one logical document asks for its metadata once.
func (e *Engine) shouldPrompt(req UpdateRequest) bool {
	if req.Group == nil || !req.Group.HasMultipleFormats() {
		return true
	}
	return filepath.Base(req.Group.PriorityFile()) == req.Filename
}

func (e *Engine) documentInfo(req UpdateRequest, parsed identity.Identity, sheetName string, row int, bootstrap bool) DocumentInfo {
	return DocumentInfo{
		Filename:  req.Filename,
		DocID:     parsed.ID,
		SheetName: sheetName,
		RowNum:    row,
		Bootstrap: bootstrap,
	}
}

// writeLink writes the column J hyperlink of a row, pointing into dir. The
// linked filename is the group's priority file when the document exists in
// several formats.
func (e *Engine) writeLink(sheet *models.Sheet, row int, req UpdateRequest, dir string) {
	if dir == "" {
		return
	}
	name := req.Filename
	if req.Group != nil && req.Group.HasMultipleFormats() {
		name = filepath.Base(req.Group.PriorityFile())
	}
	path := filepath.Join(dir, name)

	exists := true
	if e.opts.CheckFileExists {
		if _, err := os.Stat(path); err != nil {
			exists = false
			e.log.Warn("linked document not found on disk", zap.String("path", path))
		}
	}
	ledger.WriteLink(sheet, row, path, fileURI(path), exists)
}

// commit persists the whole workbook. There is no rollback of the
// in-memory mutations on failure; the unsaved workbook is simply discarded
// by the caller.
func (e *Engine) commit(wb *models.Workbook) error {
	e.transition(StateCommitting)
	if err := e.store.Save(wb); err != nil {
		e.transition(StateFailed)
		return &PersistenceError{Path: wb.Path, Err: err}
	}
	e.transition(StateSaved)
	e.log.Info("workbook saved", zap.String("path", wb.Path))
	return nil
}

// applyMetadata writes E/F/G of a row, converting DD.MM.YYYY texts to date
// values and storing sentinels verbatim.
func applyMetadata(sheet *models.Sheet, row int, md RowMetadata) {
	sheet.SetValue(row, models.ColValidFrom, store.ParseDateValue(md.ValidFrom))
	sheet.SetValue(row, models.ColBlockedFrom, store.ParseDateValue(md.BlockedFrom))
	sheet.SetValue(row, models.ColLastReviewed, store.ParseDateValue(md.LastReviewed))
}

func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file:///" + strings.TrimPrefix(filepath.ToSlash(abs), "/")
}
