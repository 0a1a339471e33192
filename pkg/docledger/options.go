// Package docledger maintains a versioned, append-only document-lifecycle
// ledger embedded in a spreadsheet. The engine locates the ledger row for
// an incoming document, flips its status, inserts the replacement row, and
// keeps every formula and hyperlink in the workbook consistent.
package docledger

import (
	"go.uber.org/zap"

	"github.com/docledger/docledger-go/pkg/docledger/models"
)

// Store persists a workbook. The engine treats it as an opaque boundary:
// one Save per processed file, at the Committing state, never incremental.
type Store interface {
	Save(wb *models.Workbook) error
}

// Options configures the update engine.
type Options struct {
	// TargetDir is where the live copy of a document resides; new-row
	// hyperlinks point here.
	TargetDir string
	// ArchiveDir is where superseded copies reside; the anchor row's
	// hyperlink is rewritten to point here.
	ArchiveDir string
	// Prompt collects validity metadata. Nil defaults to AcceptDefaults.
	Prompt MetadataPrompt
	// Logger observes engine events. Nil defaults to zap.NewNop().
	Logger *zap.Logger
	// CheckFileExists controls whether hyperlink targets are checked on
	// disk; missing files get a "(Not Found)" marker instead of a link.
	CheckFileExists bool
}

func (o Options) normalized() Options {
	if o.Prompt == nil {
		o.Prompt = AcceptDefaults{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
