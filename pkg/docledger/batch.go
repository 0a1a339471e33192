package docledger

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/docledger/docledger-go/pkg/docledger/models"
)

// FileResult pairs one request with how it ended.
type FileResult struct {
	Request UpdateRequest
	Result  *UpdateResult
	Err     error
}

// Failed reports whether the file's processing halted outright.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// BatchSummary is the per-file outcome list of one batch run.
type BatchSummary struct {
	Files []FileResult
}

// Counts returns how many files succeeded, found no match, or failed.
func (b *BatchSummary) Counts() (ok, noMatch, failed int) {
	for _, f := range b.Files {
		switch {
		case f.Err != nil:
			failed++
		case f.Result != nil && f.Result.Outcome == OutcomeNoMatch:
			noMatch++
		default:
			ok++
		}
	}
	return
}

// RunBatch processes the requests strictly sequentially: one file's full
// state-machine run, including its metadata prompt, completes before the
// next begins. A failed or cancelled file never stops the batch.
func (e *Engine) RunBatch(wb *models.Workbook, reqs []UpdateRequest) *BatchSummary {
	summary := &BatchSummary{}
	for i, req := range reqs {
		e.log.Info("processing file",
			zap.Int("index", i+1), zap.Int("total", len(reqs)),
			zap.String("filename", req.Filename))

		result, err := e.UpdateLedger(wb, req)
		if err != nil {
			e.log.Error("file processing failed",
				zap.String("filename", req.Filename), zap.Error(err))
		}
		summary.Files = append(summary.Files, FileResult{Request: req, Result: result, Err: err})
	}
	return summary
}

// prefixLen is how many leading filename characters form the caller-side
// document prefix.
const prefixLen = 10

// RequestsFromGroups builds one update request per document group, using
// the group's priority file. One logical document yields one ledger entry
// regardless of how many formats it arrived in.
func RequestsFromGroups(groups []*models.DocumentGroup) []UpdateRequest {
	reqs := make([]UpdateRequest, 0, len(groups))
	for _, g := range groups {
		name := filepath.Base(g.PriorityFile())
		prefix := name
		if len(prefix) > prefixLen {
			prefix = prefix[:prefixLen]
		}
		reqs = append(reqs, UpdateRequest{
			Prefix:   strings.TrimRight(prefix, "-"),
			Filename: name,
			Group:    g,
		})
	}
	return reqs
}
