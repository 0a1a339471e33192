package docledger

import (
	"errors"
	"fmt"
)

// ErrPromptCancelled is returned by a MetadataPrompt when the operator
// cancels. The structural row changes are kept; only the validity metadata
// stays at its pre-populated defaults.
var ErrPromptCancelled = errors.New("metadata prompt cancelled")

// PersistenceError represents a failed workbook save. Fatal for the file
// being processed; the in-memory mutations are discarded with the unsaved
// workbook.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist workbook %q: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
