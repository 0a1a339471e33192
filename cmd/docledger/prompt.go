package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/docledger/docledger-go/pkg/docledger"
)

// readlinePrompt collects validity metadata interactively. Fields come
// pre-filled with their defaults; Ctrl+C or EOF cancels the prompt and
// keeps the defaults that were already written.
type readlinePrompt struct{}

func newReadlinePrompt() *readlinePrompt {
	return &readlinePrompt{}
}

func (p *readlinePrompt) Collect(req docledger.MetadataRequest) (*docledger.MetadataValues, error) {
	rl, err := readline.New("> ")
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	color.New(color.Bold).Printf("\nValidity metadata for %s\n", req.Document.Filename)
	fmt.Printf("  document %s, sheet %q, row %d\n", req.Document.DocID, req.Document.SheetName, req.Document.RowNum)
	if req.Document.Bootstrap {
		fmt.Println("  first version: no previous entry to annotate")
	}

	values := &docledger.MetadataValues{}
	if req.FoundRow != nil {
		fmt.Println("Superseded entry:")
		found := *req.FoundRow
		if err := p.editRow(rl, &found); err != nil {
			return nil, err
		}
		values.FoundRow = &found
	}
	fmt.Println("New entry:")
	newRow := req.NewRow
	if err := p.editRow(rl, &newRow); err != nil {
		return nil, err
	}
	values.NewRow = newRow
	return values, nil
}

func (p *readlinePrompt) editRow(rl *readline.Instance, md *docledger.RowMetadata) error {
	fields := []struct {
		label string
		value *string
	}{
		{"valid from (DD.MM.YYYY)", &md.ValidFrom},
		{"blocked from", &md.BlockedFrom},
		{"last reviewed", &md.LastReviewed},
	}
	for _, f := range fields {
		rl.SetPrompt(fmt.Sprintf("  %s: ", f.label))
		line, err := rl.ReadlineWithDefault(*f.value)
		switch err {
		case nil:
			*f.value = strings.TrimSpace(line)
		case readline.ErrInterrupt, io.EOF:
			return docledger.ErrPromptCancelled
		default:
			return err
		}
	}
	return nil
}
