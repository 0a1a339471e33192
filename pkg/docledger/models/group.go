package models

import (
	"path/filepath"
	"strings"
)

// DocumentGroup is a set of files sharing a base filename (extension
// ignored) discovered during one batch. A PDF/Word/Excel trio of the same
// document forms one group and produces one ledger entry.
type DocumentGroup struct {
	// Base is the shared filename without extension.
	Base string
	// Files holds the paths in first-seen order.
	Files []string
}

// HasMultipleFormats reports whether the group holds more than one file.
func (g *DocumentGroup) HasMultipleFormats() bool {
	return len(g.Files) > 1
}

// PriorityFile returns the file whose path is written into the ledger
// hyperlink column. Preference order: PDF, then Word (.docx), then Excel
// (.xlsx), then the first file seen.
func (g *DocumentGroup) PriorityFile() string {
	if len(g.Files) == 0 {
		return ""
	}
	for _, ext := range []string{".pdf", ".docx", ".xlsx"} {
		for _, f := range g.Files {
			if strings.EqualFold(filepath.Ext(f), ext) {
				return f
			}
		}
	}
	return g.Files[0]
}

// GroupFiles groups the given file paths by base filename, preserving the
// first-seen order of both groups and files within a group.
func GroupFiles(paths []string) []*DocumentGroup {
	byBase := make(map[string]*DocumentGroup)
	var order []*DocumentGroup

	for _, p := range paths {
		name := filepath.Base(p)
		base := strings.TrimSuffix(name, filepath.Ext(name))
		g, ok := byBase[base]
		if !ok {
			g = &DocumentGroup{Base: base}
			byBase[base] = g
			order = append(order, g)
		}
		g.Files = append(g.Files, p)
	}
	return order
}
