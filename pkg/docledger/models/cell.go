// Package models defines the in-memory workbook representation the ledger
// engine operates on. The engine mutates these structures only; nothing is
// written to disk until the store serializes the whole workbook at commit.
package models

// Hyperlink is a cell hyperlink. Display is the visible cell text, Target
// the link destination (typically a file:// URI for ledger rows).
type Hyperlink struct {
	Target  string
	Display string
}

// Cell holds one cell of a sheet. Formula carries the leading "=". StyleID
// is an opaque style handle assigned by the store and preserved verbatim
// when rows are cloned.
type Cell struct {
	Value     interface{}
	Formula   string
	Hyperlink *Hyperlink
	StyleID   int
}

// IsEmpty reports whether the cell carries no value, formula, or hyperlink.
func (c *Cell) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Value == nil && c.Formula == "" && c.Hyperlink == nil
}

// Clone returns a deep copy of the cell.
func (c *Cell) Clone() *Cell {
	if c == nil {
		return &Cell{}
	}
	out := &Cell{
		Value:   c.Value,
		Formula: c.Formula,
		StyleID: c.StyleID,
	}
	if c.Hyperlink != nil {
		link := *c.Hyperlink
		out.Hyperlink = &link
	}
	return out
}

// String returns the cell value as text. Formulas are returned as-is,
// values via fmt-style conversion, empty cells as "".
func (c *Cell) String() string {
	if c == nil {
		return ""
	}
	if c.Formula != "" {
		return c.Formula
	}
	if c.Value == nil {
		return ""
	}
	if s, ok := c.Value.(string); ok {
		return s
	}
	return toString(c.Value)
}
