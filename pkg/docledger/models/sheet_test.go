package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSheetGrowsOnDemand(t *testing.T) {
	s := NewSheet("QM")
	assert.Equal(t, 0, s.MaxRow())
	assert.Nil(t, s.Peek(5, 3))
	assert.Equal(t, "", s.Value(5, 3))

	s.SetValue(5, 3, "x")
	assert.Equal(t, 5, s.MaxRow())
	assert.Equal(t, "x", s.Value(5, 3))
}

func TestInsertRowShiftsBelow(t *testing.T) {
	s := NewSheet("QM")
	s.SetValue(9, ColDocID, "AB-CD-001")
	s.SetValue(10, ColDocID, "AB-CD-002")

	s.InsertRow(10)

	assert.Equal(t, "AB-CD-001", s.Value(9, ColDocID))
	assert.Equal(t, "", s.Value(10, ColDocID))
	assert.Equal(t, "AB-CD-002", s.Value(11, ColDocID))
	assert.Equal(t, 11, s.MaxRow())
}

func TestLastDataRow(t *testing.T) {
	s := NewSheet("QM")
	assert.Equal(t, HeaderRows, s.LastDataRow())

	s.SetValue(9, ColStatus, "A")
	s.SetValue(11, ColStatus, "E")
	// Row 10 has no status and row 12 only trailing content.
	s.SetValue(12, ColTitle, "note")
	assert.Equal(t, 11, s.LastDataRow())
}

func TestSnapshotRow(t *testing.T) {
	s := NewSheet("QM")
	s.SetValue(9, ColStatus, "A")
	s.SetValue(9, ColDocID, "AB-CD-001")
	s.SetValue(9, ColVersion, "V1.0-DE")
	s.SetValue(9, ColBlockedFrom, CurrentlyValid)

	r := s.SnapshotRow(9)
	assert.Equal(t, StatusActive, r.Status)
	assert.Equal(t, "AB-CD-001", r.DocID)
	assert.Equal(t, "V1.0-DE", r.Version)
	assert.Equal(t, CurrentlyValid, r.BlockedFrom)
	assert.Equal(t, "QM", r.SheetName)
}

func TestCellClone(t *testing.T) {
	c := &Cell{Value: "v", Formula: "", StyleID: 3, Hyperlink: &Hyperlink{Target: "t", Display: "d"}}
	clone := c.Clone()
	clone.Hyperlink.Target = "changed"
	assert.Equal(t, "t", c.Hyperlink.Target)
	assert.Equal(t, 3, clone.StyleID)
}
