package ledger

import (
	"testing"

	"github.com/docledger/docledger-go/pkg/docledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerRow(sheet *models.Sheet, row int, status, docID, version string) {
	sheet.SetValue(row, models.ColStatus, status)
	sheet.SetValue(row, models.ColDocID, docID)
	sheet.SetValue(row, models.ColVersion, version)
}

func TestFindMatchesAcrossSheets(t *testing.T) {
	wb := &models.Workbook{}
	hr := wb.AddSheet("HR")
	qm := wb.AddSheet("QM")
	ledgerRow(hr, 9, "E", "AB-CD-001", "V1.0-DE")
	ledgerRow(hr, 10, "A", "AB-CD-002", "V1.0-DE")
	ledgerRow(qm, 9, "A", "AB-CD-001", "V2.0-DE")

	matches := FindMatches(wb, "AB-CD-001-V3.0-DE_Spec.pdf")
	require.Len(t, matches, 2)
	assert.Equal(t, "HR", matches[0].Sheet.Name)
	assert.Equal(t, 9, matches[0].Row)
	// The last match is the ordinary-path anchor.
	assert.Equal(t, "QM", matches[1].Sheet.Name)
	assert.Equal(t, 9, matches[1].Row)
	assert.Equal(t, models.StatusActive, matches[1].Status)
}

func TestFindMatchesIgnoresHeaderRows(t *testing.T) {
	wb := &models.Workbook{}
	qm := wb.AddSheet("QM")
	// A header cell that happens to look like a document ID must never match.
	qm.SetValue(3, models.ColDocID, "AB-CD-001")
	ledgerRow(qm, 9, "A", "AB-CD-001", "V1.0-DE")

	matches := FindMatches(wb, "AB-CD-001-V2.0-DE_Spec.pdf")
	require.Len(t, matches, 1)
	assert.Equal(t, 9, matches[0].Row)
}

func TestFindInPlaceCandidate(t *testing.T) {
	wb := &models.Workbook{}
	qm := wb.AddSheet("QM")
	ledgerRow(qm, 9, "C", "AB-CD-001", "")
	ledgerRow(qm, 10, "A", "AB-CD-002", "V1.0-DE")

	m := FindInPlaceCandidate(wb, "AB-CD-001-V1.0-DE_Spec.pdf")
	require.NotNil(t, m)
	assert.Equal(t, 9, m.Row)

	// Identity match alone is not enough: column B must be the bare ID.
	ledgerRow(qm, 11, "C", "AB-CD-003-V1.0-DE_Old", "")
	assert.Nil(t, FindInPlaceCandidate(wb, "AB-CD-003-V2.0-DE_Spec.pdf"))

	// Non-candidate status rows never take the fast path.
	assert.Nil(t, FindInPlaceCandidate(wb, "AB-CD-002-V2.0-DE_Spec.pdf"))
}

func TestFindBootstrapAnchorMaxSuffix(t *testing.T) {
	wb := &models.Workbook{}
	qm := wb.AddSheet("QM")
	ledgerRow(qm, 9, "A", "AB-CD-005", "V1.0-DE")
	ledgerRow(qm, 10, "A", "AB-CD-010", "V1.0-DE")
	ledgerRow(qm, 11, "A", "AB-CD-007", "V1.0-DE")

	anchor := FindBootstrapAnchor(wb, "AB-CD-011-V1.0-DE_New.pdf")
	assert.Equal(t, "QM", anchor.Sheet.Name)
	assert.Equal(t, 10, anchor.Row)
	assert.False(t, anchor.AtEnd)
}

func TestFindBootstrapAnchorVersionTieBreak(t *testing.T) {
	wb := &models.Workbook{}
	qm := wb.AddSheet("QM")
	ledgerRow(qm, 9, "E", "AB-CD-010", "V1.0-DE")
	ledgerRow(qm, 10, "A", "AB-CD-010", "V2.0-DE")

	// Two rows share the suffix; the higher version wins.
	anchor := FindBootstrapAnchor(wb, "AB-CD-010-V1.0-DE_New.pdf")
	assert.Equal(t, 10, anchor.Row)
}

func TestFindBootstrapAnchorFallsBackToFirstSheet(t *testing.T) {
	wb := &models.Workbook{}
	hr := wb.AddSheet("HR")
	ledgerRow(hr, 9, "A", "XX-YY-001", "V1.0-DE")
	wb.AddSheet("QM")

	// No row shares the EF-GH prefix anywhere: append to the first sheet.
	anchor := FindBootstrapAnchor(wb, "EF-GH-001-V1.0-EN_New.pdf")
	assert.Equal(t, "HR", anchor.Sheet.Name)
	assert.Equal(t, 9, anchor.Row)
	assert.True(t, anchor.AtEnd)
}

func TestFindBootstrapAnchorEmptyFirstSheet(t *testing.T) {
	wb := &models.Workbook{}
	wb.AddSheet("QM")

	anchor := FindBootstrapAnchor(wb, "EF-GH-001-V1.0-EN_New.pdf")
	assert.Equal(t, "QM", anchor.Sheet.Name)
	// Empty ledger: inserting after the header block appends row 9.
	assert.Equal(t, models.HeaderRows, anchor.Row)
	assert.True(t, anchor.AtEnd)
}
