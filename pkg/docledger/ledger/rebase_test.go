package ledger

import (
	"testing"

	"github.com/docledger/docledger-go/pkg/docledger/models"
	"github.com/stretchr/testify/assert"
)

func TestRebaseFormula(t *testing.T) {
	tests := []struct {
		name         string
		formula      string
		insertionRow int
		want         string
	}{
		{
			name:         "reference at insertion point shifts down",
			formula:      "=B17",
			insertionRow: 17,
			want:         "=B18",
		},
		{
			name:         "reference below insertion point shifts down",
			formula:      "=SUM(B20:D25)",
			insertionRow: 17,
			want:         "=SUM(B21:D26)",
		},
		{
			name:         "reference above insertion point unchanged",
			formula:      "=B16",
			insertionRow: 17,
			want:         "=B16",
		},
		{
			name:         "mixed references shift independently",
			formula:      `=CONCATENATE(B9,"-",C17,"_",D20)`,
			insertionRow: 17,
			want:         `=CONCATENATE(B9,"-",C18,"_",D21)`,
		},
		{
			name:         "column letters never change",
			formula:      "=AA100+AB5",
			insertionRow: 50,
			want:         "=AA101+AB5",
		},
		{
			name:         "structured table reference untouched",
			formula:      "=Tabelle142514[@Kürzel]",
			insertionRow: 1,
			want:         "=Tabelle142514[@Kürzel]",
		},
		{
			name:         "table span exempt, plain reference still shifts",
			formula:      "=Tab1[@C17]+B20",
			insertionRow: 17,
			want:         "=Tab1[@C17]+B21",
		},
		{
			name:         "no references",
			formula:      `="static text"`,
			insertionRow: 5,
			want:         `="static text"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RebaseFormula(tt.formula, tt.insertionRow))
		})
	}
}

func TestRebaseFormulaIdempotentOnUnaffected(t *testing.T) {
	// A formula referencing only rows above the insertion point must come
	// back byte-identical.
	formula := `=IF(A9="",B10,C11)`
	assert.Equal(t, formula, RebaseFormula(formula, 12))
}

func TestRebaseHyperlink(t *testing.T) {
	assert.Equal(t, "#Sheet1!A27", RebaseHyperlink("#Sheet1!A26", 20))
	assert.Equal(t, "#Sheet1!A19", RebaseHyperlink("#Sheet1!A19", 20))
}

func TestRebaseBelowSkipsEmptyStatusRows(t *testing.T) {
	sheet := models.NewSheet("QM")
	// Populated ledger row with a formula below the insertion point.
	sheet.SetValue(12, models.ColStatus, "A")
	sheet.SetFormula(12, models.ColDisplay, `=CONCATENATE(B12,"-",C12,"_",D12)`)
	// Row with empty status: must be skipped entirely.
	sheet.SetFormula(13, models.ColDisplay, "=B13")

	stats := RebaseBelow(sheet, 10, 12)

	assert.Equal(t, `=CONCATENATE(B13,"-",C13,"_",D13)`, sheet.Peek(12, models.ColDisplay).Formula)
	assert.Equal(t, "=B13", sheet.Peek(13, models.ColDisplay).Formula)
	assert.Equal(t, 1, stats.Formulas)
	assert.Equal(t, 1, stats.SkippedRows)
}

func TestRebaseBelowCountsHyperlinks(t *testing.T) {
	sheet := models.NewSheet("QM")
	sheet.SetValue(12, models.ColStatus, "A")
	sheet.Cell(12, models.ColLink).Hyperlink = &models.Hyperlink{Target: "#QM!J12"}
	sheet.Cell(12, models.ColLink).Value = "doc.pdf"

	stats := RebaseBelow(sheet, 10, 11)

	assert.Equal(t, "#QM!J13", sheet.Peek(12, models.ColLink).Hyperlink.Target)
	assert.Equal(t, 1, stats.Hyperlinks)
	assert.Equal(t, 0, stats.Failures)
}
