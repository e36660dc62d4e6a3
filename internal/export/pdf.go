package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/vntext"
)

// The core PDF fonts only cover Latin-1, so Vietnamese text is printed
// without diacritics.
func latin(s string) string {
	return vntext.StripDiacritics(s)
}

func amount(c money.Cents) string {
	return c.String()
}

// BuildStatementPDF renders the statement as A4 tables of balances,
// suggested transfers and expenses.
func BuildStatementPDF(stmt *Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Balance Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, latin(fmt.Sprintf("Group: %s", stmt.Group.Title)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", stmt.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Expenses: %d", len(stmt.Expenses)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Member", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Net", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Outstanding", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, p := range stmt.Balances.Positions {
		pdf.CellFormat(70, 6, latin(stmt.Name(p.MemberID)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, amount(p.Net), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, amount(stmt.Outstanding(p.MemberID)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "From", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "To", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	if len(stmt.Balances.Transfers) == 0 {
		pdf.CellFormat(160, 6, "All settled", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	for _, t := range stmt.Balances.Transfers {
		pdf.CellFormat(60, 6, latin(stmt.Name(t.From)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, latin(stmt.Name(t.To)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, amount(t.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(65, 6, "Title", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Paid by", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, exp := range stmt.Expenses {
		pdf.CellFormat(25, 6, time.Unix(exp.CreatedAt, 0).UTC().Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(65, 6, latin(exp.Title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, latin(stmt.Name(exp.PaidByMemberID)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, amount(exp.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
