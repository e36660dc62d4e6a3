package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "summary"
	transferSheet = "transfers"
	expenseSheet  = "expenses"
)

// BuildStatementXLSX renders the statement as a workbook with one sheet each
// for balances, suggested transfers and expenses. Amounts are written as
// numbers in major units.
func BuildStatementXLSX(stmt *Statement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{transferSheet, expenseSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Balance Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Group")
	_ = f.SetCellValue(summarySheet, "B3", stmt.Group.Title)
	_ = f.SetCellValue(summarySheet, "A4", "Generated")
	_ = f.SetCellValue(summarySheet, "B4", stmt.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A6", "Member")
	_ = f.SetCellValue(summarySheet, "B6", "Net")
	_ = f.SetCellValue(summarySheet, "C6", "Outstanding")
	for i, p := range stmt.Balances.Positions {
		row := i + 7
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), stmt.Name(p.MemberID))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), p.Net.Major())
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), stmt.Outstanding(p.MemberID).Major())
	}

	_ = f.SetCellValue(transferSheet, "A1", "From")
	_ = f.SetCellValue(transferSheet, "B1", "To")
	_ = f.SetCellValue(transferSheet, "C1", "Amount")
	for i, t := range stmt.Balances.Transfers {
		row := i + 2
		_ = f.SetCellValue(transferSheet, fmt.Sprintf("A%d", row), stmt.Name(t.From))
		_ = f.SetCellValue(transferSheet, fmt.Sprintf("B%d", row), stmt.Name(t.To))
		_ = f.SetCellValue(transferSheet, fmt.Sprintf("C%d", row), t.Amount.Major())
	}

	_ = f.SetCellValue(expenseSheet, "A1", "Date")
	_ = f.SetCellValue(expenseSheet, "B1", "Title")
	_ = f.SetCellValue(expenseSheet, "C1", "Paid by")
	_ = f.SetCellValue(expenseSheet, "D1", "Total")
	_ = f.SetCellValue(expenseSheet, "E1", "Split")
	_ = f.SetCellValue(expenseSheet, "F1", "Shares paid")
	for i, exp := range stmt.Expenses {
		row := i + 2
		paid, owed := paidShares(exp)
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("A%d", row), time.Unix(exp.CreatedAt, 0).UTC().Format("2006-01-02"))
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("B%d", row), exp.Title)
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("C%d", row), stmt.Name(exp.PaidByMemberID))
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("D%d", row), exp.Total.Major())
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("E%d", row), string(exp.Policy.Kind))
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%d/%d", paid, owed))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
