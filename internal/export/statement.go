// Package export renders a group balance statement as XLSX or PDF.
package export

import (
	"time"

	"github.com/mmynk/sotien/internal/calculator"
	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
)

// Formats served by the export endpoints.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Statement is a snapshot of a group's balances and the expenses behind them.
type Statement struct {
	Group       *models.Group
	Balances    calculator.Balances
	Expenses    []models.Expense
	GeneratedAt time.Time

	names       map[string]string
	outstanding map[string]money.Cents
}

// NewStatement computes the balances of group.
func NewStatement(group *models.Group, expenses []models.Expense, now time.Time) *Statement {
	balances := calculator.GroupBalances(group, expenses)
	outstanding := make(map[string]money.Cents, len(balances.Outstanding))
	for _, p := range balances.Outstanding {
		outstanding[p.MemberID] = p.Net
	}
	return &Statement{
		Group:       group,
		Balances:    balances,
		Expenses:    expenses,
		GeneratedAt: now.UTC(),
		names:       group.DisplayNames(),
		outstanding: outstanding,
	}
}

// Name returns the display name of a member, or its ID when the member has
// left the roster.
func (s *Statement) Name(memberID string) string {
	if name, ok := s.names[memberID]; ok && name != "" {
		return name
	}
	return memberID
}

// Outstanding returns what a member is still owed (positive) or still owes
// (negative) once paid shares are taken off.
func (s *Statement) Outstanding(memberID string) money.Cents {
	return s.outstanding[memberID]
}

// paidShares counts the settled shares of an expense, excluding the payer's own.
func paidShares(exp models.Expense) (paid, owed int) {
	for _, sh := range exp.Shares {
		if sh.MemberID == exp.PaidByMemberID {
			continue
		}
		owed++
		if sh.IsPaid {
			paid++
		}
	}
	return paid, owed
}

// Render produces the statement in the given format.
func Render(stmt *Statement, format string) ([]byte, string, error) {
	switch format {
	case FormatXLSX:
		data, err := BuildStatementXLSX(stmt)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatPDF:
		data, err := BuildStatementPDF(stmt)
		return data, "application/pdf", err
	default:
		return nil, "", ErrUnknownFormat
	}
}
