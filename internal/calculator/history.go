package calculator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
)

// OpenShare is an unpaid share seen from either side of the debt.
type OpenShare struct {
	ShareID      string
	ExpenseID    string
	ExpenseTitle string
	ExpenseTotal money.Cents
	Amount       money.Cents
	DebtorID     string
	CreditorID   string
	Policy       models.PolicyKind
	CreatedAt    int64
}

// Debts lists the unpaid shares memberID owes on expenses someone else paid.
func Debts(expenses []models.Expense, memberID string) []OpenShare {
	var out []OpenShare
	for _, exp := range expenses {
		if exp.PaidByMemberID == memberID {
			continue
		}
		for _, s := range exp.Shares {
			if s.MemberID == memberID && !s.IsPaid {
				out = append(out, openShare(exp, s))
			}
		}
	}
	return out
}

// OwedTo lists the unpaid shares other members owe on expenses memberID paid.
func OwedTo(expenses []models.Expense, memberID string) []OpenShare {
	var out []OpenShare
	for _, exp := range expenses {
		if exp.PaidByMemberID != memberID {
			continue
		}
		for _, s := range exp.Shares {
			if s.MemberID != memberID && !s.IsPaid {
				out = append(out, openShare(exp, s))
			}
		}
	}
	return out
}

// Involving returns the expenses memberID paid or has a share in.
func Involving(expenses []models.Expense, memberID string) []models.Expense {
	var out []models.Expense
	for _, exp := range expenses {
		if _, ok := exp.ShareOf(memberID); ok || exp.PaidByMemberID == memberID {
			out = append(out, exp)
		}
	}
	return out
}

func openShare(exp models.Expense, s models.Share) OpenShare {
	return OpenShare{
		ShareID:      s.ID,
		ExpenseID:    exp.ID,
		ExpenseTitle: exp.Title,
		ExpenseTotal: exp.Total,
		Amount:       s.Amount,
		DebtorID:     s.MemberID,
		CreditorID:   exp.PaidByMemberID,
		Policy:       exp.Policy.Kind,
		CreatedAt:    exp.CreatedAt,
	}
}

// PaymentKind is the direction of a payment history item.
type PaymentKind string

const (
	PaymentPaid     PaymentKind = "paid"
	PaymentReceived PaymentKind = "received"
)

// Payment is one entry of a member's monthly payment history.
type Payment struct {
	Date           int64
	Kind           PaymentKind
	Amount         money.Cents
	ExpenseID      string
	ExpenseTitle   string
	CounterpartyID string // empty when the member paid an expense for the group
}

// History is a member's payment activity for one month.
type History struct {
	Month         string
	Payments      []Payment
	TotalPaid     money.Cents
	TotalReceived money.Cents
}

// Net is received minus paid.
func (h *History) Net() money.Cents {
	return h.TotalReceived - h.TotalPaid
}

// ParseMonth parses "MM/YYYY" and returns the month's UTC bounds [start, end).
func ParseMonth(monthYear string) (time.Time, time.Time, error) {
	monthStr, yearStr, ok := strings.Cut(strings.TrimSpace(monthYear), "/")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be in format MM/YYYY", ErrInvalidInput)
	}
	month, err1 := strconv.Atoi(monthStr)
	year, err2 := strconv.Atoi(yearStr)
	if err1 != nil || err2 != nil || month < 1 || month > 12 || year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be in format MM/YYYY", ErrInvalidInput)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// PaymentHistory collects what memberID paid and received through expenses
// created in the given month:
// - expenses the member paid for the group (full total, paid)
// - shares of those expenses already settled by others (received)
// - the member's own settled shares on others' expenses (paid)
//
// Payments are sorted newest first.
func PaymentHistory(expenses []models.Expense, memberID, monthYear string) (*History, error) {
	start, end, err := ParseMonth(monthYear)
	if err != nil {
		return nil, err
	}

	h := &History{Month: monthYear, Payments: []Payment{}}
	for _, exp := range expenses {
		created := time.Unix(exp.CreatedAt, 0)
		if created.Before(start) || !created.Before(end) {
			continue
		}

		if exp.PaidByMemberID == memberID {
			h.Payments = append(h.Payments, Payment{
				Date:         exp.CreatedAt,
				Kind:         PaymentPaid,
				Amount:       exp.Total,
				ExpenseID:    exp.ID,
				ExpenseTitle: exp.Title,
			})
			h.TotalPaid += exp.Total

			for _, s := range exp.Shares {
				if s.MemberID == memberID || !s.IsPaid {
					continue
				}
				h.Payments = append(h.Payments, Payment{
					Date:           paidDate(s, exp),
					Kind:           PaymentReceived,
					Amount:         s.Amount,
					ExpenseID:      exp.ID,
					ExpenseTitle:   exp.Title,
					CounterpartyID: s.MemberID,
				})
				h.TotalReceived += s.Amount
			}
			continue
		}

		if s, ok := exp.ShareOf(memberID); ok && s.IsPaid {
			h.Payments = append(h.Payments, Payment{
				Date:           paidDate(s, exp),
				Kind:           PaymentPaid,
				Amount:         s.Amount,
				ExpenseID:      exp.ID,
				ExpenseTitle:   exp.Title,
				CounterpartyID: exp.PaidByMemberID,
			})
			h.TotalPaid += s.Amount
		}
	}

	sort.SliceStable(h.Payments, func(i, j int) bool {
		return h.Payments[i].Date > h.Payments[j].Date
	})
	return h, nil
}

func paidDate(s models.Share, exp models.Expense) int64 {
	if s.PaidAt != 0 {
		return s.PaidAt
	}
	return exp.CreatedAt
}
