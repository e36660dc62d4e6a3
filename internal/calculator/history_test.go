package calculator

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/sotien/internal/models"
)

func unix(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Unix()
}

func historyFixture() []models.Expense {
	return []models.Expense{
		{
			ID: "e1", Title: "Rent", PaidByMemberID: "alice", Total: 9000,
			CreatedAt: unix(2025, time.March, 1),
			Shares: []models.Share{
				{ID: "s1", MemberID: "alice", Amount: 3000},
				{ID: "s2", MemberID: "bob", Amount: 3000, IsPaid: true, PaidAt: unix(2025, time.March, 5)},
				{ID: "s3", MemberID: "carol", Amount: 3000},
			},
		},
		{
			ID: "e2", Title: "Taxi", PaidByMemberID: "bob", Total: 2000,
			CreatedAt: unix(2025, time.March, 10),
			Shares: []models.Share{
				{ID: "s4", MemberID: "alice", Amount: 1000, IsPaid: true, PaidAt: unix(2025, time.March, 12)},
				{ID: "s5", MemberID: "bob", Amount: 1000},
			},
		},
		{
			ID: "e3", Title: "Groceries", PaidByMemberID: "carol", Total: 600,
			CreatedAt: unix(2025, time.April, 2),
			Shares: []models.Share{
				{ID: "s6", MemberID: "alice", Amount: 300},
				{ID: "s7", MemberID: "carol", Amount: 300},
			},
		},
	}
}

func TestDebtsAndOwedTo(t *testing.T) {
	expenses := historyFixture()

	debts := Debts(expenses, "alice")
	if len(debts) != 1 || debts[0].ShareID != "s6" || debts[0].CreditorID != "carol" {
		t.Errorf("Debts(alice) = %+v, want only s6 owed to carol", debts)
	}

	owed := OwedTo(expenses, "alice")
	if len(owed) != 1 || owed[0].ShareID != "s3" || owed[0].DebtorID != "carol" || owed[0].Amount != 3000 {
		t.Errorf("OwedTo(alice) = %+v, want only s3 from carol", owed)
	}

	if got := Involving(expenses, "carol"); len(got) != 2 {
		t.Errorf("Involving(carol) returned %d expenses, want 2", len(got))
	}
}

func TestPaymentHistory(t *testing.T) {
	h, err := PaymentHistory(historyFixture(), "alice", "03/2025")
	if err != nil {
		t.Fatalf("PaymentHistory failed: %v", err)
	}

	// Paid rent 9000 + paid taxi share 1000; received bob's rent share 3000.
	if h.TotalPaid != 10000 {
		t.Errorf("TotalPaid = %d, want 10000", h.TotalPaid)
	}
	if h.TotalReceived != 3000 {
		t.Errorf("TotalReceived = %d, want 3000", h.TotalReceived)
	}
	if h.Net() != -7000 {
		t.Errorf("Net = %d, want -7000", h.Net())
	}
	if len(h.Payments) != 3 {
		t.Fatalf("got %d payments, want 3", len(h.Payments))
	}
	for i := 1; i < len(h.Payments); i++ {
		if h.Payments[i-1].Date < h.Payments[i].Date {
			t.Errorf("payments not sorted newest first: %+v", h.Payments)
		}
	}
	if first := h.Payments[0]; first.ExpenseID != "e2" || first.Kind != PaymentPaid || first.CounterpartyID != "bob" {
		t.Errorf("newest payment = %+v, want taxi share paid to bob", first)
	}
}

func TestParseMonth(t *testing.T) {
	start, end, err := ParseMonth("12/2024")
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}
	if !start.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseMonth bounds = %v..%v", start, end)
	}

	for _, bad := range []string{"", "13/2024", "0/2024", "2024-12", "ab/cd"} {
		if _, _, err := ParseMonth(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseMonth(%q) error = %v, want ErrInvalidInput", bad, err)
		}
	}
}
