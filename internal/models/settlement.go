package models

import "github.com/mmynk/sotien/internal/money"

// NetPosition is a member's aggregate balance across a group's expenses.
// Positive means the member is owed money, negative means they owe.
type NetPosition struct {
	MemberID string
	Net      money.Cents
}

// Transfer is one payment that settles part of the group's debts.
type Transfer struct {
	// From is the member who pays (debtor).
	From string

	// To is the member who receives (creditor).
	To string

	Amount money.Cents
}

// Direction tells whether a settlement record takes money out of or brings
// money into a member's ledger.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Ledger categories used for settlement records.
const (
	CategoryGroupSettlement = "Group Settlement"
	CategoryIncome          = "Income"
)

// SettlementRecord is a ledger entry emitted when a share is marked paid.
// Each paid share produces one debit record for the debtor and one credit
// record for the payer.
type SettlementRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	// GroupID is the group the settled expense belongs to.
	GroupID string

	// ExpenseID is the settled expense.
	ExpenseID string

	// ShareID is the share that was marked paid.
	ShareID string

	// MemberID is the member whose ledger this record belongs to.
	MemberID string

	// UserID is the account linked to MemberID, if any.
	UserID string

	// CounterpartyID is the member on the other side of the payment.
	CounterpartyID string

	// Direction is debit for the debtor and credit for the payer.
	Direction Direction

	// Amount is the settled share amount, always positive.
	Amount money.Cents

	// Category is the ledger category, e.g. "Group Settlement" or "Income".
	Category string

	// Note is a human-readable description, e.g. "Group: Roommates".
	Note string

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64
}
