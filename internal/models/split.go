package models

import "github.com/mmynk/sotien/internal/money"

// PolicyKind names a split policy.
type PolicyKind string

const (
	PolicyEqual   PolicyKind = "equal"
	PolicyExact   PolicyKind = "exact"
	PolicyPercent PolicyKind = "percent"
)

// ExactEntry assigns a fixed amount to one member.
type ExactEntry struct {
	MemberID string
	Amount   money.Cents
}

// PercentEntry assigns a percentage of the total to one member.
type PercentEntry struct {
	MemberID string
	Percent  float64
}

// SplitPolicy is the rule used to divide an expense total.
// Only the fields matching Kind are meaningful.
type SplitPolicy struct {
	Kind PolicyKind

	// ParticipantIDs is used by PolicyEqual.
	ParticipantIDs []string

	// Exact is used by PolicyExact. The amounts must sum to the total.
	Exact []ExactEntry

	// Percent is used by PolicyPercent. The percentages must sum to 100.
	Percent []PercentEntry
}

// Expense is a payment made by one member on behalf of several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is a short description (e.g., "Dinner", "Grab to airport").
	Title string

	// PaidByMemberID is the member who paid the full total.
	PaidByMemberID string

	// Total is the full amount paid.
	Total money.Cents

	// Policy is the split policy the shares were computed with.
	Policy SplitPolicy

	// Shares are the per-member portions. They always sum to Total.
	Shares []Share

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64
}

// Share is one member's portion of an expense.
type Share struct {
	// ID is the unique identifier for the share (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// MemberID is the member who owes this portion.
	MemberID string

	// Amount is the portion in cents.
	Amount money.Cents

	// IsPaid reports whether the payer has confirmed receiving this portion.
	IsPaid bool

	// PaidAt is the Unix timestamp when the share was marked paid, 0 if unpaid.
	PaidAt int64
}

// Share returns the share with the given ID.
func (e *Expense) Share(id string) (Share, bool) {
	for _, s := range e.Shares {
		if s.ID == id {
			return s, true
		}
	}
	return Share{}, false
}

// ShareOf returns the share owed by the given member.
func (e *Expense) ShareOf(memberID string) (Share, bool) {
	for _, s := range e.Shares {
		if s.MemberID == memberID {
			return s, true
		}
	}
	return Share{}, false
}
