package calculator

import (
	"fmt"
	"time"

	"github.com/mmynk/sotien/internal/models"
)

// ShareSettlement is the outcome of marking a share paid: the updated share
// plus the two ledger records the caller should persist with it.
type ShareSettlement struct {
	Share  models.Share
	Debit  models.SettlementRecord
	Credit models.SettlementRecord
}

// Records returns the debit and credit records in that order.
func (s *ShareSettlement) Records() []models.SettlementRecord {
	return []models.SettlementRecord{s.Debit, s.Credit}
}

// SettleShare marks one share of an expense as paid on behalf of the
// requesting member, who must be the expense's payer. The expense itself is
// not modified. group is used to resolve the account linked to each member
// and may be nil.
func SettleShare(expense *models.Expense, group *models.Group, shareID, requestingMemberID string, now time.Time) (*ShareSettlement, error) {
	if expense == nil || shareID == "" || requestingMemberID == "" {
		return nil, fmt.Errorf("%w: expense, share and requesting member are required", ErrInvalidInput)
	}
	if group != nil && group.ID != expense.GroupID {
		return nil, fmt.Errorf("%w: expense %s does not belong to group %s", ErrInvalidInput, expense.ID, group.ID)
	}

	share, ok := expense.Share(shareID)
	if !ok {
		return nil, fmt.Errorf("%w: share %s", ErrNotFound, shareID)
	}
	if expense.PaidByMemberID != requestingMemberID {
		return nil, ErrForbidden
	}
	if share.IsPaid {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPaid, shareID)
	}
	if share.MemberID == expense.PaidByMemberID {
		return nil, fmt.Errorf("%w: the payer's own share cannot be settled", ErrInvalidInput)
	}

	var debtorUser, payerUser string
	if group != nil {
		if m, ok := group.Member(share.MemberID); ok {
			debtorUser = m.UserID
		}
		if m, ok := group.Member(expense.PaidByMemberID); ok {
			payerUser = m.UserID
		}
	}

	ts := now.Unix()
	share.IsPaid = true
	share.PaidAt = ts
	note := "Group: " + expense.Title

	return &ShareSettlement{
		Share: share,
		Debit: models.SettlementRecord{
			GroupID:        expense.GroupID,
			ExpenseID:      expense.ID,
			ShareID:        share.ID,
			MemberID:       share.MemberID,
			UserID:         debtorUser,
			CounterpartyID: expense.PaidByMemberID,
			Direction:      models.DirectionDebit,
			Amount:         share.Amount,
			Category:       models.CategoryGroupSettlement,
			Note:           note,
			CreatedAt:      ts,
		},
		Credit: models.SettlementRecord{
			GroupID:        expense.GroupID,
			ExpenseID:      expense.ID,
			ShareID:        share.ID,
			MemberID:       expense.PaidByMemberID,
			UserID:         payerUser,
			CounterpartyID: share.MemberID,
			Direction:      models.DirectionCredit,
			Amount:         share.Amount,
			Category:       models.CategoryIncome,
			Note:           note,
			CreatedAt:      ts,
		},
	}, nil
}
