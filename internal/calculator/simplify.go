package calculator

import (
	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
)

// minTransfer is the smallest amount worth emitting as a transfer.
const minTransfer money.Cents = 1

// Simplify turns net positions into a short list of payments that settles
// every balance. Debtors and creditors are matched greedily in input order,
// producing at most creditors+debtors-1 transfers. This keeps the transfer
// count low but is not guaranteed to be the global minimum.
//
// The result depends only on the input, including its order.
func Simplify(positions []models.NetPosition) []models.Transfer {
	type pending struct {
		memberID  string
		remaining money.Cents
	}

	var creditors, debtors []pending
	for _, p := range positions {
		switch {
		case p.Net > 0:
			creditors = append(creditors, pending{p.MemberID, p.Net})
		case p.Net < 0:
			debtors = append(debtors, pending{p.MemberID, -p.Net})
		}
	}

	transfers := []models.Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := min(debtor.remaining, creditor.remaining)
		if amount >= minTransfer {
			transfers = append(transfers, models.Transfer{
				From:   debtor.memberID,
				To:     creditor.memberID,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < minTransfer {
			i++
		}
		if creditor.remaining < minTransfer {
			j++
		}
	}
	return transfers
}
