package calculator

import (
	"sort"

	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
)

// NetPositions computes each member's net balance across the given expenses.
//
// Algorithm:
// - For each expense: the payer is credited the full total
// - Each share debits its member by the share amount
// - A payer who is also a participant gets both effects
//
// Expenses that belong to another group are ignored. The result is sorted by
// member ID, but callers should not depend on the order.
func NetPositions(groupID string, expenses []models.Expense) []models.NetPosition {
	net := make(map[string]money.Cents)
	for _, exp := range expenses {
		if exp.GroupID != "" && groupID != "" && exp.GroupID != groupID {
			continue
		}
		net[exp.PaidByMemberID] += exp.Total
		for _, share := range exp.Shares {
			net[share.MemberID] -= share.Amount
		}
	}
	return toPositions(net)
}

// PaidTransfers returns the shares already settled between debtors and payers,
// as transfers from the debtor to the payer.
func PaidTransfers(expenses []models.Expense) []models.Transfer {
	var transfers []models.Transfer
	for _, exp := range expenses {
		for _, share := range exp.Shares {
			if !share.IsPaid || share.MemberID == exp.PaidByMemberID || share.Amount == 0 {
				continue
			}
			transfers = append(transfers, models.Transfer{
				From:   share.MemberID,
				To:     exp.PaidByMemberID,
				Amount: share.Amount,
			})
		}
	}
	return transfers
}

// ApplyTransfers returns the positions left after the given payments are made.
// A payment raises the payer's position and lowers the receiver's.
func ApplyTransfers(positions []models.NetPosition, transfers []models.Transfer) []models.NetPosition {
	net := make(map[string]money.Cents, len(positions))
	for _, p := range positions {
		net[p.MemberID] += p.Net
	}
	for _, t := range transfers {
		net[t.From] += t.Amount
		net[t.To] -= t.Amount
	}
	return toPositions(net)
}

// OutstandingPositions is NetPositions with already-paid shares settled.
func OutstandingPositions(groupID string, expenses []models.Expense) []models.NetPosition {
	return ApplyTransfers(NetPositions(groupID, expenses), PaidTransfers(expenses))
}

func toPositions(net map[string]money.Cents) []models.NetPosition {
	positions := make([]models.NetPosition, 0, len(net))
	for id, amount := range net {
		positions = append(positions, models.NetPosition{MemberID: id, Net: amount})
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].MemberID < positions[j].MemberID
	})
	return positions
}

// Balances is a group's net positions and the transfers that settle them.
// Outstanding is the same roster with already-paid shares taken off.
type Balances struct {
	Positions   []models.NetPosition
	Outstanding []models.NetPosition
	Transfers   []models.Transfer
}

// GroupBalances computes the net position of every member of group, in
// membership order and including members with nothing owed. Member IDs that
// only appear in expenses follow, sorted by ID. Transfers are simplified from
// the net positions; paid flags only affect Outstanding.
func GroupBalances(group *models.Group, expenses []models.Expense) Balances {
	positions := memberOrder(group, NetPositions(group.ID, expenses))
	return Balances{
		Positions:   positions,
		Outstanding: memberOrder(group, OutstandingPositions(group.ID, expenses)),
		Transfers:   Simplify(positions),
	}
}

func memberOrder(group *models.Group, positions []models.NetPosition) []models.NetPosition {
	net := make(map[string]money.Cents, len(positions))
	for _, p := range positions {
		net[p.MemberID] = p.Net
	}

	ordered := make([]models.NetPosition, 0, len(group.Members)+len(net))
	for _, m := range group.Members {
		ordered = append(ordered, models.NetPosition{MemberID: m.ID, Net: net[m.ID]})
		delete(net, m.ID)
	}
	return append(ordered, toPositions(net)...)
}
