// Package storagetest holds a behavioural test suite shared by every
// storage.Store implementation.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/storage"
)

// Run exercises store against the storage.Store contract. newStore must
// return an empty store; it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("CreateGroup assigns IDs and keeps member order", func(t *testing.T) {
		store := newStore(t)
		group := newGroup(t, store, "Roommates", "An", "Bình", "Chi")

		if group.ID == "" || group.CreatedAt == 0 {
			t.Fatalf("expected ID and CreatedAt to be set, got %+v", group)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Title != "Roommates" {
			t.Errorf("Title = %q, want %q", got.Title, "Roommates")
		}
		if len(got.Members) != 3 {
			t.Fatalf("got %d members, want 3", len(got.Members))
		}
		for i, name := range []string{"An", "Bình", "Chi"} {
			if got.Members[i].DisplayName != name || got.Members[i].GroupID != group.ID {
				t.Errorf("member %d = %+v, want %s in group %s", i, got.Members[i], name, group.ID)
			}
		}
		if got.Members[0].UserID != "user-An" {
			t.Errorf("UserID = %q, want %q", got.Members[0].UserID, "user-An")
		}
	})

	t.Run("missing rows return ErrNotFound", func(t *testing.T) {
		store := newStore(t)
		if _, err := store.GetGroup(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetMember(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetMember error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetExpense(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetExpenseByShare(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpenseByShare error = %v, want ErrNotFound", err)
		}
		err := store.AddMember(ctx, &models.Member{GroupID: "nope", DisplayName: "X"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("AddMember error = %v, want ErrNotFound", err)
		}
	})

	t.Run("AddMember and GetMember", func(t *testing.T) {
		store := newStore(t)
		group := newGroup(t, store, "Trip", "An")

		m := &models.Member{GroupID: group.ID, DisplayName: "Dũng", UserID: "user-dung"}
		if err := store.AddMember(ctx, m); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if m.ID == "" {
			t.Fatal("expected member ID to be generated")
		}

		got, err := store.GetMember(ctx, m.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if *got != *m {
			t.Errorf("GetMember = %+v, want %+v", *got, *m)
		}

		g, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(g.Members) != 2 || g.Members[1].ID != m.ID {
			t.Errorf("new member should be last, got %+v", g.Members)
		}
	})

	t.Run("ListGroupsForUser", func(t *testing.T) {
		store := newStore(t)
		a := newGroup(t, store, "A", "An", "Bình")
		newGroup(t, store, "B", "Chi")
		c := newGroup(t, store, "C", "An")

		all, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("ListGroups returned %d groups, want 3", len(all))
		}

		mine, err := store.ListGroupsForUser(ctx, "user-An")
		if err != nil {
			t.Fatalf("ListGroupsForUser failed: %v", err)
		}
		ids := map[string]bool{}
		for _, g := range mine {
			ids[g.ID] = true
			if len(g.Members) == 0 {
				t.Errorf("group %s listed without members", g.ID)
			}
		}
		if len(mine) != 2 || !ids[a.ID] || !ids[c.ID] {
			t.Errorf("ListGroupsForUser returned %v, want groups %s and %s", ids, a.ID, c.ID)
		}
	})

	t.Run("CreateExpense round trip", func(t *testing.T) {
		store := newStore(t)
		group := newGroup(t, store, "Roommates", "An", "Bình")
		an, binh := group.Members[0].ID, group.Members[1].ID

		exp := &models.Expense{
			GroupID:        group.ID,
			Title:          "Tiền điện",
			PaidByMemberID: an,
			Total:          50_000,
			Policy: models.SplitPolicy{
				Kind:    models.PolicyPercent,
				Percent: []models.PercentEntry{{MemberID: an, Percent: 40}, {MemberID: binh, Percent: 60}},
			},
			Shares: []models.Share{
				{MemberID: an, Amount: 20_000},
				{MemberID: binh, Amount: 30_000},
			},
		}
		if err := store.CreateExpense(ctx, exp); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if exp.ID == "" || exp.Shares[0].ID == "" || exp.Shares[1].ExpenseID != exp.ID {
			t.Fatalf("expected IDs to be populated, got %+v", exp)
		}

		got, err := store.GetExpense(ctx, exp.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Title != exp.Title || got.Total != exp.Total || got.PaidByMemberID != an {
			t.Errorf("GetExpense = %+v", got)
		}
		if got.Policy.Kind != models.PolicyPercent || len(got.Policy.Percent) != 2 || got.Policy.Percent[1].Percent != 60 {
			t.Errorf("policy = %+v", got.Policy)
		}
		if len(got.Shares) != 2 || got.Shares[0].MemberID != an || got.Shares[1].Amount != 30_000 {
			t.Errorf("shares = %+v", got.Shares)
		}

		byShare, err := store.GetExpenseByShare(ctx, exp.Shares[1].ID)
		if err != nil {
			t.Fatalf("GetExpenseByShare failed: %v", err)
		}
		if byShare.ID != exp.ID {
			t.Errorf("GetExpenseByShare = %s, want %s", byShare.ID, exp.ID)
		}
	})

	t.Run("ListExpenses is ordered and scoped to the group", func(t *testing.T) {
		store := newStore(t)
		group := newGroup(t, store, "Roommates", "An", "Bình")
		other := newGroup(t, store, "Other", "Chi")

		first := newExpense(t, store, group, "Chợ", 10_000, 100)
		second := newExpense(t, store, group, "Điện", 20_000, 200)
		newExpense(t, store, other, "Ăn", 5_000, 150)

		got, err := store.ListExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
			t.Fatalf("ListExpenses = %+v", got)
		}
		for _, e := range got {
			if len(e.Shares) != 2 {
				t.Errorf("expense %s has %d shares, want 2", e.ID, len(e.Shares))
			}
		}

		empty := newGroup(t, store, "Empty", "Dũng")
		none, err := store.ListExpenses(ctx, empty.ID)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("ListExpenses on empty group = %+v", none)
		}
	})

	t.Run("MarkSharePaid", func(t *testing.T) {
		store := newStore(t)
		group := newGroup(t, store, "Roommates", "An", "Bình")
		exp := newExpense(t, store, group, "Chợ", 10_000, 100)

		share := exp.Shares[1]
		share.IsPaid = true
		share.PaidAt = 500
		records := settlementRecords(exp, share)

		if err := store.MarkSharePaid(ctx, share, records); err != nil {
			t.Fatalf("MarkSharePaid failed: %v", err)
		}
		if records[0].ID == "" || records[1].ID == "" {
			t.Error("expected record IDs to be generated")
		}

		got, err := store.GetExpense(ctx, exp.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Shares[1].IsPaid || got.Shares[1].PaidAt != 500 || got.Shares[0].IsPaid {
			t.Errorf("shares after settle = %+v", got.Shares)
		}

		listed, err := store.ListSettlementRecords(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSettlementRecords failed: %v", err)
		}
		if len(listed) != 2 {
			t.Fatalf("got %d records, want 2", len(listed))
		}
		if listed[0].Direction != models.DirectionDebit || listed[1].Direction != models.DirectionCredit {
			t.Errorf("record order = %s, %s", listed[0].Direction, listed[1].Direction)
		}
		if listed[0].Amount != share.Amount || listed[0].Note != "Group: Chợ" {
			t.Errorf("debit record = %+v", listed[0])
		}

		err = store.MarkSharePaid(ctx, share, settlementRecords(exp, share))
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("second MarkSharePaid error = %v, want ErrConflict", err)
		}
		listed, _ = store.ListSettlementRecords(ctx, group.ID)
		if len(listed) != 2 {
			t.Errorf("failed settle must not add records, got %d", len(listed))
		}

		missing := models.Share{ID: "nope", PaidAt: 1}
		if err := store.MarkSharePaid(ctx, missing, nil); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("MarkSharePaid on missing share error = %v, want ErrNotFound", err)
		}
	})

	t.Run("concurrent MarkSharePaid settles once", func(t *testing.T) {
		store := newStore(t)
		group := newGroup(t, store, "Roommates", "An", "Bình")
		exp := newExpense(t, store, group, "Chợ", 10_000, 100)
		share := exp.Shares[1]
		share.PaidAt = 500

		const workers = 4
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.MarkSharePaid(ctx, share, settlementRecords(exp, share))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case !errors.Is(err, storage.ErrConflict):
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		if succeeded != 1 {
			t.Errorf("%d settles succeeded, want 1", succeeded)
		}
		listed, err := store.ListSettlementRecords(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSettlementRecords failed: %v", err)
		}
		if len(listed) != 2 {
			t.Errorf("got %d records, want 2", len(listed))
		}
	})
}

func newGroup(t *testing.T, store storage.Store, title string, names ...string) *models.Group {
	t.Helper()
	g := &models.Group{Title: title}
	for _, n := range names {
		g.Members = append(g.Members, models.Member{DisplayName: n, UserID: "user-" + n})
	}
	if err := store.CreateGroup(context.Background(), g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return g
}

// newExpense splits total equally between the first two members, paid by
// the first.
func newExpense(t *testing.T, store storage.Store, g *models.Group, title string, total money.Cents, createdAt int64) *models.Expense {
	t.Helper()
	payer, other := g.Members[0].ID, g.Members[0].ID
	if len(g.Members) > 1 {
		other = g.Members[1].ID
	}
	half := total / 2
	exp := &models.Expense{
		GroupID:        g.ID,
		Title:          title,
		PaidByMemberID: payer,
		Total:          total,
		Policy:         models.SplitPolicy{Kind: models.PolicyEqual, ParticipantIDs: []string{payer, other}},
		Shares: []models.Share{
			{MemberID: payer, Amount: total - half},
			{MemberID: other, Amount: half},
		},
		CreatedAt: createdAt,
	}
	if err := store.CreateExpense(context.Background(), exp); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return exp
}

func settlementRecords(exp *models.Expense, share models.Share) []models.SettlementRecord {
	base := models.SettlementRecord{
		GroupID:   exp.GroupID,
		ExpenseID: exp.ID,
		ShareID:   share.ID,
		Amount:    share.Amount,
		Note:      "Group: " + exp.Title,
		CreatedAt: share.PaidAt,
	}
	debit, credit := base, base
	debit.MemberID, debit.CounterpartyID = share.MemberID, exp.PaidByMemberID
	debit.Direction, debit.Category = models.DirectionDebit, models.CategoryGroupSettlement
	credit.MemberID, credit.CounterpartyID = exp.PaidByMemberID, share.MemberID
	credit.Direction, credit.Category = models.DirectionCredit, models.CategoryIncome
	return []models.SettlementRecord{debit, credit}
}
