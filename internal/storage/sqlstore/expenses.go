package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/storage"
)

// policyRecord is the stored form of a split policy.
type policyRecord struct {
	ParticipantIDs []string       `json:"participant_ids,omitempty"`
	Exact          []exactRecord  `json:"exact,omitempty"`
	Percent        []percentEntry `json:"percent,omitempty"`
}

type exactRecord struct {
	MemberID string `json:"member_id"`
	Cents    int64  `json:"cents"`
}

type percentEntry struct {
	MemberID string  `json:"member_id"`
	Percent  float64 `json:"percent"`
}

func encodePolicy(p models.SplitPolicy) (string, error) {
	rec := policyRecord{ParticipantIDs: p.ParticipantIDs}
	for _, e := range p.Exact {
		rec.Exact = append(rec.Exact, exactRecord{MemberID: e.MemberID, Cents: int64(e.Amount)})
	}
	for _, e := range p.Percent {
		rec.Percent = append(rec.Percent, percentEntry{MemberID: e.MemberID, Percent: e.Percent})
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode split policy: %w", err)
	}
	return string(b), nil
}

func decodePolicy(kind, data string) (models.SplitPolicy, error) {
	p := models.SplitPolicy{Kind: models.PolicyKind(kind)}
	var rec policyRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return p, fmt.Errorf("failed to decode split policy: %w", err)
	}
	p.ParticipantIDs = rec.ParticipantIDs
	for _, e := range rec.Exact {
		p.Exact = append(p.Exact, models.ExactEntry{MemberID: e.MemberID, Amount: money.Cents(e.Cents)})
	}
	for _, e := range rec.Percent {
		p.Percent = append(p.Percent, models.PercentEntry{MemberID: e.MemberID, Percent: e.Percent})
	}
	return p, nil
}

// CreateExpense persists an expense and its shares in one transaction.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	policy, err := encodePolicy(expense.Policy)
	if err != nil {
		return err
	}

	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx, `
INSERT INTO expenses (id, group_id, title, paid_by_member_id, total_cents, split_kind, split_policy, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.GroupID, expense.Title, expense.PaidByMemberID,
			int64(expense.Total), string(expense.Policy.Kind), policy, expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i := range expense.Shares {
			share := &expense.Shares[i]
			if share.ID == "" {
				share.ID = uuid.New().String()
			}
			share.ExpenseID = expense.ID
			_, err = s.exec(ctx, tx, `
INSERT INTO expense_shares (id, expense_id, member_id, amount_cents, is_paid, paid_at, sort_order)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
				share.ID, share.ExpenseID, share.MemberID, int64(share.Amount), share.IsPaid, share.PaidAt, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert share: %w", err)
			}
		}
		return nil
	})
}

const expenseColumns = "id, group_id, title, paid_by_member_id, total_cents, split_kind, split_policy, created_at"

// GetExpense retrieves an expense with its shares.
func (s *Store) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	var out *models.Expense
	err := s.withTx(ctx, s.dialect.Snapshot, func(tx *sql.Tx) error {
		expenses, err := s.loadExpenses(ctx, tx, "WHERE id = ?", "WHERE expense_id = ?", expenseID)
		if err != nil {
			return err
		}
		if len(expenses) == 0 {
			return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
		}
		out = &expenses[0]
		return nil
	})
	return out, err
}

// GetExpenseByShare retrieves the expense owning shareID.
func (s *Store) GetExpenseByShare(ctx context.Context, shareID string) (*models.Expense, error) {
	var expenseID string
	err := s.queryRow(ctx, s.db, "SELECT expense_id FROM expense_shares WHERE id = ?", shareID).Scan(&expenseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("share %s: %w", shareID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return s.GetExpense(ctx, expenseID)
}

// ListExpenses returns a group's expenses, oldest first, read in a single
// transaction so balances computed from them are consistent.
func (s *Store) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	var out []models.Expense
	err := s.withTx(ctx, s.dialect.Snapshot, func(tx *sql.Tx) error {
		var err error
		out, err = s.loadExpenses(ctx, tx,
			"WHERE group_id = ?",
			"WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)",
			groupID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) loadExpenses(ctx context.Context, tx *sql.Tx, expenseWhere, shareWhere string, arg any) ([]models.Expense, error) {
	rows, err := s.query(ctx, tx,
		"SELECT "+expenseColumns+" FROM expenses "+expenseWhere+" ORDER BY created_at, id",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var (
			e            models.Expense
			total        int64
			kind, policy string
		)
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Title, &e.PaidByMemberID, &total, &kind, &policy, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Total = money.Cents(total)
		if e.Policy, err = decodePolicy(kind, policy); err != nil {
			rows.Close()
			return nil, err
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return nil, nil
	}

	shareRows, err := s.query(ctx, tx,
		"SELECT id, expense_id, member_id, amount_cents, is_paid, paid_at FROM expense_shares "+shareWhere+" ORDER BY expense_id, sort_order",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer shareRows.Close()

	for shareRows.Next() {
		var (
			sh     models.Share
			amount int64
		)
		if err := shareRows.Scan(&sh.ID, &sh.ExpenseID, &sh.MemberID, &amount, &sh.IsPaid, &sh.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		sh.Amount = money.Cents(amount)
		if i, ok := index[sh.ExpenseID]; ok {
			expenses[i].Shares = append(expenses[i].Shares, sh)
		}
	}
	if err := shareRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return expenses, nil
}
