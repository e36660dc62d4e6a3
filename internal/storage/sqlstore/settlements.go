package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/storage"
)

// MarkSharePaid flags share as paid and inserts the settlement records.
// Record IDs are assigned in place.
func (s *Store) MarkSharePaid(ctx context.Context, share models.Share, records []models.SettlementRecord) error {
	paidAt := share.PaidAt
	if paidAt == 0 {
		paidAt = time.Now().Unix()
	}

	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx,
			"UPDATE expense_shares SET is_paid = ?, paid_at = ? WHERE id = ? AND is_paid = ?",
			true, paidAt, share.ID, false,
		)
		if err != nil {
			return fmt.Errorf("failed to update share: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update share: %w", err)
		}
		if n == 0 {
			var exists int
			err := s.queryRow(ctx, tx, "SELECT 1 FROM expense_shares WHERE id = ?", share.ID).Scan(&exists)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("share %s: %w", share.ID, storage.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to get share: %w", err)
			}
			return fmt.Errorf("share %s already paid: %w", share.ID, storage.ErrConflict)
		}

		for i := range records {
			r := &records[i]
			if r.ID == "" {
				r.ID = uuid.New().String()
			}
			if r.CreatedAt == 0 {
				r.CreatedAt = paidAt
			}
			_, err := s.exec(ctx, tx, `
INSERT INTO settlement_records
	(id, group_id, expense_id, share_id, member_id, user_id, counterparty_id, direction, amount_cents, category, note, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, r.GroupID, r.ExpenseID, r.ShareID, r.MemberID, r.UserID, r.CounterpartyID,
				string(r.Direction), int64(r.Amount), r.Category, r.Note, r.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert settlement record: %w", err)
			}
		}
		return nil
	})
}

// ListSettlementRecords returns all settlement records for a group.
func (s *Store) ListSettlementRecords(ctx context.Context, groupID string) ([]models.SettlementRecord, error) {
	rows, err := s.query(ctx, s.db, `
SELECT id, group_id, expense_id, share_id, member_id, user_id, counterparty_id, direction, amount_cents, category, note, created_at
FROM settlement_records
WHERE group_id = ?
ORDER BY created_at, share_id, direction DESC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement records: %w", err)
	}
	defer rows.Close()

	var records []models.SettlementRecord
	for rows.Next() {
		var (
			r         models.SettlementRecord
			direction string
			amount    int64
		)
		err := rows.Scan(&r.ID, &r.GroupID, &r.ExpenseID, &r.ShareID, &r.MemberID, &r.UserID,
			&r.CounterpartyID, &direction, &amount, &r.Category, &r.Note, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement record: %w", err)
		}
		r.Direction = models.Direction(direction)
		r.Amount = money.Cents(amount)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement records: %w", err)
	}
	return records, nil
}
