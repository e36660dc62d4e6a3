package postgres

import (
	"context"
	"database/sql"
)

// schema mirrors the SQLite schema with native types. Money columns hold cents.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS finance_groups (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS group_members (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL REFERENCES finance_groups(id) ON DELETE CASCADE,
    display_name TEXT NOT NULL,
    user_id TEXT NOT NULL DEFAULT '',
    sort_order INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL REFERENCES finance_groups(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    paid_by_member_id TEXT NOT NULL REFERENCES group_members(id),
    total_cents BIGINT NOT NULL CHECK (total_cents > 0),
    split_kind TEXT NOT NULL,
    split_policy JSONB NOT NULL,
    created_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS expense_shares (
    id TEXT PRIMARY KEY,
    expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
    member_id TEXT NOT NULL REFERENCES group_members(id),
    amount_cents BIGINT NOT NULL,
    is_paid BOOLEAN NOT NULL DEFAULT FALSE,
    paid_at BIGINT NOT NULL DEFAULT 0,
    sort_order INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS settlement_records (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    expense_id TEXT NOT NULL,
    share_id TEXT NOT NULL REFERENCES expense_shares(id) ON DELETE CASCADE,
    member_id TEXT NOT NULL,
    user_id TEXT NOT NULL DEFAULT '',
    counterparty_id TEXT NOT NULL,
    direction TEXT NOT NULL CHECK (direction IN ('debit', 'credit')),
    amount_cents BIGINT NOT NULL,
    category TEXT NOT NULL,
    note TEXT NOT NULL,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_group_members_group_id ON group_members(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_group_members_user_id ON group_members(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_group_id ON expenses(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expense_shares_expense_id ON expense_shares(expense_id)`,
	`CREATE INDEX IF NOT EXISTS idx_settlement_records_group_id ON settlement_records(group_id)`,
}

// runMigrations applies the schema in one transaction.
func runMigrations(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
