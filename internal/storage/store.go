// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/sotien/internal/models"
)

var (
	// ErrNotFound is returned when a group, member, expense or share does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write lost a race, e.g. a share that
	// was marked paid by a concurrent request.
	ErrConflict = errors.New("conflict")
)

// Store defines the persistence operations used by the services.
// Implementations must be safe for concurrent use.
type Store interface {
	// CreateGroup persists a group with its initial members.
	// Missing IDs and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns every group, newest first.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// ListGroupsForUser returns the groups with a member linked to userID.
	ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error)

	// AddMember adds a member to an existing group.
	AddMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a single member.
	GetMember(ctx context.Context, memberID string) (*models.Member, error)

	// CreateExpense persists an expense and all of its shares atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its shares.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// GetExpenseByShare retrieves the expense that owns shareID.
	GetExpenseByShare(ctx context.Context, shareID string) (*models.Expense, error)

	// ListExpenses returns a consistent snapshot of a group's expenses and
	// shares, oldest first.
	ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// MarkSharePaid flags the share as paid and stores the settlement
	// records in one transaction. It returns ErrConflict if the share was
	// already paid.
	MarkSharePaid(ctx context.Context, share models.Share, records []models.SettlementRecord) error

	// ListSettlementRecords returns a group's settlement records, oldest first.
	ListSettlementRecords(ctx context.Context, groupID string) ([]models.SettlementRecord, error)

	// Close releases any resources held by the store.
	Close() error
}
