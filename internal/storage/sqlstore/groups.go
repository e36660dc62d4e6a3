package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/storage"
)

// CreateGroup persists a new group and its members.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx,
			"INSERT INTO finance_groups (id, title, created_at) VALUES (?, ?, ?)",
			group.ID, group.Title, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		for i := range group.Members {
			m := &group.Members[i]
			m.GroupID = group.ID
			if err := s.insertMember(ctx, tx, m, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddMember appends a member to an existing group.
func (s *Store) AddMember(ctx context.Context, member *models.Member) error {
	return s.withTx(ctx, nil, func(tx *sql.Tx) error {
		var exists int
		err := s.queryRow(ctx, tx, "SELECT 1 FROM finance_groups WHERE id = ?", member.GroupID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("group %s: %w", member.GroupID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get group: %w", err)
		}

		var position int
		err = s.queryRow(ctx, tx,
			"SELECT COUNT(*) FROM group_members WHERE group_id = ?",
			member.GroupID,
		).Scan(&position)
		if err != nil {
			return fmt.Errorf("failed to count members: %w", err)
		}

		return s.insertMember(ctx, tx, member, position)
	})
}

func (s *Store) insertMember(ctx context.Context, tx *sql.Tx, m *models.Member, position int) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := s.exec(ctx, tx,
		"INSERT INTO group_members (id, group_id, display_name, user_id, sort_order) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.GroupID, m.DisplayName, m.UserID, position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID with its members in insertion order.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.queryRow(ctx, s.db,
		"SELECT id, title, created_at FROM finance_groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Title, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.members(ctx, s.db, "WHERE group_id = ?", groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// GetMember retrieves a member by ID.
func (s *Store) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	members, err := s.members(ctx, s.db, "WHERE id = ?", memberID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	return &members[0], nil
}

// ListGroups returns all groups, newest first.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.listGroups(ctx, "SELECT id, title, created_at FROM finance_groups ORDER BY created_at DESC, id")
}

// ListGroupsForUser returns the groups userID is a member of, newest first.
func (s *Store) ListGroupsForUser(ctx context.Context, userID string) ([]models.Group, error) {
	if userID == "" {
		return nil, nil
	}
	return s.listGroups(ctx, `
SELECT g.id, g.title, g.created_at
FROM finance_groups g
WHERE EXISTS (SELECT 1 FROM group_members m WHERE m.group_id = g.id AND m.user_id = ?)
ORDER BY g.created_at DESC, g.id`, userID)
}

func (s *Store) listGroups(ctx context.Context, query string, args ...any) ([]models.Group, error) {
	var groups []models.Group
	err := s.withTx(ctx, s.dialect.Snapshot, func(tx *sql.Tx) error {
		rows, err := s.query(ctx, tx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		for rows.Next() {
			var g models.Group
			if err := rows.Scan(&g.ID, &g.Title, &g.CreatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan group: %w", err)
			}
			groups = append(groups, g)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate groups: %w", err)
		}

		for i := range groups {
			members, err := s.members(ctx, tx, "WHERE group_id = ?", groups[i].ID)
			if err != nil {
				return err
			}
			groups[i].Members = members
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *Store) members(ctx context.Context, q queryer, where string, args ...any) ([]models.Member, error) {
	rows, err := s.query(ctx, q,
		"SELECT id, group_id, display_name, user_id FROM group_members "+where+" ORDER BY sort_order, id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.GroupID, &m.DisplayName, &m.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
