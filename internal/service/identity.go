package service

import (
	"context"
	"fmt"

	"github.com/mmynk/sotien/internal/middleware"
	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/storage"
	"github.com/mmynk/sotien/pkg/api"
)

// scoped is one group membership a "my ..." request covers.
type scoped struct {
	group  *models.Group
	member models.Member
}

// authorizeGroup rejects authenticated callers who have no member in group.
// Unauthenticated calls are allowed; the server only accepts them when
// authentication is disabled.
func authorizeGroup(ctx context.Context, group *models.Group) error {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil
	}
	if _, ok := group.MemberByUser(userID); !ok {
		return fmt.Errorf("%w: %s", errNotAMember, group.ID)
	}
	return nil
}

// ownsMember rejects authenticated callers acting as a member linked to a
// different account.
func ownsMember(ctx context.Context, m models.Member) error {
	userID := middleware.GetUserID(ctx)
	if userID != "" && m.UserID != userID {
		return fmt.Errorf("%w: member %s", errNotAMember, m.ID)
	}
	return nil
}

// requester resolves the member acting in group: the explicit memberID when
// given, otherwise the member linked to the caller's account.
func requester(ctx context.Context, group *models.Group, memberID string) (models.Member, error) {
	if memberID != "" {
		m, ok := group.Member(memberID)
		if !ok {
			return models.Member{}, fmt.Errorf("%w: %s", errUnknownMember, memberID)
		}
		return m, ownsMember(ctx, m)
	}
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return models.Member{}, fmt.Errorf("%w: member_id", errMissingField)
	}
	m, ok := group.MemberByUser(userID)
	if !ok {
		return models.Member{}, fmt.Errorf("%w: %s", errNotAMember, group.ID)
	}
	return m, nil
}

// resolveScope lists the memberships a request covers. An explicit member
// selects exactly one. Without one, every group the caller has a linked
// member in is included, optionally narrowed to scope.GroupID.
func resolveScope(ctx context.Context, store storage.Store, scope api.MemberScope) ([]scoped, error) {
	if scope.MemberID != "" {
		m, err := store.GetMember(ctx, scope.MemberID)
		if err != nil {
			return nil, err
		}
		if scope.GroupID != "" && m.GroupID != scope.GroupID {
			return nil, fmt.Errorf("%w: %s", errUnknownMember, m.ID)
		}
		if err := ownsMember(ctx, *m); err != nil {
			return nil, err
		}
		group, err := store.GetGroup(ctx, m.GroupID)
		if err != nil {
			return nil, err
		}
		return []scoped{{group: group, member: *m}}, nil
	}

	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, fmt.Errorf("%w: member_id", errMissingField)
	}
	groups, err := store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []scoped
	for i := range groups {
		g := &groups[i]
		if scope.GroupID != "" && g.ID != scope.GroupID {
			continue
		}
		if m, ok := g.MemberByUser(userID); ok {
			out = append(out, scoped{group: g, member: m})
		}
	}
	return out, nil
}

// loadGroup loads a group the caller may see.
func loadGroup(ctx context.Context, store storage.Store, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, fmt.Errorf("%w: group_id", errMissingField)
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := authorizeGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}
