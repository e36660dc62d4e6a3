package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/internal/calculator"
	"github.com/mmynk/sotien/internal/middleware"
	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/storage"
	"github.com/mmynk/sotien/pkg/api"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group with its initial members.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"title", req.Msg.Title,
		"members_count", len(req.Msg.Members),
	)

	group := &models.Group{Title: strings.TrimSpace(req.Msg.Title)}
	if group.Title == "" {
		return nil, fail("CreateGroup", fmt.Errorf("%w: title", errMissingField))
	}
	for _, m := range req.Msg.Members {
		name := strings.TrimSpace(m.DisplayName)
		if name == "" {
			return nil, fail("CreateGroup", fmt.Errorf("%w: member display_name", errMissingField))
		}
		group.Members = append(group.Members, models.Member{DisplayName: name, UserID: m.UserID})
	}

	// An authenticated creator must be on the roster, or the group would be
	// invisible to them.
	if userID := middleware.GetUserID(ctx); userID != "" {
		if _, ok := group.MemberByUser(userID); !ok {
			return nil, fail("CreateGroup", fmt.Errorf("%w: add yourself with user_id %s", errNotAMember, userID))
		}
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fail("CreateGroup", err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.group(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail("GetGroup", err, "group_id", req.Msg.GroupID)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups lists every group, or only the caller's when authenticated.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("ListGroups request received", "user_id", userID)

	var (
		groups []models.Group
		err    error
	)
	if userID != "" {
		groups, err = s.store.ListGroupsForUser(ctx, userID)
	} else {
		groups, err = s.store.ListGroups(ctx)
	}
	if err != nil {
		return nil, fail("ListGroups", err)
	}

	out := make([]api.Group, len(groups))
	for i := range groups {
		out[i] = toAPIGroup(&groups[i])
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMember appends a member to an existing group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID)

	name := strings.TrimSpace(req.Msg.DisplayName)
	if name == "" {
		return nil, fail("AddMember", fmt.Errorf("%w: display_name", errMissingField))
	}
	group, err := s.group(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail("AddMember", err, "group_id", req.Msg.GroupID)
	}

	member := &models.Member{GroupID: group.ID, DisplayName: name, UserID: req.Msg.UserID}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, fail("AddMember", err, "group_id", group.ID)
	}

	slog.Info("Member added", "group_id", group.ID, "member_id", member.ID)

	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(*member)}), nil
}

// GetGroupBalances returns every member's net position, the simplified
// transfers that settle the group, and what is still outstanding after
// paid shares.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	group, err := s.group(ctx, groupID)
	if err != nil {
		return nil, fail("GetGroupBalances", err, "group_id", groupID)
	}
	expenses, err := s.store.ListExpenses(ctx, group.ID)
	if err != nil {
		return nil, fail("GetGroupBalances", err, "group_id", groupID)
	}

	balances := calculator.GroupBalances(group, expenses)
	names := group.DisplayNames()

	netList := toAPIPositions(balances.Positions, names)
	outstanding := toAPIPositions(balances.Outstanding, names)
	simplified := make([]api.Transfer, len(balances.Transfers))
	for i, t := range balances.Transfers {
		simplified[i] = api.Transfer{
			From:     t.From,
			FromName: names[t.From],
			To:       t.To,
			ToName:   names[t.To],
			Amount:   t.Amount.String(),
		}
	}

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"transfers_count", len(simplified),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		NetList:     netList,
		Simplified:  simplified,
		Outstanding: outstanding,
	}), nil
}

// group loads a group the caller may see.
func (s *GroupService) group(ctx context.Context, groupID string) (*models.Group, error) {
	return loadGroup(ctx, s.store, groupID)
}
