package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/internal/auth"
	"github.com/mmynk/sotien/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t, nil)

	g := roommates(t, env, "")

	if g.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if g.Title != "Roommates" {
		t.Errorf("title: expected 'Roommates', got '%s'", g.Title)
	}
	if len(g.Members) != 3 {
		t.Fatalf("members: expected 3, got %d", len(g.Members))
	}
	for i, want := range []string{"An", "Binh", "Chi"} {
		if g.Members[i].DisplayName != want || g.Members[i].ID == "" {
			t.Errorf("member %d = %+v, want %s with an ID", i, g.Members[i], want)
		}
	}
	if g.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateGroup_Invalid(t *testing.T) {
	env := setupTestServer(t, nil)

	tests := []struct {
		name string
		req  *api.CreateGroupRequest
	}{
		{"missing title", &api.CreateGroupRequest{Title: "  ", Members: []api.NewMember{{DisplayName: "An"}}}},
		{"blank member name", &api.CreateGroupRequest{Title: "Trip", Members: []api.NewMember{{DisplayName: ""}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGetGroup(t *testing.T) {
	env := setupTestServer(t, nil)
	created := roommates(t, env, "")

	resp, err := env.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: created.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if resp.Msg.Group.Title != "Roommates" || len(resp.Msg.Group.Members) != 3 {
		t.Errorf("got %+v", resp.Msg.Group)
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	env := setupTestServer(t, nil)

	_, err := env.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: "nonexistent-id"}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = env.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t, nil)

	resp, err := env.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 0 {
		t.Errorf("expected 0 groups, got %d", len(resp.Msg.Groups))
	}

	roommates(t, env, "")
	roommates(t, env, "")

	resp, err = env.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(resp.Msg.Groups))
	}
}

func TestAddMember(t *testing.T) {
	env := setupTestServer(t, nil)
	g := roommates(t, env, "")

	resp, err := env.groups.AddMember(context.Background(), connect.NewRequest(&api.AddMemberRequest{
		GroupID:     g.ID,
		DisplayName: "Dung",
	}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if resp.Msg.Member.ID == "" || resp.Msg.Member.GroupID != g.ID {
		t.Errorf("member = %+v", resp.Msg.Member)
	}

	got, err := env.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: g.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if n := len(got.Msg.Group.Members); n != 4 || got.Msg.Group.Members[3].DisplayName != "Dung" {
		t.Errorf("members after add = %+v", got.Msg.Group.Members)
	}

	_, err = env.groups.AddMember(context.Background(), connect.NewRequest(&api.AddMemberRequest{
		GroupID:     "missing",
		DisplayName: "Dung",
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestGetGroupBalances(t *testing.T) {
	env := setupTestServer(t, nil)
	g := roommates(t, env, "")
	an, binh, chi := g.Members[0], g.Members[1], g.Members[2]
	exp := dinner(t, env, g, "")

	_, err := env.expenses.MarkSharePaid(context.Background(), connect.NewRequest(&api.MarkSharePaidRequest{
		ShareID:  shareOf(t, exp, binh.ID).ID,
		MemberID: an.ID,
	}))
	if err != nil {
		t.Fatalf("MarkSharePaid failed: %v", err)
	}

	resp, err := env.groups.GetGroupBalances(context.Background(), connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: g.ID}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}

	want := []api.NetPosition{
		{MemberID: an.ID, DisplayName: "An", Net: "200000.00"},
		{MemberID: binh.ID, DisplayName: "Binh", Net: "-100000.00"},
		{MemberID: chi.ID, DisplayName: "Chi", Net: "-100000.00"},
	}
	if len(resp.Msg.NetList) != len(want) {
		t.Fatalf("net list = %+v", resp.Msg.NetList)
	}
	for i := range want {
		if resp.Msg.NetList[i] != want[i] {
			t.Errorf("net[%d] = %+v, want %+v", i, resp.Msg.NetList[i], want[i])
		}
	}

	wantOutstanding := []api.NetPosition{
		{MemberID: an.ID, DisplayName: "An", Net: "100000.00"},
		{MemberID: binh.ID, DisplayName: "Binh", Net: "0.00"},
		{MemberID: chi.ID, DisplayName: "Chi", Net: "-100000.00"},
	}
	if len(resp.Msg.Outstanding) != len(wantOutstanding) {
		t.Fatalf("outstanding = %+v", resp.Msg.Outstanding)
	}
	for i := range wantOutstanding {
		if resp.Msg.Outstanding[i] != wantOutstanding[i] {
			t.Errorf("outstanding[%d] = %+v, want %+v", i, resp.Msg.Outstanding[i], wantOutstanding[i])
		}
	}

	wantTransfers := []api.Transfer{
		{From: binh.ID, FromName: "Binh", To: an.ID, ToName: "An", Amount: "100000.00"},
		{From: chi.ID, FromName: "Chi", To: an.ID, ToName: "An", Amount: "100000.00"},
	}
	if len(resp.Msg.Simplified) != len(wantTransfers) {
		t.Fatalf("simplified = %+v, want %+v", resp.Msg.Simplified, wantTransfers)
	}
	for i := range wantTransfers {
		if resp.Msg.Simplified[i] != wantTransfers[i] {
			t.Errorf("simplified[%d] = %+v, want %+v", i, resp.Msg.Simplified[i], wantTransfers[i])
		}
	}
}

func TestGroupService_Auth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	env := setupTestServer(t, jwtManager)

	anToken, _ := jwtManager.Generate("user-an", "")
	strangerToken, _ := jwtManager.Generate("user-stranger", "")

	_, err := env.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	expectCode(t, err, connect.CodeUnauthenticated)

	_, err = env.groups.CreateGroup(context.Background(), request(&api.CreateGroupRequest{
		Title:   "Not mine",
		Members: []api.NewMember{{DisplayName: "Someone"}},
	}, anToken))
	expectCode(t, err, connect.CodePermissionDenied)

	g := roommates(t, env, anToken)

	mine, err := env.groups.ListGroups(context.Background(), request(&api.ListGroupsRequest{}, anToken))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(mine.Msg.Groups) != 1 || mine.Msg.Groups[0].ID != g.ID {
		t.Errorf("an's groups = %+v", mine.Msg.Groups)
	}

	theirs, err := env.groups.ListGroups(context.Background(), request(&api.ListGroupsRequest{}, strangerToken))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(theirs.Msg.Groups) != 0 {
		t.Errorf("stranger sees %d groups", len(theirs.Msg.Groups))
	}

	_, err = env.groups.GetGroup(context.Background(), request(&api.GetGroupRequest{GroupID: g.ID}, strangerToken))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = env.groups.GetGroupBalances(context.Background(), request(&api.GetGroupBalancesRequest{GroupID: g.ID}, strangerToken))
	expectCode(t, err, connect.CodePermissionDenied)
}
