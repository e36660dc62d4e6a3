package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/sotien/internal/auth"
	"github.com/mmynk/sotien/internal/service"
	"github.com/mmynk/sotien/internal/storage/sqlite"
	"github.com/mmynk/sotien/pkg/api"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestParse(t *testing.T) {
	out, err := run(t, "parse", "ăn", "phở", "90k")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, want := range []string{"Amount: 90000.00", "Method: k-notation"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClassify(t *testing.T) {
	out, err := run(t, "classify", "đổ xăng xe máy", "--amount", "50000")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if !strings.HasPrefix(out, "Category: transportation") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "classify", "cà phê", "--amount", "abc"); err == nil {
		t.Error("expected error for a malformed amount")
	}
}

func TestSegment(t *testing.T) {
	out, err := run(t, "segment", "ăn sáng 30k và đổ xăng 50k")
	if err != nil {
		t.Fatalf("segment failed: %v", err)
	}
	if !strings.Contains(out, "Transactions: 2") {
		t.Errorf("expected two transactions:\n%s", out)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "equal",
			args: []string{"split", "100", "--equal", "an,binh,chi"},
			want: []string{"33.34", "33.33"},
		},
		{
			name: "exact",
			args: []string{"split", "300000", "--exact", "an=100000,binh=200000"},
			want: []string{"100000.00", "200000.00"},
		},
		{
			name: "percent",
			args: []string{"split", "200000", "--percent", "an=75,binh=25"},
			want: []string{"150000.00", "50000.00"},
		},
		{
			name:    "exact mismatch",
			args:    []string{"split", "100", "--exact", "an=50,binh=40"},
			wantErr: true,
		},
		{
			name:    "malformed pair",
			args:    []string{"split", "100", "--exact", "an"},
			wantErr: true,
		},
		{
			name:    "two policies",
			args:    []string{"split", "100", "--equal", "an", "--exact", "an=100"},
			wantErr: true,
		},
		{
			name:    "no policy",
			args:    []string{"split", "100"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got output:\n%s", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("split failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestToken(t *testing.T) {
	t.Setenv("SOTIEN_CONFIG", "")
	t.Setenv("JWT_SECRET", "test-secret")

	out, err := run(t, "token", "--user", "user-an", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	claims, err := auth.NewJWTManager("test-secret", time.Hour).Validate(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token did not validate: %v", err)
	}
	if claims.UserID != "user-an" {
		t.Errorf("expected user-an, got %q", claims.UserID)
	}

	t.Run("no secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		if _, err := run(t, "token", "--user", "user-an"); err == nil {
			t.Error("expected error without a secret")
		}
	})
}

func TestBalancesAndSettle(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "cli.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	mux := http.NewServeMux()
	mux.Handle(api.NewGroupServiceHandler(service.NewGroupService(store)))
	mux.Handle(api.NewExpenseServiceHandler(service.NewExpenseService(store, nil)))
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	ctx := context.Background()
	groups := api.NewGroupServiceClient(http.DefaultClient, server.URL)
	expenses := api.NewExpenseServiceClient(http.DefaultClient, server.URL)

	g, err := groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Title:   "Roommates",
		Members: []api.NewMember{{DisplayName: "An"}, {DisplayName: "Binh"}, {DisplayName: "Chi"}},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	members := g.Msg.Group.Members

	exp, err := expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		GroupID:        g.Msg.Group.ID,
		Title:          "Dinner",
		PaidByMemberID: members[0].ID,
		Total:          "300000",
		Policy: api.SplitPolicy{
			Kind:           "equal",
			ParticipantIDs: []string{members[0].ID, members[1].ID, members[2].ID},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	out, err := run(t, "balances", g.Msg.Group.ID, "--server", server.URL)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	for _, want := range []string{"200000.00", "Binh -> An: 100000.00", "Chi -> An: 100000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("balances output missing %q:\n%s", want, out)
		}
	}

	var binhShare string
	for _, s := range exp.Msg.Expense.Shares {
		if s.MemberID == members[1].ID {
			binhShare = s.ID
		}
	}

	out, err = run(t, "settle", binhShare, "--member", members[0].ID, "--server", server.URL)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if !strings.Contains(out, "paid (100000.00)") {
		t.Errorf("unexpected settle output:\n%s", out)
	}

	out, err = run(t, "balances", g.Msg.Group.ID, "--server", server.URL)
	if err != nil {
		t.Fatalf("balances failed: %v", err)
	}
	if !strings.Contains(out, "-100000.00  outstanding 0.00") {
		t.Errorf("expected Binh's outstanding balance to be cleared:\n%s", out)
	}

	if _, err := run(t, "settle", binhShare, "--member", members[0].ID, "--server", server.URL); err == nil {
		t.Error("expected error settling the same share twice")
	}

	if _, err := run(t, "balances", "missing", "--server", server.URL); err == nil {
		t.Error("expected error for an unknown group")
	}
}
