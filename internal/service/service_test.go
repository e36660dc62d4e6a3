package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/internal/amount"
	"github.com/mmynk/sotien/internal/auth"
	"github.com/mmynk/sotien/internal/calculator"
	"github.com/mmynk/sotien/internal/category"
	"github.com/mmynk/sotien/internal/metrics"
	"github.com/mmynk/sotien/internal/middleware"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/storage"
	"github.com/mmynk/sotien/internal/storage/sqlite"
	"github.com/mmynk/sotien/pkg/api"
)

type testEnv struct {
	url      string
	store    storage.Store
	metrics  *metrics.Metrics
	groups   *api.GroupServiceClient
	expenses *api.ExpenseServiceClient
	parser   *api.ParserServiceClient
}

// setupTestServer serves all three services and the export routes over a
// temp SQLite database. A non-nil jwtManager turns authentication on.
func setupTestServer(t *testing.T, jwtManager *auth.JWTManager) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New()
	var opts []connect.HandlerOption
	if jwtManager != nil {
		opts = append(opts, connect.WithInterceptors(middleware.RequireAuth(jwtManager)))
	}

	parser := NewParserService(amount.NewExtractor(), category.NewKeywordPredictor(category.NewClassifier()), m)

	mux := http.NewServeMux()
	mux.Handle(api.NewExpenseServiceHandler(NewExpenseService(store, m), opts...))
	mux.Handle(api.NewGroupServiceHandler(NewGroupService(store), opts...))
	mux.Handle(api.NewParserServiceHandler(parser))
	NewExportHandler(store, m, jwtManager).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		url:      server.URL,
		store:    store,
		metrics:  m,
		groups:   api.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses: api.NewExpenseServiceClient(http.DefaultClient, server.URL),
		parser:   api.NewParserServiceClient(http.DefaultClient, server.URL),
	}
}

// request wraps msg, adding a bearer token when one is given.
func request[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", want)
	}
	connectErr, ok := err.(*connect.Error)
	if !ok {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

// roommates creates a group of An, Binh and Chi linked to user-an,
// user-binh and no account respectively.
func roommates(t *testing.T, env *testEnv, token string) api.Group {
	t.Helper()
	resp, err := env.groups.CreateGroup(context.Background(), request(&api.CreateGroupRequest{
		Title: "Roommates",
		Members: []api.NewMember{
			{DisplayName: "An", UserID: "user-an"},
			{DisplayName: "Binh", UserID: "user-binh"},
			{DisplayName: "Chi"},
		},
	}, token))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

// dinner records a 300,000 expense paid by the first member and split
// equally among all three.
func dinner(t *testing.T, env *testEnv, g api.Group, token string) api.Expense {
	t.Helper()
	resp, err := env.expenses.CreateExpense(context.Background(), request(&api.CreateExpenseRequest{
		GroupID:        g.ID,
		Title:          "Dinner",
		PaidByMemberID: g.Members[0].ID,
		Total:          "300000",
		Policy: api.SplitPolicy{
			Kind:           "equal",
			ParticipantIDs: []string{g.Members[0].ID, g.Members[1].ID, g.Members[2].ID},
		},
	}, token))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func shareOf(t *testing.T, e api.Expense, memberID string) api.Share {
	t.Helper()
	for _, s := range e.Shares {
		if s.MemberID == memberID {
			return s
		}
	}
	t.Fatalf("no share for member %s", memberID)
	return api.Share{}
}

func TestToConnectError(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("wrap: %w", calculator.ErrInvalidInput), connect.CodeInvalidArgument},
		{&calculator.MismatchError{Expected: 100, Computed: 99}, connect.CodeInvalidArgument},
		{calculator.ErrDuplicateParticipant, connect.CodeInvalidArgument},
		{fmt.Errorf("total: %w", money.ErrInvalidAmount), connect.CodeInvalidArgument},
		{money.ErrSubCent, connect.CodeInvalidArgument},
		{errBatchTooLarge, connect.CodeInvalidArgument},
		{storage.ErrNotFound, connect.CodeNotFound},
		{calculator.ErrNotFound, connect.CodeNotFound},
		{calculator.ErrForbidden, connect.CodePermissionDenied},
		{errNotAMember, connect.CodePermissionDenied},
		{calculator.ErrAlreadyPaid, connect.CodeFailedPrecondition},
		{storage.ErrConflict, connect.CodeFailedPrecondition},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{errors.New("disk on fire"), connect.CodeInternal},
		{connect.NewError(connect.CodeUnauthenticated, errors.New("who")), connect.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := connect.CodeOf(toConnectError(tt.err)); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
