package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/internal/calculator"
	"github.com/mmynk/sotien/internal/metrics"
	"github.com/mmynk/sotien/internal/middleware"
	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/storage"
	"github.com/mmynk/sotien/pkg/api"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService with the given storage
// backend. m may be nil.
func NewExpenseService(store storage.Store, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{store: store, metrics: m, now: time.Now}
}

// CreateExpense splits a payment among group members and stores it.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("CreateExpense request received",
		"group_id", msg.GroupID,
		"title", msg.Title,
		"total", msg.Total,
		"split_kind", msg.Policy.Kind,
	)

	title := strings.TrimSpace(msg.Title)
	if title == "" {
		return nil, fail("CreateExpense", fmt.Errorf("%w: title", errMissingField))
	}
	group, err := loadGroup(ctx, s.store, msg.GroupID)
	if err != nil {
		return nil, fail("CreateExpense", err, "group_id", msg.GroupID)
	}
	if _, ok := group.Member(msg.PaidByMemberID); !ok {
		return nil, fail("CreateExpense", fmt.Errorf("%w: payer %q", errUnknownMember, msg.PaidByMemberID))
	}

	total, policy, err := parseSplit(msg.Total, msg.Policy)
	if err != nil {
		return nil, fail("CreateExpense", err)
	}
	for _, id := range policyMembers(policy) {
		if _, ok := group.Member(id); !ok {
			return nil, fail("CreateExpense", fmt.Errorf("%w: participant %q", errUnknownMember, id))
		}
	}

	shares, err := calculator.Compute(total, policy)
	if err != nil {
		return nil, fail("CreateExpense", err)
	}

	expense := &models.Expense{
		GroupID:        group.ID,
		Title:          title,
		PaidByMemberID: msg.PaidByMemberID,
		Total:          total,
		Policy:         policy,
		Shares:         shares,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fail("CreateExpense", err, "group_id", group.ID)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", group.ID, "shares_count", len(shares))

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// GetExpense retrieves an expense with its shares.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseID)

	if req.Msg.ExpenseID == "" {
		return nil, fail("GetExpense", fmt.Errorf("%w: expense_id", errMissingField))
	}
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, fail("GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	if middleware.GetUserID(ctx) != "" {
		if _, err := loadGroup(ctx, s.store, expense.GroupID); err != nil {
			return nil, fail("GetExpense", err, "expense_id", expense.ID)
		}
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses lists a group's expenses, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	group, err := loadGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, fail("ListExpenses", err, "group_id", req.Msg.GroupID)
	}
	expenses, err := s.store.ListExpenses(ctx, group.ID)
	if err != nil {
		return nil, fail("ListExpenses", err, "group_id", group.ID)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// ListMyExpenses lists the expenses the member paid or has a share in,
// newest first.
func (s *ExpenseService) ListMyExpenses(ctx context.Context, req *connect.Request[api.ListMyExpensesRequest]) (*connect.Response[api.ListMyExpensesResponse], error) {
	slog.Info("ListMyExpenses request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	var mine []models.Expense
	err := s.eachScope(ctx, req.Msg.MemberScope, func(sc scoped, expenses []models.Expense) {
		mine = append(mine, calculator.Involving(expenses, sc.member.ID)...)
	})
	if err != nil {
		return nil, fail("ListMyExpenses", err)
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt > mine[j].CreatedAt
	})

	return connect.NewResponse(&api.ListMyExpensesResponse{Expenses: toAPIExpenses(mine)}), nil
}

// ListMyDebts lists the member's unpaid shares of expenses others paid.
func (s *ExpenseService) ListMyDebts(ctx context.Context, req *connect.Request[api.ListMyDebtsRequest]) (*connect.Response[api.ListMyDebtsResponse], error) {
	slog.Info("ListMyDebts request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	debts, total, err := s.openShares(ctx, req.Msg.MemberScope, calculator.Debts)
	if err != nil {
		return nil, fail("ListMyDebts", err)
	}

	return connect.NewResponse(&api.ListMyDebtsResponse{Debts: debts, Total: total.String()}), nil
}

// ListOwedToMe lists the unpaid shares others owe on expenses the member paid.
func (s *ExpenseService) ListOwedToMe(ctx context.Context, req *connect.Request[api.ListOwedToMeRequest]) (*connect.Response[api.ListOwedToMeResponse], error) {
	slog.Info("ListOwedToMe request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	shares, total, err := s.openShares(ctx, req.Msg.MemberScope, calculator.OwedTo)
	if err != nil {
		return nil, fail("ListOwedToMe", err)
	}

	return connect.NewResponse(&api.ListOwedToMeResponse{Shares: shares, Total: total.String()}), nil
}

// MarkSharePaid records that the payer received a member's share. Only the
// payer of the expense may confirm it. The share flag and both settlement
// records are stored together.
func (s *ExpenseService) MarkSharePaid(ctx context.Context, req *connect.Request[api.MarkSharePaidRequest]) (*connect.Response[api.MarkSharePaidResponse], error) {
	shareID := req.Msg.ShareID
	slog.Info("MarkSharePaid request received", "share_id", shareID, "member_id", req.Msg.MemberID)

	if shareID == "" {
		return nil, fail("MarkSharePaid", fmt.Errorf("%w: share_id", errMissingField))
	}
	expense, err := s.store.GetExpenseByShare(ctx, shareID)
	if err != nil {
		return nil, fail("MarkSharePaid", err, "share_id", shareID)
	}
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, fail("MarkSharePaid", err, "share_id", shareID)
	}
	member, err := requester(ctx, group, req.Msg.MemberID)
	if err != nil {
		return nil, fail("MarkSharePaid", err, "share_id", shareID)
	}

	settlement, err := calculator.SettleShare(expense, group, shareID, member.ID, s.now())
	if err != nil {
		return nil, fail("MarkSharePaid", err, "share_id", shareID, "member_id", member.ID)
	}
	records := settlement.Records()
	if err := s.store.MarkSharePaid(ctx, settlement.Share, records); err != nil {
		return nil, fail("MarkSharePaid", err, "share_id", shareID)
	}
	s.metrics.ShareSettled()

	slog.Info("Share marked paid",
		"share_id", shareID,
		"expense_id", expense.ID,
		"amount", settlement.Share.Amount.String(),
	)

	out := make([]api.SettlementRecord, len(records))
	for i, r := range records {
		out[i] = toAPIRecord(r)
	}
	return connect.NewResponse(&api.MarkSharePaidResponse{
		Share:   toAPIShare(settlement.Share),
		Records: out,
	}), nil
}

// GetPaymentHistory summarizes what the member paid and received through
// expenses created in one month.
func (s *ExpenseService) GetPaymentHistory(ctx context.Context, req *connect.Request[api.GetPaymentHistoryRequest]) (*connect.Response[api.GetPaymentHistoryResponse], error) {
	month := strings.TrimSpace(req.Msg.Month)
	slog.Info("GetPaymentHistory request received", "month", month, "member_id", req.Msg.MemberID)

	if _, _, err := calculator.ParseMonth(month); err != nil {
		return nil, fail("GetPaymentHistory", err)
	}

	resp := &api.GetPaymentHistoryResponse{Month: month, Payments: []api.Payment{}}
	var paid, received money.Cents
	err := s.eachScope(ctx, req.Msg.MemberScope, func(sc scoped, expenses []models.Expense) {
		h, err := calculator.PaymentHistory(expenses, sc.member.ID, month)
		if err != nil {
			return
		}
		for _, p := range h.Payments {
			resp.Payments = append(resp.Payments, toAPIPayment(sc.group.ID, p))
		}
		paid += h.TotalPaid
		received += h.TotalReceived
	})
	if err != nil {
		return nil, fail("GetPaymentHistory", err)
	}

	sort.SliceStable(resp.Payments, func(i, j int) bool {
		return resp.Payments[i].Date > resp.Payments[j].Date
	})
	resp.TotalPaid = paid.String()
	resp.TotalReceived = received.String()
	resp.Net = (received - paid).String()

	return connect.NewResponse(resp), nil
}

// PreviewSplit computes shares without storing anything.
func (s *ExpenseService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	slog.Info("PreviewSplit request received", "total", req.Msg.Total, "split_kind", req.Msg.Policy.Kind)

	total, policy, err := parseSplit(req.Msg.Total, req.Msg.Policy)
	if err != nil {
		return nil, fail("PreviewSplit", err)
	}
	shares, err := calculator.Compute(total, policy)
	if err != nil {
		return nil, fail("PreviewSplit", err)
	}

	return connect.NewResponse(&api.PreviewSplitResponse{Shares: toAPIShares(shares)}), nil
}

func parseSplit(totalStr string, p api.SplitPolicy) (money.Cents, models.SplitPolicy, error) {
	total, err := money.Parse(totalStr)
	if err != nil {
		return 0, models.SplitPolicy{}, fmt.Errorf("total: %w", err)
	}
	policy, err := fromAPIPolicy(p)
	if err != nil {
		return 0, models.SplitPolicy{}, err
	}
	return total, policy, nil
}

// eachScope calls fn with the expenses of every membership the scope covers.
func (s *ExpenseService) eachScope(ctx context.Context, scope api.MemberScope, fn func(scoped, []models.Expense)) error {
	scopes, err := resolveScope(ctx, s.store, scope)
	if err != nil {
		return err
	}
	for _, sc := range scopes {
		expenses, err := s.store.ListExpenses(ctx, sc.group.ID)
		if err != nil {
			return err
		}
		fn(sc, expenses)
	}
	return nil
}

func (s *ExpenseService) openShares(ctx context.Context, scope api.MemberScope, pick func([]models.Expense, string) []calculator.OpenShare) ([]api.OpenShare, money.Cents, error) {
	out := []api.OpenShare{}
	var total money.Cents
	err := s.eachScope(ctx, scope, func(sc scoped, expenses []models.Expense) {
		for _, o := range pick(expenses, sc.member.ID) {
			out = append(out, toAPIOpenShare(sc.group.ID, o))
			total += o.Amount
		}
	})
	return out, total, err
}
