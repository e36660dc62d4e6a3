package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Service names, as they appear in procedure paths.
const (
	ExpenseServiceName = "sotien.v1.ExpenseService"
	GroupServiceName   = "sotien.v1.GroupService"
	ParserServiceName  = "sotien.v1.ParserService"
)

// Procedure paths.
const (
	ExpenseServiceCreateExpenseProcedure           = "/sotien.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure              = "/sotien.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure            = "/sotien.v1.ExpenseService/ListExpenses"
	ExpenseServiceListMyExpensesProcedure          = "/sotien.v1.ExpenseService/ListMyExpenses"
	ExpenseServiceListMyDebtsProcedure             = "/sotien.v1.ExpenseService/ListMyDebts"
	ExpenseServiceListOwedToMeProcedure            = "/sotien.v1.ExpenseService/ListOwedToMe"
	ExpenseServiceMarkSharePaidProcedure           = "/sotien.v1.ExpenseService/MarkSharePaid"
	ExpenseServiceGetPaymentHistoryProcedure       = "/sotien.v1.ExpenseService/GetPaymentHistory"
	ExpenseServicePreviewSplitProcedure            = "/sotien.v1.ExpenseService/PreviewSplit"
	GroupServiceCreateGroupProcedure               = "/sotien.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure                  = "/sotien.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure                = "/sotien.v1.GroupService/ListGroups"
	GroupServiceAddMemberProcedure                 = "/sotien.v1.GroupService/AddMember"
	GroupServiceGetGroupBalancesProcedure          = "/sotien.v1.GroupService/GetGroupBalances"
	ParserServiceExtractAmountProcedure            = "/sotien.v1.ParserService/ExtractAmount"
	ParserServicePredictCategoryProcedure          = "/sotien.v1.ParserService/PredictCategory"
	ParserServiceBatchPredictCategoryProcedure     = "/sotien.v1.ParserService/BatchPredictCategory"
	ParserServiceAnalyzeTransactionProcedure       = "/sotien.v1.ParserService/AnalyzeTransaction"
	ParserServiceAnalyzeMultiTransactionsProcedure = "/sotien.v1.ParserService/AnalyzeMultiTransactions"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// ExpenseServiceHandler is implemented by the ExpenseService server.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	ListMyExpenses(context.Context, *connect.Request[ListMyExpensesRequest]) (*connect.Response[ListMyExpensesResponse], error)
	ListMyDebts(context.Context, *connect.Request[ListMyDebtsRequest]) (*connect.Response[ListMyDebtsResponse], error)
	ListOwedToMe(context.Context, *connect.Request[ListOwedToMeRequest]) (*connect.Response[ListOwedToMeResponse], error)
	MarkSharePaid(context.Context, *connect.Request[MarkSharePaidRequest]) (*connect.Response[MarkSharePaidResponse], error)
	GetPaymentHistory(context.Context, *connect.Request[GetPaymentHistoryRequest]) (*connect.Response[GetPaymentHistoryResponse], error)
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
}

// NewExpenseServiceHandler returns the path prefix to mount svc under and its handler.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceGetExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(ExpenseServiceListMyExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListMyExpensesProcedure, svc.ListMyExpenses, opts...))
	mux.Handle(ExpenseServiceListMyDebtsProcedure, connect.NewUnaryHandler(ExpenseServiceListMyDebtsProcedure, svc.ListMyDebts, opts...))
	mux.Handle(ExpenseServiceListOwedToMeProcedure, connect.NewUnaryHandler(ExpenseServiceListOwedToMeProcedure, svc.ListOwedToMe, opts...))
	mux.Handle(ExpenseServiceMarkSharePaidProcedure, connect.NewUnaryHandler(ExpenseServiceMarkSharePaidProcedure, svc.MarkSharePaid, opts...))
	mux.Handle(ExpenseServiceGetPaymentHistoryProcedure, connect.NewUnaryHandler(ExpenseServiceGetPaymentHistoryProcedure, svc.GetPaymentHistory, opts...))
	mux.Handle(ExpenseServicePreviewSplitProcedure, connect.NewUnaryHandler(ExpenseServicePreviewSplitProcedure, svc.PreviewSplit, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// ExpenseServiceClient calls a remote ExpenseService.
type ExpenseServiceClient struct {
	createExpense     *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense        *connect.Client[GetExpenseRequest, GetExpenseResponse]
	listExpenses      *connect.Client[ListExpensesRequest, ListExpensesResponse]
	listMyExpenses    *connect.Client[ListMyExpensesRequest, ListMyExpensesResponse]
	listMyDebts       *connect.Client[ListMyDebtsRequest, ListMyDebtsResponse]
	listOwedToMe      *connect.Client[ListOwedToMeRequest, ListOwedToMeResponse]
	markSharePaid     *connect.Client[MarkSharePaidRequest, MarkSharePaidResponse]
	getPaymentHistory *connect.Client[GetPaymentHistoryRequest, GetPaymentHistoryResponse]
	previewSplit      *connect.Client[PreviewSplitRequest, PreviewSplitResponse]
}

func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		createExpense:     connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:        connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:      connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		listMyExpenses:    connect.NewClient[ListMyExpensesRequest, ListMyExpensesResponse](httpClient, baseURL+ExpenseServiceListMyExpensesProcedure, opts...),
		listMyDebts:       connect.NewClient[ListMyDebtsRequest, ListMyDebtsResponse](httpClient, baseURL+ExpenseServiceListMyDebtsProcedure, opts...),
		listOwedToMe:      connect.NewClient[ListOwedToMeRequest, ListOwedToMeResponse](httpClient, baseURL+ExpenseServiceListOwedToMeProcedure, opts...),
		markSharePaid:     connect.NewClient[MarkSharePaidRequest, MarkSharePaidResponse](httpClient, baseURL+ExpenseServiceMarkSharePaidProcedure, opts...),
		getPaymentHistory: connect.NewClient[GetPaymentHistoryRequest, GetPaymentHistoryResponse](httpClient, baseURL+ExpenseServiceGetPaymentHistoryProcedure, opts...),
		previewSplit:      connect.NewClient[PreviewSplitRequest, PreviewSplitResponse](httpClient, baseURL+ExpenseServicePreviewSplitProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListMyExpenses(ctx context.Context, req *connect.Request[ListMyExpensesRequest]) (*connect.Response[ListMyExpensesResponse], error) {
	return c.listMyExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListMyDebts(ctx context.Context, req *connect.Request[ListMyDebtsRequest]) (*connect.Response[ListMyDebtsResponse], error) {
	return c.listMyDebts.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListOwedToMe(ctx context.Context, req *connect.Request[ListOwedToMeRequest]) (*connect.Response[ListOwedToMeResponse], error) {
	return c.listOwedToMe.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) MarkSharePaid(ctx context.Context, req *connect.Request[MarkSharePaidRequest]) (*connect.Response[MarkSharePaidResponse], error) {
	return c.markSharePaid.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetPaymentHistory(ctx context.Context, req *connect.Request[GetPaymentHistoryRequest]) (*connect.Response[GetPaymentHistoryResponse], error) {
	return c.getPaymentHistory.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by the GroupService server.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	GetGroupBalances(context.Context, *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error)
}

// NewGroupServiceHandler returns the path prefix to mount svc under and its handler.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(GroupServiceGetGroupBalancesProcedure, connect.NewUnaryHandler(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...))
	return "/" + GroupServiceName + "/", mux
}

// GroupServiceClient calls a remote GroupService.
type GroupServiceClient struct {
	createGroup      *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup         *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups       *connect.Client[ListGroupsRequest, ListGroupsResponse]
	addMember        *connect.Client[AddMemberRequest, AddMemberResponse]
	getGroupBalances *connect.Client[GetGroupBalancesRequest, GetGroupBalancesResponse]
}

func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:      connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:       connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addMember:        connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		getGroupBalances: connect.NewClient[GetGroupBalancesRequest, GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

// ParserServiceHandler is implemented by the ParserService server.
type ParserServiceHandler interface {
	ExtractAmount(context.Context, *connect.Request[ExtractAmountRequest]) (*connect.Response[ExtractAmountResponse], error)
	PredictCategory(context.Context, *connect.Request[PredictCategoryRequest]) (*connect.Response[PredictCategoryResponse], error)
	BatchPredictCategory(context.Context, *connect.Request[BatchPredictCategoryRequest]) (*connect.Response[BatchPredictCategoryResponse], error)
	AnalyzeTransaction(context.Context, *connect.Request[AnalyzeTransactionRequest]) (*connect.Response[AnalyzeTransactionResponse], error)
	AnalyzeMultiTransactions(context.Context, *connect.Request[AnalyzeMultiTransactionsRequest]) (*connect.Response[AnalyzeMultiTransactionsResponse], error)
}

// NewParserServiceHandler returns the path prefix to mount svc under and its handler.
func NewParserServiceHandler(svc ParserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ParserServiceExtractAmountProcedure, connect.NewUnaryHandler(ParserServiceExtractAmountProcedure, svc.ExtractAmount, opts...))
	mux.Handle(ParserServicePredictCategoryProcedure, connect.NewUnaryHandler(ParserServicePredictCategoryProcedure, svc.PredictCategory, opts...))
	mux.Handle(ParserServiceBatchPredictCategoryProcedure, connect.NewUnaryHandler(ParserServiceBatchPredictCategoryProcedure, svc.BatchPredictCategory, opts...))
	mux.Handle(ParserServiceAnalyzeTransactionProcedure, connect.NewUnaryHandler(ParserServiceAnalyzeTransactionProcedure, svc.AnalyzeTransaction, opts...))
	mux.Handle(ParserServiceAnalyzeMultiTransactionsProcedure, connect.NewUnaryHandler(ParserServiceAnalyzeMultiTransactionsProcedure, svc.AnalyzeMultiTransactions, opts...))
	return "/" + ParserServiceName + "/", mux
}

// ParserServiceClient calls a remote ParserService.
type ParserServiceClient struct {
	extractAmount            *connect.Client[ExtractAmountRequest, ExtractAmountResponse]
	predictCategory          *connect.Client[PredictCategoryRequest, PredictCategoryResponse]
	batchPredictCategory     *connect.Client[BatchPredictCategoryRequest, BatchPredictCategoryResponse]
	analyzeTransaction       *connect.Client[AnalyzeTransactionRequest, AnalyzeTransactionResponse]
	analyzeMultiTransactions *connect.Client[AnalyzeMultiTransactionsRequest, AnalyzeMultiTransactionsResponse]
}

func NewParserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ParserServiceClient {
	opts = clientOptions(opts)
	return &ParserServiceClient{
		extractAmount:            connect.NewClient[ExtractAmountRequest, ExtractAmountResponse](httpClient, baseURL+ParserServiceExtractAmountProcedure, opts...),
		predictCategory:          connect.NewClient[PredictCategoryRequest, PredictCategoryResponse](httpClient, baseURL+ParserServicePredictCategoryProcedure, opts...),
		batchPredictCategory:     connect.NewClient[BatchPredictCategoryRequest, BatchPredictCategoryResponse](httpClient, baseURL+ParserServiceBatchPredictCategoryProcedure, opts...),
		analyzeTransaction:       connect.NewClient[AnalyzeTransactionRequest, AnalyzeTransactionResponse](httpClient, baseURL+ParserServiceAnalyzeTransactionProcedure, opts...),
		analyzeMultiTransactions: connect.NewClient[AnalyzeMultiTransactionsRequest, AnalyzeMultiTransactionsResponse](httpClient, baseURL+ParserServiceAnalyzeMultiTransactionsProcedure, opts...),
	}
}

func (c *ParserServiceClient) ExtractAmount(ctx context.Context, req *connect.Request[ExtractAmountRequest]) (*connect.Response[ExtractAmountResponse], error) {
	return c.extractAmount.CallUnary(ctx, req)
}

func (c *ParserServiceClient) PredictCategory(ctx context.Context, req *connect.Request[PredictCategoryRequest]) (*connect.Response[PredictCategoryResponse], error) {
	return c.predictCategory.CallUnary(ctx, req)
}

func (c *ParserServiceClient) BatchPredictCategory(ctx context.Context, req *connect.Request[BatchPredictCategoryRequest]) (*connect.Response[BatchPredictCategoryResponse], error) {
	return c.batchPredictCategory.CallUnary(ctx, req)
}

func (c *ParserServiceClient) AnalyzeTransaction(ctx context.Context, req *connect.Request[AnalyzeTransactionRequest]) (*connect.Response[AnalyzeTransactionResponse], error) {
	return c.analyzeTransaction.CallUnary(ctx, req)
}

func (c *ParserServiceClient) AnalyzeMultiTransactions(ctx context.Context, req *connect.Request[AnalyzeMultiTransactionsRequest]) (*connect.Response[AnalyzeMultiTransactionsResponse], error) {
	return c.analyzeMultiTransactions.CallUnary(ctx, req)
}
