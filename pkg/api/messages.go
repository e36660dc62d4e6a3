// Package api defines the wire messages of the sotien services. Money is
// always carried as a decimal string with two fractional digits.
package api

type Member struct {
	ID          string `json:"id"`
	GroupID     string `json:"group_id,omitempty"`
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id,omitempty"`
}

type Group struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Members   []Member `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type ExactShare struct {
	MemberID string `json:"member_id"`
	Amount   string `json:"amount"`
}

type PercentShare struct {
	MemberID string  `json:"member_id"`
	Percent  float64 `json:"percent"`
}

// SplitPolicy is one of equal (participant_ids), exact or percent.
type SplitPolicy struct {
	Kind           string         `json:"kind"`
	ParticipantIDs []string       `json:"participant_ids,omitempty"`
	Exact          []ExactShare   `json:"exact,omitempty"`
	Percent        []PercentShare `json:"percent,omitempty"`
}

type Share struct {
	ID       string `json:"id,omitempty"`
	MemberID string `json:"member_id"`
	Amount   string `json:"amount"`
	IsPaid   bool   `json:"is_paid"`
	PaidAt   int64  `json:"paid_at,omitempty"`
}

type Expense struct {
	ID             string      `json:"id"`
	GroupID        string      `json:"group_id"`
	Title          string      `json:"title"`
	PaidByMemberID string      `json:"paid_by_member_id"`
	Total          string      `json:"total"`
	Policy         SplitPolicy `json:"policy"`
	Shares         []Share     `json:"shares"`
	CreatedAt      int64       `json:"created_at"`
}

type NetPosition struct {
	MemberID    string `json:"member_id"`
	DisplayName string `json:"display_name,omitempty"`
	Net         string `json:"net"`
}

type Transfer struct {
	From     string `json:"from"`
	FromName string `json:"from_name,omitempty"`
	To       string `json:"to"`
	ToName   string `json:"to_name,omitempty"`
	Amount   string `json:"amount"`
}

type OpenShare struct {
	GroupID      string `json:"group_id"`
	ShareID      string `json:"share_id"`
	ExpenseID    string `json:"expense_id"`
	ExpenseTitle string `json:"expense_title"`
	ExpenseTotal string `json:"expense_total"`
	Amount       string `json:"amount"`
	DebtorID     string `json:"debtor_id"`
	CreditorID   string `json:"creditor_id"`
	SplitKind    string `json:"split_kind"`
	CreatedAt    int64  `json:"created_at"`
}

type SettlementRecord struct {
	ID             string `json:"id"`
	MemberID       string `json:"member_id"`
	UserID         string `json:"user_id,omitempty"`
	CounterpartyID string `json:"counterparty_id"`
	Direction      string `json:"direction"`
	Amount         string `json:"amount"`
	Category       string `json:"category"`
	Note           string `json:"note"`
	CreatedAt      int64  `json:"created_at"`
}

type Payment struct {
	GroupID        string `json:"group_id"`
	Date           int64  `json:"date"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	ExpenseID      string `json:"expense_id"`
	ExpenseTitle   string `json:"expense_title"`
	CounterpartyID string `json:"counterparty_id,omitempty"`
}

// Expense service.

type CreateExpenseRequest struct {
	GroupID        string      `json:"group_id"`
	Title          string      `json:"title"`
	PaidByMemberID string      `json:"paid_by_member_id"`
	Total          string      `json:"total"`
	Policy         SplitPolicy `json:"policy"`
}

type CreateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

// MemberScope selects whose view a request is for. MemberID may be omitted
// when the caller is authenticated; every group with a member linked to the
// caller is then included. GroupID narrows the result to one group.
type MemberScope struct {
	GroupID  string `json:"group_id,omitempty"`
	MemberID string `json:"member_id,omitempty"`
}

type ListMyExpensesRequest struct {
	MemberScope
}

type ListMyExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type ListMyDebtsRequest struct {
	MemberScope
}

type ListMyDebtsResponse struct {
	Debts []OpenShare `json:"debts"`
	Total string      `json:"total"`
}

type ListOwedToMeRequest struct {
	MemberScope
}

type ListOwedToMeResponse struct {
	Shares []OpenShare `json:"shares"`
	Total  string      `json:"total"`
}

type MarkSharePaidRequest struct {
	ShareID string `json:"share_id"`
	// MemberID is the payer confirming the payment. Optional when the
	// caller is authenticated.
	MemberID string `json:"member_id,omitempty"`
}

type MarkSharePaidResponse struct {
	Share   Share              `json:"share"`
	Records []SettlementRecord `json:"records"`
}

type GetPaymentHistoryRequest struct {
	MemberScope
	// Month is "MM/YYYY".
	Month string `json:"month"`
}

type GetPaymentHistoryResponse struct {
	Month         string    `json:"month"`
	Payments      []Payment `json:"payments"`
	TotalPaid     string    `json:"total_paid"`
	TotalReceived string    `json:"total_received"`
	Net           string    `json:"net"`
}

type PreviewSplitRequest struct {
	Total  string      `json:"total"`
	Policy SplitPolicy `json:"policy"`
}

type PreviewSplitResponse struct {
	Shares []Share `json:"shares"`
}

// Group service.

type NewMember struct {
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id,omitempty"`
}

type CreateGroupRequest struct {
	Title   string      `json:"title"`
	Members []NewMember `json:"members"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID     string `json:"group_id"`
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id,omitempty"`
}

type AddMemberResponse struct {
	Member Member `json:"member"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	NetList    []NetPosition `json:"net_list"`
	Simplified []Transfer    `json:"simplified"`

	// Outstanding is NetList with already-paid shares taken off.
	Outstanding []NetPosition `json:"outstanding"`
}

// Parser service.

type ExtractAmountRequest struct {
	Text string `json:"text"`
}

type ExtractAmountResponse struct {
	Amount      string  `json:"amount"`
	Confidence  float64 `json:"confidence"`
	MatchedText string  `json:"matched_text,omitempty"`
	Method      string  `json:"method"`
}

type CategorySuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type PredictCategoryRequest struct {
	Note string `json:"note"`
	// Amount is optional.
	Amount string `json:"amount,omitempty"`
}

type PredictCategoryResponse struct {
	Category    string               `json:"category"`
	Confidence  float64              `json:"confidence"`
	Suggestions []CategorySuggestion `json:"suggestions"`
	Model       string               `json:"model"`
}

type BatchPredictCategoryRequest struct {
	Items []PredictCategoryRequest `json:"items"`
}

type BatchPredictCategoryResponse struct {
	Predictions []PredictCategoryResponse `json:"predictions"`
}

type TransactionCandidate struct {
	Sentence           string               `json:"sentence"`
	Amount             string               `json:"amount"`
	AmountConfidence   float64              `json:"amount_confidence"`
	MatchedText        string               `json:"matched_text,omitempty"`
	ExtractionMethod   string               `json:"extraction_method"`
	Category           string               `json:"category"`
	CategoryConfidence float64              `json:"category_confidence"`
	Suggestions        []CategorySuggestion `json:"suggestions"`
	Model              string               `json:"model"`
}

type AnalyzeTransactionRequest struct {
	Text string `json:"text"`
}

type AnalyzeTransactionResponse struct {
	Transaction TransactionCandidate `json:"transaction"`
}

type AnalyzeMultiTransactionsRequest struct {
	Text string `json:"text"`
}

type AnalyzeMultiTransactionsResponse struct {
	Count        int                    `json:"count"`
	Transactions []TransactionCandidate `json:"transactions"`
}
