package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/pkg/api"
)

func TestExtractAmount(t *testing.T) {
	env := setupTestServer(t, nil)

	tests := []struct {
		text   string
		amount string
		method string
	}{
		{"ăn phở 90k", "90000.00", "k-notation"},
		{"cảm ơn nhé", "0.00", "not-found"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			resp, err := env.parser.ExtractAmount(context.Background(), connect.NewRequest(&api.ExtractAmountRequest{Text: tt.text}))
			if err != nil {
				t.Fatalf("ExtractAmount failed: %v", err)
			}
			if resp.Msg.Amount != tt.amount || resp.Msg.Method != tt.method {
				t.Errorf("got %s via %s, want %s via %s", resp.Msg.Amount, resp.Msg.Method, tt.amount, tt.method)
			}
		})
	}
}

func TestPredictCategory(t *testing.T) {
	env := setupTestServer(t, nil)

	resp, err := env.parser.PredictCategory(context.Background(), connect.NewRequest(&api.PredictCategoryRequest{
		Note:   "ăn phở",
		Amount: "90000",
	}))
	if err != nil {
		t.Fatalf("PredictCategory failed: %v", err)
	}
	if resp.Msg.Category != "food" || resp.Msg.Model == "" || len(resp.Msg.Suggestions) == 0 {
		t.Errorf("prediction = %+v", resp.Msg)
	}

	_, err = env.parser.PredictCategory(context.Background(), connect.NewRequest(&api.PredictCategoryRequest{
		Note:   "ăn phở",
		Amount: "chín mươi",
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestBatchPredictCategory(t *testing.T) {
	env := setupTestServer(t, nil)

	resp, err := env.parser.BatchPredictCategory(context.Background(), connect.NewRequest(&api.BatchPredictCategoryRequest{
		Items: []api.PredictCategoryRequest{
			{Note: "ăn phở"},
			{Note: "mua tạp dề"},
			{Note: ""},
		},
	}))
	if err != nil {
		t.Fatalf("BatchPredictCategory failed: %v", err)
	}
	want := []string{"food", "shopping", "other"}
	if len(resp.Msg.Predictions) != len(want) {
		t.Fatalf("got %d predictions, want %d", len(resp.Msg.Predictions), len(want))
	}
	for i, w := range want {
		if resp.Msg.Predictions[i].Category != w {
			t.Errorf("prediction %d = %s, want %s", i, resp.Msg.Predictions[i].Category, w)
		}
	}

	tooMany := make([]api.PredictCategoryRequest, maxBatch+1)
	_, err = env.parser.BatchPredictCategory(context.Background(), connect.NewRequest(&api.BatchPredictCategoryRequest{Items: tooMany}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestAnalyzeTransaction(t *testing.T) {
	env := setupTestServer(t, nil)

	resp, err := env.parser.AnalyzeTransaction(context.Background(), connect.NewRequest(&api.AnalyzeTransactionRequest{
		Text: "  ăn phở 90k  ",
	}))
	if err != nil {
		t.Fatalf("AnalyzeTransaction failed: %v", err)
	}
	tx := resp.Msg.Transaction
	if tx.Sentence != "ăn phở 90k" || tx.Amount != "90000.00" || tx.Category != "food" || tx.ExtractionMethod != "k-notation" {
		t.Errorf("transaction = %+v", tx)
	}

	_, err = env.parser.AnalyzeTransaction(context.Background(), connect.NewRequest(&api.AnalyzeTransactionRequest{Text: "   "}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestAnalyzeMultiTransactions(t *testing.T) {
	env := setupTestServer(t, nil)

	resp, err := env.parser.AnalyzeMultiTransactions(context.Background(), connect.NewRequest(&api.AnalyzeMultiTransactionsRequest{
		Text: "mua tạp dề 50k. ăn phở 90k, cảm ơn nhé",
	}))
	if err != nil {
		t.Fatalf("AnalyzeMultiTransactions failed: %v", err)
	}
	if resp.Msg.Count != 2 || len(resp.Msg.Transactions) != 2 {
		t.Fatalf("got %d transactions: %+v", resp.Msg.Count, resp.Msg.Transactions)
	}
	first, second := resp.Msg.Transactions[0], resp.Msg.Transactions[1]
	if first.Amount != "50000.00" || first.Category != "shopping" {
		t.Errorf("first = %+v", first)
	}
	if second.Amount != "90000.00" || second.Category != "food" {
		t.Errorf("second = %+v", second)
	}
}

func TestParserService_ExtractionMetrics(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()

	if _, err := env.parser.ExtractAmount(ctx, connect.NewRequest(&api.ExtractAmountRequest{Text: "ăn phở 90k"})); err != nil {
		t.Fatalf("ExtractAmount failed: %v", err)
	}
	if _, err := env.parser.ExtractAmount(ctx, connect.NewRequest(&api.ExtractAmountRequest{Text: "cảm ơn nhé"})); err != nil {
		t.Fatalf("ExtractAmount failed: %v", err)
	}
	if _, err := env.parser.AnalyzeTransaction(ctx, connect.NewRequest(&api.AnalyzeTransactionRequest{Text: "tiền nhà 1.500.000"})); err != nil {
		t.Fatalf("AnalyzeTransaction failed: %v", err)
	}
	if _, err := env.parser.AnalyzeMultiTransactions(ctx, connect.NewRequest(&api.AnalyzeMultiTransactionsRequest{Text: "mua tạp dề 50k. ăn phở 90k"})); err != nil {
		t.Fatalf("AnalyzeMultiTransactions failed: %v", err)
	}

	body := scrapeMetrics(t, env)
	for _, want := range []string{
		`sotien_amount_extractions_total{method="k-notation"} 3`,
		`sotien_amount_extractions_total{method="not-found"} 1`,
		`sotien_amount_extractions_total{method="plain-number"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
