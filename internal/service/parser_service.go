package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/internal/amount"
	"github.com/mmynk/sotien/internal/category"
	"github.com/mmynk/sotien/internal/metrics"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/segment"
	"github.com/mmynk/sotien/pkg/api"
)

// maxBatch caps BatchPredictCategory requests.
const maxBatch = 100

// ParserService implements the Connect ParserService. It holds no state
// beyond its read-only extractor and predictor and needs no authentication.
type ParserService struct {
	extractor *amount.Extractor
	predictor category.Predictor
	analyzer  *segment.Analyzer
	metrics   *metrics.Metrics
}

var _ api.ParserServiceHandler = (*ParserService)(nil)

// NewParserService creates a ParserService that classifies with predictor.
// m may be nil.
func NewParserService(extractor *amount.Extractor, predictor category.Predictor, m *metrics.Metrics) *ParserService {
	return &ParserService{
		extractor: extractor,
		predictor: predictor,
		analyzer:  segment.NewAnalyzer(extractor, predictor),
		metrics:   m,
	}
}

// ExtractAmount finds the transaction amount in free text.
func (s *ParserService) ExtractAmount(ctx context.Context, req *connect.Request[api.ExtractAmountRequest]) (*connect.Response[api.ExtractAmountResponse], error) {
	slog.Debug("ExtractAmount request received", "text_len", len(req.Msg.Text))

	res := s.extractor.Extract(req.Msg.Text)
	s.metrics.ObserveExtraction(string(res.Method))
	return connect.NewResponse(&api.ExtractAmountResponse{
		Amount:      res.Amount.String(),
		Confidence:  res.Confidence,
		MatchedText: res.MatchedText,
		Method:      string(res.Method),
	}), nil
}

// PredictCategory classifies a transaction note.
func (s *ParserService) PredictCategory(ctx context.Context, req *connect.Request[api.PredictCategoryRequest]) (*connect.Response[api.PredictCategoryResponse], error) {
	slog.Debug("PredictCategory request received", "note_len", len(req.Msg.Note))

	resp, err := s.predict(ctx, *req.Msg)
	if err != nil {
		return nil, fail("PredictCategory", err)
	}
	return connect.NewResponse(&resp), nil
}

// BatchPredictCategory classifies several notes, preserving their order.
func (s *ParserService) BatchPredictCategory(ctx context.Context, req *connect.Request[api.BatchPredictCategoryRequest]) (*connect.Response[api.BatchPredictCategoryResponse], error) {
	items := req.Msg.Items
	slog.Info("BatchPredictCategory request received", "items_count", len(items))

	if len(items) > maxBatch {
		return nil, fail("BatchPredictCategory", fmt.Errorf("%w: at most %d items, got %d", errBatchTooLarge, maxBatch, len(items)))
	}

	out := make([]api.PredictCategoryResponse, len(items))
	for i, item := range items {
		resp, err := s.predict(ctx, item)
		if err != nil {
			return nil, fail("BatchPredictCategory", fmt.Errorf("item %d: %w", i, err))
		}
		out[i] = resp
	}

	return connect.NewResponse(&api.BatchPredictCategoryResponse{Predictions: out}), nil
}

// AnalyzeTransaction extracts the amount and category of one sentence.
func (s *ParserService) AnalyzeTransaction(ctx context.Context, req *connect.Request[api.AnalyzeTransactionRequest]) (*connect.Response[api.AnalyzeTransactionResponse], error) {
	slog.Debug("AnalyzeTransaction request received", "text_len", len(req.Msg.Text))

	if strings.TrimSpace(req.Msg.Text) == "" {
		return nil, fail("AnalyzeTransaction", fmt.Errorf("%w: text", errMissingField))
	}
	c := s.analyzer.AnalyzeOne(ctx, req.Msg.Text)
	s.metrics.ObserveExtraction(string(c.Method))
	return connect.NewResponse(&api.AnalyzeTransactionResponse{Transaction: toAPICandidate(c)}), nil
}

// AnalyzeMultiTransactions splits text into sentences and analyzes each one
// that mentions an amount.
func (s *ParserService) AnalyzeMultiTransactions(ctx context.Context, req *connect.Request[api.AnalyzeMultiTransactionsRequest]) (*connect.Response[api.AnalyzeMultiTransactionsResponse], error) {
	slog.Debug("AnalyzeMultiTransactions request received", "text_len", len(req.Msg.Text))

	candidates := s.analyzer.Analyze(ctx, req.Msg.Text)
	out := make([]api.TransactionCandidate, len(candidates))
	for i, c := range candidates {
		s.metrics.ObserveExtraction(string(c.Method))
		out[i] = toAPICandidate(c)
	}

	slog.Info("AnalyzeMultiTransactions successful", "count", len(out))

	return connect.NewResponse(&api.AnalyzeMultiTransactionsResponse{Count: len(out), Transactions: out}), nil
}

func (s *ParserService) predict(ctx context.Context, req api.PredictCategoryRequest) (api.PredictCategoryResponse, error) {
	var amt money.Cents
	if strings.TrimSpace(req.Amount) != "" {
		parsed, err := money.Parse(req.Amount)
		if err != nil {
			return api.PredictCategoryResponse{}, fmt.Errorf("amount: %w", err)
		}
		amt = parsed
	}
	return toAPIPrediction(s.predictor.Predict(ctx, req.Note, amt)), nil
}
