// Package segment splits a free-text message into sentences and turns each
// sentence that states an amount into a transaction candidate.
package segment

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/mmynk/sotien/internal/amount"
	"github.com/mmynk/sotien/internal/category"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/vntext"
)

var (
	lineBreak = regexp.MustCompile(`\r?\n|\r`)
	// Connectives only separate when surrounded by whitespace, so "vàng"
	// or "thêm" at the end of a line stay intact.
	conjunction = regexp.MustCompile(`(?i)\s+(?:và|còn|rồi|nữa|thêm)\s+`)
)

func isDelimiter(r rune) bool {
	switch r {
	case '.', '!', '?', ';', ',', '。', '！', '？', '；', '，':
		return true
	}
	return false
}

// Split breaks text into trimmed, non-empty sentences. A '.' or ',' between
// two digits is a number separator, not a sentence break.
func Split(text string) []string {
	var out []string
	for _, line := range lineBreak.Split(vntext.NFC(text), -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, part := range splitPunctuation(line) {
			for _, seg := range conjunction.Split(part, -1) {
				if s := strings.TrimSpace(seg); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func splitPunctuation(s string) []string {
	rs := []rune(s)
	var parts []string
	start := 0
	for i, r := range rs {
		if !isDelimiter(r) {
			continue
		}
		if (r == '.' || r == ',') && i > 0 && i+1 < len(rs) &&
			unicode.IsDigit(rs[i-1]) && unicode.IsDigit(rs[i+1]) {
			continue
		}
		parts = append(parts, string(rs[start:i]))
		start = i + 1
	}
	return append(parts, string(rs[start:]))
}

// Candidate is one sentence analyzed for amount and category.
type Candidate struct {
	Sentence           string
	Amount             money.Cents
	AmountConfidence   float64
	MatchedText        string
	Method             amount.Method
	Category           category.Category
	CategoryConfidence float64
	Suggestions        []category.Suggestion
	Model              string
}

// Analyzer combines amount extraction with category prediction.
type Analyzer struct {
	extractor *amount.Extractor
	predictor category.Predictor
}

func NewAnalyzer(extractor *amount.Extractor, predictor category.Predictor) *Analyzer {
	return &Analyzer{extractor: extractor, predictor: predictor}
}

// AnalyzeOne analyzes text as a single sentence. The candidate is returned
// even when no amount was found.
func (a *Analyzer) AnalyzeOne(ctx context.Context, text string) Candidate {
	sentence := strings.TrimSpace(text)
	return a.candidate(ctx, sentence, a.extractor.Extract(sentence))
}

// Analyze splits text and returns a candidate for every sentence with a
// positive amount, in order of appearance.
func (a *Analyzer) Analyze(ctx context.Context, text string) []Candidate {
	var out []Candidate
	for _, sentence := range Split(text) {
		res := a.extractor.Extract(sentence)
		if !res.Found() {
			continue
		}
		out = append(out, a.candidate(ctx, sentence, res))
	}
	return out
}

func (a *Analyzer) candidate(ctx context.Context, sentence string, res amount.Result) Candidate {
	pred := a.predictor.Predict(ctx, sentence, res.Amount)
	return Candidate{
		Sentence:           sentence,
		Amount:             res.Amount,
		AmountConfidence:   res.Confidence,
		MatchedText:        res.MatchedText,
		Method:             res.Method,
		Category:           pred.Category,
		CategoryConfidence: pred.Confidence,
		Suggestions:        pred.Suggestions,
		Model:              pred.Model,
	}
}
