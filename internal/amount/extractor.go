// Package amount extracts a monetary amount from informal Vietnamese text.
//
// Extraction runs an ordered cascade of pattern matchers over the folded text
// (no diacritics, lowercase, single spaces). The first matcher that yields a
// valid positive amount decides the result; a match outside the accepted
// range counts as no match. Within a matcher the last occurrence in the
// text wins, since the final amount stated in a sentence is usually the real
// one. The order is significant and must not be changed for speed.
package amount

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/vntext"
)

// Method identifies the matcher that produced a result.
type Method string

const (
	MethodComplex   Method = "complex-vietnamese"
	MethodTrieu     Method = "trieu"
	MethodTramNghin Method = "tram-nghin"
	MethodNghin     Method = "nghin"
	MethodK         Method = "k-notation"
	MethodPlain     Method = "plain-number"
	MethodNotFound  Method = "not-found"
	MethodEmpty     Method = "empty-text"
)

// Methods lists every method in priority order, terminal states last.
var Methods = []Method{
	MethodComplex, MethodTrieu, MethodTramNghin, MethodNghin,
	MethodK, MethodPlain, MethodNotFound, MethodEmpty,
}

const unmatchedConfidence = 0.1

// Result is the outcome of an extraction. Amount is 0 when nothing usable
// was found.
type Result struct {
	Amount      money.Cents
	Confidence  float64
	MatchedText string
	Method      Method
}

// Found reports whether a positive amount was extracted.
func (r Result) Found() bool {
	return r.Amount > 0
}

var (
	minAmount = decimal.New(1, -2)
	maxAmount = decimal.NewFromInt(999_999_999)

	million         = decimal.NewFromInt(1_000_000)
	hundredThousand = decimal.NewFromInt(100_000)
	thousand        = decimal.NewFromInt(1_000)
)

type matcher struct {
	method     Method
	confidence float64
	pattern    *regexp.Regexp
	// value converts the submatches of the rightmost match to major units.
	value func(groups []string) (decimal.Decimal, bool)
}

// Extractor is safe for concurrent use; its matchers are built once.
type Extractor struct {
	matchers []matcher
}

// NewExtractor builds the matcher cascade.
func NewExtractor() *Extractor {
	const num = `(\d+(?:[.,]\d+)?)`
	const thousandWord = `(?:nghin|ngan)`

	return &Extractor{matchers: []matcher{
		{
			method:     MethodComplex,
			confidence: 0.95,
			pattern:    regexp.MustCompile(num + `\s*trieu\s*` + num + `\s*` + thousandWord),
			value: func(g []string) (decimal.Decimal, bool) {
				millions, ok1 := parseNumber(g[1])
				thousands, ok2 := parseNumber(g[2])
				return millions.Mul(million).Add(thousands.Mul(thousand)), ok1 && ok2
			},
		},
		{
			method:     MethodTrieu,
			confidence: 0.90,
			pattern:    regexp.MustCompile(num + `\s*trieu`),
			value:      scaled(million),
		},
		{
			method:     MethodTramNghin,
			confidence: 0.90,
			pattern:    regexp.MustCompile(`(\d+)\s*tram\s*` + thousandWord),
			value:      scaled(hundredThousand),
		},
		{
			method:     MethodNghin,
			confidence: 0.90,
			pattern:    regexp.MustCompile(num + `\s*` + thousandWord),
			value:      scaled(thousand),
		},
		{
			method:     MethodK,
			confidence: 0.85,
			pattern:    regexp.MustCompile(num + `\s*k\b`),
			value:      scaled(thousand),
		},
		{
			// Grouped ("1.500.000") or at least three plain digits, so day
			// numbers and small counts are not mistaken for amounts.
			method:     MethodPlain,
			confidence: 0.70,
			pattern:    regexp.MustCompile(`\b(\d{1,3}(?:[.,]\d{3})+|\d{3,})(?:[.,](\d{1,2}))?(?:\s*(?:vnd|dong|d))?\b`),
			value:      plainNumber,
		},
	}}
}

// Extract returns the best-guess amount stated in text.
func (e *Extractor) Extract(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Confidence: unmatchedConfidence, Method: MethodEmpty}
	}

	normalized := vntext.Fold(text)
	for _, m := range e.matchers {
		matches := m.pattern.FindAllStringSubmatch(normalized, -1)
		if len(matches) == 0 {
			continue
		}
		last := matches[len(matches)-1]

		major, ok := m.value(last)
		if !ok {
			continue
		}
		cents, ok := validate(major)
		if !ok {
			continue
		}
		return Result{
			Amount:      cents,
			Confidence:  m.confidence,
			MatchedText: last[0],
			Method:      m.method,
		}
	}
	return Result{Confidence: unmatchedConfidence, Method: MethodNotFound}
}

// validate rejects amounts outside [0.01, 999,999,999] and rounds to cents.
func validate(major decimal.Decimal) (money.Cents, bool) {
	if major.LessThan(minAmount) || major.GreaterThan(maxAmount) {
		return 0, false
	}
	return money.Round(major), true
}

// parseNumber accepts either '.' or ',' as the decimal separator.
func parseNumber(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	return d, err == nil
}

func scaled(factor decimal.Decimal) func([]string) (decimal.Decimal, bool) {
	return func(g []string) (decimal.Decimal, bool) {
		d, ok := parseNumber(g[1])
		return d.Mul(factor), ok
	}
}

func plainNumber(g []string) (decimal.Decimal, bool) {
	digits := strings.NewReplacer(".", "", ",", "").Replace(g[1])
	if g[2] != "" {
		digits += "." + g[2]
	}
	d, err := decimal.NewFromString(digits)
	return d, err == nil
}
