// Package category predicts a spending category from a free-text
// Vietnamese note. Classifier is the local keyword model; Predictor lets a
// remote model sit in front of it.
package category

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/vntext"
)

const (
	ModelKeyword = "enhanced-keyword-v1"
	ModelNgram   = "enhanced-keyword-v1-ngram"
)

const (
	// ngramDecisive is the phrase weight at which a phrase match is final.
	ngramDecisive = 0.9
	// minScore is the lowest raw score a top category may have before the
	// classifier gives up and answers Default.
	minScore          = 0.05
	emptyConfidence   = 0.1
	defaultConfidence = 0.2
	maxSuggestions    = 5
	unlikelyPenalty   = 0.5
)

// Suggestion is one ranked candidate.
type Suggestion struct {
	Category   Category
	Confidence float64
}

// Prediction is the classifier output. Suggestions are ranked and include
// the winning category first.
type Prediction struct {
	Category    Category
	Confidence  float64
	Suggestions []Suggestion
	Model       string
}

type keyword struct {
	text   string
	weight float64
}

// Classifier scores notes against fixed keyword tables. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	keywords  map[Category][]keyword
	ngrams    []ngramEntry
	negatives []negativeEntry
}

// NewClassifier normalizes the keyword tables once.
func NewClassifier() *Classifier {
	weights := make(map[string]float64, len(keywordWeights))
	for k, w := range keywordWeights {
		weights[normalize(k)] = w
	}

	c := &Classifier{keywords: make(map[Category][]keyword, len(keywords))}
	for cat, list := range keywords {
		seen := make(map[string]bool, len(list))
		for _, k := range list {
			n := normalize(k)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			w, ok := weights[n]
			if !ok {
				w = 1.0
			}
			c.keywords[cat] = append(c.keywords[cat], keyword{text: n, weight: w})
		}
	}
	for _, ng := range ngrams {
		ng.phrase = normalize(ng.phrase)
		c.ngrams = append(c.ngrams, ng)
	}
	for _, neg := range negatives {
		neg.phrase = normalize(neg.phrase)
		c.negatives = append(c.negatives, neg)
	}
	return c
}

// normalize lowercases, strips punctuation (keeping diacritics) and
// rewrites teencode and common misspellings.
func normalize(s string) string {
	s = strings.ToLower(vntext.NFC(s))
	s = vntext.CollapseSpaces(vntext.StripPunctuation(s))
	if s == "" {
		return ""
	}

	tokens := strings.Split(s, " ")
	for i, t := range tokens {
		if sub, ok := tokenSubs[t]; ok {
			tokens[i] = sub
		}
	}
	s = " " + strings.Join(tokens, " ") + " "
	for _, p := range phraseSubs {
		from, to := " "+p[0]+" ", " "+p[1]+" "
		for strings.Contains(s, from) {
			s = strings.ReplaceAll(s, from, to)
		}
	}
	return strings.TrimSpace(s)
}

// Classify predicts the category of note. amount, when positive, nudges
// the ranking toward categories typical for that price range.
func (c *Classifier) Classify(note string, amount money.Cents) Prediction {
	if strings.TrimSpace(note) == "" {
		return single(Default, emptyConfidence, ModelKeyword)
	}
	text := normalize(note)

	ng, hasNgram := c.bestNgram(text)
	if hasNgram && ng.weight >= ngramDecisive {
		return single(ng.category, math.Min(ng.weight, 1), ModelNgram)
	}

	excluded := c.excluded(text)
	tier := tierFor(amount)

	scores := make(map[Category]float64)
	for _, cat := range All {
		if excluded[cat] {
			continue
		}
		score := c.baseScore(text, cat)
		if tier != nil {
			if has(tier.unlikely, cat) {
				score *= unlikelyPenalty
			}
			if has(tier.likely, cat) && score > 0 {
				score *= tier.boost
			}
		}
		if score > 0 {
			scores[cat] = score
		}
	}
	if hasNgram {
		scores[ng.category] = math.Max(scores[ng.category], math.Min(ng.weight, 1))
	}

	ranked := make([]Suggestion, 0, len(scores))
	for _, cat := range All {
		if s, ok := scores[cat]; ok {
			ranked = append(ranked, Suggestion{Category: cat, Confidence: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) == 0 || ranked[0].Confidence < minScore {
		// The default leads, followed by the two best raw candidates as scored.
		p := single(Default, defaultConfidence, ModelKeyword)
		for _, s := range ranked[:min(len(ranked), 2)] {
			p.Suggestions = append(p.Suggestions, Suggestion{Category: s.Category, Confidence: round4(s.Confidence)})
		}
		return p
	}

	var total float64
	for _, s := range ranked {
		total += s.Confidence
	}
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	for i := range ranked {
		ranked[i].Confidence = round4(ranked[i].Confidence / total)
	}
	return Prediction{
		Category:    ranked[0].Category,
		Confidence:  ranked[0].Confidence,
		Suggestions: ranked,
		Model:       ModelKeyword,
	}
}

func (c *Classifier) bestNgram(text string) (ngramEntry, bool) {
	var best ngramEntry
	found := false
	for _, ng := range c.ngrams {
		if ng.weight > best.weight && strings.Contains(text, ng.phrase) {
			best, found = ng, true
		}
	}
	return best, found
}

func (c *Classifier) excluded(text string) map[Category]bool {
	out := make(map[Category]bool)
	for _, neg := range c.negatives {
		if strings.Contains(text, neg.phrase) {
			for _, cat := range neg.excludes {
				out[cat] = true
			}
		}
	}
	return out
}

// baseScore rates how well text matches cat's keywords, in [0, 1].
func (c *Classifier) baseScore(text string, cat Category) float64 {
	var total, best float64
	matched := 0
	for _, k := range c.keywords[cat] {
		if !strings.Contains(text, k.text) {
			continue
		}
		matched++
		lengthBonus := math.Min(float64(utf8.RuneCountInString(k.text))/3, 5)
		exactBonus := 1.5
		if vntext.ContainsToken(text, k.text) {
			exactBonus = 3
		}
		score := lengthBonus * exactBonus * k.weight
		total += score
		best = math.Max(best, score)
	}
	if matched == 0 {
		return 0
	}
	avg := total / float64(matched)
	coverage := math.Min(float64(matched)/5, 1)
	return math.Min((0.6*best+0.3*avg+0.1*coverage)/10, 1)
}

func tierFor(amount money.Cents) *amountTier {
	if amount <= 0 {
		return nil
	}
	major := amount.Major()
	for i := range amountTiers {
		if major >= amountTiers[i].min && major < amountTiers[i].max {
			return &amountTiers[i]
		}
	}
	return nil
}

func single(cat Category, confidence float64, model string) Prediction {
	return Prediction{
		Category:    cat,
		Confidence:  confidence,
		Suggestions: []Suggestion{{Category: cat, Confidence: confidence}},
		Model:       model,
	}
}

func has(list []Category, cat Category) bool {
	for _, c := range list {
		if c == cat {
			return true
		}
	}
	return false
}

func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
