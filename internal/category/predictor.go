package category

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/sotien/internal/money"
)

const (
	ModelCombined = "ml+keyword-combined"
	ModelRemote   = "remote-ml"

	DefaultRemoteTimeout   = 3 * time.Second
	DefaultRemoteThreshold = 0.6

	fallbackSuffix = "-fallback"
)

// Predictor predicts a category for a note. Implementations never fail;
// a degraded answer is still an answer.
type Predictor interface {
	Predict(ctx context.Context, note string, amount money.Cents) Prediction
}

// KeywordPredictor answers from the local classifier only.
type KeywordPredictor struct {
	Classifier *Classifier
}

func NewKeywordPredictor(c *Classifier) *KeywordPredictor {
	return &KeywordPredictor{Classifier: c}
}

func (p *KeywordPredictor) Predict(_ context.Context, note string, amount money.Cents) Prediction {
	return p.Classifier.Classify(note, amount)
}

// RemoteClient calls an external model over HTTP.
type RemoteClient struct {
	baseURL string
	client  *http.Client
}

func NewRemoteClient(baseURL string, client *http.Client) *RemoteClient {
	if client == nil {
		client = &http.Client{}
	}
	return &RemoteClient{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

type remoteRequest struct {
	Note   string `json:"note"`
	Amount string `json:"amount,omitempty"`
}

type remoteSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type remoteResponse struct {
	Category    string             `json:"category"`
	Confidence  float64            `json:"confidence"`
	Suggestions []remoteSuggestion `json:"suggestions"`
	Model       string             `json:"model"`
}

// Predict posts the note to <baseURL>/predict-category.
func (c *RemoteClient) Predict(ctx context.Context, note string, amount money.Cents) (Prediction, error) {
	req := remoteRequest{Note: note}
	if amount > 0 {
		req.Amount = amount.String()
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict-category", bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to call predictor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Prediction{}, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	var out remoteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return Prediction{}, fmt.Errorf("failed to decode predictor response: %w", err)
	}
	return out.toPrediction()
}

func (r remoteResponse) toPrediction() (Prediction, error) {
	cat := Category(r.Category)
	if !Valid(cat) {
		return Prediction{}, fmt.Errorf("predictor returned unknown category %q", r.Category)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return Prediction{}, fmt.Errorf("predictor returned confidence %v out of range", r.Confidence)
	}

	p := Prediction{Category: cat, Confidence: r.Confidence, Model: r.Model}
	if p.Model == "" {
		p.Model = ModelRemote
	}
	for _, s := range r.Suggestions {
		if Valid(Category(s.Category)) {
			p.Suggestions = append(p.Suggestions, Suggestion{Category: Category(s.Category), Confidence: s.Confidence})
		}
	}
	if len(p.Suggestions) == 0 {
		p.Suggestions = []Suggestion{{Category: cat, Confidence: r.Confidence}}
	}
	return p, nil
}

// RemotePredictor prefers a remote model and falls back to the local
// classifier when the model is unsure, slow, or unreachable.
type RemotePredictor struct {
	remote     *RemoteClient
	local      *Classifier
	threshold  float64
	timeout    time.Duration
	onFallback func(reason string)
}

type RemoteOption func(*RemotePredictor)

// WithThreshold sets the confidence at which the remote answer is taken
// without consulting the local classifier.
func WithThreshold(t float64) RemoteOption {
	return func(p *RemotePredictor) { p.threshold = t }
}

func WithTimeout(d time.Duration) RemoteOption {
	return func(p *RemotePredictor) { p.timeout = d }
}

// WithFallbackHook is called with a short reason every time the remote
// call fails and the local answer is used instead.
func WithFallbackHook(fn func(reason string)) RemoteOption {
	return func(p *RemotePredictor) { p.onFallback = fn }
}

func NewRemotePredictor(remote *RemoteClient, local *Classifier, opts ...RemoteOption) *RemotePredictor {
	p := &RemotePredictor{
		remote:     remote,
		local:      local,
		threshold:  DefaultRemoteThreshold,
		timeout:    DefaultRemoteTimeout,
		onFallback: func(string) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *RemotePredictor) Predict(ctx context.Context, note string, amount money.Cents) Prediction {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ml, err := p.remote.Predict(callCtx, note, amount)
	kw := p.local.Classify(note, amount)
	if err != nil {
		reason := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		slog.Warn("Remote category prediction failed, using keyword classifier",
			"error", err,
			"reason", reason,
		)
		p.onFallback(reason)
		return kw
	}
	return combine(ml, kw, p.threshold)
}

func combine(ml, kw Prediction, threshold float64) Prediction {
	if ml.Confidence >= threshold {
		return ml
	}
	if ml.Category == kw.Category {
		kw.Confidence = round4(math.Min(ml.Confidence*0.6+kw.Confidence*0.4+0.1, 1))
		kw.Model = ModelCombined
		if len(kw.Suggestions) > 0 {
			kw.Suggestions = append([]Suggestion(nil), kw.Suggestions...)
			kw.Suggestions[0].Confidence = kw.Confidence
		}
		return kw
	}
	if ml.Confidence >= kw.Confidence {
		return ml
	}
	kw.Model += fallbackSuffix
	return kw
}
