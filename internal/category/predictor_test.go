package category

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func remoteServer(t *testing.T, handler http.HandlerFunc) *RemoteClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRemoteClient(srv.URL+"/", srv.Client())
}

func respond(category string, confidence float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"category":   category,
			"confidence": confidence,
		})
	}
}

func TestRemoteClientRequest(t *testing.T) {
	var got remoteRequest
	client := remoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/predict-category" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		respond("food", 0.8)(w, r)
	})

	pred, err := client.Predict(context.Background(), "ăn phở", 9_000_000)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got.Note != "ăn phở" || got.Amount != "90000.00" {
		t.Errorf("request = %+v, want note and amount 90000.00", got)
	}
	if pred.Category != Food || pred.Model != ModelRemote {
		t.Errorf("prediction = %+v", pred)
	}
}

func TestRemotePredictor(t *testing.T) {
	local := NewClassifier()

	tests := []struct {
		name      string
		note      string
		handler   http.HandlerFunc
		wantCat   Category
		wantConf  float64
		wantModel string
		wantHook  string
	}{
		{
			name:      "confident remote wins",
			note:      "ăn phở",
			handler:   respond("travel", 0.9),
			wantCat:   Travel,
			wantConf:  0.9,
			wantModel: ModelRemote,
		},
		{
			name:      "agreement is combined",
			note:      "ăn phở",
			handler:   respond("food", 0.5),
			wantCat:   Food,
			wantConf:  0.8,
			wantModel: ModelCombined,
		},
		{
			name:      "keyword wins disagreement",
			note:      "ăn phở",
			handler:   respond("shopping", 0.4),
			wantCat:   Food,
			wantConf:  1,
			wantModel: ModelKeyword + "-fallback",
		},
		{
			name:      "unsure remote still beats weaker keyword",
			note:      "xyz",
			handler:   respond("travel", 0.5),
			wantCat:   Travel,
			wantConf:  0.5,
			wantModel: ModelRemote,
		},
		{
			name: "server error",
			note: "ăn phở",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantCat:   Food,
			wantConf:  1,
			wantModel: ModelKeyword,
			wantHook:  "error",
		},
		{
			name:      "unknown category",
			note:      "ăn phở",
			handler:   respond("groceries", 0.99),
			wantCat:   Food,
			wantConf:  1,
			wantModel: ModelKeyword,
			wantHook:  "error",
		},
		{
			name: "timeout",
			note: "ăn phở",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			wantCat:   Food,
			wantConf:  1,
			wantModel: ModelKeyword,
			wantHook:  "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hook string
			p := NewRemotePredictor(
				remoteServer(t, tt.handler),
				local,
				WithTimeout(50*time.Millisecond),
				WithFallbackHook(func(reason string) { hook = reason }),
			)

			got := p.Predict(context.Background(), tt.note, 0)
			if got.Category != tt.wantCat {
				t.Errorf("category = %s, want %s", got.Category, tt.wantCat)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if got.Model != tt.wantModel {
				t.Errorf("model = %s, want %s", got.Model, tt.wantModel)
			}
			if hook != tt.wantHook {
				t.Errorf("fallback hook = %q, want %q", hook, tt.wantHook)
			}
		})
	}
}

func TestKeywordPredictor(t *testing.T) {
	p := NewKeywordPredictor(NewClassifier())
	got := p.Predict(context.Background(), "đổ xăng", 0)
	if got.Category != Transportation {
		t.Errorf("category = %s, want %s", got.Category, Transportation)
	}
}
