package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.ObserveRPC("/sotien.v1.GroupService/GetGroup", "ok", 10*time.Millisecond)
	m.ObserveRPC("/sotien.v1.GroupService/GetGroup", "not_found", time.Millisecond)
	m.PredictorFallback("timeout")
	m.ShareSettled()
	m.ObserveExport("xlsx", nil)
	m.ObserveExport("pdf", errors.New("boom"))
	m.ObserveExtraction("k-notation")
	m.ObserveExtraction("k-notation")
	m.ObserveExtraction("not-found")

	body := scrape(t, m)
	want := []string{
		`sotien_rpc_requests_total{code="ok",procedure="/sotien.v1.GroupService/GetGroup"} 1`,
		`sotien_rpc_requests_total{code="not_found",procedure="/sotien.v1.GroupService/GetGroup"} 1`,
		`sotien_rpc_duration_seconds_count{procedure="/sotien.v1.GroupService/GetGroup"} 2`,
		`sotien_predictor_fallbacks_total{reason="timeout"} 1`,
		`sotien_shares_settled_total 1`,
		`sotien_statement_exports_total{format="xlsx",result="success"} 1`,
		`sotien_statement_exports_total{format="pdf",result="error"} 1`,
		`sotien_amount_extractions_total{method="k-notation"} 2`,
		`sotien_amount_extractions_total{method="not-found"} 1`,
		`go_goroutines`,
	}
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("exposition missing %q", w)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("p", "ok", time.Second)
	m.PredictorFallback("error")
	m.ShareSettled()
	m.ObserveExport("pdf", nil)
	m.ObserveExtraction("plain-number")
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ShareSettled()
	if strings.Contains(scrape(t, b), "sotien_shares_settled_total 1") {
		t.Error("metrics leaked between registries")
	}
}
