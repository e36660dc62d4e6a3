// Package metrics exposes Prometheus counters for the RPC surface, the text
// parser and settlement activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sotien"

// Metrics bundles the service metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests        *prometheus.CounterVec
	RPCDuration        *prometheus.HistogramVec
	PredictorFallbacks *prometheus.CounterVec
	SharesSettled      prometheus.Counter
	ExportsTotal       *prometheus.CounterVec
	ExtractionsTotal   *prometheus.CounterVec
}

// New constructs and registers metrics, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Total RPCs by procedure and code",
			},
			[]string{"procedure", "code"},
		),
		RPCDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "RPC latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		PredictorFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictor_fallbacks_total",
				Help:      "Remote category predictions that fell back to keywords, by reason",
			},
			[]string{"reason"},
		),
		SharesSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_settled_total",
			Help:      "Total shares marked paid",
		}),
		ExportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statement_exports_total",
				Help:      "Total statement exports by format and result",
			},
			[]string{"format", "result"},
		),
		ExtractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "amount_extractions_total",
				Help:      "Amount extractions by matching method",
			},
			[]string{"method"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.PredictorFallbacks,
		m.SharesSettled,
		m.ExportsTotal,
		m.ExtractionsTotal,
	)
	return m
}

// ObserveRPC records one finished RPC. code is "ok" for successful calls.
func (m *Metrics) ObserveRPC(procedure, code string, duration time.Duration) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(duration.Seconds())
}

// PredictorFallback counts a remote prediction that was replaced by the
// keyword result.
func (m *Metrics) PredictorFallback(reason string) {
	if m == nil {
		return
	}
	m.PredictorFallbacks.WithLabelValues(reason).Inc()
}

// ShareSettled counts a share marked paid.
func (m *Metrics) ShareSettled() {
	if m == nil {
		return
	}
	m.SharesSettled.Inc()
}

// ObserveExport records a statement export attempt.
func (m *Metrics) ObserveExport(format string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.ExportsTotal.WithLabelValues(format, result).Inc()
}

// ObserveExtraction counts one amount extraction by the method that decided it.
func (m *Metrics) ObserveExtraction(method string) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(method).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
