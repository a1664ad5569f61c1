package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream call Prometheus metrics, labeled by upstream name (datajud, openai, stripe, youtube).
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexrelay",
			Name:      "upstream_requests_total",
			Help:      "Total number of outbound upstream requests",
		},
		[]string{"upstream", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexrelay",
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound upstream request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"upstream"},
	)

	UpstreamRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexrelay",
			Name:      "upstream_retries_total",
			Help:      "Total number of retried upstream attempts",
		},
		[]string{"upstream"},
	)
)

// Generation Prometheus metrics.
var (
	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexrelay",
			Name:      "generation_tokens_total",
			Help:      "Total generation tokens consumed",
		},
		[]string{"model", "type"}, // type: "prompt" / "completion"
	)

	GenerationBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lexrelay",
			Name:      "generation_budget_tokens_remaining",
			Help:      "Remaining generation token budget",
		},
		[]string{"period"},
	)
)

var upstreamMetricsRegistered bool

// RegisterUpstreamMetrics registers upstream and generation metrics. Must be called once from main.
func RegisterUpstreamMetrics() {
	if upstreamMetricsRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamRetriesTotal)
	prometheus.MustRegister(GenerationTokensTotal)
	prometheus.MustRegister(GenerationBudgetTokensRemaining)
	upstreamMetricsRegistered = true
}

// ObserveUpstream records one finished upstream attempt.
// status is the HTTP status code, or 0 for a transport failure.
func ObserveUpstream(upstream string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(upstream, label).Inc()
	UpstreamRequestDuration.WithLabelValues(upstream).Observe(elapsed.Seconds())
}
