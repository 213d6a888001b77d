package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK      = "ok"
	OutcomeUnknown = "unknown"
	OutcomeError   = "error"

	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeInvalid    = "invalid"
	OutcomeSuperseded = "superseded"
)

var (
	// Реестр метрик приложения
	Registry = prometheus.NewRegistry()

	geckoRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottobtc",
			Subsystem: "gecko",
			Name:      "requests_total",
			Help:      "Total number of price API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	geckoDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lottobtc",
			Subsystem: "gecko",
			Name:      "request_duration_seconds",
			Help:      "Duration of price API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"endpoint"},
	)

	pipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lottobtc",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of winnings calculations by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(geckoRequests, geckoDuration, pipelineRuns)
}

func RecordGeckoRequest(endpoint, outcome string, seconds float64) {
	geckoRequests.WithLabelValues(endpoint, outcome).Inc()
	geckoDuration.WithLabelValues(endpoint).Observe(seconds)
}

func RecordRun(outcome string) {
	pipelineRuns.WithLabelValues(outcome).Inc()
}

// Метрики в текстовом формате Prometheus
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
