package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service. All methods are
// safe on a nil receiver so components can run without instrumentation.
type Metrics struct {
	ExtractionAttempts *prometheus.CounterVec
	ExtractionLatency  *prometheus.HistogramVec
	ExtractionFallback *prometheus.CounterVec
	RemoteRetries      *prometheus.CounterVec
	SyncOutcomes       *prometheus.CounterVec
	RecordsSaved       *prometheus.CounterVec
	HTTPLatency        *prometheus.HistogramVec
}

// New registers all collectors with reg. Pass prometheus.DefaultRegisterer in
// main and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExtractionAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatchflow_extraction_attempts_total",
			Help: "Extraction calls by model and outcome",
		}, []string{"model", "outcome"}), // outcome: success, unparseable, retryable_error, terminal_error

		ExtractionLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatchflow_extraction_duration_seconds",
			Help:    "Duration of a model stage including its retries",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}, []string{"model"}),

		ExtractionFallback: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatchflow_extraction_fallbacks_total",
			Help: "Cascades that moved to the fallback model, by reason",
		}, []string{"reason"}),

		RemoteRetries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatchflow_remote_retries_total",
			Help: "Backoff retries against remote collaborators",
		}, []string{"target"}), // target: extraction, relay

		SyncOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatchflow_sync_outcomes_total",
			Help: "Remote sync results by record kind and status",
		}, []string{"kind", "status"}),

		RecordsSaved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatchflow_records_saved_total",
			Help: "Records durably saved to the local store",
		}, []string{"kind"}),

		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatchflow_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) IncExtractionAttempt(model, outcome string) {
	if m != nil {
		m.ExtractionAttempts.WithLabelValues(model, outcome).Inc()
	}
}

func (m *Metrics) ObserveExtractionLatency(model string, d time.Duration) {
	if m != nil {
		m.ExtractionLatency.WithLabelValues(model).Observe(d.Seconds())
	}
}

func (m *Metrics) IncFallback(reason string) {
	if m != nil {
		m.ExtractionFallback.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncRetry(target string) {
	if m != nil {
		m.RemoteRetries.WithLabelValues(target).Inc()
	}
}

func (m *Metrics) IncSyncOutcome(kind, status string) {
	if m != nil {
		m.SyncOutcomes.WithLabelValues(kind, status).Inc()
	}
}

func (m *Metrics) IncRecordSaved(kind string) {
	if m != nil {
		m.RecordsSaved.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) ObserveHTTPLatency(route, method string, d time.Duration) {
	if m != nil {
		m.HTTPLatency.WithLabelValues(route, method).Observe(d.Seconds())
	}
}
