package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the screening module. All methods are
// nil-safe so the service can run without metrics in tests.
type Metrics struct {
	// Provider call latencies by source
	ProviderLatency *prometheus.HistogramVec

	// Screening outcomes by status and outcome
	ScreeningOutcome *prometheus.CounterVec

	// Overall screening latency
	ScreeningLatency prometheus.Histogram

	// Credit cache hits and misses
	CreditCacheLookups *prometheus.CounterVec

	// Submissions short-circuited by a reusable prior decision
	DecisionReuse prometheus.Counter

	// Concurrent submissions coalesced into one in-flight screening
	DedupHits prometheus.Counter

	// Audit entries dropped because the queue was full
	AuditDropped prometheus.Counter
}

// New creates a new Metrics instance with all screening module metrics registered.
func New() *Metrics {
	return &Metrics{
		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sichrplace_screening_provider_duration_seconds",
			Help:    "Duration of provider calls by source",
			Buckets: []float64{0.5, 1, 2.5, 5, 7.5, 10, 15, 30},
		}, []string{"source"}), // source: "credit", "employer"

		ScreeningOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sichrplace_screening_outcomes_total",
			Help: "Total screening outcomes by status and outcome",
		}, []string{"status", "outcome"}),

		ScreeningLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sichrplace_screening_duration_seconds",
			Help:    "Duration of full screening including provider calls",
			Buckets: []float64{0.5, 1, 2.5, 5, 7.5, 10, 15, 30},
		}),

		CreditCacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sichrplace_screening_credit_cache_lookups_total",
			Help: "Credit cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "expired"

		DecisionReuse: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sichrplace_screening_decision_reuse_total",
			Help: "Submissions answered from a still-valid prior decision",
		}),

		DedupHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sichrplace_screening_dedup_hits_total",
			Help: "Concurrent submissions coalesced into an in-flight screening",
		}),

		AuditDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sichrplace_screening_audit_dropped_total",
			Help: "Audit entries dropped because the queue was full",
		}),
	}
}

// ObserveProviderLatency records the duration of one provider call.
func (m *Metrics) ObserveProviderLatency(source string, d time.Duration) {
	if m != nil {
		m.ProviderLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a finished screening.
func (m *Metrics) IncrementOutcome(status, outcome string) {
	if m != nil {
		m.ScreeningOutcome.WithLabelValues(status, outcome).Inc()
	}
}

// ObserveScreeningLatency records the total screening duration.
func (m *Metrics) ObserveScreeningLatency(d time.Duration) {
	if m != nil {
		m.ScreeningLatency.Observe(d.Seconds())
	}
}

// IncrementCreditCacheLookup records a cache lookup result.
func (m *Metrics) IncrementCreditCacheLookup(result string) {
	if m != nil {
		m.CreditCacheLookups.WithLabelValues(result).Inc()
	}
}

// IncrementDecisionReuse records a submission served from a prior decision.
func (m *Metrics) IncrementDecisionReuse() {
	if m != nil {
		m.DecisionReuse.Inc()
	}
}

// IncrementDedupHit records a coalesced concurrent submission.
func (m *Metrics) IncrementDedupHit() {
	if m != nil {
		m.DedupHits.Inc()
	}
}

// IncrementAuditDropped records an audit entry lost to backpressure.
func (m *Metrics) IncrementAuditDropped() {
	if m != nil {
		m.AuditDropped.Inc()
	}
}
