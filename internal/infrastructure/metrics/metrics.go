package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "striketec"

// Metrics holds the battle scoring collectors. A nil *Metrics records nothing.
type Metrics struct {
	verdicts         *prometheus.CounterVec
	finalizeErrors   *prometheus.CounterVec
	finalizeDuration prometheus.Histogram
	statsCache       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "battle",
			Name:      "verdicts_total",
			Help:      "Finalized battles by deciding tier and plan type.",
		}, []string{"tier", "plan_type"}),
		finalizeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "battle",
			Name:      "finalize_errors_total",
			Help:      "Battle finalizations that failed, by reason.",
		}, []string{"reason"}),
		finalizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "battle",
			Name:      "finalize_duration_seconds",
			Help:      "Time spent loading, scoring and persisting one battle.",
			Buckets:   prometheus.DefBuckets,
		}),
		statsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "cache_requests_total",
			Help:      "User stats cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.verdicts, m.finalizeErrors, m.finalizeDuration, m.statsCache)
	return m
}

// ObserveVerdict counts a stored verdict
func (m *Metrics) ObserveVerdict(tier, planType string) {
	if m == nil {
		return
	}
	m.verdicts.WithLabelValues(tier, planType).Inc()
}

// ObserveFinalizeError counts a failed finalization
func (m *Metrics) ObserveFinalizeError(reason string) {
	if m == nil {
		return
	}
	m.finalizeErrors.WithLabelValues(reason).Inc()
}

// ObserveFinalizeDuration records how long a finalization took
func (m *Metrics) ObserveFinalizeDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.finalizeDuration.Observe(d.Seconds())
}

// ObserveStatsCache counts a stats cache hit or miss
func (m *Metrics) ObserveStatsCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.statsCache.WithLabelValues(result).Inc()
}
