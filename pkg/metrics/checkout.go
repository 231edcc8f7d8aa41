package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records per-stage outcomes of the purchase flow.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_stage_duration_seconds",
		Help:    "Duration of checkout stages in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_stage_success",
		Help: "Successful checkout stage executions.",
	}, []string{"stage"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_stage_failure",
		Help: "Failed checkout stage executions.",
	}, []string{"stage"})
	reg.MustRegister(duration, success, failure)
	return &CheckoutMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named stage.
func (c *CheckoutMetrics) ObserveDuration(stage string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(stage)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named stage.
func (c *CheckoutMetrics) IncSuccess(stage string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncFailure increments the failure counter for the named stage.
func (c *CheckoutMetrics) IncFailure(stage string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(stage)).Inc()
}

func normalizeLabel(stage string) string {
	if stage == "" {
		return "unknown"
	}
	return stage
}
