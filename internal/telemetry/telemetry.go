// Package telemetry exposes Prometheus counters for the intake pipeline.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcome label values.
const (
	OutcomeAccepted      = "accepted"
	OutcomeRejectedInput = "rejected_input"
	OutcomeDuplicate     = "duplicate"
	OutcomeHoneypot      = "honeypot"
	OutcomeRateLimited   = "rate_limited"
	OutcomeStorageError  = "storage_error"
)

// Metrics holds the service's counters on a private registry so tests can
// build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	Submissions         *prometheus.CounterVec
	DuplicateMatches    prometheus.Counter
	ModerationDecisions *prometheus.CounterVec
	RateLimitDenials    prometheus.Counter
	AnalyticsEvents     *prometheus.CounterVec
}

// New registers all counters on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_intake_submissions_total",
			Help: "Share submissions by outcome.",
		}, []string{"outcome"}),
		DuplicateMatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "profile_intake_duplicate_matches_total",
			Help: "Submissions that matched an existing profile above the advisory threshold.",
		}),
		ModerationDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_intake_moderation_decisions_total",
			Help: "Moderation decisions by action.",
		}, []string{"action"}),
		RateLimitDenials: factory.NewCounter(prometheus.CounterOpts{
			Name: "profile_intake_rate_limit_denials_total",
			Help: "Requests refused by the share rate limiter.",
		}),
		AnalyticsEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_intake_analytics_events_total",
			Help: "Analytics events by storage destination.",
		}, []string{"storage"}),
	}
}

// Handler serves the metrics endpoint for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
