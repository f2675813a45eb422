// Package metrics exposes the process prometheus collectors
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DecisionsTotal counts policy decisions by resulting action label
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warden_decisions_total",
		Help: "moderation decisions by action",
	}, []string{"action"})

	// FusedScore observes the distribution of fused scores per scored message
	FusedScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "warden_fused_score",
		Help:    "fused incitement score per scored message",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	// ClassifierFailures counts fail-open classifier outcomes by tier
	ClassifierFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warden_classifier_failures_total",
		Help: "classifier calls that degraded to a neutral signal",
	}, []string{"tier"})
)

// Handler returns the prometheus scrape handler for the default registry
func Handler() http.Handler { return promhttp.Handler() }
