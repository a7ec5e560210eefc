// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "athenaeum",
		Subsystem: "authz",
		Name:      "decisions_total",
		Help:      "Authorization decisions by feature, object type, and outcome",
	}, []string{"feature", "object_type", "outcome"})

	decisionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "athenaeum",
		Subsystem: "authz",
		Name:      "decision_duration_seconds",
		Help:      "Latency of authorization decisions",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"feature"})

	closureMemoTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "athenaeum",
		Subsystem: "authz",
		Name:      "closure_memo_total",
		Help:      "Group closure lookups served from the per-evaluation memo vs computed",
	}, []string{"result"})

	closureSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "athenaeum",
		Subsystem: "authz",
		Name:      "closure_size",
		Help:      "Number of groups in computed closures",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
	})

	storeErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "athenaeum",
		Subsystem: "authz",
		Name:      "store_errors_total",
		Help:      "Backing store failures during evaluation, by store",
	}, []string{"store"})
)

// RecordDecision records the outcome and latency of one feature
// authorization decision.
func RecordDecision(feature string, objType string, allowed bool, dur time.Duration) {
	outcome := "denied"
	if allowed {
		outcome = "allowed"
	}
	decisionsTotal.WithLabelValues(feature, objType, outcome).Inc()
	decisionDuration.WithLabelValues(feature).Observe(dur.Seconds())
}

// RecordClosureMemo records whether a closure lookup hit the
// evaluation-scoped memo.
func RecordClosureMemo(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	closureMemoTotal.WithLabelValues(result).Inc()
}

// RecordClosureSize records the size of a freshly computed closure.
func RecordClosureSize(n int) {
	closureSize.Observe(float64(n))
}

// RecordStoreError records a backing store failure surfaced to an
// evaluation.
func RecordStoreError(store string) {
	storeErrorsTotal.WithLabelValues(store).Inc()
}
