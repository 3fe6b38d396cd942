// Package metrics defines all custom Prometheus metrics for the billboard
// server. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "billboard"

// ── Dispatch metrics ──────────────────────────────────────────────────────────

// RequestsTotal counts dispatched requests.
// Labels:
//   - verb: the request verb (e.g. "GET", "POST")
//   - status: the result tag (e.g. "ok", "bad_request", "unauthorized")
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of requests dispatched, by verb and result status.",
	},
	[]string{"verb", "status"},
)

// RequestDuration measures how long a request takes from routing to result.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of request dispatch, including middleware and action.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"verb"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks the number of live sessions in the in-memory registry.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live sessions held by the registry.",
	},
)

// SessionsEvictedTotal counts sessions removed by the expiry janitor.
var SessionsEvictedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_evicted_total",
		Help:      "Total number of sessions evicted after exceeding the inactivity window.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOpsTotal counts entity store operations.
// Labels:
//   - entity: the store name (e.g. "billboard", "user")
//   - op: "get", "insert", "update", or "delete"
//   - outcome: "ok" or "error"
var StoreOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_ops_total",
		Help:      "Total number of entity store operations, by entity, operation, and outcome.",
	},
	[]string{"entity", "op", "outcome"},
)
