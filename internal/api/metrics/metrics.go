// Package metrics defines and registers all custom Prometheus metrics for the
// shop console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation through promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Shop API metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the shop API.
// Labels:
//   - method:   HTTP verb (e.g. "GET")
//   - endpoint: first path segment (e.g. "shops", "shop_commissions")
//   - outcome:  "ok", "http_error" or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the shop API.",
	},
	[]string{"method", "endpoint", "outcome"},
)

// UpstreamRequestDuration measures shop API round trips.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of shop API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "endpoint"},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login submissions.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login submissions, by result.",
	},
	[]string{"result"},
)

// ShopMutationsTotal counts create/update/delete attempts that reached the shop API
// or were rejected client-side.
// Labels:
//   - op:     "create", "update" or "delete"
//   - result: "success", "failure" or "rejected"
var ShopMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shop_mutations_total",
		Help:      "Total number of shop mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// CommissionPaymentsTotal counts "mark paid" actions.
var CommissionPaymentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commission_payments_total",
		Help:      "Total number of weeks marked as paid, by result.",
	},
	[]string{"result"},
)

// StaleCommissionResponsesTotal counts commission fetches that resolved after
// the operator had already selected another shop and were discarded.
var StaleCommissionResponsesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_commission_responses_total",
		Help:      "Total number of commission responses discarded because the selection changed.",
	},
)

// ActiveWorkspaces tracks the number of browser sessions with live view state.
var ActiveWorkspaces = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_workspaces",
		Help:      "Current number of console workspaces held in memory.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by what happened to them.
// Label:
//   - result: "stored", "dropped" (queue full) or "failed" (insert error)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, by result.",
	},
	[]string{"result"},
)
