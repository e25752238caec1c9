// Package metrics defines the console's custom Prometheus metrics. Metrics
// are registered with the default registry on package init through promauto;
// echoprometheus serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory_console"

// ── Navigation ────────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - path: the console route (e.g. "/productos")
//   - decision: "allow", "redirect_login", "redirect_default" or "show_loading"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by path and decision.",
	},
	[]string{"path", "decision"},
)

// ── Sessions ──────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts explicit logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of explicit logouts.",
	},
)

// ── Inventory API ─────────────────────────────────────────────────────────────

// UpstreamRequestDuration measures calls to the inventory REST API.
// Labels:
//   - method: HTTP method
//   - status: response status code, or "error" when no response arrived
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the inventory API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)

// ReportFallbacksTotal counts dashboard stats served from the list endpoints
// because the report endpoint failed.
var ReportFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_fallbacks_total",
		Help:      "Total number of dashboard stats computed from list endpoints.",
	},
)
