// Package metrics defines and registers the custom Prometheus metrics of the
// storefront client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package load, so
// importing the package is enough; the console exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Upstream API metrics ─────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the storefront REST API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "auth.login", "products.list")
//   - method:   HTTP method
//   - code:     status class ("2xx", "4xx", "5xx") or "error" for transport failures
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the storefront API.",
	},
	[]string{"endpoint", "method", "code"},
)

// UpstreamRequestDuration measures round-trip time of storefront API calls.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Round-trip duration of storefront API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// UnauthorizedEventsTotal counts 401 responses that ended the session.
var UnauthorizedEventsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unauthorized_events_total",
		Help:      "Total number of 401 responses that cleared the session.",
	},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Label:
//   - to: the state entered ("unauthenticated", "loading", "authenticated")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by target state.",
	},
	[]string{"to"},
)

// ── Workflow metrics ─────────────────────────────────────────────────────────

// ProductsCreatedTotal counts product create submissions.
// Label:
//   - result: "ok", "invalid", "rejected", "busy"
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of product create submissions, by result.",
	},
	[]string{"result"},
)

// SuggestionsTotal counts price suggestion requests.
// Label:
//   - result: "ok", "failed", "busy"
var SuggestionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_suggestions_total",
		Help:      "Total number of price suggestion requests, by result.",
	},
	[]string{"result"},
)
