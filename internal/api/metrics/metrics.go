// Package metrics defines and registers the custom Prometheus metrics of the
// rental API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// ── Remote capabilities ──────────────────────────────────────────────────────

// RemoteFallbacksTotal counts requests answered with a fallback value because a
// remote capability failed.
// Labels:
//   - capability: "ai" or "exchange_rate"
//   - operation: the service operation that degraded (e.g. "chat", "convert")
var RemoteFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_fallbacks_total",
		Help:      "Total number of responses served from a fallback after a remote failure.",
	},
	[]string{"capability", "operation"},
)

// RemoteCallDuration measures outbound calls to remote capabilities.
// Labels:
//   - capability: "ai" or "exchange_rate"
//   - result: "ok" or "error"
var RemoteCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_call_duration_seconds",
		Help:      "Duration of calls to remote capabilities.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"capability", "result"},
)

// ── Identity ─────────────────────────────────────────────────────────────────

// TokenRejectionsTotal counts rejected bearer tokens by internal reason. Callers
// only ever see a single "unauthorized" outcome.
// Label:
//   - reason: "malformed", "expired", "signature_invalid", "not_valid_yet", "missing_subject", "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected bearer tokens, by reason.",
	},
	[]string{"reason"},
)

// ── Catalog & ledger ─────────────────────────────────────────────────────────

// ListingsCreatedTotal counts new listings.
// Label:
//   - price_source: "ai" or "submitted"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of properties listed, by where the stored price came from.",
	},
	[]string{"price_source"},
)

// BookingsCreatedTotal counts confirmed bookings.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of confirmed bookings.",
	},
)

// DepositsTotal counts Western Union deposits.
// Label:
//   - rate_source: "live" or "fallback"
var DepositsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposits_total",
		Help:      "Total number of converted deposits, by exchange-rate source.",
	},
	[]string{"rate_source"},
)

// ── Realtime ─────────────────────────────────────────────────────────────────

// RealtimeConnections tracks open websocket connections.
var RealtimeConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections",
		Help:      "Current number of open realtime connections.",
	},
)

// RealtimeDroppedTotal counts broadcast messages dropped for slow subscribers.
var RealtimeDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_dropped_total",
		Help:      "Total number of broadcast messages dropped because a subscriber was too slow.",
	},
)
