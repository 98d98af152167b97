// Package metrics defines and registers the custom Prometheus metrics of the
// 9RIB marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered on the default registry at package init through
// promauto; echoprometheus exposes them on /metrics together with the HTTP
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rib"

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts stored artisan applications.
// Label:
//   - anonymous: "true" when the candidate was not signed in
var ApplicationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of artisan applications submitted.",
	},
	[]string{"anonymous"},
)

// ApplicationsProcessedTotal counts admin decisions that committed.
// Label:
//   - action: validate, request_payment, request_verification or reject
var ApplicationsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_processed_total",
		Help:      "Total number of application decisions applied, by action.",
	},
	[]string{"action"},
)

// ApplicationsErrorsTotal counts rejected or failed processing attempts.
// Label:
//   - reason: e.g. "invalid_action", "forbidden", "invalid_transition", "internal"
var ApplicationsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_errors_total",
		Help:      "Total number of application processing attempts that failed.",
	},
	[]string{"reason"},
)

// ApplicationProcessingDuration measures a process-application call end to end.
var ApplicationProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "application_processing_duration_seconds",
		Help:      "Duration of application processing including the transaction.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// ── Artisan metrics ───────────────────────────────────────────────────────────

// ArtisanViewsTotal counts view tracking decisions.
// Label:
//   - result: "counted" or "duplicate"
var ArtisanViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "artisan_views_total",
		Help:      "Total number of tracked artisan profile views, by result.",
	},
	[]string{"result"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts reference cache lookups.
// Labels:
//   - key: the cache key (e.g. "ref:categories")
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of reference cache lookups, by key and result.",
	},
	[]string{"key", "result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts delivered notification jobs.
// Labels:
//   - type: notification type
//   - result: "ok" or "error"
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notification jobs delivered, by type and result.",
	},
	[]string{"type", "result"},
)

// NotificationsQueueDepth tracks the jobs waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notification jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)
