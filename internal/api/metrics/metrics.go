// Package metrics defines and registers all custom Prometheus metrics for
// the markers API. It is the single source of truth for metric names, labels
// and help strings; the per-request HTTP metrics come from the
// echoprometheus middleware registered in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "markers"

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of successfully registered users.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed" (unknown email and wrong password both count
//     as "failed"; the label never distinguishes them)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// MarkersCreatedTotal counts published markers.
// Label:
//   - type: the marker event type (e.g. "Happening")
var MarkersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "markers_created_total",
		Help:      "Total number of markers created, by event type.",
	},
	[]string{"type"},
)

// MarkersDeletedTotal counts markers removed by their owners.
var MarkersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "markers_deleted_total",
		Help:      "Total number of markers deleted by their owners.",
	},
)

// MarkerSearchesTotal counts read queries over the marker store.
// Label:
//   - kind: "all", "city", "proximity" or "own"
var MarkerSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marker_searches_total",
		Help:      "Total number of marker list/search requests, by kind.",
	},
	[]string{"kind"},
)
