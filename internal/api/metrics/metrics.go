// Package metrics defines and registers all custom Prometheus metrics for the
// timeclock API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timeclock"

// ClockInsTotal counts successful clock-ins.
// Label:
//   - site: the job site the geofence lookup resolved (e.g. "Yard A")
var ClockInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_ins_total",
		Help:      "Total number of successful clock-ins, by job site.",
	},
	[]string{"site"},
)

// ClockOutsTotal counts successful clock-outs.
var ClockOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_outs_total",
		Help:      "Total number of successful clock-outs.",
	},
)

// RegistrationsTotal counts registration sub-flow outcomes.
// Label:
//   - result: "new" (worker created) or "rebind" (known number, new device)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration sub-flows, by outcome.",
	},
	[]string{"result"},
)

// GeofenceMissesTotal counts readings that resolved to no job site.
var GeofenceMissesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geofence_misses_total",
		Help:      "Total number of location readings outside every job site.",
	},
)

// ClockConflictsTotal counts clock-ins rejected because a session was already
// open (or another device held the advisory lock).
var ClockConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_conflicts_total",
		Help:      "Total number of clock-ins rejected due to an open session.",
	},
)
