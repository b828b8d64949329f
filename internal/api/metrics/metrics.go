// Package metrics defines and registers the custom Prometheus metrics for
// the ad portal. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// RegistrationsTotal counts successfully registered accounts.
// Label:
//   - role: "PUBLISHER" or "ADVERTISER"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts that reached credential verification.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsEstablishedTotal counts sessions created by successful logins.
var SessionsEstablishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total number of sessions established.",
	},
)

// SessionsTerminatedTotal counts explicit logouts.
var SessionsTerminatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_terminated_total",
		Help:      "Total number of sessions terminated by logout.",
	},
)
