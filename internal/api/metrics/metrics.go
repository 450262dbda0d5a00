// Package metrics defines the custom Prometheus collectors of the
// birthday-keeper API. It is the single source of truth for metric names,
// labels, and help strings; collectors register themselves with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "birthdaykeeper"

// LoginsTotal counts authentication attempts.
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

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// TokenValidationsTotal counts bearer token validations performed by the
// request identity resolver.
// Label:
//   - result: "ok", "expired", "invalid" or "unknown_subject"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, by result.",
	},
	[]string{"result"},
)

// LoginGuardBlocksTotal counts logins rejected by the failed-attempt guard
// before any credential check ran.
var LoginGuardBlocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_guard_blocks_total",
		Help:      "Total number of logins blocked by the failed-attempt guard.",
	},
)

// FriendsCreatedTotal counts friend records created.
var FriendsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friends_created_total",
		Help:      "Total number of friend records created.",
	},
)
