// Package metrics defines and registers all custom Prometheus metrics for
// the blog API's authentication core. It is the single source of truth for
// metric names, labels, and help strings; collectors register themselves with
// the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - principal: "user" or "admin"
//   - outcome: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and registration attempts.",
	},
	[]string{"principal", "outcome"},
)

// TokenValidationFailuresTotal counts bearer tokens rejected by the identity
// resolver. The client always sees one uniform failure; the reason label is
// internal only.
// Labels:
//   - principal: "user" or "admin"
//   - reason: "invalid_token" or "principal_gone"
var TokenValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validation_failures_total",
		Help:      "Total number of bearer tokens rejected during identity resolution.",
	},
	[]string{"principal", "reason"},
)

// RateLimitRejectionsTotal counts requests answered 429.
// Label:
//   - tier: "general", "auth", or "strict"
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"tier"},
)
