// Package metrics defines and registers all custom Prometheus metrics for
// the VTN authorization kernel. It is the single source of truth for
// metric names, labels, and help strings.
//
// Every metric is created with promauto, which registers it with the
// default Prometheus registry at package initialisation; importing the
// package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "openadr_vtn"

// RequestsTotal counts every HTTP request handled, by route and outcome.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (not the raw path, to keep
//     cardinality bounded)
//   - status: the HTTP status code returned
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, labelled by method, route, and status.",
	},
	[]string{"method", "route", "status"},
)

// RequestDuration measures end-to-end request latency.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests from receipt to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthorizationDenialsTotal counts Forbidden outcomes from the
// Authorization Policy, by the operation denied.
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests denied by the authorization policy, by operation.",
	},
	[]string{"operation"},
)

// TokensIssuedTotal counts successful client-credentials grants.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued by the internal OAuth2 issuer.",
	},
)

// TokenGrantFailuresTotal counts failed client-credentials grants, by
// failure reason (invalid_client, invalid_scope, unsupported_grant_type).
var TokenGrantFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_grant_failures_total",
		Help:      "Total number of failed client-credentials grants, by reason.",
	},
	[]string{"reason"},
)
