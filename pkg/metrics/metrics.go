package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Global metrics, registered with the default registry through promauto.

var (
	// HttpRequestsTotal counts requests by method, path and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures server response time.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wayfinder_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			// Routing is CPU bound and usually sub-millisecond; batches take longer.
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// RoutesTotal counts planned routes by planning strategy.
	RoutesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_routes_total",
			Help: "Total number of routes planned, by strategy",
		},
		[]string{"strategy"},
	)

	// RouteErrorsTotal counts failed route requests by reason.
	RouteErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfinder_route_errors_total",
			Help: "Total number of failed route requests, by reason",
		},
		[]string{"reason"},
	)

	// RoutePathLength tracks the number of nodes in returned paths.
	RoutePathLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfinder_route_path_length",
			Help:    "Number of nodes in planned paths",
			Buckets: prometheus.LinearBuckets(1, 2, 12),
		},
	)

	// LayoutNodes tracks the node count of each loaded layout.
	LayoutNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wayfinder_layout_nodes",
			Help: "Number of nodes in each loaded layout",
		},
		[]string{"layout"},
	)
)
