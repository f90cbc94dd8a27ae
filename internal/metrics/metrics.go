// Package metrics defines package-level Prometheus metric variables for
// counthub. Call Register() once at startup to expose them on the default
// registry, or RegisterWith() to use an isolated registry in tests.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Requests counts counter API requests, labelled by operation
	// (get|increment|reset).
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "counthub_requests_total",
		Help: "Counter API requests, by operation.",
	}, []string{"operation"})

	// RequestErrors counts failed counter API requests, labelled by kind
	// (invalid_argument|unsupported_operation|store_unavailable).
	RequestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "counthub_request_errors_total",
		Help: "Failed counter API requests, by error kind.",
	}, []string{"kind"})
)

// Register registers all metrics with prometheus.DefaultRegisterer.
// Call once at process startup.
func Register() {
	RegisterWith(prometheus.DefaultRegisterer)
}

// RegisterWith registers all metrics with the given registerer.
// Use an isolated prometheus.NewRegistry() in tests to avoid conflicts.
func RegisterWith(reg prometheus.Registerer) {
	reg.MustRegister(
		Requests,
		RequestErrors,
	)
}
