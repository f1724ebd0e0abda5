package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	facadeRequestsTotal  *prometheus.CounterVec
	facadeLatencySeconds *prometheus.HistogramVec
	facadeErrorsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors tracking facade traffic.
func RegisterMetrics() {
	registerOnce.Do(func() {
		facadeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facade_requests_total",
			Help: "Total number of facade API requests served.",
		}, []string{"method", "route", "status"})

		facadeLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facade_latency_seconds",
			Help:    "Latency distribution for facade API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		}, []string{"method", "route"})

		facadeErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facade_errors_total",
			Help: "Total number of error responses returned by facade endpoints.",
		}, []string{"method", "route", "status"})

		prometheus.MustRegister(facadeRequestsTotal, facadeLatencySeconds, facadeErrorsTotal)
	})
}

// FacadeRequests exposes the counter for facade requests.
func FacadeRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return facadeRequestsTotal
}

// FacadeLatency exposes the latency histogram for facade requests.
func FacadeLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return facadeLatencySeconds
}

// FacadeErrors exposes the counter for facade error responses.
func FacadeErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return facadeErrorsTotal
}
