package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	actionsDispatched  *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiRequestFailures *prometheus.CounterVec
	devAPIRequests     *prometheus.CounterVec
	devAPILatency      *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the client and the development API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		actionsDispatched = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursesync",
			Name:      "actions_dispatched_total",
			Help:      "Total number of actions reduced into client state.",
		}, []string{"kind"})

		apiRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coursesync",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls made to the remote course API.",
			Buckets:   []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"})

		apiRequestFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursesync",
			Subsystem: "api",
			Name:      "request_failures_total",
			Help:      "Calls to the remote course API that did not succeed.",
		}, []string{"method", "route", "reason"})

		devAPIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursesync",
			Subsystem: "devapi",
			Name:      "requests_total",
			Help:      "Total number of requests served by the development API.",
		}, []string{"method", "route", "status"})

		devAPILatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coursesync",
			Subsystem: "devapi",
			Name:      "latency_seconds",
			Help:      "Latency distribution for development API requests.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"method", "route"})

		prometheus.MustRegister(actionsDispatched, apiRequestDuration, apiRequestFailures, devAPIRequests, devAPILatency)
	})
}

// ActionsDispatched counts reduced actions by kind.
func ActionsDispatched() *prometheus.CounterVec {
	RegisterMetrics()
	return actionsDispatched
}

// APIRequestDuration exposes the remote call latency histogram.
func APIRequestDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiRequestDuration
}

// APIRequestFailures exposes the remote call failure counter.
func APIRequestFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestFailures
}

// DevAPIRequests exposes the development API request counter.
func DevAPIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return devAPIRequests
}

// DevAPILatency exposes the development API latency histogram.
func DevAPILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return devAPILatency
}
