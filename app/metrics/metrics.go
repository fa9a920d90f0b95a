// Package metrics provides Prometheus metrics for the yatube API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Authorization metrics
	PermissionDenied *prometheus.CounterVec
	AuthFailures     prometheus.Counter
}

// New creates a registry with the process and Go collectors plus the API metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "yatube_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yatube_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"method", "route"}),

		PermissionDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "yatube_permission_denied_total",
			Help: "Total number of writes refused because the requester is not the author",
		}, []string{"resource"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "yatube_auth_failures_total",
			Help: "Total number of rejected bearer tokens and failed logins",
		}),
	}
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// DeniedWrite counts a refused write on resource. Safe on a nil receiver.
func (m *Metrics) DeniedWrite(resource string) {
	if m == nil {
		return
	}
	m.PermissionDenied.WithLabelValues(resource).Inc()
}

// FailedAuth counts a rejected credential. Safe on a nil receiver.
func (m *Metrics) FailedAuth() {
	if m == nil {
		return
	}
	m.AuthFailures.Inc()
}
