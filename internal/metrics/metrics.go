// Package metrics defines the Prometheus collectors shared by the HTTP
// layer and the upstream client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors of one service process.
//
// Each process owns its own registry so tests can build as many instances
// as they like without duplicate registration errors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge

	upstreamFetchTotal    *prometheus.CounterVec
	upstreamFetchDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New(service string) (*Metrics, error) {
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests processed",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "path"}),

		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_inflight_requests",
			Help:        "HTTP requests currently being served",
			ConstLabels: labels,
		}),

		upstreamFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_fetch_total",
			Help:        "Outbound dependency calls by outcome",
			ConstLabels: labels,
		}, []string{"dependency", "outcome"}), // outcome: ok|unreachable|rejected|malformed

		upstreamFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_fetch_duration_seconds",
			Help:        "Outbound dependency call latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"dependency"}),
	}

	collectors := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpInflight,
		m.upstreamFetchTotal,
		m.upstreamFetchDuration,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RequestStarted increments the in-flight gauge. A nil receiver is a no-op,
// as for every other recording method.
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.httpInflight.Inc()
}

// RequestFinished records one completed inbound request.
func (m *Metrics) RequestFinished(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpInflight.Dec()
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveFetch records one outbound dependency call.
func (m *Metrics) ObserveFetch(dependency, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamFetchTotal.WithLabelValues(dependency, outcome).Inc()
	m.upstreamFetchDuration.WithLabelValues(dependency).Observe(elapsed.Seconds())
}
