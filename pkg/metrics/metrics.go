// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shopping"

// Metrics bundles every collector on its own registry so tests can build as
// many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	Requests         *prometheus.CounterVec
	RequestLatency   *prometheus.HistogramVec
	RemoteLookups    *prometheus.CounterVec
	RemoteLatency    *prometheus.HistogramVec
	ShoppingsCreated prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RemoteLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_lookups_total",
			Help:      "Lookups against the identity and catalog services by outcome.",
		}, []string{"service", "outcome"}),
		RemoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_lookup_duration_seconds",
			Help:      "Latency of identity and catalog lookups in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"service"}),
		ShoppingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Shoppings committed to the store.",
		}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.RequestLatency,
		m.RemoteLookups,
		m.RemoteLatency,
		m.ShoppingsCreated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, route, status).Inc()
	m.RequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLookup records one remote lookup.
func (m *Metrics) ObserveLookup(service, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RemoteLookups.WithLabelValues(service, outcome).Inc()
	m.RemoteLatency.WithLabelValues(service).Observe(elapsed.Seconds())
}

func (m *Metrics) ShoppingCreated() {
	if m == nil {
		return
	}
	m.ShoppingsCreated.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
