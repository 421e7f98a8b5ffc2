// Package metrics exposes Prometheus counters for authentication, collection updates and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"shelf/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is the Prometheus backed MetricsRecorder.
type Collector struct {
	authTotal       *prometheus.CounterVec
	collectionTotal *prometheus.CounterVec
	httpTotal       *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

var _ service.MetricsRecorder = (*Collector)(nil)

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewCollector creates the collector and registers its metrics on reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		authTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shelf_auth_operations_total",
			Help: "Registration, login and token validation attempts by outcome.",
		}, []string{"operation", "outcome"}),
		collectionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shelf_collection_operations_total",
			Help: "Collection reads and updates by collection, operation and outcome.",
		}, []string{"collection", "op", "outcome"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shelf_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shelf_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.authTotal,
		c.collectionTotal,
		c.httpTotal,
		c.httpLatency,
	)

	return c
}

// RecordAuth counts one authentication operation.
func (c *Collector) RecordAuth(operation, outcome string) {
	c.authTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordCollectionOp counts one collection operation.
func (c *Collector) RecordCollectionOp(collection, op, outcome string) {
	c.collectionTotal.WithLabelValues(collection, op, outcome).Inc()
}

// RecordHTTPRequest counts one served request and observes its latency.
func (c *Collector) RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	c.httpTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Noop discards every observation.
type Noop struct{}

func (Noop) RecordAuth(string, string) {}

func (Noop) RecordCollectionOp(string, string, string) {}

func (Noop) RecordHTTPRequest(string, string, int, time.Duration) {}
