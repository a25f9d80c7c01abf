package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ff_ledger"

// Metrics holds the collectors shared by the ledger binaries.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	operations   *prometheus.CounterVec
	totalSupply  *prometheus.GaugeVec
	published    *prometheus.CounterVec
	deliveries   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry together with the Go and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger mutations by operation and result.",
		}, []string{"operation", "result"}),
		totalSupply: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_supply",
			Help:      "Minted tokens per collection.",
		}, []string{"contract"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Ledger events handed to the message broker by result.",
		}, []string{"result"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Webhook deliveries by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations,
		m.totalSupply,
		m.published,
		m.deliveries,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordOperation counts a ledger mutation
func (m *Metrics) RecordOperation(operation string, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// SetTotalSupply records the current supply of a collection
func (m *Metrics) SetTotalSupply(contract string, supply uint64) {
	if m == nil {
		return
	}
	m.totalSupply.WithLabelValues(contract).Set(float64(supply))
}

// RecordPublish counts a broker publish attempt
func (m *Metrics) RecordPublish(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.published.WithLabelValues(result).Inc()
}

// RecordDelivery counts a settled webhook delivery
func (m *Metrics) RecordDelivery(result string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records an HTTP request's status and latency
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
