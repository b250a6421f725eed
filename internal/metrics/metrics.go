// Package metrics provides usage counters for storage writes, library
// mutations, generation calls and HTTP requests.
//
// Every Metrics owns a private prometheus registry so that several servers
// (and tests) can live in the same process. All recording methods are safe
// to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "promptshelf"

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds all collectors registered by promptshelf.
type Metrics struct {
	registry *prometheus.Registry

	storageWrites      *prometheus.CounterVec
	storageFallbacks   *prometheus.CounterVec
	mutations          *prometheus.CounterVec
	generations        *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates a Metrics with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		storageWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_writes_total",
			Help:      "Total number of collection writes to the persistent store.",
		}, []string{"key", "result"}),
		storageFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_load_fallbacks_total",
			Help:      "Loads that fell back to the collection default.",
		}, []string{"key", "reason"}), // reason: "missing" or "corrupt"
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "library_mutations_total",
			Help:      "Total number of library mutations by operation.",
		}, []string{"op"}),
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Total number of text generation requests.",
		}, []string{"provider", "result"}),
		generationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of text generation requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StorageWrite records one write of a collection key.
func (m *Metrics) StorageWrite(key string, ok bool) {
	if m == nil {
		return
	}
	m.storageWrites.WithLabelValues(key, result(ok)).Inc()
}

// StorageFallback records a load that returned the default value.
func (m *Metrics) StorageFallback(key, reason string) {
	if m == nil {
		return
	}
	m.storageFallbacks.WithLabelValues(key, reason).Inc()
}

// Mutation records one library mutation.
func (m *Metrics) Mutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

// Generation records a finished generation call.
func (m *Metrics) Generation(provider string, ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(provider, result(ok)).Inc()
	m.generationDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// HTTPRequest records a served HTTP request.
func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
