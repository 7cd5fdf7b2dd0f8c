package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "legalcurrent"

// Login outcomes.
const (
	LoginSuccess  = "success"
	LoginRejected = "rejected"
	LoginError    = "error"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	logins       *prometheus.CounterVec
	legalFetches *prometheus.CounterVec
	imported     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		legalFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "legal",
			Name:      "source_fetches_total",
			Help:      "Legal content source fetches by source and result.",
		}, []string{"source", "success"}),
		imported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "legal",
			Name:      "imported_articles_total",
			Help:      "Articles inserted by the feed import job.",
		}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.logins,
		m.legalFetches,
		m.imported,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InFlight increments the in-flight gauge and returns the matching decrement.
func (m *Metrics) InFlight() func() {
	if m == nil {
		return func() {}
	}
	m.httpInFlight.Inc()
	return m.httpInFlight.Dec
}

// ObserveRequest records one finished request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if path == "" {
		path = "unmatched"
	}
	method = strings.ToUpper(method)
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordLegalFetch(source string, success bool) {
	if m == nil {
		return
	}
	m.legalFetches.WithLabelValues(source, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) RecordImported(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.imported.Add(float64(n))
}
