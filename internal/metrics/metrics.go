// Package metrics owns the Prometheus collectors exported on /metrics.
//
// All methods are safe to call on a nil *Metrics, so components can be
// built without metrics in tests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Classification results.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
)

// Fun fact fetch outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeBadStatus   = "bad_status"
	OutcomeUnreachable = "unreachable"
)

// Metrics groups every collector the service exports.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	classifications *prometheus.CounterVec
	factFetches     *prometheus.CounterVec
}

// New creates the collectors and registers them with registerer.
// Pass prometheus.DefaultRegisterer in main and a fresh
// prometheus.NewRegistry() in tests.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "numbers_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "numbers_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "numbers_classifications_total",
			Help: "Total number of classification requests by result",
		}, []string{"result"}),
		factFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "numbers_fun_fact_fetch_total",
			Help: "Total number of fun fact fetches by outcome",
		}, []string{"outcome"}),
	}

	registerer.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.classifications,
		m.factFetches,
	)

	return m
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// ObserveClassification counts a classification by result.
func (m *Metrics) ObserveClassification(result string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(result).Inc()
}

// ObserveFactFetch counts a fun fact fetch by outcome.
func (m *Metrics) ObserveFactFetch(outcome string) {
	if m == nil {
		return
	}
	m.factFetches.WithLabelValues(outcome).Inc()
}
