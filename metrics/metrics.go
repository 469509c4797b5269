// Package metrics provides optional Prometheus instrumentation for Docfold
// API clients. Pass a Metrics value to docfold.WithMetrics to count requests
// and measure durations per operation family.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for one instrumented client.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered on a private
// registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docfold_client_requests_total",
				Help: "Total number of Docfold API requests",
			},
			[]string{"operation", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docfold_client_request_duration_seconds",
				Help:    "Docfold API request duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "method"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docfold_client_requests_in_flight",
				Help: "Number of Docfold API requests currently in flight",
			},
		),

		registry: reg,
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
	)

	return m
}

// Registry returns the Prometheus registry holding the collectors, for
// exposing them alongside an application's own metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Transport wraps an http.RoundTripper so every request through it is
// counted and timed.
func (m *Metrics) Transport(next http.RoundTripper) http.RoundTripper {
	return &transport{next: next, metrics: m}
}

type transport struct {
	next    http.RoundTripper
	metrics *Metrics
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	op := operation(req.URL.Path)
	t.metrics.RequestsInFlight.Inc()
	defer t.metrics.RequestsInFlight.Dec()

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	t.metrics.RequestDuration.WithLabelValues(op, req.Method).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	t.metrics.RequestsTotal.WithLabelValues(op, req.Method, status).Inc()
	return resp, err
}

// operation maps a request path to a bounded label: the operation family
// segment following the API version prefix (token, render, pdf, img,
// template). Resource IDs never become label values.
func operation(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) >= 2 && segs[1] != "" {
		return segs[1]
	}
	if len(segs) == 1 && segs[0] != "" {
		return segs[0]
	}
	return "unknown"
}
