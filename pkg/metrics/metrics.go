// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request-level and workflow-level metrics.
type Collector struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpDuration        prometheus.Histogram
	applicationsCreated prometheus.Counter
	duplicateApplies    prometheus.Counter
	loginFailures       prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}),
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_applications_created_total",
			Help: "Total job applications successfully created",
		}),
		duplicateApplies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_duplicate_applications_total",
			Help: "Total apply attempts rejected as duplicates",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobboard_login_failures_total",
			Help: "Total failed login attempts",
		}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.applicationsCreated,
		c.duplicateApplies,
		c.loginFailures,
	)
	return c
}

// RecordRequest records one completed HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// RecordApplicationCreated increments the created-applications counter.
func (c *Collector) RecordApplicationCreated() {
	c.applicationsCreated.Inc()
}

// RecordDuplicateApply increments the duplicate-apply counter.
func (c *Collector) RecordDuplicateApply() {
	c.duplicateApplies.Inc()
}

// RecordLoginFailure increments the failed-login counter.
func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

// Handler returns the exposition endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
