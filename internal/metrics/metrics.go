package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the gateway's Prometheus instruments on a private registry.
type Collector struct {
	registry       *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	httpDuration   prometheus.Histogram
	apiRequests    *prometheus.CounterVec
	sessionsActive prometheus.Gauge
	loginsTotal    *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		httpRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fundboard_http_requests_total",
			Help: "Total HTTP requests served, by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fundboard_http_request_duration_seconds",
			Help:    "Time taken to serve an HTTP request",
			Buckets: prometheus.DefBuckets,
		}),
		apiRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fundboard_api_client_requests_total",
			Help: "Calls made to the fund API, by resource, action and outcome",
		}, []string{"resource", "action", "outcome"}),
		sessionsActive: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "fundboard_sessions_active",
			Help: "Sessions created minus sessions destroyed",
		}),
		loginsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fundboard_logins_total",
			Help: "Login attempts, by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveHTTPRequest records one served request.
func (c *Collector) ObserveHTTPRequest(method, route string, status int, seconds float64) {
	c.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	c.httpDuration.Observe(seconds)
}

// ObserveAPICall implements api.Recorder.
func (c *Collector) ObserveAPICall(resource, action, outcome string) {
	c.apiRequests.WithLabelValues(resource, action, outcome).Inc()
}

// ObserveLogin records a login attempt outcome ("success" or "failure").
func (c *Collector) ObserveLogin(outcome string) {
	c.loginsTotal.WithLabelValues(outcome).Inc()
}

// SessionOpened and SessionClosed track the active-session gauge.
func (c *Collector) SessionOpened() { c.sessionsActive.Inc() }
func (c *Collector) SessionClosed() { c.sessionsActive.Dec() }

// Handler exposes the registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
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
