// Package metrics collects Prometheus metrics for the login flow and exposes the scrape handler.
package metrics

import (
	"net/http"
	"time"

	"oauthgate/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ service.LoginRecorder = (*Collector)(nil)

// Collector is the Prometheus-backed service.LoginRecorder.
type Collector struct {
	logins       *prometheus.CounterVec
	loginLatency prometheus.Histogram
	tokensIssued prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauthgate_google_login_total",
			Help: "Google logins by outcome.",
		}, []string{"outcome"}),
		loginLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "oauthgate_google_login_duration_seconds",
			Help:    "Latency of the Google login usecase.",
			Buckets: prometheus.DefBuckets,
		}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oauthgate_token_pairs_issued_total",
			Help: "Access/refresh token pairs issued.",
		}),
	}

	reg.MustRegister(c.logins, c.loginLatency, c.tokensIssued)

	return c
}

// RecordLogin counts a login attempt and observes its latency.
func (c *Collector) RecordLogin(outcome string, duration time.Duration) {
	c.logins.WithLabelValues(outcome).Inc()
	c.loginLatency.Observe(duration.Seconds())
}

// RecordTokenIssued counts an issued token pair.
func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

// NewRegistry returns a registry pre-populated with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
