// Package metrics holds the site's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	ContactSubmissions *prometheus.CounterVec
	FilterRequests     *prometheus.CounterVec
	LiveSessions       prometheus.Gauge
	NotificationsSent  *prometheus.CounterVec
}

// New registers every collector on a fresh registry, so tests can build as
// many instances as they need.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ContactSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_submissions_total",
			Help: "Contact form submissions by outcome",
		}, []string{"result"}),
		FilterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_project_filter_requests_total",
			Help: "Project filter requests by selected category",
		}, []string{"category"}),
		LiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "portfolio_live_sessions",
			Help: "Currently connected live view sessions",
		}),
		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_notifications_total",
			Help: "Owner notifications by channel and outcome",
		}, []string{"channel", "result"}),
	}
}

func (m *Metrics) IncrementContact(result string) {
	m.ContactSubmissions.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementFilter(category string) {
	m.FilterRequests.WithLabelValues(category).Inc()
}

func (m *Metrics) SessionOpened() {
	m.LiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	m.LiveSessions.Dec()
}

func (m *Metrics) IncrementNotification(channel string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.NotificationsSent.WithLabelValues(channel, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
