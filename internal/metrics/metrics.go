package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	Evaluations     *prometheus.CounterVec
	Generations     *prometheus.CounterVec
	TallyDropped    prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "password_evaluations_total",
				Help: "Password evaluations by resulting strength label",
			},
			[]string{"strength"},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "password_generations_total",
				Help: "Generated passwords, split by whether a hash was requested",
			},
			[]string{"hashed"},
		),
		TallyDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "password_tally_dropped_total",
			Help: "Tally events dropped because the queue was full",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.Evaluations,
		m.Generations,
		m.TallyDropped,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests that gather directly.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
