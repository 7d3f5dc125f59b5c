// Package metrics exposes Prometheus collectors for sessions and workflow phases.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so tests and embedders never clash
// with the global one.
type Collector struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration prometheus.Histogram
	active   prometheus.Gauge
	phases   *prometheus.CounterVec
	failures *prometheus.CounterVec
	phaseDur *prometheus.HistogramVec
}

var _ runner.Observer = (*Collector)(nil)

// New registers the tper collectors plus the Go and process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tper_requests_total",
				Help: "Requests handled, by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tper_request_duration_seconds",
			Help:    "Wall time of a workflow run including cleanup",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tper_active_workflows",
			Help: "Workflow instances currently alive",
		}),
		phases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tper_phase_total",
				Help: "Completed phases, by phase",
			},
			[]string{"phase"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tper_phase_failures_total",
				Help: "Failed phases, by phase",
			},
			[]string{"phase"},
		),
		phaseDur: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tper_phase_duration_seconds",
				Help:    "Duration of a single phase completion",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
	}

	c.registry.MustRegister(
		c.requests, c.duration, c.active, c.phases, c.failures, c.phaseDur,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// WorkflowStarted implements runner.Observer.
func (c *Collector) WorkflowStarted() {
	c.active.Inc()
}

// WorkflowFinished implements runner.Observer.
func (c *Collector) WorkflowFinished(outcome runner.Outcome, elapsed time.Duration) {
	c.active.Dec()
	c.requests.WithLabelValues(string(outcome)).Inc()
	c.duration.Observe(elapsed.Seconds())
}

// Hooks returns lifecycle hooks that count phases.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPhaseLeave: func(_ context.Context, e *domain.PhaseEvent) {
			phase := string(e.Phase)
			if e.Err != nil {
				c.failures.WithLabelValues(phase).Inc()
				return
			}
			c.phases.WithLabelValues(phase).Inc()
			c.phaseDur.WithLabelValues(phase).Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
