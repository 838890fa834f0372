// Package metrics exposes prometheus counters for document delivery and sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "posdocs"

// Recorder groups the service collectors on a private registry.
type Recorder struct {
	registry  *prometheus.Registry
	actions   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	teardowns *prometheus.CounterVec
	backend   *prometheus.CounterVec
}

// New builds a Recorder with its own registry so tests can create many instances.
func New() *Recorder {
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "documents",
		Name:      "actions_total",
		Help:      "Document actions by final state.",
	}, []string{"action", "document", "state"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "documents",
		Name:      "action_duration_ms",
		Help:      "Document action latency in milliseconds.",
		Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	}, []string{"action"})
	teardowns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "teardowns_total",
		Help:      "Forced session teardowns.",
	}, []string{"reason"})
	backend := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "errors_total",
		Help:      "Backend request failures by kind.",
	}, []string{"kind"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(actions, duration, teardowns, backend)

	return &Recorder{
		registry:  registry,
		actions:   actions,
		duration:  duration,
		teardowns: teardowns,
		backend:   backend,
	}
}

// DocumentAction records a finished document action.
func (r *Recorder) DocumentAction(action, document, state string, elapsed time.Duration) {
	r.actions.WithLabelValues(action, document, state).Inc()
	r.duration.WithLabelValues(action).Observe(float64(elapsed.Milliseconds()))
}

// SessionTeardown records a forced logout.
func (r *Recorder) SessionTeardown(reason string) {
	r.teardowns.WithLabelValues(reason).Inc()
}

// BackendError records a failed backend call.
func (r *Recorder) BackendError(kind string) {
	r.backend.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
