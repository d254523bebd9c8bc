package tui

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/liquidsort/internal/core"
)

// Metrics collects gameplay counters on a dedicated registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	pours          *prometheus.CounterVec
	levelsSolved   *prometheus.CounterVec
	levelMoves     *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquidsort_sessions_active",
			Help: "Number of connected SSH sessions",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liquidsort_sessions_total",
			Help: "Total number of SSH sessions started",
		}),
		pours: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liquidsort_pours_total",
				Help: "Pour attempts by outcome",
			},
			[]string{"game", "result"},
		),
		levelsSolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liquidsort_levels_solved_total",
				Help: "Levels solved",
			},
			[]string{"game"},
		),
		levelMoves: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "liquidsort_level_moves",
				Help:    "Moves used to solve a level",
				Buckets: prometheus.LinearBuckets(5, 5, 10),
			},
			[]string{"game"},
		),
	}
	m.registry.MustRegister(m.sessionsActive, m.sessionsTotal, m.pours, m.levelsSolved, m.levelMoves)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// SessionStarted records a new connection.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsTotal.Inc()
	m.sessionsActive.Inc()
}

// SessionEnded records a closed connection.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// Observe records one game event.
func (m *Metrics) Observe(gameID string, ev core.Event) {
	if m == nil {
		return
	}
	switch ev.Type {
	case core.EventPourApplied:
		m.pours.WithLabelValues(gameID, "applied").Inc()
	case core.EventPourRejected:
		m.pours.WithLabelValues(gameID, ev.Reason).Inc()
	case core.EventLevelSolved:
		m.levelsSolved.WithLabelValues(gameID).Inc()
		m.levelMoves.WithLabelValues(gameID).Observe(float64(ev.Moves))
	}
}
