package observability

import (
	"context"
	"errors"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	NodeVisits    *prometheus.CounterVec
	NoMatches     *prometheus.CounterVec
	NodeErrors    *prometheus.CounterVec
	SessionsEnded *prometheus.CounterVec
	SessionTurns  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered by another engine in the process are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parley_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"node_id"},
		),
		NoMatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parley_no_match_total",
				Help: "Inputs that matched no option",
			},
			[]string{"node_id"},
		),
		NodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parley_node_errors_total",
				Help: "Render or transition failures",
			},
			[]string{"node_id"},
		),
		SessionsEnded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parley_sessions_ended_total",
				Help: "Sessions terminated, by reason",
			},
			[]string{"reason"},
		),
		SessionTurns: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parley_session_turns",
				Help:    "Turns taken by a session before it ended",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
	}

	var err error
	m.NodeVisits, err = register(reg, m.NodeVisits)
	if err != nil {
		return nil, err
	}
	m.NoMatches, err = register(reg, m.NoMatches)
	if err != nil {
		return nil, err
	}
	m.NodeErrors, err = register(reg, m.NodeErrors)
	if err != nil {
		return nil, err
	}
	m.SessionsEnded, err = register(reg, m.SessionsEnded)
	if err != nil {
		return nil, err
	}
	m.SessionTurns, err = register(reg, m.SessionTurns)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks records engine events into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnNoMatch: func(ctx context.Context, e *domain.NodeEvent) {
			m.NoMatches.WithLabelValues(e.NodeID).Inc()
		},
		OnNodeError: func(ctx context.Context, e *domain.NodeEvent) {
			m.NodeErrors.WithLabelValues(e.NodeID).Inc()
		},
		OnSessionEnd: func(ctx context.Context, e *domain.SessionEvent) {
			m.SessionsEnded.WithLabelValues(e.Reason).Inc()
			m.SessionTurns.Observe(float64(e.Turns))
		},
	}
}
