package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/parley/internal/runtime"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menu(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Register("a", func(ctx context.Context, s *domain.Session, in string) (domain.Frame, error) {
		return domain.Frame{Text: "A", Options: []domain.Option{
			{Key: "b", Target: domain.To("b")},
		}}, nil
	}))
	require.NoError(t, reg.Register("b", func(ctx context.Context, s *domain.Session, in string) (domain.Frame, error) {
		return domain.Frame{Text: "B", Options: []domain.Option{
			{Key: "x", Target: domain.Exit()},
		}}, nil
	}))
	return reg
}

// counter returns the value of the metric family name with the given label value.
func counter(t *testing.T, gatherer prometheus.Gatherer, name, label string) float64 {
	t.Helper()
	families, err := gatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestMetrics_Hooks(t *testing.T) {
	ctx := context.Background()
	promReg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(promReg)
	require.NoError(t, err)

	eng := runtime.NewEngine(menu(t), runtime.WithLifecycleHooks(metrics.Hooks()))
	s, _, err := eng.Launch(ctx, "s1", "", "a")
	require.NoError(t, err)

	_, err = eng.SubmitInput(ctx, s, "nope")
	require.NoError(t, err)
	_, err = eng.SubmitInput(ctx, s, "b")
	require.NoError(t, err)
	_, err = eng.SubmitInput(ctx, s, "x")
	require.NoError(t, err)

	assert.Equal(t, 1.0, counter(t, promReg, "parley_node_visits_total", "a"))
	assert.Equal(t, 1.0, counter(t, promReg, "parley_node_visits_total", "b"))
	assert.Equal(t, 1.0, counter(t, promReg, "parley_no_match_total", "a"))
	assert.Equal(t, 1.0, counter(t, promReg, "parley_sessions_ended_total", domain.EndReasonSentinel))
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	promReg := prometheus.NewRegistry()
	first, err := observability.NewMetrics(promReg)
	require.NoError(t, err)

	second, err := observability.NewMetrics(promReg)
	require.NoError(t, err)
	assert.Same(t, first.NodeVisits, second.NodeVisits)
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	eng := runtime.NewEngine(menu(t), runtime.WithLifecycleHooks(observability.LogHooks(logger)))
	s, _, err := eng.Launch(ctx, "s1", "u1", "b")
	require.NoError(t, err)
	_, err = eng.SubmitInput(ctx, s, "x")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=node_enter")
	assert.Contains(t, out, "msg=node_leave")
	assert.Contains(t, out, "msg=session_end")
	assert.Contains(t, out, "reason=end")
	assert.Contains(t, out, "user_id=u1")
}
