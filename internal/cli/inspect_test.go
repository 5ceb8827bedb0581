package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/parley/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	entry, err := Validate(context.Background(), testConfig(t), DemoMenu, "", logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "start", entry)

	_, err = Validate(context.Background(), testConfig(t), DemoMenu, "nowhere", logging.NewNop())
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := Graph(context.Background(), testConfig(t), DemoMenu, "", "", logging.NewNop())
	require.NoError(t, err)

	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `start(("start"))`)
	assert.NotContains(t, out, "classDef current")
}

func TestGraph_SessionOverlay(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisAddr = mr.Addr()
	cfg.SessionTTL = time.Minute

	res, err := NewEngine(ctx, cfg, demoMenu(t), EngineOptions{}, logging.NewNop())
	require.NoError(t, err)
	out, err := res.Engine.Open(ctx, "u1", "")
	require.NoError(t, err)
	_, err = res.Engine.Submit(ctx, out.SessionID, "1")
	require.NoError(t, err)
	require.NoError(t, res.Close())

	chart, err := Graph(ctx, cfg, DemoMenu, "", out.SessionID, logging.NewNop())
	require.NoError(t, err)
	assert.Contains(t, chart, "class name current")
}

func TestGraph_UnknownSession(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisAddr = mr.Addr()

	_, err := Graph(context.Background(), cfg, DemoMenu, "", "missing", logging.NewNop())
	assert.ErrorContains(t, err, "load session missing")
}
