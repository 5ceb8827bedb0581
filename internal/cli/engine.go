package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/pkg/adapters/redis"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/render"
	"github.com/prometheus/client_golang/prometheus"
)

// EngineOptions are the per-command settings layered over Config.
type EngineOptions struct {
	// StartNode overrides both the menu's declared start and Config.StartNode.
	StartNode string
	Renderer  render.Renderer
	Debug     bool
	// Registerer receives engine metrics when set.
	Registerer prometheus.Registerer
}

// Resources owns what an engine opened and must be released with Close.
type Resources struct {
	Engine  *parley.Engine
	Metrics *observability.Metrics
	store   *SharedStore
}

// Close releases the Redis connection, if any.
func (r *Resources) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}

// NewEngine builds an engine for menu following cfg. With a Redis address the
// keyed sessions live in Redis behind a distributed lock.
func NewEngine(ctx context.Context, cfg config.Config, menu Menu, opts EngineOptions, logger *slog.Logger) (*Resources, error) {
	res := &Resources{}

	start := opts.StartNode
	if start == "" {
		start = menu.Start
	}
	if start == "" {
		start = cfg.StartNode
	}

	engineOpts := []parley.Option{
		parley.WithLogger(logger),
		parley.WithName(menu.Source),
		parley.WithEntryNode(start),
		parley.WithMaxInputSize(cfg.MaxInputSize),
		parley.WithAutoCommands(cfg.AutoQuit, cfg.AutoLook, cfg.AutoHelp),
	}
	if opts.Renderer != nil {
		engineOpts = append(engineOpts, parley.WithRenderer(opts.Renderer))
	}

	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if opts.Registerer != nil {
		metrics, err := observability.NewMetrics(opts.Registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		res.Metrics = metrics
		hooks = append(hooks, metrics.Hooks())
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, parley.WithLifecycleHooks(domain.ChainHooks(hooks...)))
	}

	if cfg.RedisAddr != "" {
		store, err := OpenStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		res.store = store
		engineOpts = append(engineOpts,
			parley.WithStore(store),
			parley.WithLocker(redis.NewLocker(store.Redis.Client(), cfg.RedisPrefix)),
		)
		logger.Info("using redis session store", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix, "encrypted", cfg.EncryptionKey != "")
	}

	eng, err := parley.New(menu.Registry, engineOpts...)
	if err != nil {
		res.Close()
		return nil, err
	}
	res.Engine = eng
	return res, nil
}
