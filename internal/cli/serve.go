package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/config"
	httpAdapter "github.com/aretw0/parley/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Menu      string
	StartNode string
	// Addr overrides Config.HTTPAddr.
	Addr  string
	Debug bool
}

// Serve exposes the menu over HTTP until ctx is cancelled. Idle sessions are
// reaped in the background every Config.ReapInterval.
func Serve(ctx context.Context, cfg config.Config, opts ServeOptions, logger *slog.Logger) error {
	menu, err := LoadMenu(ctx, opts.Menu)
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	res, err := NewEngine(ctx, cfg, menu, EngineOptions{
		StartNode:  opts.StartNode,
		Debug:      opts.Debug,
		Registerer: promReg,
	}, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	addr := opts.Addr
	if addr == "" {
		addr = cfg.HTTPAddr
	}
	srv := &http.Server{
		Addr: addr,
		Handler: httpAdapter.NewHandler(res.Engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithName(menu.Source),
			httpAdapter.WithMetrics(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", addr, "menu", menu.Source)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		logger.Info("http server stopped")
		return nil
	})
	g.Go(func() error {
		reapLoop(gctx, res.Engine, cfg.IdleTimeout, cfg.ReapInterval, logger)
		return nil
	})
	return g.Wait()
}

// reapLoop closes sessions idle longer than idle until ctx is done.
// A non-positive idle or interval disables reaping.
func reapLoop(ctx context.Context, eng *parley.Engine, idle, interval time.Duration, logger *slog.Logger) {
	if idle <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := eng.Reap(ctx, idle)
			if err != nil {
				logger.Warn("reap failed", "err", err)
				continue
			}
			if n > 0 {
				logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}
