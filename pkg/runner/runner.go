package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/input"
)

var (
	// ErrNoEngine is returned by Run when no engine was configured.
	ErrNoEngine = errors.New("runner: no engine configured")
	// ErrInterrupted is returned by Run when SIGINT or SIGTERM ends the session loop.
	ErrInterrupted = errors.New("runner: interrupted")
)

// Runner handles the execution loop of a menu session using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on stdin/stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	UserID    string
	StartNode string

	// SessionID names a stored session to resume.
	SessionID string
	// Keyed launches new sessions into the engine's session store.
	Keyed bool
	// Signals enables SIGINT/SIGTERM handling.
	Signals bool

	engine *parley.Engine
}

// NewRunner creates a Runner configured by opts.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:  logging.NewNop(),
		Signals: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the session loop until the session terminates, the input ends
// or the process is interrupted. Ending the input or interrupting detaches from
// the session: private sessions are closed, stored ones are left to resume.
// A signal yields ErrInterrupted; cancelling ctx yields ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	if r.engine == nil {
		return ErrNoEngine
	}
	handler := r.resolveHandler()
	if c, ok := handler.(io.Closer); ok {
		defer c.Close()
	}

	inputCtx := ctx
	var signals *SignalManager
	if r.Signals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
		inputCtx = signals.Context()
	}

	d := r.resolveDriver()
	out, err := d.start(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	logger := r.Logger.With("session_id", d.id())
	logger.Debug("runner started", "node_id", out.NodeID)

	if r.Keyed && r.SessionID == "" {
		if err := handler.SystemOutput(ctx, "session "+d.id()); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	if err := handler.Output(ctx, out); err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	for !out.Terminated {
		line, err := handler.Input(inputCtx)
		if err != nil {
			if signals != nil {
				signals.CheckRace()
			}
			if inputCtx.Err() != nil {
				logger.Debug("runner interrupted", "err", inputCtx.Err())
				if err := handler.SystemOutput(context.WithoutCancel(ctx), "interrupted"); err != nil {
					logger.Warn("failed to report interrupt", "err", err)
				}
				r.detach(ctx, d, logger)
				if err := ctx.Err(); err != nil {
					return err
				}
				return ErrInterrupted
			}
			if errors.Is(err, io.EOF) {
				logger.Debug("input closed")
				r.detach(ctx, d, logger)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		next, err := d.submit(ctx, line)
		if err != nil {
			if !recoverable(err) {
				return fmt.Errorf("submit input: %w", err)
			}
			logger.Warn("turn failed", "err", err)
			if err := handler.SystemOutput(ctx, err.Error()); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}
		out = next
		if err := handler.Output(ctx, out); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}

	logger.Debug("session finished", "node_id", out.NodeID)
	return nil
}

// recoverable reports errors after which the session is still usable.
func recoverable(err error) bool {
	var nodeErr *domain.NodeExecutionError
	return errors.As(err, &nodeErr) ||
		errors.Is(err, input.ErrInputTooLarge) ||
		errors.Is(err, input.ErrInvalidUTF8)
}

func (r *Runner) detach(ctx context.Context, d driver, logger *slog.Logger) {
	if err := d.detach(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("failed to close session", "err", err)
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}

func (r *Runner) resolveDriver() driver {
	if r.Keyed || r.SessionID != "" {
		return &keyedDriver{
			engine:    r.engine,
			userID:    r.UserID,
			startNode: r.StartNode,
			sessionID: r.SessionID,
		}
	}
	return &localDriver{
		engine:    r.engine,
		userID:    r.UserID,
		startNode: r.StartNode,
	}
}
