package runner

import (
	"log/slog"

	"github.com/aretw0/parley"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine sessions run on. Required.
func WithEngine(engine *parley.Engine) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithUserID tags launched sessions with a user.
func WithUserID(id string) Option {
	return func(r *Runner) {
		r.UserID = id
	}
}

// WithStartNode launches sessions on nodeID instead of the engine's entry node.
func WithStartNode(nodeID string) Option {
	return func(r *Runner) {
		r.StartNode = nodeID
	}
}

// WithSessionID resumes a session from the engine's session store.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithKeyed launches the session into the engine's session store so that it
// survives the runner. The session ID is reported through SystemOutput.
func WithKeyed(keyed bool) Option {
	return func(r *Runner) {
		r.Keyed = keyed
	}
}

// WithSignals controls whether the runner listens for SIGINT/SIGTERM (default: true).
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.Signals = enabled
	}
}
