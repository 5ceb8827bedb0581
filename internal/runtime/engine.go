package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/aretw0/parley/pkg/render"
)

// DefaultEntryNode is the start node used when none is configured.
const DefaultEntryNode = "start"

// InputSanitizer cleans raw input before it reaches nodes. It may reject input.
type InputSanitizer func(string) (string, error)

// Engine is the menu controller. It owns no sessions: callers hold the handles
// and the engine drives one turn at a time on them.
type Engine struct {
	registry    *registry.Registry
	renderer    render.Renderer
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	entryNodeID string
	sanitize    InputSanitizer
	commands    commandSet
	now         func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRenderer sets how frames are formatted into output bodies.
func WithRenderer(r render.Renderer) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithEntryNode configures the initial node ID (default: "start").
func WithEntryNode(nodeID string) EngineOption {
	return func(e *Engine) {
		if nodeID != "" {
			e.entryNodeID = nodeID
		}
	}
}

// WithInputSanitizer installs an input filter applied before each turn.
func WithInputSanitizer(fn InputSanitizer) EngineOption {
	return func(e *Engine) {
		e.sanitize = fn
	}
}

// WithAutoQuit makes quit/q/exit end the session unless the node claims those keys.
func WithAutoQuit(enabled bool) EngineOption {
	return func(e *Engine) {
		e.commands.quit = enabled
	}
}

// WithAutoLook makes look/l re-render the current node unless the node claims those keys.
func WithAutoLook(enabled bool) EngineOption {
	return func(e *Engine) {
		e.commands.look = enabled
	}
}

// WithAutoHelp makes help/h show the node's help text, when it has one.
func WithAutoHelp(enabled bool) EngineOption {
	return func(e *Engine) {
		e.commands.help = enabled
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new engine over reg. The registry is sealed: nodes
// cannot be added once sessions may be running against it.
func NewEngine(reg *registry.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry:    reg,
		renderer:    render.NewText(),
		logger:      logging.NewNop(),
		entryNodeID: DefaultEntryNode,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	reg.Seal()
	return e
}

// EntryNode returns the configured start node.
func (e *Engine) EntryNode() string {
	return e.entryNodeID
}

// Inspect returns the registered nodes for visualization or introspection tools.
func (e *Engine) Inspect() []domain.NodeInfo {
	return e.registry.Inspect()
}

// Launch creates a session positioned on startNode (or the entry node when empty)
// and renders it. Unknown start nodes fail before any session exists.
// On a render failure the session is returned alongside the error for inspection.
func (e *Engine) Launch(ctx context.Context, sessionID, userID, startNode string) (*domain.Session, domain.Output, error) {
	if startNode == "" {
		startNode = e.entryNodeID
	}
	if !e.registry.Has(startNode) {
		return nil, domain.Output{}, fmt.Errorf("cannot launch session: %w: %q", domain.ErrUnknownNode, startNode)
	}

	s := domain.NewSession(sessionID, userID, startNode)
	e.logger.DebugContext(ctx, "session launched", "session_id", sessionID, "user_id", userID, "node_id", startNode)

	var out domain.Output
	err := s.WithTurn(func() error {
		var err error
		out, err = e.enter(ctx, s, startNode)
		return err
	})
	return s, out, err
}

// SubmitInput drives one turn of the state machine: render the current node
// with the input, resolve it against the node's options and apply the transition.
// Terminated sessions reject input with domain.ErrSessionTerminated.
func (e *Engine) SubmitInput(ctx context.Context, s *domain.Session, raw string) (domain.Output, error) {
	var out domain.Output
	err := s.WithTurn(func() error {
		if s.IsTerminated() {
			return fmt.Errorf("%w: %s", domain.ErrSessionTerminated, s.ID)
		}
		input := raw
		if e.sanitize != nil {
			clean, err := e.sanitize(raw)
			if err != nil {
				return fmt.Errorf("input rejected: %w", err)
			}
			input = clean
		}
		var err error
		out, err = e.turn(ctx, s, input)
		return err
	})
	return out, err
}

// Render re-renders the current node without input and without transitioning.
func (e *Engine) Render(ctx context.Context, s *domain.Session) (domain.Output, error) {
	var out domain.Output
	err := s.WithTurn(func() error {
		if s.IsTerminated() {
			return fmt.Errorf("%w: %s", domain.ErrSessionTerminated, s.ID)
		}
		nodeID := s.CurrentNode()
		frame, err := e.render(ctx, s, nodeID, "")
		if err != nil {
			return err
		}
		out, err = e.output(s, frame, true)
		return err
	})
	return out, err
}

// IsTerminated reports whether the session reached a sink state.
func (e *Engine) IsTerminated(s *domain.Session) bool {
	return s.IsTerminated()
}

// Close ends a live session on behalf of the host (cancel, idle timeout).
// Closing a terminated session is a no-op.
func (e *Engine) Close(ctx context.Context, s *domain.Session) error {
	return s.WithTurn(func() error {
		if s.IsTerminated() {
			return nil
		}
		e.terminate(ctx, s, domain.EndReasonClosed)
		return nil
	})
}
