package parley

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/internal/runtime"
	"github.com/aretw0/parley/pkg/adapters/memory"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/input"
	"github.com/aretw0/parley/pkg/ports"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/aretw0/parley/pkg/render"
	"github.com/aretw0/parley/pkg/session"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the Parley library.
// It wraps the internal runtime and adds keyed session hosting on top of it.
type Engine struct {
	runtime     *runtime.Engine
	registry    *registry.Registry
	sessions    *session.Manager
	store       ports.SessionStore
	locker      ports.DistributedLocker
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
	maxInput    int
	newID       func() string
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName labels the menu in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithEntryNode configures the initial node ID (default: "start").
func WithEntryNode(nodeID string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithEntryNode(nodeID))
	}
}

// WithRenderer sets how frames are formatted into output bodies.
func WithRenderer(r render.Renderer) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRenderer(r))
	}
}

// WithAutoCommands enables the quit, look and help commands.
func WithAutoCommands(quit, look, help bool) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts,
			runtime.WithAutoQuit(quit),
			runtime.WithAutoLook(look),
			runtime.WithAutoHelp(help),
		)
	}
}

// WithMaxInputSize bounds the size of a single input in bytes.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInput = n
	}
}

// WithStore sets where keyed sessions live between turns (default: in memory).
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking for keyed sessions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithIDGenerator overrides how session IDs are generated (default: UUIDv4).
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New builds an Engine over reg. The registry's declared edges are validated
// and the registry is sealed.
func New(reg *registry.Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, errors.New("parley: registry is required")
	}

	eng := &Engine{
		registry: reg,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu graph: %w", err)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("menu", eng.Name)
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	sanitizer := input.New(eng.maxInput)
	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithInputSanitizer(sanitizer.Sanitize),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)
	eng.runtime = runtime.NewEngine(reg, runtimeOpts...)
	if entry := eng.runtime.EntryNode(); !reg.Has(entry) {
		return nil, fmt.Errorf("entry node '%s': %w", entry, domain.ErrUnknownNode)
	}

	managerOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, managerOpts...)

	return eng, nil
}

// Launch creates a session on startNode (the entry node when empty) and returns
// it with its first output. The caller owns the returned session.
func (e *Engine) Launch(ctx context.Context, userID, startNode string) (*domain.Session, domain.Output, error) {
	return e.runtime.Launch(ctx, e.newID(), userID, startNode)
}

// SubmitInput runs one turn on a caller-owned session.
func (e *Engine) SubmitInput(ctx context.Context, s *domain.Session, raw string) (domain.Output, error) {
	return e.runtime.SubmitInput(ctx, s, raw)
}

// Render re-renders the current node of a caller-owned session.
func (e *Engine) Render(ctx context.Context, s *domain.Session) (domain.Output, error) {
	return e.runtime.Render(ctx, s)
}

// IsTerminated reports whether the session reached a sink state.
func (e *Engine) IsTerminated(s *domain.Session) bool {
	return e.runtime.IsTerminated(s)
}

// Cancel ends a caller-owned session.
func (e *Engine) Cancel(ctx context.Context, s *domain.Session) error {
	return e.runtime.Close(ctx, s)
}

// Inspect returns the registered nodes for visualization or introspection tools.
func (e *Engine) Inspect() []domain.NodeInfo {
	return e.runtime.Inspect()
}

// EntryNode returns the node new sessions start on by default.
func (e *Engine) EntryNode() string {
	return e.runtime.EntryNode()
}

// Sessions returns the manager hosting keyed sessions.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Open launches a session and keeps it in the session store under its ID.
// A session that terminates on its first frame is not stored.
func (e *Engine) Open(ctx context.Context, userID, startNode string) (domain.Output, error) {
	s, out, err := e.Launch(ctx, userID, startNode)
	if err != nil {
		return domain.Output{}, err
	}
	if err := e.sessions.Create(ctx, s); err != nil {
		return domain.Output{}, fmt.Errorf("failed to store session: %w", err)
	}
	return out, nil
}

// Submit runs one turn on a stored session. Sessions are removed from the store
// when they terminate, so later calls fail with domain.ErrSessionNotFound.
func (e *Engine) Submit(ctx context.Context, sessionID, raw string) (domain.Output, error) {
	out, _, err := e.SubmitDiff(ctx, sessionID, raw)
	return out, err
}

// SubmitDiff is Submit that also reports what the turn changed.
func (e *Engine) SubmitDiff(ctx context.Context, sessionID, raw string) (domain.Output, *domain.SessionDiff, error) {
	var out domain.Output
	var diff *domain.SessionDiff
	err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, s *domain.Session) error {
		before := s.Snapshot()
		var err error
		out, err = e.runtime.SubmitInput(ctx, s, raw)
		diff = domain.Diff(before, s.Snapshot())
		return err
	})
	return out, diff, err
}

// View re-renders the current node of a stored session.
func (e *Engine) View(ctx context.Context, sessionID string) (domain.Output, error) {
	var out domain.Output
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := e.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		out, err = e.runtime.Render(ctx, s)
		return err
	})
	return out, err
}

// State returns a snapshot of a stored session.
func (e *Engine) State(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.sessions.Load(ctx, sessionID)
}

// Close ends a stored session and removes it.
func (e *Engine) Close(ctx context.Context, sessionID string) error {
	return e.sessions.Update(ctx, sessionID, func(ctx context.Context, s *domain.Session) error {
		return e.runtime.Close(ctx, s)
	})
}

// Reap closes stored sessions idle for longer than idle and returns how many were removed.
func (e *Engine) Reap(ctx context.Context, idle time.Duration) (int, error) {
	return e.sessions.Reap(ctx, idle, e.runtime.Close)
}
