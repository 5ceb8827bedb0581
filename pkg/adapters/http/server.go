package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/input"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine is the part of *parley.Engine the server needs.
type Engine interface {
	Open(ctx context.Context, userID, startNode string) (domain.Output, error)
	SubmitDiff(ctx context.Context, sessionID, raw string) (domain.Output, *domain.SessionDiff, error)
	View(ctx context.Context, sessionID string) (domain.Output, error)
	State(ctx context.Context, sessionID string) (*domain.Session, error)
	Close(ctx context.Context, sessionID string) error
	Inspect() []domain.NodeInfo
}

var _ Engine = (*parley.Engine)(nil)

// Server serves keyed sessions over HTTP.
type Server struct {
	Engine  Engine
	Streams *StreamManager

	logger  *slog.Logger
	metrics http.Handler
	name    string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithName sets the app name reported by /info.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// CreateSessionRequest is the body of POST /sessions. Both fields are optional.
type CreateSessionRequest struct {
	UserID    string `json:"user_id,omitempty"`
	StartNode string `json:"start_node,omitempty"`
}

// InputRequest is the body of POST /sessions/{id}/input.
type InputRequest struct {
	Input string `json:"input"`
}

// InputResponse is the result of one submitted input.
type InputResponse struct {
	Output domain.Output       `json:"output"`
	Diff   *domain.SessionDiff `json:"diff,omitempty"`
}

// SessionResponse is the result of GET /sessions/{id}.
type SessionResponse struct {
	Output  domain.Output   `json:"output"`
	Session *domain.Session `json:"session"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a server for engine.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
		name:    "parley-http",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/input", s.SubmitInput)
			r.Get("/events", s.SubscribeEvents)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			s.logger.Warn("create session: invalid request body", "err", err)
			return
		}
	}

	out, err := s.Engine.Open(r.Context(), body.UserID, body.StartNode)
	if err != nil {
		s.fail(w, "create session", err)
		return
	}
	s.logger.Info("session opened", "session_id", out.SessionID, "user_id", body.UserID)
	s.writeJSON(w, http.StatusCreated, out)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out, err := s.Engine.View(r.Context(), id)
	if err != nil {
		s.fail(w, "view session", err)
		return
	}
	state, err := s.Engine.State(r.Context(), id)
	if err != nil {
		s.fail(w, "view session", err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{Output: out, Session: state})
}

// SubmitInput handles POST /sessions/{id}/input.
func (s *Server) SubmitInput(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body InputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("submit input: invalid request body", "err", err, "session_id", id)
		return
	}

	out, diff, err := s.Engine.SubmitDiff(r.Context(), id, body.Input)
	if err != nil {
		s.fail(w, "submit input", err)
		return
	}

	if diff != nil {
		if data, err := json.Marshal(diff); err == nil {
			s.Streams.Broadcast(id, string(data))
		}
	}
	if out.Terminated {
		s.Streams.CloseSession(id)
	}
	s.writeJSON(w, http.StatusOK, InputResponse{Output: out, Diff: diff})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Engine.Close(r.Context(), id); err != nil {
		s.fail(w, "close session", err)
		return
	}
	s.Streams.CloseSession(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Inspect())
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     s.name,
		"version": strings.TrimSpace(parley.Version),
	})
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	var nodeErr *domain.NodeExecutionError
	switch {
	case errors.As(err, &nodeErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionTerminated):
		return http.StatusGone
	case errors.Is(err, input.ErrInputTooLarge), errors.Is(err, input.ErrInvalidUTF8):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownNode):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "err", err, "status", status)
	}
	s.writeError(w, status, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
