package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/parley"
	httpAdapter "github.com/aretw0/parley/pkg/adapters/http"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/input"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *parley.Engine {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Register("start", func(ctx context.Context, s *domain.Session, in string) (domain.Frame, error) {
		return domain.Frame{
			Text: "Pick a class",
			Options: []domain.Option{
				{Key: "w", Label: "Warrior", Target: domain.Call(func(ctx context.Context, s *domain.Session, in string) (domain.Transition, error) {
					s.Set("class", "warrior")
					return domain.Goto("done"), nil
				})},
				{Key: "boom", Target: domain.Call(func(ctx context.Context, s *domain.Session, in string) (domain.Transition, error) {
					return domain.Transition{}, errors.New("kaboom")
				})},
				{Key: "x", Target: domain.Exit()},
			},
		}, nil
	}))
	require.NoError(t, reg.Register("done", func(ctx context.Context, s *domain.Session, in string) (domain.Frame, error) {
		return domain.Frame{
			Text:    fmt.Sprintf("You are a %v", s.Get("class", "nobody")),
			Options: []domain.Option{{Key: "x", Target: domain.Exit()}},
		}, nil
	}))

	n := 0
	eng, err := parley.New(reg,
		parley.WithMaxInputSize(16),
		parley.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("s%d", n)
		}),
	)
	require.NoError(t, err)
	return eng
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestServer_SessionFlow(t *testing.T) {
	h := httpAdapter.NewHandler(newEngine(t))

	w := do(t, h, http.MethodPost, "/sessions", `{"user_id":"u1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Output](t, w)
	assert.Equal(t, "s1", created.SessionID)
	assert.Equal(t, "start", created.NodeID)
	assert.Contains(t, created.Body, "Pick a class")

	w = do(t, h, http.MethodPost, "/sessions/s1/input", `{"input":"nope"}`)
	require.Equal(t, http.StatusOK, w.Code)
	missed := decode[httpAdapter.InputResponse](t, w)
	assert.False(t, missed.Output.Matched)

	w = do(t, h, http.MethodPost, "/sessions/s1/input", `{"input":"w"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[httpAdapter.InputResponse](t, w)
	assert.Equal(t, "done", resp.Output.NodeID)
	assert.Contains(t, resp.Output.Body, "You are a warrior")
	require.NotNil(t, resp.Diff)
	assert.Equal(t, "warrior", resp.Diff.Values["class"])
	require.NotNil(t, resp.Diff.NodeID)
	assert.Equal(t, "done", *resp.Diff.NodeID)

	w = do(t, h, http.MethodGet, "/sessions/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[httpAdapter.SessionResponse](t, w)
	assert.Equal(t, "done", view.Output.NodeID)
	assert.Equal(t, "u1", view.Session.UserID)
	assert.Equal(t, "warrior", view.Session.Values["class"])

	w = do(t, h, http.MethodPost, "/sessions/s1/input", `{"input":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[httpAdapter.InputResponse](t, w).Output.Terminated)

	w = do(t, h, http.MethodGet, "/sessions/s1", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "terminated sessions are removed")
}

func TestServer_CreateWithoutBody(t *testing.T) {
	h := httpAdapter.NewHandler(newEngine(t))
	w := do(t, h, http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestServer_Errors(t *testing.T) {
	h := httpAdapter.NewHandler(newEngine(t))
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sessions", "").Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "unknown session", method: http.MethodPost, path: "/sessions/nope/input", body: `{"input":"w"}`, want: http.StatusNotFound},
		{name: "malformed body", method: http.MethodPost, path: "/sessions/s1/input", body: `{`, want: http.StatusBadRequest},
		{name: "oversized input", method: http.MethodPost, path: "/sessions/s1/input", body: `{"input":"` + strings.Repeat("a", 32) + `"}`, want: http.StatusBadRequest},
		{name: "node failure", method: http.MethodPost, path: "/sessions/s1/input", body: `{"input":"boom"}`, want: http.StatusUnprocessableEntity},
		{name: "unknown start node", method: http.MethodPost, path: "/sessions", body: `{"start_node":"ghost"}`, want: http.StatusBadRequest},
		{name: "close unknown session", method: http.MethodDelete, path: "/sessions/nope", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[httpAdapter.ErrorResponse](t, w).Error)
		})
	}

	w := do(t, h, http.MethodGet, "/sessions/s1", "")
	assert.Equal(t, http.StatusOK, w.Code, "failed turns keep the session")
}

func TestServer_DeleteSession(t *testing.T) {
	h := httpAdapter.NewHandler(newEngine(t))
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sessions", "").Code)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/sessions/s1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sessions/s1", "").Code)
}

func TestServer_GraphHealthInfoMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("parley_node_visits_total 1\n"))
	})
	h := httpAdapter.NewHandler(newEngine(t), httpAdapter.WithMetrics(metrics), httpAdapter.WithName("test"))

	w := do(t, h, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	nodes := decode[[]domain.NodeInfo](t, w)
	require.Len(t, nodes, 2)

	w = do(t, h, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	info := decode[map[string]string](t, w)
	assert.Equal(t, "test", info["app"])
	assert.Equal(t, parley.Version, info["version"])

	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), "parley_node_visits_total")
}

func TestServer_MetricsNotMountedByDefault(t *testing.T) {
	h := httpAdapter.NewHandler(newEngine(t))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", "").Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: domain.ErrSessionNotFound, want: http.StatusNotFound},
		{err: fmt.Errorf("wrapped: %w", domain.ErrSessionTerminated), want: http.StatusGone},
		{err: fmt.Errorf("input rejected: %w", input.ErrInvalidUTF8), want: http.StatusBadRequest},
		{err: &domain.NodeExecutionError{NodeID: "a", Err: domain.ErrUnknownNode}, want: http.StatusUnprocessableEntity},
		{err: context.Canceled, want: http.StatusServiceUnavailable},
		{err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, httpAdapter.StatusFor(tt.err))
		})
	}
}

func TestServer_SubscribeEvents(t *testing.T) {
	server := httpAdapter.NewServer(newEngine(t))
	ts := httptest.NewServer(server.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	events, err := http.Get(ts.URL + "/sessions/s1/events")
	require.NoError(t, err)
	defer events.Body.Close()
	require.Equal(t, "text/event-stream", events.Header.Get("Content-Type"))

	lines := bufio.NewScanner(events.Body)
	readUntil := func(prefix string) string {
		t.Helper()
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		t.Fatalf("stream ended before %q", prefix)
		return ""
	}
	readUntil("event: ping")

	resp, err = http.Post(ts.URL+"/sessions/s1/input", "application/json", bytes.NewBufferString(`{"input":"w"}`))
	require.NoError(t, err)
	resp.Body.Close()

	data := readUntil("data: ")
	assert.Contains(t, data, `"class":"warrior"`)

	resp, err = http.Post(ts.URL+"/sessions/s1/input", "application/json", bytes.NewBufferString(`{"input":"x"}`))
	require.NoError(t, err)
	resp.Body.Close()

	readUntil("event: end")
	assert.Equal(t, 0, server.Streams.Subscribers("s1"))
}

func TestServer_SubscribeUnknownSession(t *testing.T) {
	h := httpAdapter.NewHandler(newEngine(t))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sessions/nope/events", "").Code)
}

func TestStreamManager(t *testing.T) {
	sm := httpAdapter.NewStreamManager()
	ch, cancel := sm.Subscribe("a")
	assert.Equal(t, 1, sm.Subscribers("a"))

	sm.Broadcast("a", "hello")
	sm.Broadcast("b", "ignored")
	assert.Equal(t, "hello", <-ch)

	sm.CloseSession("a")
	_, ok := <-ch
	assert.False(t, ok)
	cancel()
	assert.Equal(t, 0, sm.Subscribers("a"))
}
