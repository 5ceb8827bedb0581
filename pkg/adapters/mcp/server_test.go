package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Register("start", func(ctx context.Context, s *domain.Session, in string) (domain.Frame, error) {
		return domain.Frame{
			Text: fmt.Sprintf("Visits: %v", s.Get("visits", 0)),
			Options: []domain.Option{
				{Key: "again", Target: domain.Call(func(ctx context.Context, s *domain.Session, in string) (domain.Transition, error) {
					s.Set("visits", s.Get("visits", 0).(int)+1)
					return domain.Goto("start"), nil
				})},
				{Key: "bye", Target: domain.Exit()},
			},
		}, nil
	}))
	eng, err := parley.New(reg, parley.WithIDGenerator(func() string { return "m1" }))
	require.NoError(t, err)
	return NewServer(eng)
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func structured[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.NotNil(t, result)
	require.False(t, result.IsError, "unexpected tool error: %+v", result.Content)
	v, ok := result.StructuredContent.(T)
	require.True(t, ok, "unexpected structured content %T", result.StructuredContent)
	return v
}

func TestTools_SessionFlow(t *testing.T) {
	ctx := context.Background()
	s := newServer(t)

	result, err := s.launchHandler()(ctx, callTool("launch_menu", map[string]any{"user_id": "agent"}))
	require.NoError(t, err)
	out := structured[domain.Output](t, result)
	assert.Equal(t, "m1", out.SessionID)
	assert.Contains(t, out.Body, "Visits: 0")

	result, err = s.submitHandler()(ctx, callTool("submit_input", map[string]any{"session_id": "m1", "input": "again"}))
	require.NoError(t, err)
	out = structured[domain.Output](t, result)
	assert.Contains(t, out.Body, "Visits: 1")

	result, err = s.getSessionHandler()(ctx, callTool("get_session", map[string]any{"session_id": "m1"}))
	require.NoError(t, err)
	state := structured[SessionResult](t, result)
	assert.Equal(t, "agent", state.Session.UserID)
	assert.Equal(t, 1, state.Session.Turns)

	result, err = s.closeHandler()(ctx, callTool("close_session", map[string]any{"session_id": "m1"}))
	require.NoError(t, err)
	assert.True(t, structured[CloseResult](t, result).Closed)

	result, err = s.getSessionHandler()(ctx, callTool("get_session", map[string]any{"session_id": "m1"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestTools_Errors(t *testing.T) {
	ctx := context.Background()
	s := newServer(t)

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
	}{
		{name: "submit without session", handler: s.submitHandler(), args: map[string]any{"input": "x"}},
		{name: "submit to unknown session", handler: s.submitHandler(), args: map[string]any{"session_id": "nope", "input": "x"}},
		{name: "launch on unknown node", handler: s.launchHandler(), args: map[string]any{"start_node": "ghost"}},
		{name: "close unknown session", handler: s.closeHandler(), args: map[string]any{"session_id": "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(ctx, callTool("tool", tt.args))
			require.NoError(t, err, "failures are reported as tool errors")
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}

func TestGraphResource(t *testing.T) {
	s := newServer(t)
	contents, err := s.graphHandler(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, GraphURI, text.URI)

	var nodes []domain.NodeInfo
	require.NoError(t, json.Unmarshal([]byte(text.Text), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "start", nodes[0].ID)
}

func TestNewServer(t *testing.T) {
	s := newServer(t)
	require.NotNil(t, s.MCPServer())
}
