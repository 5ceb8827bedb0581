// Package mcp exposes keyed menu sessions as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName = "parley-mcp"
	// GraphURI is the resource listing the registered nodes.
	GraphURI = "parley://graph"
)

// Engine is the part of *parley.Engine the server needs.
type Engine interface {
	Open(ctx context.Context, userID, startNode string) (domain.Output, error)
	Submit(ctx context.Context, sessionID, raw string) (domain.Output, error)
	View(ctx context.Context, sessionID string) (domain.Output, error)
	State(ctx context.Context, sessionID string) (*domain.Session, error)
	Close(ctx context.Context, sessionID string) error
	Inspect() []domain.NodeInfo
}

var _ Engine = (*parley.Engine)(nil)

// LaunchInput is the input of launch_menu.
type LaunchInput struct {
	UserID    string `json:"user_id,omitempty"`
	StartNode string `json:"start_node,omitempty"`
}

// SubmitInput is the input of submit_input.
type SubmitInput struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

// SessionInput names a session.
type SessionInput struct {
	SessionID string `json:"session_id"`
}

// SessionResult is returned by get_session.
type SessionResult struct {
	Output  domain.Output   `json:"output"`
	Session *domain.Session `json:"session"`
}

// CloseResult is returned by close_session.
type CloseResult struct {
	SessionID string `json:"session_id"`
	Closed    bool   `json:"closed"`
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine: engine,
		mcpServer: server.NewMCPServer(serverName, strings.TrimSpace(parley.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. to serve it over SSE.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("launch_menu",
		mcp.WithDescription("Start a new menu session. Returns the first screen and the session_id to use in later calls."),
		mcp.WithString("user_id", mcp.Description("Who the session belongs to (optional)")),
		mcp.WithString("start_node", mcp.Description("Node to start on (optional, defaults to the entry node)")),
		mcp.WithOutputSchema[domain.Output](),
	), s.launchHandler())

	s.mcpServer.AddTool(mcp.NewTool("submit_input",
		mcp.WithDescription("Send one line of input to a session. Pick one of the listed option keys."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by launch_menu")),
		mcp.WithString("input", mcp.Required(), mcp.Description("User input")),
		mcp.WithOutputSchema[domain.Output](),
	), s.submitHandler())

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Show the current screen and state of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResult](),
	), s.getSessionHandler())

	s.mcpServer.AddTool(mcp.NewTool("close_session",
		mcp.WithDescription("End a session and discard its state."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[CloseResult](),
	), s.closeHandler())
}

func (s *Server) launchHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input LaunchInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid launch_menu arguments", err), nil
		}
		out, err := s.engine.Open(ctx, input.UserID, input.StartNode)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("launch failed", err), nil
		}
		return mcp.NewToolResultStructuredOnly(out), nil
	}
}

func (s *Server) submitHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input SubmitInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid submit_input arguments", err), nil
		}
		if input.SessionID == "" {
			return mcp.NewToolResultError("session_id is required"), nil
		}
		out, err := s.engine.Submit(ctx, input.SessionID, input.Input)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("submit failed", err), nil
		}
		return mcp.NewToolResultStructuredOnly(out), nil
	}
}

func (s *Server) getSessionHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input SessionInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid get_session arguments", err), nil
		}
		out, err := s.engine.View(ctx, input.SessionID)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("get session failed", err), nil
		}
		state, err := s.engine.State(ctx, input.SessionID)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("get session failed", err), nil
		}
		return mcp.NewToolResultStructuredOnly(SessionResult{Output: out, Session: state}), nil
	}
}

func (s *Server) closeHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input SessionInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid close_session arguments", err), nil
		}
		if err := s.engine.Close(ctx, input.SessionID); err != nil {
			return mcp.NewToolResultErrorFromErr("close failed", err), nil
		}
		return mcp.NewToolResultStructuredOnly(CloseResult{SessionID: input.SessionID, Closed: true}), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Menu graph",
		mcp.WithResourceDescription("Registered nodes with their declared edges"),
		mcp.WithMIMEType("application/json"),
	), s.graphHandler)
}

func (s *Server) graphHandler(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.engine.Inspect())
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
