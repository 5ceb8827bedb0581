package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter  EventType = "node_enter"
	EventNodeLeave  EventType = "node_leave"
	EventNoMatch    EventType = "no_match"
	EventNodeError  EventType = "node_error"
	EventSessionEnd EventType = "session_end"
)

// End reasons reported on SessionEvent.
const (
	EndReasonSentinel = "end"           // an option resolved to End()
	EndReasonTerminal = "terminal_node" // a node rendered no options
	EndReasonQuit     = "quit"          // the user typed an auto-quit command
	EndReasonClosed   = "closed"        // the host destroyed the session
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// NodeEvent represents entry, exit, a missed match or a failure on a node.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Input  string `json:"input,omitempty"`
	Err    error  `json:"-"`
}

// SessionEvent is emitted once when a session terminates.
// Values is the final snapshot, taken before the session is destroyed, so hosts
// can commit results to durable records.
type SessionEvent struct {
	EventBase
	UserID string         `json:"user_id,omitempty"`
	NodeID string         `json:"node_id"`
	Reason string         `json:"reason"`
	Turns  int            `json:"turns"`
	Values map[string]any `json:"values,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter  func(context.Context, *NodeEvent)
	OnNodeLeave  func(context.Context, *NodeEvent)
	OnNoMatch    func(context.Context, *NodeEvent)
	OnNodeError  func(context.Context, *NodeEvent)
	OnSessionEnd func(context.Context, *SessionEvent)
}

// ChainHooks combines several hook sets; callbacks run in argument order.
func ChainHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		out.OnNodeEnter = chainNode(out.OnNodeEnter, h.OnNodeEnter)
		out.OnNodeLeave = chainNode(out.OnNodeLeave, h.OnNodeLeave)
		out.OnNoMatch = chainNode(out.OnNoMatch, h.OnNoMatch)
		out.OnNodeError = chainNode(out.OnNodeError, h.OnNodeError)
		out.OnSessionEnd = chainSession(out.OnSessionEnd, h.OnSessionEnd)
	}
	return out
}

func chainNode(a, b func(context.Context, *NodeEvent)) func(context.Context, *NodeEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *NodeEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainSession(a, b func(context.Context, *SessionEvent)) func(context.Context, *SessionEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *SessionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
