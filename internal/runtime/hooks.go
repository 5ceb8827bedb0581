package runtime

import (
	"context"

	"github.com/aretw0/parley/pkg/domain"
)

func (e *Engine) nodeEvent(s *domain.Session, typ domain.EventType, nodeID, input string) *domain.NodeEvent {
	return &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: typ, SessionID: s.ID},
		NodeID:    nodeID,
		Input:     input,
	}
}

func (e *Engine) emitNodeEnter(ctx context.Context, s *domain.Session, nodeID string) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(ctx, e.nodeEvent(s, domain.EventNodeEnter, nodeID, ""))
}

func (e *Engine) emitNodeLeave(ctx context.Context, s *domain.Session, nodeID, input string) {
	if e.hooks.OnNodeLeave == nil {
		return
	}
	e.hooks.OnNodeLeave(ctx, e.nodeEvent(s, domain.EventNodeLeave, nodeID, input))
}

func (e *Engine) emitNoMatch(ctx context.Context, s *domain.Session, nodeID, input string) {
	if e.hooks.OnNoMatch == nil {
		return
	}
	e.hooks.OnNoMatch(ctx, e.nodeEvent(s, domain.EventNoMatch, nodeID, input))
}

func (e *Engine) emitNodeError(ctx context.Context, s *domain.Session, nodeID, input string, err error) {
	if e.hooks.OnNodeError == nil {
		return
	}
	ev := e.nodeEvent(s, domain.EventNodeError, nodeID, input)
	ev.Err = err
	e.hooks.OnNodeError(ctx, ev)
}

// emitSessionEnd receives the snapshot taken before the session was destroyed.
func (e *Engine) emitSessionEnd(ctx context.Context, final *domain.Session, reason string) {
	if e.hooks.OnSessionEnd == nil {
		return
	}
	e.hooks.OnSessionEnd(ctx, &domain.SessionEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventSessionEnd, SessionID: final.ID},
		UserID:    final.UserID,
		NodeID:    final.NodeID,
		Reason:    reason,
		Turns:     final.Turns,
		Values:    final.Values,
	})
}
