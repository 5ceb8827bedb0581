package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/resolver"
)

// turn runs one input against the current node. Callers hold the turn lock.
func (e *Engine) turn(ctx context.Context, s *domain.Session, input string) (domain.Output, error) {
	nodeID := s.CurrentNode()

	frame, err := e.render(ctx, s, nodeID, input)
	if err != nil {
		return domain.Output{}, err
	}

	if out, handled, err := e.command(ctx, s, nodeID, frame, resolver.Normalize(input)); handled {
		return out, err
	}

	res, err := resolver.Resolve(ctx, s, frame.Options, input)
	if err != nil {
		return domain.Output{}, e.fail(ctx, s, nodeID, input, err)
	}

	if !res.Matched {
		e.emitNoMatch(ctx, s, nodeID, input)
		s.CompleteTurn()
		return e.output(s, frame, false)
	}

	e.emitNodeLeave(ctx, s, nodeID, input)

	if res.Transition.IsEnd() {
		s.CompleteTurn()
		e.terminate(ctx, s, domain.EndReasonSentinel)
		return e.output(s, domain.Frame{}, true)
	}

	target := res.Transition.NodeID()
	if !e.registry.Has(target) {
		return domain.Output{}, e.fail(ctx, s, nodeID, input,
			fmt.Errorf("transition to %q: %w", target, domain.ErrUnknownNode))
	}

	e.logger.DebugContext(ctx, "transition", "session_id", s.ID, "from", nodeID, "to", target)
	s.Advance(target)
	s.CompleteTurn()
	return e.enter(ctx, s, target)
}

// enter renders a freshly reached node with empty input. A node without options
// is terminal: its frame is still returned but the session ends.
func (e *Engine) enter(ctx context.Context, s *domain.Session, nodeID string) (domain.Output, error) {
	e.emitNodeEnter(ctx, s, nodeID)

	frame, err := e.render(ctx, s, nodeID, "")
	if err != nil {
		return domain.Output{}, err
	}

	if frame.IsTerminal() {
		out, err := e.output(s, frame, true)
		e.terminate(ctx, s, domain.EndReasonTerminal)
		out.Terminated = true
		return out, err
	}
	return e.output(s, frame, true)
}

// terminate destroys the session values and reports the final snapshot.
func (e *Engine) terminate(ctx context.Context, s *domain.Session, reason string) {
	final := s.Snapshot()
	s.Destroy()

	e.logger.InfoContext(ctx, "session ended",
		"session_id", s.ID,
		"node_id", final.NodeID,
		"reason", reason,
		"turns", final.Turns,
	)
	e.emitSessionEnd(ctx, final, reason)
}

// fail wraps err with the failing node, reports it and leaves the session as is.
func (e *Engine) fail(ctx context.Context, s *domain.Session, nodeID, input string, err error) error {
	nodeErr := &domain.NodeExecutionError{NodeID: nodeID, Err: err}
	e.logger.ErrorContext(ctx, "node execution failed", "session_id", s.ID, "node_id", nodeID, "error", err)
	e.emitNodeError(ctx, s, nodeID, input, nodeErr)
	return nodeErr
}
