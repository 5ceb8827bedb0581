package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/parley/pkg/domain"
)

// render calls the node's render function and normalizes its options.
// Errors and panics are reported as *domain.NodeExecutionError.
func (e *Engine) render(ctx context.Context, s *domain.Session, nodeID, input string) (domain.Frame, error) {
	fn, err := e.registry.Resolve(nodeID)
	if err != nil {
		return domain.Frame{}, e.fail(ctx, s, nodeID, input, err)
	}

	frame, err := safeRender(ctx, fn, s, input)
	if err != nil {
		return domain.Frame{}, e.fail(ctx, s, nodeID, input, err)
	}

	options, err := domain.NormalizeOptions(frame.Options)
	if err != nil {
		return domain.Frame{}, e.fail(ctx, s, nodeID, input, err)
	}
	frame.Options = options

	if dup := duplicateKey(options); dup != "" {
		e.logger.WarnContext(ctx, "duplicate option key, first one wins", "node_id", nodeID, "key", dup)
	}
	return frame, nil
}

func safeRender(ctx context.Context, fn domain.RenderFunc, s *domain.Session, input string) (frame domain.Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panicked: %v", r)
		}
	}()
	return fn(ctx, s, input)
}

func duplicateKey(options []domain.Option) string {
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt.IsWildcard() {
			continue
		}
		for _, k := range append([]string{opt.Key}, opt.Aliases...) {
			if _, ok := seen[k]; ok {
				return k
			}
			seen[k] = struct{}{}
		}
	}
	return ""
}

// output formats the frame into the presentable result of a turn.
func (e *Engine) output(s *domain.Session, frame domain.Frame, matched bool) (domain.Output, error) {
	body, err := e.renderer.Format(frame)
	if err != nil {
		return domain.Output{}, fmt.Errorf("format node %q: %w", s.CurrentNode(), err)
	}
	return domain.Output{
		SessionID:  s.ID,
		NodeID:     s.CurrentNode(),
		Body:       body,
		Options:    frame.Views(),
		Matched:    matched,
		Terminated: s.IsTerminated(),
		Frame:      frame,
	}, nil
}
