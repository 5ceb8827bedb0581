package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/parley/pkg/domain"
)

// LogHooks writes one structured record per engine event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter", "session_id", e.SessionID, "node_id", e.NodeID)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_leave", "session_id", e.SessionID, "node_id", e.NodeID)
		},
		OnNoMatch: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "no_match", "session_id", e.SessionID, "node_id", e.NodeID)
		},
		OnNodeError: func(ctx context.Context, e *domain.NodeEvent) {
			logger.WarnContext(ctx, "node_error", "session_id", e.SessionID, "node_id", e.NodeID, "err", e.Err)
		},
		OnSessionEnd: func(ctx context.Context, e *domain.SessionEvent) {
			logger.InfoContext(ctx, "session_end",
				"session_id", e.SessionID,
				"user_id", e.UserID,
				"node_id", e.NodeID,
				"reason", e.Reason,
				"turns", e.Turns,
			)
		},
	}
}
