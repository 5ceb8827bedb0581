package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/internal/presentation/graph"
	"github.com/aretw0/parley/pkg/domain"
)

// Validate loads the menu and builds an engine over it, which checks every
// declared edge and the entry node. It returns the entry node on success.
func Validate(ctx context.Context, cfg config.Config, menuSource, startNode string, logger *slog.Logger) (string, error) {
	menu, err := LoadMenu(ctx, menuSource)
	if err != nil {
		return "", err
	}
	// A shared store plays no part in validation.
	cfg.RedisAddr = ""
	res, err := NewEngine(ctx, cfg, menu, EngineOptions{StartNode: startNode}, logger)
	if err != nil {
		return "", err
	}
	defer res.Close()
	return res.Engine.EntryNode(), nil
}

// Graph renders the menu as a Mermaid flowchart. With a sessionID, the
// session's path and current node are highlighted.
func Graph(ctx context.Context, cfg config.Config, menuSource, startNode, sessionID string, logger *slog.Logger) (string, error) {
	menu, err := LoadMenu(ctx, menuSource)
	if err != nil {
		return "", err
	}
	if sessionID == "" {
		cfg.RedisAddr = ""
	}
	res, err := NewEngine(ctx, cfg, menu, EngineOptions{StartNode: startNode}, logger)
	if err != nil {
		return "", err
	}
	defer res.Close()

	var sess *domain.Session
	if sessionID != "" {
		sess, err = res.Engine.State(ctx, sessionID)
		if err != nil {
			return "", fmt.Errorf("load session %s: %w", sessionID, err)
		}
	}
	return graph.GenerateMermaid(res.Engine.Inspect(), res.Engine.EntryNode(), graph.OverlayFor(sess)), nil
}
