package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/pkg/adapters/mcp"
)

// ServeMCP exposes the menu as MCP tools over stdio until the input closes.
// stdout carries JSON-RPC, so logger must write elsewhere.
func ServeMCP(ctx context.Context, cfg config.Config, menuSource, startNode string, logger *slog.Logger) error {
	menu, err := LoadMenu(ctx, menuSource)
	if err != nil {
		return err
	}
	res, err := NewEngine(ctx, cfg, menu, EngineOptions{StartNode: startNode}, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	logger.Info("mcp server starting on stdio", "menu", menu.Source)
	return mcp.NewServer(res.Engine).ServeStdio()
}
