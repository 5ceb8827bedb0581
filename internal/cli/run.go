package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/internal/presentation/tui"
	"github.com/aretw0/parley/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Menu      string
	StartNode string
	UserID    string
	// SessionID resumes a stored session. Requires a shared store to outlive the process.
	SessionID string
	JSON      bool
	Markdown  bool
	Debug     bool
}

// Run serves one menu session on stdin/stdout until it terminates or the input ends.
func Run(ctx context.Context, cfg config.Config, opts RunOptions, logger *slog.Logger) error {
	menu, err := LoadMenu(ctx, opts.Menu)
	if err != nil {
		return err
	}

	engineOpts := EngineOptions{StartNode: opts.StartNode, Debug: opts.Debug}
	interactive := !opts.JSON && tui.IsTerminal(os.Stdout)
	if !opts.JSON {
		r, err := tui.NewRenderer(os.Stdout, opts.Markdown)
		if err != nil {
			return err
		}
		engineOpts.Renderer = r
	}

	res, err := NewEngine(ctx, cfg, menu, engineOpts, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(os.Stdin, os.Stdout)
	} else {
		if interactive {
			tui.PrintBanner(os.Stdout)
		}
		handler = runner.NewTextHandler(os.Stdin, os.Stdout)
	}

	r := runner.NewRunner(
		runner.WithEngine(res.Engine),
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithUserID(opts.UserID),
		runner.WithSessionID(opts.SessionID),
		runner.WithKeyed(cfg.RedisAddr != ""),
	)
	return r.Run(ctx)
}
