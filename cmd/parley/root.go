package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/runner"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley serves numbered text menus as interactive sessions",
	Long: `Parley runs menus built from nodes: each node shows a text and a list of options,
and each answer moves the session to the next node. Menus come from Go code (the
built-in demo), a YAML file, or a directory of markdown files.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process status; interrupts use 128+SIGINT.
func exitCode(err error) int {
	if errors.Is(err, runner.ErrInterrupted) {
		return 130
	}
	return 1
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("menu", "m", "demo", "Menu source: 'demo', a .yaml file or a directory of markdown nodes")
	rootCmd.PersistentFlags().String("start", "", "Entry node (defaults to the menu's declared start)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides PARLEY_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for shared sessions (overrides PARLEY_REDIS_ADDR)")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("redis") {
		cfg.RedisAddr, _ = cmd.Flags().GetString("redis")
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}

func menuFlags(cmd *cobra.Command) (menu, start string) {
	menu, _ = cmd.Flags().GetString("menu")
	start, _ = cmd.Flags().GetString("start")
	return menu, start
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func debugEnabled(cfg config.Config) bool {
	return logging.ParseLevel(cfg.LogLevel) <= slog.LevelDebug
}
