package main

import (
	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the menu as a JSON API over HTTP, with server-sent events per session and
Prometheus metrics on /metrics. Idle sessions are reaped in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		menu, start := menuFlags(cmd)
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		return cli.Serve(ctx, cfg, cli.ServeOptions{
			Menu:      menu,
			StartNode: start,
			Addr:      addr,
			Debug:     debugEnabled(cfg),
		}, newLogger(cfg))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides PARLEY_HTTP_ADDR)")
}
