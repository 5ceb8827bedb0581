package main

import (
	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves the menu as MCP tools (launch_menu, submit_input, get_session,
close_session) over standard input/output. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		menu, start := menuFlags(cmd)
		return cli.ServeMCP(cmd.Context(), cfg, menu, start, newLogger(cfg))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
