package main

import (
	"fmt"

	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the menu graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the menu. With --session, the path
the stored session took and its current node are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		menu, start := menuFlags(cmd)
		sessionID, _ := cmd.Flags().GetString("session")

		out, err := cli.Graph(cmd.Context(), cfg, menu, start, sessionID, newLogger(cfg))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight a stored session (requires --redis)")
}
