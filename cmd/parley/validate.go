package main

import (
	"fmt"

	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the menu graph for consistency",
	Long:  `Loads the menu and reports declared edges that lead nowhere or a missing entry node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		menu, start := menuFlags(cmd)

		entry, err := cli.Validate(cmd.Context(), cfg, menu, start, newLogger(cfg))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Menu is valid (entry node %q)\n", entry)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
