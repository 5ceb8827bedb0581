package main

import (
	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [menu]",
	Short: "Run a menu session in the terminal",
	Long: `Starts a menu session on stdin/stdout. Type an option key, its number, or one of
the auto commands (quit, look, help). With --json, input and output are NDJSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		menu, start := menuFlags(cmd)
		if !cmd.Flags().Changed("menu") && len(args) > 0 {
			menu = args[0]
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		markdown, _ := cmd.Flags().GetBool("markdown")
		sessionID, _ := cmd.Flags().GetString("session")
		userID, _ := cmd.Flags().GetString("user")

		return cli.Run(cmd.Context(), cfg, cli.RunOptions{
			Menu:      menu,
			StartNode: start,
			UserID:    userID,
			SessionID: sessionID,
			JSON:      jsonMode,
			Markdown:  markdown,
			Debug:     debugEnabled(cfg),
		}, newLogger(cfg))
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in character creation menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cmd.Flags().Set("menu", cli.DemoMenu); err != nil {
			return err
		}
		return runCmd.RunE(cmd, nil)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(demoCmd)

	for _, c := range []*cobra.Command{runCmd, demoCmd} {
		c.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
		c.Flags().Bool("markdown", false, "Render frames as markdown on terminals")
		c.Flags().String("session", "", "Resume a stored session by ID (requires --redis)")
		c.Flags().String("user", "", "User the session belongs to")
	}

	// 'run' is the default if no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
