package cmd

import (
	"venturemeter/internal/statestore"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "venturemeter",
	Short: "Startup self-assessment in your terminal",
	Long:  "Venture Meter — a guided self-assessment that scores your startup across market, product, team, traction and finance.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VENTUREMETER_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VENTUREMETER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, statestore.EnsureDir(p)
	}
	return statestore.DefaultDBPath()
}
