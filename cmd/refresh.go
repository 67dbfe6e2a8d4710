package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch the question catalog, keeping existing answers",
	Long:  "Reloads the question catalog from its source and merges your saved scores into it. The stored version label is bumped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		engine, kv, err := buildEngine(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := engine.Refresh(ctx); err != nil {
			return fmt.Errorf("refresh questionnaire: %w", err)
		}

		state, err := engine.Snapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Refreshed: %d questions, version %s\n", len(state.Questions), state.Version)
		return nil
	},
}
