package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-category completion and unlock status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		engine, kv, err := buildEngine(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := engine.EnsureLoaded(ctx); err != nil {
			return fmt.Errorf("load questionnaire: %w", err)
		}

		state, err := engine.Snapshot(ctx)
		if err != nil {
			return err
		}
		stats, err := engine.CategoryStats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Question set version %s\n\n", state.Version)
		for _, cs := range stats {
			unlocked, err := engine.IsCategoryUnlocked(ctx, cs.Title)
			if err != nil {
				return err
			}
			status := "locked"
			if unlocked {
				status = "unlocked"
			}
			fmt.Printf("%-16s %2d/%2d answered  %s\n", cs.Title, cs.AnsweredCount, cs.QuestionCount, status)
		}
		return nil
	},
}
