package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import progress from a JSON export",
	Long:  "Replaces the entire saved assessment record with the given JSON export. Reads from standard input when no file is named.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("read import payload: %w", err)
		}

		engine, kv, err := buildEngine(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := engine.ImportProgress(ctx, string(data)); err != nil {
			return fmt.Errorf("import progress: %w", err)
		}

		state, err := engine.Snapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Imported: %d questions, version %s\n", len(state.Questions), state.Version)
		return nil
	},
}
