package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export saved progress as JSON",
	Long:  "Writes the full saved assessment record as JSON to the given file, or to standard output when no file is named.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		engine, kv, err := buildEngine(cmd)
		if err != nil {
			return err
		}
		defer kv.Close()

		payload, err := engine.ExportProgress(ctx)
		if err != nil {
			return fmt.Errorf("export progress: %w", err)
		}

		if len(args) == 0 {
			fmt.Println(payload)
			return nil
		}

		if err := os.WriteFile(args[0], []byte(payload), 0600); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Exported to", args[0])
		return nil
	},
}
