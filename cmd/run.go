package cmd

import (
	"fmt"
	"os"

	"venturemeter/internal/app"
	"venturemeter/internal/auth"
	"venturemeter/internal/helptext"
	"venturemeter/internal/llm"
	"venturemeter/internal/questionnaire"
	"venturemeter/internal/recommend"
	"venturemeter/internal/source"
	"venturemeter/internal/statestore"

	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	engine, kv, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := engine.EnsureLoaded(ctx); err != nil {
		return fmt.Errorf("load questionnaire: %w", err)
	}

	opts := app.Options{
		Engine: engine,
		Gate:   auth.NewGate(kv, auth.PasswordFromEnv()),
	}

	provider, err := llm.NewProviderFromEnv(ctx, llm.NopRecorder{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Guidance and the readiness report will be unavailable.")
	} else {
		opts.HelpService = helptext.NewService(provider, helptext.DefaultConfig())
		opts.Recommender = recommend.NewService(provider, recommend.DefaultConfig())
	}

	return app.Run(opts)
}

// buildEngine opens the SQLite medium and assembles the state engine over
// it. The caller owns closing the returned KV.
func buildEngine(cmd *cobra.Command) (*questionnaire.Engine, *statestore.SQLiteKV, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	kv, err := statestore.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	reporter := questionnaire.StderrReporter{}
	store := statestore.New(kv, reporter)
	engine := questionnaire.NewEngine(store, source.FromEnv(), questionnaire.DefaultConfig(), reporter)
	return engine, kv, nil
}
