// Package questionnaire implements the assessment state engine: catalog
// ingestion, persisted progress, the category unlock gate and completion
// statistics.
package questionnaire

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StateStore is the persistence collaborator. Read returns nil when no
// record exists (including the documented no-op medium that never stores
// anything).
type StateStore interface {
	Read() (*State, error)
	Write(questions []Question, version string, info *StartupInfo) error
	Clear() error
}

// CatalogSource produces the raw delimited catalog text.
type CatalogSource interface {
	FetchCSV(ctx context.Context) (string, error)
}

// Config carries the engine's fixed configuration.
type Config struct {
	// Parser fixes the catalog column layout.
	Parser ParserConfig

	// CategoryOrder is the total order over category names that drives the
	// unlock gate. Categories missing from it sort after the configured
	// ones, in catalog order.
	CategoryOrder []string
}

// DefaultConfig returns the configuration for the shipped catalog.
func DefaultConfig() Config {
	return Config{
		Parser:        DefaultParserConfig(),
		CategoryOrder: []string{"Market", "Product", "Team", "Traction", "Finance"},
	}
}

// Engine is the questionnaire session object. It holds no process-wide
// state; everything it knows lives in the store or in its configuration.
//
// The engine provides no internal locking: callers are expected to
// serialize operations against the same persisted record. Two concurrent
// SaveProgress calls racing on read-then-write can lose an update.
type Engine struct {
	store    StateStore
	source   CatalogSource
	parser   *Parser
	order    []string
	reporter Reporter
}

// NewEngine creates an engine over the given collaborators.
// A nil reporter discards warnings.
func NewEngine(store StateStore, src CatalogSource, cfg Config, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Engine{
		store:    store,
		source:   src,
		parser:   NewParser(cfg.Parser, reporter),
		order:    cfg.CategoryOrder,
		reporter: reporter,
	}
}

// EnsureLoaded makes sure a persisted record exists, loading and storing
// the catalog on first run. Callers invoke it once before queries; it never
// retries itself.
func (e *Engine) EnsureLoaded(ctx context.Context) error {
	state, err := e.store.Read()
	if err != nil {
		return err
	}
	if state != nil {
		return nil
	}

	questions, err := e.loadCatalog(ctx)
	if err != nil {
		return err
	}
	return e.store.Write(questions, InitialVersion, nil)
}

// Snapshot returns the current state: the persisted record when one exists,
// otherwise a fresh unpersisted catalog load (the no-op medium mode).
func (e *Engine) Snapshot(ctx context.Context) (*State, error) {
	state, err := e.store.Read()
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}

	questions, err := e.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return &State{Questions: questions, Version: InitialVersion}, nil
}

// Questions returns all questions in catalog order.
func (e *Engine) Questions(ctx context.Context) ([]Question, error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return state.Questions, nil
}

// Question returns the question with the given id.
func (e *Engine) Question(ctx context.Context, id int) (*Question, error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	q := state.Question(id)
	if q == nil {
		return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return q, nil
}

// SaveProgress records a score for a question and re-persists the full
// record under the same version. Progress saves never bump the version.
func (e *Engine) SaveProgress(ctx context.Context, questionID, score int) error {
	if questionID <= 0 {
		return fmt.Errorf("%w: question id %d must be positive", ErrInvalidArgument, questionID)
	}
	if score < 1 || score > 5 {
		return fmt.Errorf("%w: score %d outside [1,5]", ErrInvalidArgument, score)
	}

	state, err := e.store.Read()
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("no persisted state: %w", ErrNotFound)
	}

	q := state.Question(questionID)
	if q == nil {
		return fmt.Errorf("question %d: %w", questionID, ErrNotFound)
	}

	s := score
	q.SelectedScore = &s
	return e.store.Write(state.Questions, state.Version, state.StartupInfo)
}

// ExportProgress serializes the persisted record, or "{}" when none exists.
func (e *Engine) ExportProgress(ctx context.Context) (string, error) {
	state, err := e.store.Read()
	if err != nil {
		return "", err
	}
	if state == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	return string(raw), nil
}

// ImportProgress replaces the persisted record with the decoded payload.
// This is a destructive overwrite, not a merge.
func (e *Engine) ImportProgress(ctx context.Context, payload string) error {
	var state State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if state.Questions == nil {
		return fmt.Errorf("%w: missing questions array", ErrInvalidPayload)
	}
	if state.Version == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidPayload)
	}
	return e.store.Write(state.Questions, state.Version, state.StartupInfo)
}

// Refresh reloads the catalog from source and merges stored progress into
// it: scores carry over by matching id, removed questions are dropped, new
// questions start unanswered. The version advances by the fixed increment
// rule; startup info is preserved. This is the only path that changes the
// version.
func (e *Engine) Refresh(ctx context.Context) error {
	fresh, err := e.loadCatalog(ctx)
	if err != nil {
		return err
	}

	stored, err := e.store.Read()
	if err != nil {
		return err
	}
	if stored == nil {
		return e.store.Write(fresh, InitialVersion, nil)
	}

	for i := range fresh {
		if old := stored.Question(fresh[i].ID); old != nil {
			fresh[i].SelectedScore = old.SelectedScore
		}
	}
	return e.store.Write(fresh, bumpVersion(stored.Version), stored.StartupInfo)
}

// SetStartupInfo attaches venture context to the persisted record without
// touching scores or version.
func (e *Engine) SetStartupInfo(ctx context.Context, info StartupInfo) error {
	state, err := e.store.Read()
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("no persisted state: %w", ErrNotFound)
	}
	return e.store.Write(state.Questions, state.Version, &info)
}

// StartupInfo returns the stored venture context, or nil when unset.
func (e *Engine) StartupInfo(ctx context.Context) (*StartupInfo, error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return state.StartupInfo, nil
}

// Reset wipes the persisted record.
func (e *Engine) Reset(ctx context.Context) error {
	return e.store.Clear()
}

// CategoryStats returns the per-category completion summary.
func (e *Engine) CategoryStats(ctx context.Context) ([]CategoryStats, error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return CalculateCategoryStats(state.Questions), nil
}

// IsCategoryUnlocked evaluates the unlock gate for category against the
// current question list.
func (e *Engine) IsCategoryUnlocked(ctx context.Context, category string) (bool, error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	return IsCategoryUnlocked(state.Questions, e.order, category), nil
}

// NextAvailableQuestion returns the gated next question after currentID.
// ok is false when navigation has nowhere further to go (see
// NextAvailableQuestionIn for the cases).
func (e *Engine) NextAvailableQuestion(ctx context.Context, currentID int) (id int, ok bool, err error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return 0, false, err
	}
	if state.Question(currentID) == nil {
		return 0, false, fmt.Errorf("question %d: %w", currentID, ErrNotFound)
	}
	id, ok = NextAvailableQuestionIn(state.Questions, e.order, currentID)
	return id, ok, nil
}

// FirstRelevantQuestionID returns the entry point into a category.
func (e *Engine) FirstRelevantQuestionID(ctx context.Context, category string) (id int, ok bool, err error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return 0, false, err
	}
	id, ok = FirstRelevantQuestionIDIn(state.Questions, category)
	return id, ok, nil
}

// NextUnansweredQuestion returns the first unanswered question overall.
func (e *Engine) NextUnansweredQuestion(ctx context.Context) (id int, ok bool, err error) {
	state, err := e.Snapshot(ctx)
	if err != nil {
		return 0, false, err
	}
	id, ok = NextUnansweredQuestionIn(state.Questions)
	return id, ok, nil
}

// CategoryOrder exposes the configured category order.
func (e *Engine) CategoryOrder() []string {
	return e.order
}

// loadCatalog fetches and parses a fresh question set.
func (e *Engine) loadCatalog(ctx context.Context) ([]Question, error) {
	raw, err := e.source.FetchCSV(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return e.parser.Parse(raw)
}

// bumpVersion advances the version label by the fixed increment rule:
// the last dot-separated numeric segment goes up by one ("1.0" -> "1.1",
// "1.9" -> "1.10"). Unparseable labels restart at the initial version.
func bumpVersion(v string) string {
	if i := strings.LastIndex(v, "."); i >= 0 {
		if n, err := strconv.Atoi(v[i+1:]); err == nil {
			return v[:i+1] + strconv.Itoa(n+1)
		}
	} else if n, err := strconv.Atoi(v); err == nil {
		return strconv.Itoa(n + 1)
	}
	return InitialVersion
}
