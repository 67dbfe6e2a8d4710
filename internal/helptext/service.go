// Package helptext generates per-question guidance through the LLM
// collaborator, with an in-session cache and next-question prefetch.
package helptext

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"venturemeter/internal/llm"
	"venturemeter/internal/questionnaire"
)

// Config tunes help text generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.4,
	}
}

// Result is one finished generation.
type Result struct {
	QuestionID int
	Text       string
	Err        error
}

// Service generates help text asynchronously and caches it per question
// for the lifetime of the session. Catalog-provided help text
// short-circuits generation entirely.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu       sync.Mutex
	cache    map[int]string
	inflight map[int]bool
	ready    []Result
}

// NewService creates a help text service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		cache:    make(map[int]string),
		inflight: make(map[int]bool),
	}
}

// Lookup returns cached help text for a question, if any.
func (s *Service) Lookup(questionID int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.cache[questionID]
	return text, ok
}

// Request starts generation for q unless already cached or in flight, and
// prefetches next so the following screen renders instantly.
func (s *Service) Request(ctx context.Context, q questionnaire.Question, next *questionnaire.Question, info *questionnaire.StartupInfo) {
	s.start(ctx, q, info)
	if next != nil {
		s.start(ctx, *next, info)
	}
}

// Consume drains one finished result, FIFO. ok is false when nothing is
// ready yet.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ready) == 0 {
		return Result{}, false
	}
	r := s.ready[0]
	s.ready = s.ready[1:]
	return r, true
}

func (s *Service) start(ctx context.Context, q questionnaire.Question, info *questionnaire.StartupInfo) {
	s.mu.Lock()
	if _, cached := s.cache[q.ID]; cached || s.inflight[q.ID] {
		s.mu.Unlock()
		return
	}

	// The catalog can carry its own help text; serve it without a round trip.
	if q.HelpText != "" {
		s.cache[q.ID] = q.HelpText
		s.ready = append(s.ready, Result{QuestionID: q.ID, Text: q.HelpText})
		s.mu.Unlock()
		return
	}

	s.inflight[q.ID] = true
	s.mu.Unlock()

	go func() {
		text, err := s.generate(ctx, q, info)

		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.inflight, q.ID)
		if err == nil {
			s.cache[q.ID] = text
		}
		s.ready = append(s.ready, Result{QuestionID: q.ID, Text: text, Err: err})
	}()
}

func (s *Service) generate(ctx context.Context, q questionnaire.Question, info *questionnaire.StartupInfo) (string, error) {
	ctx = llm.WithPurpose(ctx, "helptext")

	req := llm.Request{
		System: helpSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHelpUserMessage(q, info)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("help text generation: %w", err)
	}

	// Without a schema the content is raw text, possibly wrapped as a JSON
	// string by the provider.
	var unquoted string
	if json.Unmarshal(resp.Content, &unquoted) == nil {
		return unquoted, nil
	}
	return string(resp.Content), nil
}
