// Package recommend turns a completed assessment into a structured,
// actionable report via the LLM collaborator.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"

	"venturemeter/internal/llm"
	"venturemeter/internal/questionnaire"
)

// Config tunes report generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2000,
		Temperature: 0.5,
	}
}

// Service generates assessment reports.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a recommendation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// GenerateReport builds a report from the current assessment state. It
// requires at least one answered question.
func (s *Service) GenerateReport(ctx context.Context, state *questionnaire.State, stats []questionnaire.CategoryStats) (*Report, error) {
	if state == nil {
		return nil, fmt.Errorf("generate report: %w", questionnaire.ErrInvalidArgument)
	}
	answered := 0
	for _, q := range state.Questions {
		if q.Answered() {
			answered++
		}
	}
	if answered == 0 {
		return nil, fmt.Errorf("generate report: no answered questions: %w", questionnaire.ErrInvalidArgument)
	}

	ctx = llm.WithPurpose(ctx, "recommend")

	req := llm.Request{
		System: reportSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReportUserMessage(state.Questions, stats, state.StartupInfo)},
		},
		Schema:      reportSchema(),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("report generation: %w", err)
	}

	var report Report
	if err := json.Unmarshal(resp.Content, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
