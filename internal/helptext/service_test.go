package helptext

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"venturemeter/internal/llm"
	"venturemeter/internal/questionnaire"
)

func testQuestion(id int) questionnaire.Question {
	return questionnaire.Question{
		ID:       id,
		Category: "Market",
		Text:     "Have you validated the problem with real customers?",
		Options: []string{
			"Not at all", "A few chats", "Structured interviews", "Paying pilots", "Repeat revenue",
		},
	}
}

func waitConsume(t *testing.T, s *Service) Result {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r, ok := s.Consume(); ok {
			return r
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no result became ready")
	return Result{}
}

func TestRequestGeneratesAndCaches(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"Talk to ten customers this week."`),
	})
	s := NewService(mock, DefaultConfig())

	q := testQuestion(1)
	s.Request(context.Background(), q, nil, nil)

	r := waitConsume(t, s)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.QuestionID != 1 {
		t.Errorf("QuestionID = %d, want 1", r.QuestionID)
	}
	if r.Text != "Talk to ten customers this week." {
		t.Errorf("unexpected text: %q", r.Text)
	}

	text, ok := s.Lookup(1)
	if !ok || text != r.Text {
		t.Errorf("Lookup(1) = %q, %v; want cached text", text, ok)
	}

	// Cached now: a second request must not call the provider again.
	s.Request(context.Background(), q, nil, nil)
	if _, ok := s.Consume(); ok {
		t.Error("cached question produced a new result")
	}
	if len(mock.Calls) != 1 {
		t.Errorf("provider called %d times, want 1", len(mock.Calls))
	}
}

func TestCatalogHelpTextShortCircuits(t *testing.T) {
	mock := llm.NewMockProvider()
	s := NewService(mock, DefaultConfig())

	q := testQuestion(3)
	q.HelpText = "Revenue retention is the clearest traction signal."
	s.Request(context.Background(), q, nil, nil)

	r, ok := s.Consume()
	if !ok {
		t.Fatal("catalog help text should be ready immediately")
	}
	if r.Text != q.HelpText {
		t.Errorf("Text = %q, want catalog help text", r.Text)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("provider called %d times, want 0", len(mock.Calls))
	}
}

func TestRequestPrefetchesNext(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"current"`)},
		llm.MockResponse{Content: json.RawMessage(`"next"`)},
	)
	s := NewService(mock, DefaultConfig())

	q := testQuestion(1)
	next := testQuestion(2)
	s.Request(context.Background(), q, &next, nil)

	seen := map[int]string{}
	for range 2 {
		r := waitConsume(t, s)
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		seen[r.QuestionID] = r.Text
	}
	if len(seen) != 2 {
		t.Fatalf("expected results for both questions, got %v", seen)
	}
	if _, ok := s.Lookup(2); !ok {
		t.Error("next question was not prefetched into the cache")
	}
}

func TestGenerationErrorNotCached(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: json.RawMessage(`"second try"`)},
	)
	s := NewService(mock, DefaultConfig())

	q := testQuestion(5)
	s.Request(context.Background(), q, nil, nil)
	r := waitConsume(t, s)
	if r.Err == nil {
		t.Fatal("expected a generation error")
	}
	if _, ok := s.Lookup(5); ok {
		t.Error("failed generation must not be cached")
	}

	// A later request retries.
	s.Request(context.Background(), q, nil, nil)
	r = waitConsume(t, s)
	if r.Err != nil || r.Text != "second try" {
		t.Errorf("retry result = %q, %v", r.Text, r.Err)
	}
}

func TestPromptCarriesStartupContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`"ok"`)})
	s := NewService(mock, DefaultConfig())

	info := &questionnaire.StartupInfo{
		Industry:        "fintech",
		ProductCategory: "B2B SaaS",
		TargetCustomers: "mid-market CFOs",
	}
	s.Request(context.Background(), testQuestion(1), nil, info)
	waitConsume(t, s)

	if len(mock.Calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(mock.Calls))
	}
	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"fintech", "B2B SaaS", "mid-market CFOs", "Market"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
