package llm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose attaches a purpose label ("helptext", "recommendation") to
// the context for request recording.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// RequestRecord captures the metadata of one provider call.
type RequestRecord struct {
	ID           string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// Recorder receives a RequestRecord per provider call. Recording never
// affects the outcome of the call itself.
type Recorder interface {
	Record(ctx context.Context, rec RequestRecord)
}

// NopRecorder discards records.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, RequestRecord) {}

// RecordingProvider is a decorator that records every request.
type RecordingProvider struct {
	inner    Provider
	recorder Recorder
}

// WithRecording wraps a Provider with request recording.
func WithRecording(p Provider, r Recorder) Provider {
	return &RecordingProvider{inner: p, recorder: r}
}

func (l *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	rec := RequestRecord{
		ID:        uuid.New().String(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	l.recorder.Record(ctx, rec)
	return resp, err
}

func (l *RecordingProvider) ModelID() string {
	return l.inner.ModelID()
}
