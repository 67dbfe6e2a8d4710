package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-report",
	Description: "test schema",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"summary"},
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"score":   map[string]any{"type": "integer"},
		},
	},
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`whatever`)); err != nil {
		t.Errorf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"summary": "looks good", "score": 4}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Errorf("validateResponse: %v", err)
	}
}

func TestValidateResponse_InvalidJSON(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`not json`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponse_SchemaViolation(t *testing.T) {
	cases := []string{
		`{}`,
		`{"summary": 7}`,
		`{"summary": "ok", "score": "high"}`,
	}
	for _, raw := range cases {
		err := validateResponse(testSchema, json.RawMessage(raw))
		var invalid *ErrInvalidResponse
		if !errors.As(err, &invalid) {
			t.Errorf("validateResponse(%s) = %v, want ErrInvalidResponse", raw, err)
		}
	}
}
