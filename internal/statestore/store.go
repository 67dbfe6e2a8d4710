package statestore

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"venturemeter/internal/questionnaire"
)

// DefaultKey is the well-known key the entire persisted record lives under.
const DefaultKey = "venture-meter-questionnaire"

// stateSchema is the structural validity condition for a stored payload:
// a questions array and a non-empty version string. Anything else counts
// as corrupt.
const stateSchema = `{
	"type": "object",
	"required": ["questions", "version"],
	"properties": {
		"questions": {"type": "array"},
		"version": {"type": "string", "minLength": 1}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledStateSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(stateSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse state schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://state.json", doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://state.json")
	})
	return compiledSchema, schemaErr
}

// Store reads and writes the versioned questionnaire record as one unit.
// It exclusively owns the on-medium representation; every other component
// works on in-memory copies obtained from it.
type Store struct {
	kv       KV
	key      string
	reporter questionnaire.Reporter
}

// New creates a Store over the given medium at the well-known key.
// A nil reporter discards corruption warnings.
func New(kv KV, reporter questionnaire.Reporter) *Store {
	if reporter == nil {
		reporter = questionnaire.NopReporter{}
	}
	return &Store{kv: kv, key: DefaultKey, reporter: reporter}
}

// Read returns the stored record, or nil when none exists. A payload that
// fails structural validation is wiped from the medium and reported, then
// read as absent: a corrupted blob is dropped once rather than left to
// re-fail on every read. Silent data loss is the accepted price of
// availability here.
func (s *Store) Read() (*questionnaire.State, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if !ok {
		return nil, nil
	}

	if !s.structurallyValid(raw) {
		s.reporter.Warnf("wiping corrupt persisted state")
		if err := s.kv.Remove(s.key); err != nil {
			return nil, fmt.Errorf("wipe corrupt state: %w", err)
		}
		return nil, nil
	}

	var state questionnaire.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Structurally valid JSON that still doesn't fit the record shape
		// (e.g. a question with a non-numeric id) gets the same treatment.
		s.reporter.Warnf("wiping undecodable persisted state: %v", err)
		if err := s.kv.Remove(s.key); err != nil {
			return nil, fmt.Errorf("wipe corrupt state: %w", err)
		}
		return nil, nil
	}
	return &state, nil
}

// Write serializes the full record and replaces any prior one.
func (s *Store) Write(questions []questionnaire.Question, version string, info *questionnaire.StartupInfo) error {
	if questions == nil {
		return fmt.Errorf("%w: questions must not be nil", questionnaire.ErrInvalidArgument)
	}
	if version == "" {
		return fmt.Errorf("%w: version must not be empty", questionnaire.ErrInvalidArgument)
	}

	state := questionnaire.State{
		Questions:   questions,
		Version:     version,
		StartupInfo: info,
	}
	raw, err := json.Marshal(&state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.kv.Set(s.key, string(raw)); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Clear removes the stored record.
func (s *Store) Clear() error {
	if err := s.kv.Remove(s.key); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

// structurallyValid checks raw against the state schema.
func (s *Store) structurallyValid(raw string) bool {
	schema, err := compiledStateSchema()
	if err != nil {
		s.reporter.Warnf("state schema unavailable: %v", err)
		return false
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return false
	}
	return schema.Validate(parsed) == nil
}
