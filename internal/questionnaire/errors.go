package questionnaire

import "errors"

var (
	// ErrEmptySource means the CSV input was empty or whitespace-only.
	ErrEmptySource = errors.New("question source is empty")

	// ErrNoValidRows means parsing finished with zero accepted rows.
	ErrNoValidRows = errors.New("no valid question rows")

	// ErrInvalidArgument means the caller passed an out-of-range id, score
	// or otherwise malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means the operation targets a question or state that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPayload means an imported progress payload failed
	// structural validation.
	ErrInvalidPayload = errors.New("invalid progress payload")
)
