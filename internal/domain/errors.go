package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedValue is returned when a column value cannot be parsed.
	ErrMalformedValue = errors.New("malformed value")
	// ErrUnknownParser is returned when a mapping names an unregistered parser.
	ErrUnknownParser = errors.New("unknown parser")
	// ErrPredicateFailed is returned when a blacklist predicate errors.
	ErrPredicateFailed = errors.New("blacklist predicate failed")
	// ErrInvalidConfig is returned for unusable pipeline configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNotFound is returned when a record or to-do does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoDataset is returned when no dataset has been imported yet.
	ErrNoDataset = errors.New("no dataset loaded")
)

// FieldError reports a value that failed to map to a canonical field.
type FieldError struct {
	Field  string
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q (column %q): %v", e.Field, e.Column, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// RowError attaches the zero-based input row index to a pipeline error.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
