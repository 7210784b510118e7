package report

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every error that means the report does not have
// the expected shape. Callers usually retry with a fresh report.
var ErrMalformed = errors.New("malformed report")

var (
	// ErrMisalignedIndent: the column is not a whole number of steps away
	// from the current reference column.
	ErrMisalignedIndent = fmt.Errorf("%w: misaligned indent", ErrMalformed)
	// ErrSkippedLevel: the line is indented by more than one step.
	ErrSkippedLevel = fmt.Errorf("%w: skipped nesting level", ErrMalformed)
	// ErrOrphanNode: the line dedents past the root.
	ErrOrphanNode = fmt.Errorf("%w: dedent past root", ErrMalformed)
	// ErrMissingField: a group lacks a required child field.
	ErrMissingField = fmt.Errorf("%w: missing field", ErrMalformed)
)

// ParseError reports where tree construction stopped.
type ParseError struct {
	Kind      error
	Line      int
	Column    int
	Reference int
	Key       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (%q at column %d, reference %d): %v", e.Line, e.Key, e.Column, e.Reference, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// FieldError names the field missing from the Group-th selected group
// (0-based, counting only groups that matched the query).
type FieldError struct {
	Field string
	Group int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("group %d: %v %q", e.Group, ErrMissingField, e.Field)
}

func (e *FieldError) Unwrap() error { return ErrMissingField }
