package csv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDelimiter indicates a zero or invalid delimiter rune.
	ErrInvalidDelimiter = errors.New("invalid delimiter")

	// ErrUnsupportedNode indicates an AST that does not describe rows of fields.
	ErrUnsupportedNode = errors.New("unsupported AST node")
)

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
	Err     error
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}

// Unwrap returns the underlying error.
func (e *OptionsError) Unwrap() error {
	return e.Err
}

// ReadError reports a failure reading input before any parsing happened.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("csv: read input: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}
