package format

import (
	"errors"
	"fmt"
)

// Errors returned while parsing individual lines or resolving formats.
var (
	// ErrUnknownFormat is returned when a format name is not registered.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrEmptyDelimiter is returned when a custom format has no delimiter.
	ErrEmptyDelimiter = errors.New("delimiter cannot be empty")

	// ErrMalformedLine marks a line that does not contain exactly one delimiter.
	ErrMalformedLine = errors.New("malformed line")

	// ErrEmptySide marks a line whose term or definition is empty after trimming.
	ErrEmptySide = errors.New("empty term or definition")

	// ErrDuplicateTerm marks a line whose term was already seen. The card is kept.
	ErrDuplicateTerm = errors.New("duplicate term")
)

// LineError describes a problem with a single line of input. Line numbers
// start at 1.
type LineError struct {
	Line    int
	Content string
	Err     error
}

// Error implements the error interface for LineError.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadError wraps a fatal failure while loading a file with the step that
// failed ("read", "decode", "detect", "parse") and the file path.
type LoadError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LoadError) Unwrap() error {
	return e.Err
}
