package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog loading.
//
// Wrap with context at the call site using fmt.Errorf("...: %w", err);
// callers check with errors.Is.
var (
	// ErrFileNotFound indicates the catalog file does not exist.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrEmptyInput indicates the input has no first line.
	ErrEmptyInput = errors.New("file is empty")

	// ErrInvalidInput indicates a malformed line. The concrete error is an
	// *InvalidLineError carrying the line number.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidLineError reports the first malformed line (1-based).
type InvalidLineError struct {
	Line   int
	Reason string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("invalid input in line %d: %s", e.Line, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold.
func (e *InvalidLineError) Unwrap() error {
	return ErrInvalidInput
}

func invalidLine(line int, format string, args ...any) error {
	return &InvalidLineError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
