// Package apperr separates the errors berryroc reports to its user.
//
// A *UserError means the input was wrong: a bad flag value, a dataset item
// with an unknown type, a threshold outside [0,1]. Field optionally names
// the offending flag or dataset path ("--threshold", "items[3].value").
//
// ErrCancelled means the user aborted an interactive flow. It is not a
// failure and maps to exit code 0.
//
// Anything else is an ordinary error (I/O, decoding) wrapped with
// fmt.Errorf("context: %w", err).
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user aborts a prompt or the explorer.
var ErrCancelled = errors.New("operation cancelled")

// UserError is an error caused by invalid or missing user input.
type UserError struct {
	Field   string
	Message string
}

func (e *UserError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// Fieldf creates a formatted UserError attached to field.
func Fieldf(field, format string, args ...any) error {
	return &UserError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, ErrCancelled):
		return 0
	case IsUser(err):
		return 2
	default:
		return 1
	}
}
