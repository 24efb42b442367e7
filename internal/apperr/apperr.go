// Package apperr defines the error type used for user-facing failures
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error with a human readable message. The message
// may contain formatting verbs which are filled in with Fmt.
type Error struct {
	Err     error
	parent  *Error
	Message string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

// Fmt returns a copy of the error with its message formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Err:     e.Err,
		parent:  e.root(),
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Err:     err,
		parent:  e.root(),
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is e or the error e was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t == e || t == e.root()
}

func (e *Error) root() *Error {
	if e.parent != nil {
		return e.parent
	}

	return e
}
