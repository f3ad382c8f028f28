// Package errors augments the standard errors with sentinel values
// that may wrap an underlying cause without resorting to
// fmt.Errorf("%w", err) at every call site.
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New creates a new sentinel Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error is an error that may wrap a single nested cause.
//
// Unlike github.com/pkg/errors, wrapping starts from an error value,
// not from text: sentinels declared with New remain comparable with
// errors.Is after they have been augmented with a cause.
type Error struct {
	msg string
	err error
}

// Error message, including the wrapped cause when present
func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap the nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error. The receiver is cloned so that package-level
// sentinels are never mutated by call sites.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err}
}

// WrapMessage wraps a formatted message as the nested cause
func (e *Error) WrapMessage(format string, args ...interface{}) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is reports sentinel equality for use with the standard errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.msg == t.msg
}

// As finds the first error in err's chain that matches target
// (a shortcut to the standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to the standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
