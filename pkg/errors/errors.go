// Package errors augments the standard errors
// provided by fmt (https://golang.org/src/fmt/errors.go)
// with a Wrap() method to wrap errors without resorting
// to fmt.Errorf("%w", err).
//
// Wrapping never mutates the receiver: wrapping a package-level
// sentinel returns a copy that still matches the sentinel under
// errors.Is, so sentinels can both carry per-occurrence context and
// categorize other sentinels.
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	e := &Error{msg: msg}
	e.base = e
	return e
}

// Newf builds an Error from a format string
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Error augments the standard error interface with a Wrap method.
//
// The main difference with github.com/pkg/errors is that we are wrapping
// errors from errors, not from text.
type Error struct {
	msg  string
	errs []error
	base *Error // the sentinel this error is a wrap of
}

// Error message, with the message of the most recently wrapped error
// appended. Earlier wrapped errors (typically category sentinels) stay
// out of the text but remain visible to Is and As.
func (e *Error) Error() string {
	if len(e.errs) == 0 {
		return e.msg
	}
	return e.msg + ": " + e.errs[0].Error()
}

// Unwrap nested errors
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	return e.errs
}

// Wrap a nested error. The receiver is left unchanged: Wrap returns a
// copy carrying the new error in front of any previously wrapped ones.
func (e *Error) Wrap(err error) *Error {
	errs := make([]error, 0, len(e.errs)+1)
	errs = append(errs, err)
	errs = append(errs, e.errs...)
	return &Error{msg: e.msg, errs: errs, base: e.base}
}

// WrapMessage wraps a nested error built from a format string
func (e *Error) WrapMessage(format string, args ...interface{}) *Error {
	return e.Wrap(Newf(format, args...))
}

// Is of some error type? Wrapped copies of a sentinel match the
// sentinel; nested errors are handled by the standard library walking
// Unwrap.
func (e *Error) Is(target error) bool {
	if e == target {
		return true
	}
	t, ok := target.(*Error)
	return ok && e.base != nil && e.base == t.base
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
