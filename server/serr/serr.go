// Package serr holds common error objects used across the parse service.
// It contains the Error type, which can be created with one or more 'cause'
// errors; calling errors.Is on an Error with any of its causes returns true.
package serr

import "errors"

var (
	ErrBadCredentials = errors.New("the supplied bearer token is invalid or expired")
	ErrPermissions    = errors.New("you don't have permission to do that")
	ErrNotFound       = errors.New("the requested entity could not be found")
	ErrAlreadyExists  = errors.New("resource with same identifying information already exists")
	ErrDB             = errors.New("an error occurred with the DB")
	ErrBadArgument    = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal  = errors.New("malformed data in request")
)

// Error is a typed error returned by the parse service's internals. It
// carries a message and zero or more causes; errors.Is(err, cause) returns
// true for any cause it was built with.
//
// Error should not be used directly; call New or WrapDB to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns e's message, with the first cause's Error() appended if e
// has one. If e has no message but does have a cause, the first cause's
// Error() is returned verbatim.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns e's causes, or nil if it has none.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is reports whether e itself matches target, or any of its causes do.
func (e Error) Is(target error) bool {
	if errTarget, ok := target.(Error); ok {
		if e.msg == errTarget.msg && len(e.cause) == len(errTarget.cause) {
			allEqual := true
			for i := range e.cause {
				if e.cause[i] != errTarget.cause[i] {
					allEqual = false
					break
				}
			}
			if allEqual {
				return true
			}
		}
	}

	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

// WrapDB creates an Error that wraps err and ErrDB as causes. msg may be "".
func WrapDB(msg string, err error) Error {
	return Error{msg: msg, cause: []error{err, ErrDB}}
}

// New creates an Error with the given message and causes. Causes are
// optional but make errors.Is(err, cause) return true for each of them.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
