// Package perr implements the single-shot error surface the parser exposes
// to callers: the first lexical or syntactic problem encountered collapses
// into one user-visible syntax error, and everything after it is discarded.
package perr

import (
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/phpsyn/internal/ictiobus/icterrors"
)

// SyntaxError is the structured failure record the parser returns in place
// of a tree: {kind: "syntax-error", line, message}.
type SyntaxError struct {
	Line    int
	Column  int
	Message string

	cause *icterrors.SyntaxError
}

// FromEngine wraps an engine-level icterrors.SyntaxError (produced by
// internal/phplex or the reused LALR(1) driver) as the parser's public
// error type.
func FromEngine(err *icterrors.SyntaxError) *SyntaxError {
	return &SyntaxError{
		Line:    err.Line(),
		Column:  err.Pos(),
		Message: firstLine(err.Error()),
		cause:   err,
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (e *SyntaxError) Error() string {
	return e.Message
}

func (e *SyntaxError) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// FullMessage renders the source line and a caret at the offending column,
// reflowed to a terminal-friendly width via rosed, mirroring the expected-
// alternatives formatting the reused LALR driver already produces.
func (e *SyntaxError) FullMessage() string {
	if e.cause == nil {
		return e.Message
	}
	return rosed.Edit(e.cause.FullMessage()).Wrap(100).String()
}

// state tracks the single-shot policy: once an error has been recorded, it
// is never replaced by a later one. A zero-value state is ready to use.
type state struct {
	first *SyntaxError
}

// Sink collects at most one SyntaxError, per the engine's single-shot error
// policy (§7): the first error recorded wins, and every later Record call is
// a no-op.
type Sink struct {
	s state
}

// Record stores err as the sink's error if and only if no error has been
// recorded yet. Returns true if err was stored.
func (s *Sink) Record(err *SyntaxError) bool {
	if s.s.first != nil {
		return false
	}
	s.s.first = err
	return true
}

// Err returns the recorded error, or nil if none has been recorded.
func (s *Sink) Err() *SyntaxError {
	return s.s.first
}

// Terminated reports whether an error has already been recorded.
func (s *Sink) Terminated() bool {
	return s.s.first != nil
}
