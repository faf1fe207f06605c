// Package icterrors holds error types shared across the lexing and parsing
// engine in ictiobus. Errors produced here are not meant to be exhaustive;
// the engine stops at the first one it encounters.
package icterrors

import (
	"fmt"
	"strings"

	"github.com/dekarrin/phpsyn/internal/ictiobus/types"
)

// SyntaxError is an error encountered while lexing or parsing input. It
// carries enough positional information to point at the offending token in
// its source line.
type SyntaxError struct {
	msg     string
	line    int
	pos     int
	lexeme  string
	srcLine string
	wrap    error
}

// NewSyntaxErrorFromToken creates a new SyntaxError for the given message
// that points at tok's position.
func NewSyntaxErrorFromToken(msg string, tok types.Token) *SyntaxError {
	return &SyntaxError{
		msg:     msg,
		line:    tok.Line(),
		pos:     tok.LinePos(),
		lexeme:  tok.Lexeme(),
		srcLine: tok.FullLine(),
	}
}

// NewSyntaxError creates a SyntaxError with explicit positional info, for use
// when no Token is available (e.g. errors detected between tokens).
func NewSyntaxError(msg string, line, pos int, srcLine string) *SyntaxError {
	return &SyntaxError{msg: msg, line: line, pos: pos, srcLine: srcLine}
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", se.line, se.msg)
}

func (se *SyntaxError) Unwrap() error {
	return se.wrap
}

// Line returns the 1-indexed line the error occurred on.
func (se *SyntaxError) Line() int {
	return se.line
}

// Pos returns the 1-indexed column the error occurred on.
func (se *SyntaxError) Pos() int {
	return se.pos
}

// FullMessage returns a multi-line message with the offending source line
// and a caret pointing at the exact column of the error, in the style of
// most compiler front-ends.
func (se *SyntaxError) FullMessage() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "line %d: %s\n", se.line, se.msg)
	if se.srcLine != "" {
		sb.WriteString(se.srcLine)
		sb.WriteString("\n")
		col := se.pos - 1
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", col))
		sb.WriteString("^")
	}

	return sb.String()
}
