// Package plog wraps the standard library logger with the level-prefixed
// convention used throughout the CLI and the parse service: every line is
// stamped with a fixed-width level tag ("DEBUG", "INFO ", "WARN ", "ERROR"),
// the same format server/response.go and cmd/tqserver/main.go use ad hoc
// with raw log.Printf calls.
package plog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) tag() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO "
	case LevelWarn:
		return "WARN "
	case LevelError:
		return "ERROR"
	default:
		return "?????"
	}
}

// Logger is a leveled wrapper around *log.Logger. A request ID, when set,
// is included on every line so a caller can grep one request's worth of log
// output out of the parse service's concurrent traffic.
type Logger struct {
	base    *log.Logger
	min     Level
	request string
}

// New creates a Logger writing to stderr with the standard date/time prefix,
// filtering out anything below min.
func New(min Level) *Logger {
	return NewTo(os.Stderr, min)
}

// NewTo creates a Logger writing to w instead of stderr, for tests and for
// callers that want to redirect log output.
func NewTo(w io.Writer, min Level) *Logger {
	return &Logger{
		base: log.New(w, "", log.LstdFlags),
		min:  min,
	}
}

// WithRequestID returns a copy of l that tags every subsequent line with id.
func (l *Logger) WithRequestID(id string) *Logger {
	cp := *l
	cp.request = id
	return &cp
}

func (l *Logger) logf(lvl Level, format string, args ...any) {
	if lvl < l.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.request != "" {
		l.base.Printf("%s [%s] %s", lvl.tag(), l.request, msg)
		return
	}
	l.base.Printf("%s %s", lvl.tag(), msg)
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// Fatalf logs at error level and then terminates the process, matching
// log.Fatalf's contract.
func (l *Logger) Fatalf(format string, args ...any) {
	l.logf(LevelError, format, args...)
	os.Exit(1)
}
