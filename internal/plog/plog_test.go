package plog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_FiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewTo(&buf, LevelWarn)

	l.Debugf("should not appear")
	l.Infof("should not appear either")
	l.Warnf("disk at %d%%", 90)

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "WARN ")
	assert.Contains(t, out, "disk at 90%")
}

func TestLogger_ErrorfIncludesTag(t *testing.T) {
	var buf bytes.Buffer
	l := NewTo(&buf, LevelDebug)

	l.Errorf("parse failed: %s", "unexpected eof")

	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "parse failed: unexpected eof")
}

func TestLogger_WithRequestIDTagsLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTo(&buf, LevelDebug).WithRequestID("req-1")

	l.Infof("handled request")

	assert.Contains(t, buf.String(), "[req-1]")
	assert.Contains(t, buf.String(), "handled request")
}

func TestLogger_WithRequestIDDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewTo(&buf, LevelDebug)
	_ = parent.WithRequestID("req-2")

	parent.Infof("no tag here")

	assert.NotContains(t, buf.String(), "[req-2]")
}
