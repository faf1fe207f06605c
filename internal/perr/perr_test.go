package perr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/internal/ictiobus/icterrors"
)

func TestFromEngine_CopiesPositionAndFirstLineOfMessage(t *testing.T) {
	cause := icterrors.NewSyntaxError("unexpected end of file", 4, 9, "    echo $x")

	se := FromEngine(cause)

	assert.Equal(t, 4, se.Line)
	assert.Equal(t, 9, se.Column)
	assert.Equal(t, "line 4: unexpected end of file", se.Error())
}

func TestFromEngine_UnwrapReturnsCause(t *testing.T) {
	cause := icterrors.NewSyntaxError("bad token", 1, 1, "")
	se := FromEngine(cause)

	assert.Same(t, cause, se.Unwrap())
	assert.True(t, errors.As(error(se), &se))
}

func TestSyntaxError_FullMessageIncludesCaretLine(t *testing.T) {
	cause := icterrors.NewSyntaxError("unexpected ';'", 2, 5, "  foo;;")
	se := FromEngine(cause)

	full := se.FullMessage()
	assert.Contains(t, full, "line 2: unexpected ';'")
	assert.Contains(t, full, "foo;;")
	assert.Contains(t, full, "^")
}

func TestSyntaxError_FullMessageWithoutCauseReturnsMessage(t *testing.T) {
	se := &SyntaxError{Message: "line 1: synthetic error"}
	assert.Equal(t, "line 1: synthetic error", se.FullMessage())
}

func TestSink_RecordOnlyKeepsFirstError(t *testing.T) {
	var s Sink

	first := &SyntaxError{Message: "first"}
	second := &SyntaxError{Message: "second"}

	assert.True(t, s.Record(first))
	require.True(t, s.Terminated())
	assert.False(t, s.Record(second))

	assert.Same(t, first, s.Err())
	assert.True(t, s.Terminated())
}

func TestSink_ZeroValueIsNotTerminated(t *testing.T) {
	var s Sink
	assert.False(t, s.Terminated())
	assert.Nil(t, s.Err())
}
