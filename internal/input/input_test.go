package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectSourceReader_ReadsNonBlankLines(t *testing.T) {
	r := NewDirectReader(strings.NewReader("\n<?php 1;\n\n<?php 2;\n"))

	line, err := r.ReadSnippet()
	require.NoError(t, err)
	assert.Equal(t, "<?php 1;", line)

	line, err = r.ReadSnippet()
	require.NoError(t, err)
	assert.Equal(t, "<?php 2;", line)
}

func TestDirectSourceReader_ReturnsEOFAtEnd(t *testing.T) {
	r := NewDirectReader(strings.NewReader("<?php 1;\n"))

	_, err := r.ReadSnippet()
	require.NoError(t, err)

	_, err = r.ReadSnippet()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDirectSourceReader_Close(t *testing.T) {
	r := NewDirectReader(strings.NewReader(""))
	assert.NoError(t, r.Close())
}
