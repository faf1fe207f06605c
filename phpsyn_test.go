package phpsyn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/internal/perr"
)

func TestParse_ValidSourceProducesTree(t *testing.T) {
	tree, err := Parse([]byte("<?php $x = 1 + 2;"))
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.NotEqual(t, -1, int(tree.Root))
}

func TestParse_SyntaxErrorIsSingleShot(t *testing.T) {
	_, err := Parse([]byte("<?php $x = ;"))
	require.Error(t, err)

	_, ok := err.(*perr.SyntaxError)
	assert.True(t, ok, "expected *perr.SyntaxError, got %T", err)
}

func TestParseWithOptions_ShortTagsDisabledTreatsBareTagAsHTML(t *testing.T) {
	tree, err := ParseWithOptions([]byte("<? 1;"), Options{ShortTagsEnabled: false})
	require.NoError(t, err)
	require.NotNil(t, tree)
}

func TestParseWithOptions_ShortTagsEnabledParsesStatement(t *testing.T) {
	tree, err := ParseWithOptions([]byte("<? $x = 1;"), Options{ShortTagsEnabled: true})
	require.NoError(t, err)
	require.NotNil(t, tree)
}
