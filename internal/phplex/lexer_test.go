package phplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/internal/ictiobus/types"
)

func allTokens(t *testing.T, src string) []types.Token {
	t.Helper()
	stream, err := Lex([]byte(src))
	require.NoError(t, err)

	var toks []types.Token
	for stream.HasNext() {
		toks = append(toks, stream.Next())
	}
	return toks
}

func classIDs(toks []types.Token) []string {
	ids := make([]string, len(toks))
	for i, tok := range toks {
		ids[i] = tok.Class().ID()
	}
	return ids
}

func Test_Lex_MinimalStatement(t *testing.T) {
	toks := allTokens(t, "<?php 1;")

	assert.Equal(t, []string{"open_tag", "lnumber", "semi"}, classIDs(toks))
}

func Test_Lex_InlineHTMLBeforeOpenTag(t *testing.T) {
	toks := allTokens(t, "hello <?php echo 1;")

	require.Len(t, toks, 4)
	assert.Equal(t, "inline_html", toks[0].Class().ID())
	assert.Equal(t, "hello ", toks[0].Lexeme())
	assert.Equal(t, "open_tag", toks[1].Class().ID())
	assert.Equal(t, "echo", toks[2].Class().ID())
	assert.Equal(t, "semi", toks[3].Class().ID())
}

func Test_Lex_KeywordsAreCaseInsensitive(t *testing.T) {
	toks := allTokens(t, "<?php CLASS Class class;")

	for _, tok := range toks[1:4] {
		assert.Equal(t, "class", tok.Class().ID())
	}
}

func Test_Lex_VariableAndNumbers(t *testing.T) {
	toks := allTokens(t, "<?php $x = 0x1A + 10 + 1.5e2;")

	ids := classIDs(toks)
	assert.Contains(t, ids, "variable")
	assert.Contains(t, ids, "lnumber")
	assert.Contains(t, ids, "dnumber")
}

func Test_Lex_DoubleQuotedInterpolation(t *testing.T) {
	toks := allTokens(t, `<?php "hello $name!";`)

	ids := classIDs(toks)
	assert.Equal(t, []string{"open_tag", "dquote", "string_part", "variable", "string_part", "dquote", "semi"}, ids)
}

func Test_Lex_HeredocWithInterpolation(t *testing.T) {
	src := "<?php $x = <<<EOT\nhello $name\nEOT;\n"
	toks := allTokens(t, src)

	ids := classIDs(toks)
	require.Contains(t, ids, "heredoc_open")
	require.Contains(t, ids, "heredoc_close")
	require.Contains(t, ids, "variable")
}

func Test_Lex_NowdocDoesNotInterpolate(t *testing.T) {
	src := "<?php $x = <<<'EOT'\nhello $name\nEOT;\n"
	toks := allTokens(t, src)

	ids := classIDs(toks)
	assert.Contains(t, ids, "nowdoc_body")
	assert.NotContains(t, ids, "variable", "nowdoc body must not be tokenized for interpolation")
}

func Test_Lex_SingleQuotedStringWithEscapes(t *testing.T) {
	toks := allTokens(t, `<?php 'it\'s a test';`)

	require.Len(t, toks, 3)
	assert.Equal(t, "string_lit", toks[1].Class().ID())
	assert.Equal(t, `'it\'s a test'`, toks[1].Lexeme())
}

func Test_Lex_UnterminatedStringIsError(t *testing.T) {
	_, err := Lex([]byte(`<?php 'unterminated`))
	require.Error(t, err)
}

func Test_Lex_CloseTagReturnsToInitial(t *testing.T) {
	toks := allTokens(t, "<?php 1; ?>more html")

	ids := classIDs(toks)
	assert.Equal(t, []string{"open_tag", "lnumber", "semi", "close_tag", "inline_html"}, ids)
}

func Test_Lex_CommentsAreNotEmittedAsTokens(t *testing.T) {
	toks := allTokens(t, "<?php // a comment\n1 /* block */ + 2;")

	ids := classIDs(toks)
	assert.Equal(t, []string{"open_tag", "lnumber", "plus", "lnumber", "semi"}, ids)
}

func Test_Lex_ArrowSwitchesToLookingForProperty(t *testing.T) {
	toks := allTokens(t, "<?php $obj->class;")

	ids := classIDs(toks)
	assert.Equal(t, []string{"open_tag", "variable", "arrow", "ident", "semi"}, ids)
}

func Test_Lex_CastIsOneToken(t *testing.T) {
	toks := allTokens(t, "<?php $x = (int) $y;")

	ids := classIDs(toks)
	assert.Equal(t, []string{"open_tag", "variable", "assign", "cast", "variable", "semi"}, ids)
	require.Equal(t, "(int)", toks[3].Lexeme())
}

func Test_Lex_ParenthesizedExpressionIsNotACast(t *testing.T) {
	toks := allTokens(t, "<?php $x = (1 + 2) * 3;")

	ids := classIDs(toks)
	assert.Equal(t, []string{
		"open_tag", "variable", "assign", "lparen", "lnumber", "plus",
		"lnumber", "rparen", "star", "lnumber", "semi",
	}, ids)
}

func Test_Lex_ShortTagsDisabledByDefault(t *testing.T) {
	stream, err := Lex([]byte("<? 1;"))
	require.NoError(t, err)

	var toks []types.Token
	for stream.HasNext() {
		toks = append(toks, stream.Next())
	}

	require.Len(t, toks, 1)
	assert.Equal(t, "inline_html", toks[0].Class().ID())
	assert.Equal(t, "<? 1;", toks[0].Lexeme())
}

func Test_Lex_ShortTagsEnabledOpensScripting(t *testing.T) {
	stream, err := LexWithOptions([]byte("<? 1;"), Options{ShortTagsEnabled: true})
	require.NoError(t, err)

	var toks []types.Token
	for stream.HasNext() {
		toks = append(toks, stream.Next())
	}

	assert.Equal(t, []string{"open_tag", "lnumber", "semi"}, classIDs(toks))
}

func Test_Lex_ShortTagsEnabledStillRecognizesFullOpenTag(t *testing.T) {
	stream, err := LexWithOptions([]byte("<?php 1;"), Options{ShortTagsEnabled: true})
	require.NoError(t, err)

	var toks []types.Token
	for stream.HasNext() {
		toks = append(toks, stream.Next())
	}

	assert.Equal(t, []string{"open_tag", "lnumber", "semi"}, classIDs(toks))
}
