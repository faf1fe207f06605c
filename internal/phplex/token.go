package phplex

import (
	"fmt"

	"github.com/dekarrin/phpsyn/internal/ictiobus/types"
)

// Token is the concrete token type produced by Lex. It satisfies
// types.Token.
type Token struct {
	class    types.TokenClass
	lexeme   string
	line     int
	linePos  int
	fullLine string
	// Offset is the byte offset of the first byte of the token in source.
	Offset int
	// EndOffset is the byte-exclusive offset of the byte following the
	// token's last byte in source.
	EndOffset int
}

func (t Token) Class() types.TokenClass { return t.class }
func (t Token) Lexeme() string          { return t.lexeme }
func (t Token) LinePos() int            { return t.linePos }
func (t Token) Line() int               { return t.line }
func (t Token) FullLine() string        { return t.fullLine }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.class.ID(), t.lexeme, t.line, t.linePos)
}

// tokenStream adapts a fully-lexed slice of tokens to types.TokenStream. The
// tokenizer runs eagerly (Lex returns the complete token list or the first
// lexical error) rather than lazily, matching the "single-shot error
// surface" the rest of the engine assumes.
type tokenStream struct {
	toks []types.Token
	pos  int
	eof  types.Token
}

func newTokenStream(toks []types.Token, eof types.Token) *tokenStream {
	return &tokenStream{toks: toks, eof: eof}
}

func (ts *tokenStream) Next() types.Token {
	if ts.pos >= len(ts.toks) {
		return ts.eof
	}
	t := ts.toks[ts.pos]
	ts.pos++
	return t
}

func (ts *tokenStream) Peek() types.Token {
	if ts.pos >= len(ts.toks) {
		return ts.eof
	}
	return ts.toks[ts.pos]
}

func (ts *tokenStream) HasNext() bool {
	return ts.pos < len(ts.toks)
}
