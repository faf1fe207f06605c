// Package phpsyn parses PHP source into a token-span-annotated abstract
// syntax tree. It wires together a context-sensitive tokenizer, a
// generated LALR(1) parser, and a reduction-action layer that shapes the
// raw parse tree into the arena-based tree defined by package phpast.
package phpsyn

import (
	"github.com/dekarrin/phpsyn/internal/ictiobus/icterrors"
	"github.com/dekarrin/phpsyn/internal/perr"
	"github.com/dekarrin/phpsyn/internal/phpast"
	"github.com/dekarrin/phpsyn/internal/phpgrammar"
	"github.com/dekarrin/phpsyn/internal/phplex"
)

// Options controls dialect-sensitive lexing behavior. The zero value lexes
// in strict mode (no short open tags).
type Options = phplex.Options

// Parse lexes and parses src as PHP source, returning the resulting syntax
// tree. On any lexical or syntactic problem, the first one encountered is
// returned as a *perr.SyntaxError; everything after it is discarded, per
// the single-shot error policy the lexer and parser both follow.
func Parse(src []byte) (*phpast.Tree, error) {
	return ParseWithOptions(src, Options{})
}

// ParseWithOptions is Parse with explicit dialect options, e.g. enabling
// short open tags for code that relies on them.
func ParseWithOptions(src []byte, opts Options) (*phpast.Tree, error) {
	stream, err := phplex.LexWithOptions(src, opts)
	if err != nil {
		return nil, wrapSyntaxError(err)
	}

	p, err := phpgrammar.NewParser()
	if err != nil {
		return nil, err
	}

	pt, err := p.Parse(stream)
	if err != nil {
		return nil, wrapSyntaxError(err)
	}

	tree, err := phpgrammar.Transform(pt)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func wrapSyntaxError(err error) error {
	if se, ok := err.(*icterrors.SyntaxError); ok {
		return perr.FromEngine(se)
	}
	return err
}
