// Package phplex implements the context-sensitive tokenizer for PHP source
// text: a mode-stack scanner that turns a byte buffer into the stream of
// tokens consumed by the generated LALR(1) parser in internal/phpgrammar.
package phplex

import "github.com/dekarrin/phpsyn/internal/ictiobus/types"

// kind is the concrete TokenClass implementation used throughout the
// tokenizer. Its id must match, verbatim (after lower-casing), the terminal
// spelled out in the grammar text built by internal/phpgrammar.
type kind struct {
	id    string
	human string
}

func (k kind) ID() string { return k.id }
func (k kind) Human() string {
	if k.human != "" {
		return k.human
	}
	return k.id
}

func (k kind) Equal(o any) bool {
	other, ok := o.(types.TokenClass)
	if !ok {
		otherPtr, ok := o.(*types.TokenClass)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}
	return other.ID() == k.id
}

func k2(id, human string) kind { return kind{id: id, human: human} }

// Token kind catalog. IDs are what the grammar text in internal/phpgrammar
// refers to; most keyword kinds use the bare keyword spelling so parser error
// messages read naturally ("expected if or while", not "expected kw_if").
var (
	KindEOF = k2("$", "end of file")

	// tag boundaries and literal HTML
	KindInlineHTML      = k2("inline_html", "inline HTML")
	KindOpenTag         = k2("open_tag", "'<?php'")
	KindOpenTagWithEcho = k2("open_tag_echo", "'<?='")
	// OpenTagFake exists only for token-kind catalog completeness (see
	// DESIGN.md); short_open_tag is treated as off and this is never
	// produced by Lex.
	KindOpenTagFake = k2("open_tag_fake", "'<?'")
	KindCloseTag    = k2("close_tag", "'?>'")

	// identifiers, variables, literals
	KindIdent      = k2("ident", "identifier")
	KindVariable   = k2("variable", "variable")
	KindLNumber    = k2("lnumber", "integer literal")
	KindDNumber    = k2("dnumber", "floating point literal")
	KindStringLit  = k2("string_lit", "string literal")
	KindStringPart = k2("string_part", "string contents")
	KindDQuote     = k2("dquote", `"`)
	KindBacktick   = k2("backtick", "`")
	KindHeredocOpen  = k2("heredoc_open", "heredoc opening label")
	KindHeredocClose = k2("heredoc_close", "heredoc closing label")
	KindNowdocBody   = k2("nowdoc_body", "nowdoc contents")
	KindDollarLBrace = k2("dollar_lbrace", `${`)
	KindCurlyDollar  = k2("curly_dollar", `{$`)

	// KindCast is emitted for a parenthesized cast type, e.g. "(int)" or
	// "(string)", as a single token. Real PHP's lexer recognizes these the
	// same way: folding "(" type ")" into one token sidesteps the classic
	// grammar ambiguity between a cast and a parenthesized expression that a
	// pure context-free production can't resolve with one token of
	// lookahead.
	KindCast = k2("cast", "cast")

	// punctuation
	KindLParen   = k2("lparen", "(")
	KindRParen   = k2("rparen", ")")
	KindLBrace   = k2("lbrace", "{")
	KindRBrace   = k2("rbrace", "}")
	KindLBracket = k2("lbracket", "[")
	KindRBracket = k2("rbracket", "]")
	KindSemi     = k2("semi", ";")
	KindComma    = k2("comma", ",")
	KindColon    = k2("colon", ":")
	KindQuestion = k2("question", "?")
	KindNsSep    = k2("ns_sep", `\`)
	KindEllipsis = k2("ellipsis", "...")
	KindAt       = k2("at", "@")
	KindDollar   = k2("dollar", "$")

	// operators
	KindArrow         = k2("arrow", "->")
	KindNullsafeArrow = k2("nullsafe_arrow", "?->")
	KindDColon        = k2("dcolon", "::")
	KindDoubleArrow   = k2("double_arrow", "=>")

	KindAssign       = k2("assign", "=")
	KindPlusAssign   = k2("plus_assign", "+=")
	KindMinusAssign  = k2("minus_assign", "-=")
	KindStarAssign   = k2("star_assign", "*=")
	KindSlashAssign  = k2("slash_assign", "/=")
	KindDotAssign    = k2("dot_assign", ".=")
	KindPercentAssign = k2("percent_assign", "%=")
	KindPowAssign    = k2("pow_assign", "**=")
	KindAmpAssign    = k2("amp_assign", "&=")
	KindPipeAssign   = k2("pipe_assign", "|=")
	KindCaretAssign  = k2("caret_assign", "^=")
	KindShlAssign    = k2("shl_assign", "<<=")
	KindShrAssign    = k2("shr_assign", ">>=")
	KindCoalesceAssign = k2("coalesce_assign", "??=")

	KindEq            = k2("eq", "==")
	KindIdentical     = k2("identical", "===")
	KindNotEq         = k2("noteq", "!=")
	KindNotIdentical  = k2("notidentical", "!==")
	KindLt            = k2("lt", "<")
	KindLe            = k2("le", "<=")
	KindGt            = k2("gt", ">")
	KindGe            = k2("ge", ">=")
	KindSpaceship     = k2("spaceship", "<=>")

	KindPlus     = k2("plus", "+")
	KindMinus    = k2("minus", "-")
	KindStar     = k2("star", "*")
	KindSlash    = k2("slash", "/")
	KindPercent  = k2("percent", "%")
	KindPow      = k2("pow", "**")
	KindDot      = k2("dot", ".")

	KindAndAnd = k2("and_and", "&&")
	KindOrOr   = k2("or_or", "||")
	KindNot    = k2("not", "!")
	KindCoalesce = k2("coalesce", "??")

	KindAmp   = k2("amp", "&")
	KindPipe  = k2("pipe", "|")
	KindCaret = k2("caret", "^")
	KindTilde = k2("tilde", "~")
	KindShl   = k2("shl", "<<")
	KindShr   = k2("shr", ">>")

	KindInc = k2("inc", "++")
	KindDec = k2("dec", "--")
)

// Reserved keywords. IDs are the bare lowercased keyword so that error
// messages read as "expected if". Recognition at lex time is
// case-insensitive (see matchKeyword).
var keywordKinds = map[string]kind{
	"if": k2("if", "if"), "elseif": k2("elseif", "elseif"), "else": k2("else", "else"),
	"while": k2("while", "while"), "do": k2("do", "do"),
	"for": k2("for", "for"), "foreach": k2("foreach", "foreach"), "as": k2("as", "as"),
	"switch": k2("switch", "switch"), "case": k2("case", "case"), "default": k2("default", "default"),
	"break": k2("break", "break"), "continue": k2("continue", "continue"),
	"return": k2("return", "return"), "echo": k2("echo", "echo"), "print": k2("print", "print"),
	"function": k2("function", "function"), "fn": k2("fn", "fn"),
	"class": k2("class", "class"), "interface": k2("interface", "interface"), "trait": k2("trait", "trait"),
	"extends": k2("extends", "extends"), "implements": k2("implements", "implements"),
	"new": k2("new", "new"), "instanceof": k2("instanceof", "instanceof"), "clone": k2("clone", "clone"),
	"try": k2("try", "try"), "catch": k2("catch", "catch"), "finally": k2("finally", "finally"), "throw": k2("throw", "throw"),
	"global": k2("global", "global"), "static": k2("static", "static"), "const": k2("const", "const"),
	"public": k2("public", "public"), "private": k2("private", "private"), "protected": k2("protected", "protected"),
	"abstract": k2("abstract", "abstract"), "final": k2("final", "final"), "readonly": k2("readonly", "readonly"),
	"namespace": k2("namespace", "namespace"), "use": k2("use", "use"),
	"list": k2("list", "list"), "array": k2("array", "array"),
	"isset": k2("isset", "isset"), "unset": k2("unset", "unset"), "empty": k2("empty", "empty"),
	"include": k2("include", "include"), "include_once": k2("include_once", "include_once"),
	"require": k2("require", "require"), "require_once": k2("require_once", "require_once"),
	"yield": k2("yield", "yield"),
	"and": k2("and", "and"), "or": k2("or", "or"), "xor": k2("xor", "xor"),
	"true": k2("true", "true"), "false": k2("false", "false"), "null": k2("null", "null"),
	"var": k2("var", "var"), "goto": k2("goto", "goto"), "declare": k2("declare", "declare"),
}
