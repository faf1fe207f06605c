package phplex

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dekarrin/phpsyn/internal/ictiobus/icterrors"
	"github.com/dekarrin/phpsyn/internal/ictiobus/types"
)

// foldCaser implements PHP's case-insensitive reserved-word recognition
// (T_CLASS matches "class", "Class", and "CLASS" alike).
var foldCaser = cases.Fold()

// Trivia is a comment or run of whitespace captured during lexing but not
// delivered to the parser, retained so a consumer can recover them alongside
// a node's span.
type Trivia struct {
	Class   types.TokenClass
	Lexeme  string
	Line    int
	LinePos int
	Offset  int
}

var (
	classComment    = k2("comment", "comment")
	classWhitespace = k2("whitespace", "whitespace")
)

// lexer is the mode-stack scanner. It runs once over the full input and
// produces the complete token list, stopping at the first lexical error.
type lexer struct {
	src   []byte
	lines []string
	pos   int
	line  int
	col   int

	modes *modeStack

	toks   []types.Token
	trivia []Trivia

	// heredocLabel/heredocNowdoc describe the currently-open heredoc/nowdoc
	// body, valid only while modes.top() is Heredoc or Nowdoc.
	heredocLabel  string
	heredocNowdoc bool

	// shortTags mirrors PHP's short_open_tag ini setting: when true, a bare
	// "<?" not followed by "php" or "=" opens a PHP tag instead of being
	// treated as literal inline HTML.
	shortTags bool
}

// Options controls dialect-level lexer behavior.
type Options struct {
	// ShortTagsEnabled enables bare "<?" as an open tag. Off by default,
	// matching modern PHP's default short_open_tag=Off (see DESIGN.md's
	// T_OPEN_TAG_FAKE note).
	ShortTagsEnabled bool
}

// Lex tokenizes src in full with default dialect options, returning every
// token the parser will see (in order, terminated implicitly by
// types.TokenEndOfText via the returned stream) or the first lexical error
// encountered.
func Lex(src []byte) (types.TokenStream, error) {
	return LexWithOptions(src, Options{})
}

// LexWithOptions tokenizes src in full under the given dialect options.
func LexWithOptions(src []byte, opts Options) (types.TokenStream, error) {
	lx := &lexer{
		src:       src,
		lines:     strings.Split(string(src), "\n"),
		line:      1,
		col:       1,
		modes:     newModeStack(),
		shortTags: opts.ShortTagsEnabled,
	}
	if err := lx.run(); err != nil {
		return nil, err
	}
	eof := Token{class: types.TokenEndOfText, line: lx.line, linePos: lx.col, fullLine: lx.curLine(), Offset: lx.pos, EndOffset: lx.pos}
	return newTokenStream(lx.toks, eof), nil
}

func (lx *lexer) curLine() string {
	if lx.line-1 < len(lx.lines) {
		return lx.lines[lx.line-1]
	}
	return ""
}

func (lx *lexer) eof() bool { return lx.pos >= len(lx.src) }

func (lx *lexer) peekByte() byte {
	if lx.eof() {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *lexer) peekAt(off int) byte {
	if lx.pos+off >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+off]
}

func (lx *lexer) advance() byte {
	b := lx.src[lx.pos]
	lx.pos++
	if b == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return b
}

func (lx *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(string(lx.src[lx.pos:]), s)
}

func (lx *lexer) hasPrefixFold(s string) bool {
	if lx.pos+len(s) > len(lx.src) {
		return false
	}
	return strings.EqualFold(string(lx.src[lx.pos:lx.pos+len(s)]), s)
}

// castTypeNames are the keywords PHP recognizes inside a cast expression,
// e.g. "(int)". Matching is case-insensitive.
var castTypeNames = []string{
	"int", "integer", "bool", "boolean", "float", "double", "real",
	"string", "array", "object", "unset", "binary",
}

// matchCast looks ahead from the current "(" for "(" whitespace* type
// whitespace* ")" where type is one of castTypeNames, without consuming
// anything. It returns the exact source text of the match (including both
// parens) so the caller can advance over it byte for byte.
func (lx *lexer) matchCast() (string, bool) {
	i := lx.pos
	if i >= len(lx.src) || lx.src[i] != '(' {
		return "", false
	}
	i++
	for i < len(lx.src) && (lx.src[i] == ' ' || lx.src[i] == '\t') {
		i++
	}
	start := i
	for i < len(lx.src) && isAlpha(lx.src[i]) {
		i++
	}
	word := string(lx.src[start:i])
	if word == "" {
		return "", false
	}
	matched := false
	for _, name := range castTypeNames {
		if strings.EqualFold(word, name) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}
	for i < len(lx.src) && (lx.src[i] == ' ' || lx.src[i] == '\t') {
		i++
	}
	if i >= len(lx.src) || lx.src[i] != ')' {
		return "", false
	}
	i++
	return string(lx.src[lx.pos:i]), true
}

func (lx *lexer) errf(format string, args ...any) error {
	return icterrors.NewSyntaxError(fmt.Sprintf(format, args...), lx.line, lx.col, lx.curLine())
}

func (lx *lexer) emit(cl types.TokenClass, lexeme string, startLine, startCol, startOff int) {
	lx.toks = append(lx.toks, Token{
		class: cl, lexeme: lexeme, line: startLine, linePos: startCol, fullLine: lx.lines[startLine-1],
		Offset: startOff, EndOffset: lx.pos,
	})
}

func (lx *lexer) run() error {
	for !lx.eof() {
		switch lx.modes.top() {
		case Initial:
			if err := lx.scanInitial(); err != nil {
				return err
			}
		case Scripting, LookingForProperty:
			if err := lx.scanScripting(); err != nil {
				return err
			}
		case DoubleQuotes, Heredoc, Backticks:
			if err := lx.scanEncapsed(); err != nil {
				return err
			}
		case Nowdoc:
			if err := lx.scanNowdoc(); err != nil {
				return err
			}
		case VarOffset:
			if err := lx.scanVarOffset(); err != nil {
				return err
			}
		default:
			if err := lx.scanScripting(); err != nil {
				return err
			}
		}
	}
	return nil
}

// scanInitial consumes literal HTML/text until a PHP open tag, emitting a
// single INLINE_HTML token for everything skipped.
func (lx *lexer) scanInitial() error {
	startLine, startCol, startOff := lx.line, lx.col, lx.pos
	for !lx.eof() {
		if lx.hasPrefixFold("<?php") && (lx.pos+5 >= len(lx.src) || isWordBoundary(lx.peekAt(5))) {
			if lx.pos > startOff {
				lx.emit(KindInlineHTML, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
			}
			tagLine, tagCol, tagOff := lx.line, lx.col, lx.pos
			for i := 0; i < 5; i++ {
				lx.advance()
			}
			lx.emit(KindOpenTag, string(lx.src[tagOff:lx.pos]), tagLine, tagCol, tagOff)
			lx.modes.push(Scripting)
			return nil
		}
		if lx.hasPrefix("<?=") {
			if lx.pos > startOff {
				lx.emit(KindInlineHTML, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
			}
			tagLine, tagCol, tagOff := lx.line, lx.col, lx.pos
			for i := 0; i < 3; i++ {
				lx.advance()
			}
			lx.emit(KindOpenTagWithEcho, string(lx.src[tagOff:lx.pos]), tagLine, tagCol, tagOff)
			lx.modes.push(Scripting)
			return nil
		}
		if lx.shortTags && lx.hasPrefix("<?") && !lx.hasPrefix("<?php") && !lx.hasPrefix("<?=") {
			if lx.pos > startOff {
				lx.emit(KindInlineHTML, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
			}
			tagLine, tagCol, tagOff := lx.line, lx.col, lx.pos
			for i := 0; i < 2; i++ {
				lx.advance()
			}
			lx.emit(KindOpenTag, string(lx.src[tagOff:lx.pos]), tagLine, tagCol, tagOff)
			lx.modes.push(Scripting)
			return nil
		}
		lx.advance()
	}
	if lx.pos > startOff {
		lx.emit(KindInlineHTML, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
	}
	return nil
}

func isWordBoundary(b byte) bool {
	return !(isAlnum(b) || b == '_')
}

func isDigit(b byte) bool     { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool     { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' }
func isAlnum(b byte) bool     { return isAlpha(b) || isDigit(b) }
func isHexDigit(b byte) bool  { return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }

// scanScripting is the main PHP tokenizer, IN_SCRIPTING mode.
func (lx *lexer) scanScripting() error {
	lookingForProperty := lx.modes.top() == LookingForProperty

	lx.skipWhitespaceAndComments()
	if lx.eof() {
		return nil
	}

	startLine, startCol, startOff := lx.line, lx.col, lx.pos
	b := lx.peekByte()

	switch {
	case lx.hasPrefix("?>"):
		lx.advance()
		lx.advance()
		lx.emit(KindCloseTag, "?>", startLine, startCol, startOff)
		lx.modes.pop()
		return nil

	case b == '$' && isAlpha(lx.peekAt(1)):
		lx.advance()
		for isAlnum(lx.peekByte()) {
			lx.advance()
		}
		lx.emit(KindVariable, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
		if lookingForProperty {
			lx.modes.pop()
		}
		return nil

	case isAlpha(b):
		for isAlnum(lx.peekByte()) {
			lx.advance()
		}
		word := string(lx.src[startOff:lx.pos])
		if lookingForProperty {
			lx.emit(KindIdent, word, startLine, startCol, startOff)
			lx.modes.pop()
			return nil
		}
		if kw, ok := keywordKinds[foldCaser.String(word)]; ok {
			lx.emit(kw, word, startLine, startCol, startOff)
		} else {
			lx.emit(KindIdent, word, startLine, startCol, startOff)
		}
		return nil

	case isDigit(b):
		return lx.scanNumber(startLine, startCol, startOff)

	case b == '\'':
		return lx.scanSingleQuoted(startLine, startCol, startOff)

	case b == '"':
		lx.advance()
		lx.emit(KindDQuote, `"`, startLine, startCol, startOff)
		lx.modes.push(DoubleQuotes)
		return nil

	case b == '`':
		lx.advance()
		lx.emit(KindBacktick, "`", startLine, startCol, startOff)
		lx.modes.push(Backticks)
		return nil

	case lx.hasPrefix("<<<"):
		return lx.scanHeredocOpen(startLine, startCol, startOff)

	case b == '\\':
		lx.advance()
		lx.emit(KindNsSep, `\`, startLine, startCol, startOff)
		return nil

	case lx.hasPrefix("?->"):
		lx.advance()
		lx.advance()
		lx.advance()
		lx.emit(KindNullsafeArrow, "?->", startLine, startCol, startOff)
		lx.modes.push(LookingForProperty)
		return nil

	case lx.hasPrefix("->"):
		lx.advance()
		lx.advance()
		lx.emit(KindArrow, "->", startLine, startCol, startOff)
		lx.modes.push(LookingForProperty)
		return nil

	case b == '(':
		if castLexeme, ok := lx.matchCast(); ok {
			for range castLexeme {
				lx.advance()
			}
			lx.emit(KindCast, castLexeme, startLine, startCol, startOff)
			return nil
		}
	}

	if tok, ok := lx.scanOperator(); ok {
		lx.emit(tok, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
		return nil
	}

	return lx.errf("unexpected character %q", string(b))
}

func (lx *lexer) skipWhitespaceAndComments() {
	for !lx.eof() {
		b := lx.peekByte()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			startLine, startCol, startOff := lx.line, lx.col, lx.pos
			for !lx.eof() {
				c := lx.peekByte()
				if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
					break
				}
				lx.advance()
			}
			lx.trivia = append(lx.trivia, Trivia{Class: classWhitespace, Lexeme: string(lx.src[startOff:lx.pos]), Line: startLine, LinePos: startCol, Offset: startOff})
			continue
		}
		if b == '#' || lx.hasPrefix("//") {
			if lx.hasPrefix("#[") {
				// attribute syntax is not in the supported grammar subset;
				// treat the opening marker itself as an error boundary only
				// if it's actually used, otherwise fall through as a
				// line comment would be wrong. We simply stop treating it
				// as a comment so the parser reports it.
				return
			}
			startLine, startCol, startOff := lx.line, lx.col, lx.pos
			for !lx.eof() && lx.peekByte() != '\n' && !lx.hasPrefix("?>") {
				lx.advance()
			}
			lx.trivia = append(lx.trivia, Trivia{Class: classComment, Lexeme: string(lx.src[startOff:lx.pos]), Line: startLine, LinePos: startCol, Offset: startOff})
			continue
		}
		if lx.hasPrefix("/*") {
			startLine, startCol, startOff := lx.line, lx.col, lx.pos
			lx.advance()
			lx.advance()
			for !lx.eof() && !lx.hasPrefix("*/") {
				lx.advance()
			}
			if !lx.eof() {
				lx.advance()
				lx.advance()
			}
			lx.trivia = append(lx.trivia, Trivia{Class: classComment, Lexeme: string(lx.src[startOff:lx.pos]), Line: startLine, LinePos: startCol, Offset: startOff})
			continue
		}
		return
	}
}

func (lx *lexer) scanNumber(startLine, startCol, startOff int) error {
	if lx.peekByte() == '0' && (lx.peekAt(1) == 'x' || lx.peekAt(1) == 'X') {
		lx.advance()
		lx.advance()
		for isHexDigit(lx.peekByte()) {
			lx.advance()
		}
		lx.emit(KindLNumber, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
		return nil
	}
	if lx.peekByte() == '0' && (lx.peekAt(1) == 'b' || lx.peekAt(1) == 'B') {
		lx.advance()
		lx.advance()
		for lx.peekByte() == '0' || lx.peekByte() == '1' {
			lx.advance()
		}
		lx.emit(KindLNumber, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
		return nil
	}

	isFloat := false
	for isDigit(lx.peekByte()) {
		lx.advance()
	}
	if lx.peekByte() == '.' && isDigit(lx.peekAt(1)) {
		isFloat = true
		lx.advance()
		for isDigit(lx.peekByte()) {
			lx.advance()
		}
	}
	if lx.peekByte() == 'e' || lx.peekByte() == 'E' {
		save := lx.pos
		saveLine, saveCol := lx.line, lx.col
		lx.advance()
		if lx.peekByte() == '+' || lx.peekByte() == '-' {
			lx.advance()
		}
		if isDigit(lx.peekByte()) {
			isFloat = true
			for isDigit(lx.peekByte()) {
				lx.advance()
			}
		} else {
			lx.pos, lx.line, lx.col = save, saveLine, saveCol
		}
	}

	lexeme := string(lx.src[startOff:lx.pos])
	if isFloat {
		lx.emit(KindDNumber, lexeme, startLine, startCol, startOff)
	} else {
		lx.emit(KindLNumber, lexeme, startLine, startCol, startOff)
	}
	return nil
}

func (lx *lexer) scanSingleQuoted(startLine, startCol, startOff int) error {
	lx.advance() // opening '
	for {
		if lx.eof() {
			return lx.errf("unterminated string literal")
		}
		b := lx.peekByte()
		if b == '\\' && (lx.peekAt(1) == '\'' || lx.peekAt(1) == '\\') {
			lx.advance()
			lx.advance()
			continue
		}
		if b == '\'' {
			lx.advance()
			break
		}
		lx.advance()
	}
	lx.emit(KindStringLit, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
	return nil
}

// scanEncapsed handles DOUBLE_QUOTES, HEREDOC, and BACKTICKS: plain text
// runs become STRING_PART tokens, and "$name" (optionally with a trailing
// "[offset]") switches into the interpolation path directly.
func (lx *lexer) scanEncapsed() error {
	m := lx.modes.top()

	closer := func() bool {
		switch m {
		case DoubleQuotes:
			return lx.peekByte() == '"'
		case Backticks:
			return lx.peekByte() == '`'
		case Heredoc:
			return lx.atHeredocTerminator()
		}
		return false
	}

	startLine, startCol, startOff := lx.line, lx.col, lx.pos
	for !lx.eof() {
		if closer() {
			break
		}
		if lx.peekByte() == '$' && isAlpha(lx.peekAt(1)) {
			break
		}
		if lx.peekByte() == '\\' {
			lx.advance()
			if !lx.eof() {
				lx.advance()
			}
			continue
		}
		lx.advance()
	}
	if lx.pos > startOff {
		lx.emit(KindStringPart, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
	}

	if lx.eof() {
		return lx.errf("unterminated string")
	}

	if lx.peekByte() == '$' && isAlpha(lx.peekAt(1)) {
		vLine, vCol, vOff := lx.line, lx.col, lx.pos
		lx.advance()
		for isAlnum(lx.peekByte()) {
			lx.advance()
		}
		lx.emit(KindVariable, string(lx.src[vOff:lx.pos]), vLine, vCol, vOff)
		if lx.peekByte() == '[' {
			lx.modes.push(VarOffset)
		}
		return nil
	}

	switch m {
	case DoubleQuotes:
		cLine, cCol, cOff := lx.line, lx.col, lx.pos
		lx.advance()
		lx.emit(KindDQuote, `"`, cLine, cCol, cOff)
		lx.modes.pop()
	case Backticks:
		cLine, cCol, cOff := lx.line, lx.col, lx.pos
		lx.advance()
		lx.emit(KindBacktick, "`", cLine, cCol, cOff)
		lx.modes.pop()
	case Heredoc:
		cLine, cCol, cOff := lx.line, lx.col, lx.pos
		lx.consumeHeredocTerminator()
		lx.emit(KindHeredocClose, lx.heredocLabel, cLine, cCol, cOff)
		lx.modes.pop()
	}
	return nil
}

func (lx *lexer) scanVarOffset() error {
	startLine, startCol, startOff := lx.line, lx.col, lx.pos
	switch {
	case lx.peekByte() == '[':
		lx.advance()
		lx.emit(KindLBracket, "[", startLine, startCol, startOff)
		return nil
	case lx.peekByte() == ']':
		lx.advance()
		lx.emit(KindRBracket, "]", startLine, startCol, startOff)
		lx.modes.pop()
		return nil
	case isDigit(lx.peekByte()):
		for isDigit(lx.peekByte()) {
			lx.advance()
		}
		lx.emit(KindLNumber, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
		return nil
	case lx.peekByte() == '$':
		lx.advance()
		for isAlnum(lx.peekByte()) {
			lx.advance()
		}
		lx.emit(KindVariable, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
		return nil
	case isAlpha(lx.peekByte()):
		for isAlnum(lx.peekByte()) {
			lx.advance()
		}
		lx.emit(KindIdent, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
		return nil
	}
	return lx.errf("unexpected character %q in string offset", string(lx.peekByte()))
}

func (lx *lexer) scanNowdoc() error {
	startLine, startCol, startOff := lx.line, lx.col, lx.pos
	for !lx.eof() && !lx.atHeredocTerminator() {
		lx.advance()
	}
	if lx.eof() {
		return lx.errf("unterminated nowdoc, expected closing label %q", lx.heredocLabel)
	}
	if lx.pos > startOff {
		lx.emit(KindNowdocBody, string(lx.src[startOff:lx.pos]), startLine, startCol, startOff)
	}
	cLine, cCol, cOff := lx.line, lx.col, lx.pos
	lx.consumeHeredocTerminator()
	lx.emit(KindHeredocClose, lx.heredocLabel, cLine, cCol, cOff)
	lx.modes.pop()
	return nil
}

// atHeredocTerminator reports whether the scanner is positioned at the start
// of a line consisting of (optional leading whitespace) the heredoc label
// followed by a non-identifier character, per modern PHP's flexible heredoc
// closing-label rule.
func (lx *lexer) atHeredocTerminator() bool {
	if lx.col != 1 {
		return false
	}
	p := lx.pos
	for p < len(lx.src) && (lx.src[p] == ' ' || lx.src[p] == '\t') {
		p++
	}
	label := lx.heredocLabel
	if p+len(label) > len(lx.src) {
		return false
	}
	if string(lx.src[p:p+len(label)]) != label {
		return false
	}
	after := byte(0)
	if p+len(label) < len(lx.src) {
		after = lx.src[p+len(label)]
	}
	return !isAlnum(after)
}

func (lx *lexer) consumeHeredocTerminator() {
	for lx.peekByte() == ' ' || lx.peekByte() == '\t' {
		lx.advance()
	}
	for i := 0; i < len(lx.heredocLabel); i++ {
		lx.advance()
	}
}

func (lx *lexer) scanHeredocOpen(startLine, startCol, startOff int) error {
	lx.advance()
	lx.advance()
	lx.advance() // "<<<"
	for lx.peekByte() == ' ' || lx.peekByte() == '\t' {
		lx.advance()
	}

	nowdoc := false
	quote := byte(0)
	if lx.peekByte() == '\'' || lx.peekByte() == '"' {
		quote = lx.peekByte()
		nowdoc = quote == '\''
		lx.advance()
	}

	labelStart := lx.pos
	for isAlnum(lx.peekByte()) {
		lx.advance()
	}
	label := string(lx.src[labelStart:lx.pos])
	if label == "" {
		return lx.errf("expected heredoc/nowdoc label after '<<<'")
	}
	if quote != 0 {
		if lx.peekByte() != quote {
			return lx.errf("expected closing %q after heredoc label %q", string(quote), label)
		}
		lx.advance()
	}
	if lx.peekByte() == '\r' {
		lx.advance()
	}
	if lx.peekByte() != '\n' {
		return lx.errf("expected newline after heredoc opening label %q", label)
	}
	lx.advance()

	lx.emit(KindHeredocOpen, label, startLine, startCol, startOff)
	lx.heredocLabel = label
	lx.heredocNowdoc = nowdoc
	if nowdoc {
		lx.modes.push(Nowdoc)
	} else {
		lx.modes.push(Heredoc)
	}
	return nil
}

// operator table, longest match first.
var operatorTable = []struct {
	lit  string
	kind kind
}{
	{"<=>", KindSpaceship}, {"===", KindIdentical}, {"!==", KindNotIdentical},
	{"**=", KindPowAssign}, {"<<=", KindShlAssign}, {">>=", KindShrAssign},
	{"??=", KindCoalesceAssign}, {"...", KindEllipsis},
	{"<>", KindNotEq}, {"==", KindEq}, {"!=", KindNotEq},
	{"<=", KindLe}, {">=", KindGe}, {"&&", KindAndAnd}, {"||", KindOrOr},
	{"??", KindCoalesce}, {"++", KindInc}, {"--", KindDec}, {"**", KindPow},
	{"::", KindDColon}, {"=>", KindDoubleArrow},
	{"+=", KindPlusAssign}, {"-=", KindMinusAssign}, {"*=", KindStarAssign},
	{"/=", KindSlashAssign}, {".=", KindDotAssign}, {"%=", KindPercentAssign},
	{"&=", KindAmpAssign}, {"|=", KindPipeAssign}, {"^=", KindCaretAssign},
	{"<<", KindShl}, {">>", KindShr},
	{"+", KindPlus}, {"-", KindMinus}, {"*", KindStar}, {"/", KindSlash}, {"%", KindPercent},
	{".", KindDot}, {"=", KindAssign}, {"<", KindLt}, {">", KindGt},
	{"!", KindNot}, {"&", KindAmp}, {"|", KindPipe}, {"^", KindCaret}, {"~", KindTilde},
	{"(", KindLParen}, {")", KindRParen}, {"{", KindLBrace}, {"}", KindRBrace},
	{"[", KindLBracket}, {"]", KindRBracket}, {";", KindSemi}, {",", KindComma},
	{":", KindColon}, {"?", KindQuestion}, {"@", KindAt}, {"$", KindDollar},
}

func (lx *lexer) scanOperator() (kind, bool) {
	for _, op := range operatorTable {
		if lx.hasPrefix(op.lit) {
			for i := 0; i < len(op.lit); i++ {
				lx.advance()
			}
			return op.kind, true
		}
	}
	return kind{}, false
}
