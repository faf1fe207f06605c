package phpgrammar

import (
	"fmt"

	"github.com/dekarrin/phpsyn/internal/ictiobus/types"
	"github.com/dekarrin/phpsyn/internal/phpast"
)

// Transform walks a raw LALR parse tree and builds the token-span-annotated
// arena tree consumers actually work with. This is the reduction-action
// layer: the generic LR driver has no per-rule callback hook, so the shaping
// work spec.md §4.R describes (if/elseif flattening, concatenation
// flattening, list-unpacking) happens here as a post-pass instead of inline
// during parsing.
func Transform(pt types.ParseTree) (*phpast.Tree, error) {
	b := &builder{a: &phpast.Arena{}}
	root := b.buildProgram(&pt)
	return &phpast.Tree{Arena: b.a, Root: root, Tokens: b.tokens}, nil
}

type builder struct {
	a      *phpast.Arena
	tokens []types.Token
}

// consume records t's token in the flat token stream and returns its index.
// Every terminal leaf in the raw parse tree must pass through here exactly
// once, in the order the parser produced them, whether or not it becomes an
// AST node of its own, so that FirstToken/LastToken indices stay valid.
func (b *builder) consume(t *types.ParseTree) int {
	b.tokens = append(b.tokens, t.Source)
	return len(b.tokens) - 1
}

// leaf consumes a terminal and wraps it in a new node of kind k, for
// terminals that are themselves meaningful nodes (operators, identifiers,
// scalars).
func (b *builder) leaf(k phpast.Kind, t *types.ParseTree) phpast.Handle {
	idx := b.consume(t)
	h := b.a.New(k)
	b.a.ExpandSpan(h, idx, idx)
	h2 := b.a.Node(h)
	h2.Lexeme = t.Source.Lexeme()
	return h
}

// punct consumes a terminal that contributes to a span but never becomes a
// node of its own (parens, semicolons, commas, braces).
func (b *builder) punct(parent phpast.Handle, t *types.ParseTree) {
	idx := b.consume(t)
	if parent != phpast.NoHandle {
		b.a.Expand(parent, idx)
	}
}

// --- Program / statement lists ---

func (b *builder) buildProgram(pt *types.ParseTree) phpast.Handle {
	prog := b.a.New(phpast.KindProgram)
	list := b.a.New(phpast.KindStatementList)
	b.a.AppendChild(prog, list)
	b.buildStatementList(pt.Children[0], list)
	return prog
}

// buildStatementList appends one child to list for each Statement reachable
// by unwinding the left-recursive "StatementList -> StatementList Statement
// | ε" chain. Epsilon reduces to a childless node (see the lr.go fix
// recorded in DESIGN.md), so an empty chain terminates cleanly.
func (b *builder) buildStatementList(pt *types.ParseTree, list phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	b.buildStatementList(pt.Children[0], list)
	stmt := b.buildStatement(pt.Children[1])
	if stmt != phpast.NoHandle {
		b.a.AppendChild(list, stmt)
	}
}

func (b *builder) buildStatement(pt *types.ParseTree) phpast.Handle {
	c := pt.Children[0]
	switch c.Value {
	case "semi":
		b.consume(c)
		return phpast.NoHandle
	case "inline_html":
		return b.leaf(phpast.KindInlineHTML, c)
	case "ExprStmt":
		return b.buildExprStmt(c)
	case "IfStmt":
		return b.buildIfStmt(c)
	case "WhileStmt":
		return b.buildWhileStmt(c)
	case "DoWhileStmt":
		return b.buildDoWhileStmt(c)
	case "ForStmt":
		return b.buildForStmt(c)
	case "ForeachStmt":
		return b.buildForeachStmt(c)
	case "SwitchStmt":
		return b.buildSwitchStmt(c)
	case "BreakStmt":
		return b.buildBreakContinue(c, phpast.KindBreak)
	case "ContinueStmt":
		return b.buildBreakContinue(c, phpast.KindContinue)
	case "ReturnStmt":
		return b.buildReturnStmt(c)
	case "EchoStmt":
		return b.buildEchoStmt(c)
	case "GlobalStmt":
		return b.buildGlobalStmt(c)
	case "StaticVarStmt":
		return b.buildStaticVarStmt(c)
	case "ThrowStmt":
		return b.buildThrowStmt(c)
	case "TryStmt":
		return b.buildTryStmt(c)
	case "UnsetStmt":
		return b.buildUnsetStmt(c)
	case "Block":
		return b.buildBlock(c)
	case "FunctionDecl":
		return b.buildFunctionDecl(c)
	case "ClassDecl":
		return b.buildClassDecl(c)
	case "InterfaceDecl":
		return b.buildInterfaceDecl(c)
	case "TraitDecl":
		return b.buildTraitDecl(c)
	}
	panic(fmt.Sprintf("phpgrammar: unhandled statement alternative %q", c.Value))
}

// statement wraps a built expression/construct with the generic "statement"
// node, matching spec.md §8 scenario 1's
// program[statement-list[statement[numeric-scalar("1")]]] shape.
func (b *builder) wrapStatement(inner phpast.Handle) phpast.Handle {
	h := b.a.New(phpast.KindStatement)
	b.a.AppendChild(h, inner)
	return h
}

func (b *builder) buildExprStmt(pt *types.ParseTree) phpast.Handle {
	expr := b.buildExpr(pt.Children[0])
	stmt := b.wrapStatement(expr)
	b.punct(stmt, pt.Children[1]) // semi
	return stmt
}

func (b *builder) buildBlock(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindBlock)
	b.punct(h, pt.Children[0]) // lbrace
	b.buildStatementList(pt.Children[1], h)
	b.punct(h, pt.Children[2]) // rbrace
	return h
}

// --- if / elseif / else ---

func (b *builder) buildIfStmt(pt *types.ParseTree) phpast.Handle {
	list := b.a.New(phpast.KindConditionList)

	ifNode := b.a.New(phpast.KindIf)
	b.punct(ifNode, pt.Children[0]) // if
	b.punct(ifNode, pt.Children[1]) // lparen
	cond := b.buildExpr(pt.Children[2])
	b.a.AppendChild(ifNode, cond)
	b.punct(ifNode, pt.Children[3]) // rparen
	body := b.buildStatement(pt.Children[4])
	if body != phpast.NoHandle {
		b.a.AppendChild(ifNode, body)
	}
	b.a.AppendChild(list, ifNode)

	b.buildElseifList(pt.Children[5], list)
	b.buildElseOpt(pt.Children[6], list)

	return list
}

func (b *builder) buildElseifList(pt *types.ParseTree, list phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	b.buildElseifList(pt.Children[0], list)

	elseifNode := b.a.New(phpast.KindElseif)
	b.punct(elseifNode, pt.Children[1]) // elseif
	b.punct(elseifNode, pt.Children[2]) // lparen
	cond := b.buildExpr(pt.Children[3])
	b.a.AppendChild(elseifNode, cond)
	b.punct(elseifNode, pt.Children[4]) // rparen
	body := b.buildStatement(pt.Children[5])
	if body != phpast.NoHandle {
		b.a.AppendChild(elseifNode, body)
	}
	b.a.AppendChild(list, elseifNode)
}

func (b *builder) buildElseOpt(pt *types.ParseTree, list phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	elseNode := b.a.New(phpast.KindElse)
	b.punct(elseNode, pt.Children[0]) // else
	body := b.buildStatement(pt.Children[1])
	if body != phpast.NoHandle {
		b.a.AppendChild(elseNode, body)
	}
	b.a.AppendChild(list, elseNode)
}

// --- loops ---

func (b *builder) buildWhileStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindWhile)
	b.punct(h, pt.Children[0])
	b.punct(h, pt.Children[1])
	cond := b.buildExpr(pt.Children[2])
	b.a.AppendChild(h, cond)
	b.punct(h, pt.Children[3])
	body := b.buildStatement(pt.Children[4])
	if body != phpast.NoHandle {
		b.a.AppendChild(h, body)
	}
	return h
}

func (b *builder) buildDoWhileStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindDoWhile)
	b.punct(h, pt.Children[0]) // do
	body := b.buildStatement(pt.Children[1])
	if body != phpast.NoHandle {
		b.a.AppendChild(h, body)
	}
	b.punct(h, pt.Children[2]) // while
	b.punct(h, pt.Children[3]) // lparen
	cond := b.buildExpr(pt.Children[4])
	b.a.AppendChild(h, cond)
	b.punct(h, pt.Children[5]) // rparen
	b.punct(h, pt.Children[6]) // semi
	return h
}

func (b *builder) buildForStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindFor)
	header := b.a.New(phpast.KindForHeader)
	b.a.AppendChild(h, header)

	b.punct(header, pt.Children[0]) // for
	b.punct(header, pt.Children[1]) // lparen
	b.buildForExprOptInto(pt.Children[2], header)
	b.punct(header, pt.Children[3]) // semi
	b.buildForExprOptInto(pt.Children[4], header)
	b.punct(header, pt.Children[5]) // semi
	b.buildForExprOptInto(pt.Children[6], header)
	b.punct(header, pt.Children[7]) // rparen

	body := b.buildStatement(pt.Children[8])
	if body != phpast.NoHandle {
		b.a.AppendChild(h, body)
	}
	return h
}

func (b *builder) buildForExprOptInto(pt *types.ParseTree, parent phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	for _, e := range b.buildExprList(pt.Children[0]) {
		b.a.AppendChild(parent, e)
	}
}

// buildExprList unwinds a left-recursive "ExprList -> ExprList comma Expr |
// Expr" chain into a flat, ordered slice.
func (b *builder) buildExprList(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.buildExpr(pt.Children[0])}
	}
	items := b.buildExprList(pt.Children[0])
	b.consume(pt.Children[1]) // comma
	return append(items, b.buildExpr(pt.Children[2]))
}

func (b *builder) buildForeachStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindForeach)
	b.punct(h, pt.Children[0]) // foreach
	b.punct(h, pt.Children[1]) // lparen
	coll := b.buildExpr(pt.Children[2])
	b.a.AppendChild(h, coll)
	b.punct(h, pt.Children[3]) // as
	b.buildForeachTargetInto(pt.Children[4], h)
	b.punct(h, pt.Children[5]) // rparen
	body := b.buildStatement(pt.Children[6])
	if body != phpast.NoHandle {
		b.a.AppendChild(h, body)
	}
	return h
}

func (b *builder) buildForeachTargetInto(pt *types.ParseTree, parent phpast.Handle) {
	if len(pt.Children) == 1 {
		b.a.AppendChild(parent, b.buildExpr(pt.Children[0]))
		return
	}
	key := b.buildExpr(pt.Children[0])
	b.a.AppendChild(parent, key)
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	b.a.AppendChild(parent, op)
	val := b.buildExpr(pt.Children[2])
	b.a.AppendChild(parent, val)
}

// --- switch ---

func (b *builder) buildSwitchStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindSwitch)
	b.punct(h, pt.Children[0]) // switch
	b.punct(h, pt.Children[1]) // lparen
	subj := b.buildExpr(pt.Children[2])
	b.a.AppendChild(h, subj)
	b.punct(h, pt.Children[3]) // rparen
	b.punct(h, pt.Children[4]) // lbrace
	b.buildCaseList(pt.Children[5], h)
	b.punct(h, pt.Children[6]) // rbrace
	return h
}

func (b *builder) buildCaseList(pt *types.ParseTree, switchNode phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	b.buildCaseList(pt.Children[0], switchNode)
	clause := pt.Children[1]
	first := clause.Children[0]
	var caseNode phpast.Handle
	if first.Value == "case" {
		caseNode = b.a.New(phpast.KindCase)
		b.punct(caseNode, clause.Children[0]) // case
		expr := b.buildExpr(clause.Children[1])
		b.a.AppendChild(caseNode, expr)
		b.punct(caseNode, clause.Children[2]) // colon
		body := b.a.New(phpast.KindStatementList)
		b.a.AppendChild(caseNode, body)
		b.buildStatementList(clause.Children[3], body)
	} else {
		caseNode = b.a.New(phpast.KindDefault)
		b.punct(caseNode, clause.Children[0]) // default
		b.punct(caseNode, clause.Children[1]) // colon
		body := b.a.New(phpast.KindStatementList)
		b.a.AppendChild(caseNode, body)
		b.buildStatementList(clause.Children[2], body)
	}
	b.a.AppendChild(switchNode, caseNode)
}

// --- simple statements ---

func (b *builder) buildBreakContinue(pt *types.ParseTree, kind phpast.Kind) phpast.Handle {
	h := b.a.New(kind)
	b.punct(h, pt.Children[0]) // break/continue
	if len(pt.Children) == 3 {
		lvl := b.leaf(phpast.KindNumericScalar, pt.Children[1])
		b.a.AppendChild(h, lvl)
		b.punct(h, pt.Children[2]) // semi
	} else {
		b.punct(h, pt.Children[1]) // semi
	}
	return h
}

func (b *builder) buildReturnStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindReturn)
	b.punct(h, pt.Children[0]) // return
	if len(pt.Children) == 3 {
		expr := b.buildExpr(pt.Children[1])
		b.a.AppendChild(h, expr)
		b.punct(h, pt.Children[2]) // semi
	} else {
		b.punct(h, pt.Children[1]) // semi
	}
	return h
}

func (b *builder) buildEchoStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindEcho)
	b.punct(h, pt.Children[0]) // echo
	for _, e := range b.buildExprList(pt.Children[1]) {
		b.a.AppendChild(h, e)
	}
	b.punct(h, pt.Children[2]) // semi
	return h
}

func (b *builder) buildGlobalStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindGlobalStmt)
	b.punct(h, pt.Children[0]) // global
	for _, v := range b.buildVarList(pt.Children[1]) {
		b.a.AppendChild(h, v)
	}
	b.punct(h, pt.Children[2]) // semi
	return h
}

func (b *builder) buildVarList(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.leaf(phpast.KindVariable, pt.Children[0])}
	}
	items := b.buildVarList(pt.Children[0])
	b.consume(pt.Children[1]) // comma
	return append(items, b.leaf(phpast.KindVariable, pt.Children[2]))
}

func (b *builder) buildStaticVarStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindStaticVarStmt)
	b.punct(h, pt.Children[0]) // static
	for _, d := range b.buildStaticVarDeclList(pt.Children[1]) {
		b.a.AppendChild(h, d)
	}
	b.punct(h, pt.Children[2]) // semi
	return h
}

func (b *builder) buildStaticVarDeclList(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.buildStaticVarDecl(pt.Children[0])}
	}
	items := b.buildStaticVarDeclList(pt.Children[0])
	b.consume(pt.Children[1]) // comma
	return append(items, b.buildStaticVarDecl(pt.Children[2]))
}

func (b *builder) buildStaticVarDecl(pt *types.ParseTree) phpast.Handle {
	v := b.leaf(phpast.KindVariable, pt.Children[0])
	if len(pt.Children) == 1 {
		return v
	}
	h := b.a.New(phpast.KindBinaryExpr)
	b.a.AppendChild(h, v)
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	b.a.AppendChild(h, op)
	rhs := b.buildExpr(pt.Children[2])
	b.a.AppendChild(h, rhs)
	return h
}

func (b *builder) buildThrowStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindThrow)
	b.punct(h, pt.Children[0]) // throw
	expr := b.buildExpr(pt.Children[1])
	b.a.AppendChild(h, expr)
	b.punct(h, pt.Children[2]) // semi
	return h
}

func (b *builder) buildTryStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindTry)
	b.punct(h, pt.Children[0]) // try
	block := b.buildBlock(pt.Children[1])
	b.a.AppendChild(h, block)
	b.buildCatchList(pt.Children[2], h)
	b.buildFinallyOpt(pt.Children[3], h)
	return h
}

func (b *builder) buildCatchList(pt *types.ParseTree, tryNode phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	b.buildCatchList(pt.Children[0], tryNode)
	clause := pt.Children[1]
	catchNode := b.a.New(phpast.KindCatch)
	b.punct(catchNode, clause.Children[0]) // catch
	b.punct(catchNode, clause.Children[1]) // lparen
	typeName := b.leaf(phpast.KindTypeName, clause.Children[2])
	b.a.AppendChild(catchNode, typeName)
	if len(clause.Children) == 6 {
		v := b.leaf(phpast.KindVariable, clause.Children[3])
		b.a.AppendChild(catchNode, v)
		b.punct(catchNode, clause.Children[4]) // rparen
		block := b.buildBlock(clause.Children[5])
		b.a.AppendChild(catchNode, block)
	} else {
		b.punct(catchNode, clause.Children[3]) // rparen
		block := b.buildBlock(clause.Children[4])
		b.a.AppendChild(catchNode, block)
	}
	b.a.AppendChild(tryNode, catchNode)
}

func (b *builder) buildFinallyOpt(pt *types.ParseTree, tryNode phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	finallyNode := b.a.New(phpast.KindFinally)
	b.punct(finallyNode, pt.Children[0]) // finally
	block := b.buildBlock(pt.Children[1])
	b.a.AppendChild(finallyNode, block)
	b.a.AppendChild(tryNode, finallyNode)
}

func (b *builder) buildUnsetStmt(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindUnset)
	b.punct(h, pt.Children[0]) // unset
	b.punct(h, pt.Children[1]) // lparen
	for _, e := range b.buildExprList(pt.Children[2]) {
		b.a.AppendChild(h, e)
	}
	b.punct(h, pt.Children[3]) // rparen
	b.punct(h, pt.Children[4]) // semi
	return h
}

// --- declarations ---

func (b *builder) buildFunctionDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindFunctionDecl)
	b.punct(h, pt.Children[0]) // function
	idx := 1
	if pt.Children[1].Value == "amp" {
		b.punct(h, pt.Children[1])
		idx = 2
	}
	name := b.leaf(phpast.KindIdentifier, pt.Children[idx])
	b.a.AppendChild(h, name)
	idx++
	b.punct(h, pt.Children[idx]) // lparen
	idx++
	params := b.buildParamListOpt(pt.Children[idx])
	idx++
	paramList := b.a.New(phpast.KindDeclarationParamList)
	for _, p := range params {
		b.a.AppendChild(paramList, p)
	}
	b.a.AppendChild(h, paramList)
	b.punct(h, pt.Children[idx]) // rparen
	idx++
	body := b.buildBlock(pt.Children[idx])
	b.a.AppendChild(h, body)
	return h
}

func (b *builder) buildParamListOpt(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 0 {
		return nil
	}
	return b.buildParamList(pt.Children[0])
}

func (b *builder) buildParamList(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.buildParam(pt.Children[0])}
	}
	items := b.buildParamList(pt.Children[0])
	b.consume(pt.Children[1]) // comma
	return append(items, b.buildParam(pt.Children[2]))
}

// buildParam handles all four Param alternatives: a bare variable, a
// variable with a default, a by-reference variable, and a variadic
// variable. The by-ref/variadic marker becomes an operator leaf child
// rather than a bit on the node, the same way ForeachTarget's "=>" does.
func (b *builder) buildParam(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindDeclarationParam)
	switch len(pt.Children) {
	case 1:
		v := b.leaf(phpast.KindVariable, pt.Children[0])
		b.a.AppendChild(h, v)
	case 2:
		op := b.leaf(phpast.KindOperator, pt.Children[0]) // amp | ellipsis
		b.a.AppendChild(h, op)
		v := b.leaf(phpast.KindVariable, pt.Children[1])
		b.a.AppendChild(h, v)
	case 3:
		v := b.leaf(phpast.KindVariable, pt.Children[0])
		b.a.AppendChild(h, v)
		b.punct(h, pt.Children[1]) // assign
		def := b.buildExpr(pt.Children[2])
		b.a.AppendChild(h, def)
	}
	return h
}

func (b *builder) buildExtendsOpt(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 0 {
		return phpast.NoHandle
	}
	h := b.a.New(phpast.KindExtendsList)
	b.punct(h, pt.Children[0]) // extends
	name := b.leaf(phpast.KindTypeName, pt.Children[1])
	b.a.AppendChild(h, name)
	return h
}

func (b *builder) buildImplementsOpt(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 0 {
		return phpast.NoHandle
	}
	h := b.a.New(phpast.KindImplementsList)
	b.punct(h, pt.Children[0]) // implements
	for _, n := range b.buildTypeNameCommaList(pt.Children[1]) {
		b.a.AppendChild(h, n)
	}
	return h
}

func (b *builder) buildInterfaceExtendsOpt(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 0 {
		return phpast.NoHandle
	}
	h := b.a.New(phpast.KindExtendsList)
	b.punct(h, pt.Children[0]) // extends
	for _, n := range b.buildTypeNameCommaList(pt.Children[1]) {
		b.a.AppendChild(h, n)
	}
	return h
}

func (b *builder) buildTypeNameCommaList(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.leaf(phpast.KindTypeName, pt.Children[0])}
	}
	items := b.buildTypeNameCommaList(pt.Children[0])
	b.consume(pt.Children[1]) // comma
	return append(items, b.leaf(phpast.KindTypeName, pt.Children[2]))
}

func (b *builder) buildClassDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindClassDecl)
	mods := b.buildClassModifiers(pt.Children[0], h)
	b.a.Node(h).Modifiers = mods
	b.punct(h, pt.Children[1]) // class
	name := b.leaf(phpast.KindClassName, pt.Children[2])
	b.a.AppendChild(h, name)
	if ext := b.buildExtendsOpt(pt.Children[3]); ext != phpast.NoHandle {
		b.a.AppendChild(h, ext)
	}
	if impl := b.buildImplementsOpt(pt.Children[4]); impl != phpast.NoHandle {
		b.a.AppendChild(h, impl)
	}
	b.punct(h, pt.Children[5]) // lbrace
	b.buildClassMemberList(pt.Children[6], h)
	b.punct(h, pt.Children[7]) // rbrace
	return h
}

// buildClassModifiers and buildMemberModifiers both unwind a
// left-recursive "X -> X Y | ε" modifier chain, OR-ing each modifier into
// a bitset on target while also folding its token into target's span
// (modifiers are not their own child nodes, just a bit plus a span
// contribution, per DESIGN.md's supplemented-features entry on this).
func (b *builder) buildClassModifiers(pt *types.ParseTree, target phpast.Handle) phpast.Modifier {
	if len(pt.Children) == 0 {
		return 0
	}
	mod := b.buildClassModifiers(pt.Children[0], target)
	tok := pt.Children[1].Children[0]
	b.punct(target, tok)
	return mod | modifierBit(tok.Value)
}

func (b *builder) buildMemberModifiers(pt *types.ParseTree, target phpast.Handle) phpast.Modifier {
	if len(pt.Children) == 0 {
		return 0
	}
	mod := b.buildMemberModifiers(pt.Children[0], target)
	tok := pt.Children[1].Children[0]
	b.punct(target, tok)
	return mod | modifierBit(tok.Value)
}

func modifierBit(name string) phpast.Modifier {
	switch name {
	case "public":
		return phpast.ModifierPublic
	case "private":
		return phpast.ModifierPrivate
	case "protected":
		return phpast.ModifierProtected
	case "static":
		return phpast.ModifierStatic
	case "abstract":
		return phpast.ModifierAbstract
	case "final":
		return phpast.ModifierFinal
	case "readonly":
		return phpast.ModifierReadonly
	case "var":
		return phpast.ModifierVar
	}
	return 0
}

func (b *builder) buildInterfaceDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindInterfaceDecl)
	b.punct(h, pt.Children[0]) // interface
	name := b.leaf(phpast.KindClassName, pt.Children[1])
	b.a.AppendChild(h, name)
	if ext := b.buildInterfaceExtendsOpt(pt.Children[2]); ext != phpast.NoHandle {
		b.a.AppendChild(h, ext)
	}
	b.punct(h, pt.Children[3]) // lbrace
	b.buildClassMemberList(pt.Children[4], h)
	b.punct(h, pt.Children[5]) // rbrace
	return h
}

func (b *builder) buildTraitDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindTraitDecl)
	b.punct(h, pt.Children[0]) // trait
	name := b.leaf(phpast.KindClassName, pt.Children[1])
	b.a.AppendChild(h, name)
	b.punct(h, pt.Children[2]) // lbrace
	b.buildClassMemberList(pt.Children[3], h)
	b.punct(h, pt.Children[4]) // rbrace
	return h
}

func (b *builder) buildClassMemberList(pt *types.ParseTree, parent phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	b.buildClassMemberList(pt.Children[0], parent)
	member := b.buildClassMember(pt.Children[1])
	b.a.AppendChild(parent, member)
}

func (b *builder) buildClassMember(pt *types.ParseTree) phpast.Handle {
	c := pt.Children[0]
	switch c.Value {
	case "PropertyDecl":
		return b.buildPropertyDecl(c)
	case "MethodDecl":
		return b.buildMethodDecl(c)
	case "ClassConstDecl":
		return b.buildClassConstDecl(c)
	case "TraitUseDecl":
		return b.buildTraitUseDecl(c)
	}
	panic(fmt.Sprintf("phpgrammar: unhandled class member alternative %q", c.Value))
}

func (b *builder) buildPropertyDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindPropertyDecl)
	mods := b.buildMemberModifiers(pt.Children[0], h)
	b.a.Node(h).Modifiers = mods
	v := b.leaf(phpast.KindVariable, pt.Children[1])
	b.a.AppendChild(h, v)
	if len(pt.Children) == 5 {
		b.punct(h, pt.Children[2]) // assign
		def := b.buildExpr(pt.Children[3])
		b.a.AppendChild(h, def)
		b.punct(h, pt.Children[4]) // semi
	} else {
		b.punct(h, pt.Children[2]) // semi
	}
	return h
}

func (b *builder) buildMethodDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindMethodDecl)
	mods := b.buildMemberModifiers(pt.Children[0], h)
	b.a.Node(h).Modifiers = mods
	b.punct(h, pt.Children[1]) // function
	idx := 2
	if pt.Children[2].Value == "amp" {
		b.punct(h, pt.Children[2])
		idx = 3
	}
	name := b.leaf(phpast.KindIdentifier, pt.Children[idx])
	b.a.AppendChild(h, name)
	idx++
	b.punct(h, pt.Children[idx]) // lparen
	idx++
	params := b.buildParamListOpt(pt.Children[idx])
	idx++
	paramList := b.a.New(phpast.KindDeclarationParamList)
	for _, p := range params {
		b.a.AppendChild(paramList, p)
	}
	b.a.AppendChild(h, paramList)
	b.punct(h, pt.Children[idx]) // rparen
	idx++
	last := pt.Children[idx]
	if last.Value == "Block" {
		body := b.buildBlock(last)
		b.a.AppendChild(h, body)
	} else {
		b.punct(h, last) // semi: abstract/interface method, no body
	}
	return h
}

func (b *builder) buildClassConstDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindClassConstDecl)
	mods := b.buildMemberModifiers(pt.Children[0], h)
	b.a.Node(h).Modifiers = mods
	b.punct(h, pt.Children[1]) // const
	name := b.leaf(phpast.KindIdentifier, pt.Children[2])
	b.a.AppendChild(h, name)
	b.punct(h, pt.Children[3]) // assign
	val := b.buildExpr(pt.Children[4])
	b.a.AppendChild(h, val)
	b.punct(h, pt.Children[5]) // semi
	return h
}

func (b *builder) buildTraitUseDecl(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindTraitUse)
	b.punct(h, pt.Children[0]) // use
	for _, n := range b.buildTypeNameCommaList(pt.Children[1]) {
		b.a.AppendChild(h, n)
	}
	b.punct(h, pt.Children[2]) // semi
	return h
}

// --- expressions ---

func (b *builder) buildExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildExpr, b.buildWeakXorExpr)
}

func (b *builder) buildWeakXorExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildWeakXorExpr, b.buildWeakAndExpr)
}

func (b *builder) buildWeakAndExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildWeakAndExpr, b.buildAssignExpr)
}

func (b *builder) binaryExpr(lhs, op, rhs phpast.Handle) phpast.Handle {
	h := b.a.New(phpast.KindBinaryExpr)
	b.a.AppendChild(h, lhs)
	b.a.AppendChild(h, op)
	b.a.AppendChild(h, rhs)
	return h
}

// buildAssignExpr treats every assignment operator, including plain "=",
// as a generic binary-expression with an operator leaf child rather than
// a distinct assignment-expression kind: real PHP assignment is itself
// just an expression that evaluates to its right side, and representing
// it as binary-expression[lhs, operator(op), rhs] keeps that uniform.
func (b *builder) buildAssignExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildTernaryExpr(pt.Children[0])
	}
	if pt.Children[0].Value == "list" {
		listNode := b.a.New(phpast.KindList)
		b.punct(listNode, pt.Children[0]) // list
		b.punct(listNode, pt.Children[1]) // lparen
		alist := b.a.New(phpast.KindAssignmentList)
		for _, t := range b.buildAssignTargetList(pt.Children[2]) {
			b.a.AppendChild(alist, t)
		}
		b.a.AppendChild(listNode, alist)
		b.punct(listNode, pt.Children[3]) // rparen
		op := b.leaf(phpast.KindOperator, pt.Children[4])
		rhs := b.buildAssignExpr(pt.Children[5])
		return b.binaryExpr(listNode, op, rhs)
	}
	lhs := b.buildPostfixExpr(pt.Children[0])
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	rhs := b.buildAssignExpr(pt.Children[2])
	return b.binaryExpr(lhs, op, rhs)
}

func (b *builder) buildAssignTargetList(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.buildPostfixExpr(pt.Children[0])}
	}
	items := b.buildAssignTargetList(pt.Children[0])
	b.consume(pt.Children[1]) // comma
	return append(items, b.buildPostfixExpr(pt.Children[2]))
}

func (b *builder) buildTernaryExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildCoalesceExpr(pt.Children[0])
	}
	cond := b.buildCoalesceExpr(pt.Children[0])
	h := b.a.New(phpast.KindTernaryExpr)
	b.a.AppendChild(h, cond)
	b.punct(h, pt.Children[1]) // question
	if len(pt.Children) == 5 {
		then := b.buildExpr(pt.Children[2])
		b.a.AppendChild(h, then)
		b.punct(h, pt.Children[3]) // colon
		els := b.buildTernaryExpr(pt.Children[4])
		b.a.AppendChild(h, els)
	} else {
		b.punct(h, pt.Children[2]) // colon
		els := b.buildTernaryExpr(pt.Children[3])
		b.a.AppendChild(h, els)
	}
	return h
}

func (b *builder) buildCoalesceExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildLogicalOrExpr(pt.Children[0])
	}
	lhs := b.buildLogicalOrExpr(pt.Children[0])
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	rhs := b.buildCoalesceExpr(pt.Children[2])
	return b.binaryExpr(lhs, op, rhs)
}

// buildLeftAssocBinary unwinds a left-recursive "X -> X op Y | Y" chain
// (possibly with several alternative operators) into nested
// binary-expression nodes, used for every left-associative operator tier
// between logical-or and multiplicative.
func (b *builder) buildLeftAssocBinary(pt *types.ParseTree, buildSelf, buildLower func(*types.ParseTree) phpast.Handle) phpast.Handle {
	if len(pt.Children) == 1 {
		return buildLower(pt.Children[0])
	}
	lhs := buildSelf(pt.Children[0])
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	rhs := buildLower(pt.Children[2])
	return b.binaryExpr(lhs, op, rhs)
}

func (b *builder) buildLogicalOrExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildLogicalOrExpr, b.buildLogicalAndExpr)
}

func (b *builder) buildLogicalAndExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildLogicalAndExpr, b.buildEqualityExpr)
}

func (b *builder) buildEqualityExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildEqualityExpr, b.buildRelationalExpr)
}

func (b *builder) buildRelationalExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildRelationalExpr, b.buildConcatExpr)
}

// buildConcatExpr flattens a chain of "." concatenations into a single
// concatenation-list with alternating operand/operator leaf children,
// per the shape spec.md's end-to-end scenarios show for string
// concatenation, rather than nesting binary-expression the way every
// other operator tier does.
func (b *builder) buildConcatExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildAdditiveExpr(pt.Children[0])
	}
	parts := b.flattenConcat(pt)
	h := b.a.New(phpast.KindConcatenationList)
	for _, p := range parts {
		b.a.AppendChild(h, p)
	}
	return h
}

func (b *builder) flattenConcat(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.buildAdditiveExpr(pt.Children[0])}
	}
	items := b.flattenConcat(pt.Children[0])
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	rhs := b.buildAdditiveExpr(pt.Children[2])
	return append(append(items, op), rhs)
}

func (b *builder) buildAdditiveExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildAdditiveExpr, b.buildMultiplicativeExpr)
}

func (b *builder) buildMultiplicativeExpr(pt *types.ParseTree) phpast.Handle {
	return b.buildLeftAssocBinary(pt, b.buildMultiplicativeExpr, b.buildInstanceofExpr)
}

func (b *builder) buildInstanceofExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildUnaryExpr(pt.Children[0])
	}
	lhs := b.buildInstanceofExpr(pt.Children[0])
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	rhs := b.buildUnaryExpr(pt.Children[2])
	h := b.a.New(phpast.KindInstanceofExpr)
	b.a.AppendChild(h, lhs)
	b.a.AppendChild(h, op)
	b.a.AppendChild(h, rhs)
	return h
}

func (b *builder) buildUnaryExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildPowExpr(pt.Children[0])
	}
	opTok := pt.Children[0]
	operand := b.buildUnaryExpr(pt.Children[1])
	if opTok.Value == "cast" {
		h := b.a.New(phpast.KindCastExpr)
		idx := b.consume(opTok)
		b.a.ExpandSpan(h, idx, idx)
		b.a.Node(h).Lexeme = opTok.Source.Lexeme()
		b.a.AppendChild(h, operand)
		return h
	}
	op := b.leaf(phpast.KindOperator, opTok)
	h := b.a.New(phpast.KindUnaryExpr)
	b.a.AppendChild(h, op)
	b.a.AppendChild(h, operand)
	return h
}

func (b *builder) buildPowExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildPostfixExpr(pt.Children[0])
	}
	lhs := b.buildPostfixExpr(pt.Children[0])
	op := b.leaf(phpast.KindOperator, pt.Children[1])
	rhs := b.buildUnaryExpr(pt.Children[2])
	return b.binaryExpr(lhs, op, rhs)
}

// buildPostfixExpr composes every postfix operator generically, rather
// than having dedicated method-call/static-call productions (see
// grammar.go's package doc for why the dedicated form conflicts). The
// method-call/static-call/function-call distinction is recovered here by
// inspecting the kind of the already-built base expression.
func (b *builder) buildPostfixExpr(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 1 {
		return b.buildPrimaryExpr(pt.Children[0])
	}
	base := b.buildPostfixExpr(pt.Children[0])
	switch len(pt.Children) {
	case 2:
		op := b.leaf(phpast.KindOperator, pt.Children[1])
		h := b.a.New(phpast.KindUnaryExpr)
		b.a.AppendChild(h, base)
		b.a.AppendChild(h, op)
		return h
	case 3:
		second := pt.Children[1]
		switch second.Value {
		case "lbracket":
			h := b.a.New(phpast.KindIndexAccess)
			b.a.AppendChild(h, base)
			b.punct(h, pt.Children[1])
			b.punct(h, pt.Children[2])
			return h
		case "arrow", "nullsafe_arrow":
			h := b.a.New(phpast.KindObjectProperty)
			b.a.AppendChild(h, base)
			op := b.leaf(phpast.KindOperator, second)
			b.a.AppendChild(h, op)
			name := b.leaf(phpast.KindIdentifier, pt.Children[2])
			b.a.AppendChild(h, name)
			return h
		case "dcolon":
			h := b.a.New(phpast.KindClassStaticAccess)
			b.a.AppendChild(h, base)
			b.punct(h, second)
			member := pt.Children[2]
			var memberNode phpast.Handle
			if member.Value == "variable" {
				memberNode = b.leaf(phpast.KindVariable, member)
			} else {
				memberNode = b.leaf(phpast.KindIdentifier, member)
			}
			b.a.AppendChild(h, memberNode)
			return h
		}
	case 4:
		second := pt.Children[1]
		if second.Value == "lbracket" {
			h := b.a.New(phpast.KindIndexAccess)
			b.a.AppendChild(h, base)
			b.punct(h, pt.Children[1])
			idxExpr := b.buildExpr(pt.Children[2])
			b.a.AppendChild(h, idxExpr)
			b.punct(h, pt.Children[3])
			return h
		}
		// lparen CallArgsOpt rparen
		baseNode := b.a.Node(base)
		var h phpast.Handle
		switch baseNode.Kind {
		case phpast.KindObjectProperty, phpast.KindClassStaticAccess:
			h = b.a.New(phpast.KindMethodCall)
		default:
			h = b.a.New(phpast.KindFunctionCall)
		}
		b.a.AppendChild(h, base)
		b.punct(h, pt.Children[1]) // lparen
		argsList := b.a.New(phpast.KindCallParamList)
		for _, e := range b.buildCallArgsOpt(pt.Children[2]) {
			b.a.AppendChild(argsList, e)
		}
		b.a.AppendChild(h, argsList)
		b.punct(h, pt.Children[3]) // rparen
		return h
	}
	panic("phpgrammar: unhandled postfix expression alternative")
}

func (b *builder) buildCallArgsOpt(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 0 {
		return nil
	}
	return b.buildExprList(pt.Children[0])
}

func (b *builder) buildClassRef(pt *types.ParseTree) phpast.Handle {
	c := pt.Children[0]
	switch c.Value {
	case "ident", "static":
		return b.leaf(phpast.KindTypeName, c)
	case "variable":
		return b.leaf(phpast.KindVariable, c)
	}
	panic("phpgrammar: unhandled class reference alternative")
}

func (b *builder) buildPrimaryExpr(pt *types.ParseTree) phpast.Handle {
	c0 := pt.Children[0]
	switch c0.Value {
	case "variable":
		return b.leaf(phpast.KindVariable, c0)
	case "lnumber", "dnumber":
		return b.leaf(phpast.KindNumericScalar, c0)
	case "true", "false", "null":
		return b.leaf(phpast.KindMagicScalar, c0)
	case "string_lit":
		return b.leaf(phpast.KindStringScalar, c0)
	case "DoubleQuotedExpr":
		return b.buildDoubleQuotedExpr(c0)
	case "HeredocExpr":
		return b.buildHeredocExpr(c0)
	case "BacktickExpr":
		return b.buildBacktickExpr(c0)
	case "ArrayLiteral":
		return b.buildArrayLiteral(c0)
	case "lparen":
		inner := b.buildExpr(pt.Children[1])
		b.punct(inner, c0)
		b.punct(inner, pt.Children[2])
		return inner
	case "ident":
		return b.leaf(phpast.KindIdentifier, c0)
	case "new":
		return b.buildNewExpr(pt)
	case "clone":
		h := b.a.New(phpast.KindUnaryExpr)
		op := b.leaf(phpast.KindOperator, c0)
		b.a.AppendChild(h, op)
		operand := b.buildPrimaryExpr(pt.Children[1])
		b.a.AppendChild(h, operand)
		return h
	case "yield":
		return b.buildYieldExpr(pt)
	case "include", "include_once", "require", "require_once":
		h := b.a.New(phpast.KindIncludeFile)
		op := b.leaf(phpast.KindOperator, c0)
		b.a.AppendChild(h, op)
		expr := b.buildExpr(pt.Children[1])
		b.a.AppendChild(h, expr)
		return h
	case "function":
		return b.buildClosureExpr(pt, false)
	case "static":
		if pt.Children[1].Value == "function" {
			return b.buildClosureExpr(pt, true)
		}
		return b.buildArrowFunction(pt, true)
	case "fn":
		return b.buildArrowFunction(pt, false)
	}
	panic(fmt.Sprintf("phpgrammar: unhandled primary expression alternative %q", c0.Value))
}

func (b *builder) buildNewExpr(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindNewExpr)
	b.punct(h, pt.Children[0]) // new
	if pt.Children[1].Value != "class" {
		classRef := b.buildClassRef(pt.Children[1])
		b.a.AppendChild(h, classRef)
		b.punct(h, pt.Children[2]) // lparen
		argsList := b.a.New(phpast.KindCallParamList)
		for _, e := range b.buildCallArgsOpt(pt.Children[3]) {
			b.a.AppendChild(argsList, e)
		}
		b.a.AppendChild(h, argsList)
		b.punct(h, pt.Children[4]) // rparen
		return h
	}

	// anonymous class: "new class", optionally with constructor args.
	b.punct(h, pt.Children[1]) // class
	idx := 2
	if len(pt.Children) == 10 {
		b.punct(h, pt.Children[2]) // lparen
		argsList := b.a.New(phpast.KindCallParamList)
		for _, e := range b.buildCallArgsOpt(pt.Children[3]) {
			b.a.AppendChild(argsList, e)
		}
		b.a.AppendChild(h, argsList)
		b.punct(h, pt.Children[4]) // rparen
		idx = 5
	}
	if ext := b.buildExtendsOpt(pt.Children[idx]); ext != phpast.NoHandle {
		b.a.AppendChild(h, ext)
	}
	idx++
	if impl := b.buildImplementsOpt(pt.Children[idx]); impl != phpast.NoHandle {
		b.a.AppendChild(h, impl)
	}
	idx++
	b.punct(h, pt.Children[idx]) // lbrace
	idx++
	b.buildClassMemberList(pt.Children[idx], h)
	idx++
	b.punct(h, pt.Children[idx]) // rbrace
	return h
}

func (b *builder) buildYieldExpr(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindYield)
	b.punct(h, pt.Children[0]) // yield
	if len(pt.Children) == 1 {
		return h
	}
	val := b.buildExpr(pt.Children[1])
	b.a.AppendChild(h, val)
	if len(pt.Children) == 2 {
		return h
	}
	b.punct(h, pt.Children[2]) // double_arrow
	val2 := b.buildExpr(pt.Children[3])
	b.a.AppendChild(h, val2)
	return h
}

func (b *builder) buildClosureExpr(pt *types.ParseTree, hasStatic bool) phpast.Handle {
	h := b.a.New(phpast.KindClosure)
	idx := 0
	if hasStatic {
		b.punct(h, pt.Children[0])
		idx = 1
	}
	b.punct(h, pt.Children[idx]) // function
	idx++
	b.punct(h, pt.Children[idx]) // lparen
	idx++
	params := b.buildParamListOpt(pt.Children[idx])
	idx++
	paramList := b.a.New(phpast.KindDeclarationParamList)
	for _, p := range params {
		b.a.AppendChild(paramList, p)
	}
	b.a.AppendChild(h, paramList)
	b.punct(h, pt.Children[idx]) // rparen
	idx++
	if use := b.buildUseClauseOpt(pt.Children[idx]); use != phpast.NoHandle {
		b.a.AppendChild(h, use)
	}
	idx++
	body := b.buildBlock(pt.Children[idx])
	b.a.AppendChild(h, body)
	return h
}

func (b *builder) buildUseClauseOpt(pt *types.ParseTree) phpast.Handle {
	if len(pt.Children) == 0 {
		return phpast.NoHandle
	}
	h := b.a.New(phpast.KindLexicalVarList)
	b.punct(h, pt.Children[0]) // use
	b.punct(h, pt.Children[1]) // lparen
	for _, v := range b.buildVarList(pt.Children[2]) {
		b.a.AppendChild(h, v)
	}
	b.punct(h, pt.Children[3]) // rparen
	return h
}

func (b *builder) buildArrowFunction(pt *types.ParseTree, hasStatic bool) phpast.Handle {
	h := b.a.New(phpast.KindArrowFunction)
	idx := 0
	if hasStatic {
		b.punct(h, pt.Children[0])
		idx = 1
	}
	b.punct(h, pt.Children[idx]) // fn
	idx++
	b.punct(h, pt.Children[idx]) // lparen
	idx++
	params := b.buildParamListOpt(pt.Children[idx])
	idx++
	paramList := b.a.New(phpast.KindDeclarationParamList)
	for _, p := range params {
		b.a.AppendChild(paramList, p)
	}
	b.a.AppendChild(h, paramList)
	b.punct(h, pt.Children[idx]) // rparen
	idx++
	b.punct(h, pt.Children[idx]) // double_arrow
	idx++
	body := b.buildExpr(pt.Children[idx])
	b.a.AppendChild(h, body)
	return h
}

func (b *builder) buildArrayLiteral(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindArrayLiteral)
	c0 := pt.Children[0]
	itemsOptIdx := 1
	b.punct(h, c0) // array | lbracket
	if c0.Value == "array" {
		b.punct(h, pt.Children[1]) // lparen
		itemsOptIdx = 2
	}
	valueList := b.a.New(phpast.KindArrayValueList)
	for _, item := range b.buildArrayItemsOpt(pt.Children[itemsOptIdx]) {
		b.a.AppendChild(valueList, item)
	}
	b.a.AppendChild(h, valueList)
	b.punct(h, pt.Children[itemsOptIdx+1]) // rparen | rbracket
	return h
}

func (b *builder) buildArrayItemsOpt(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 0 {
		return nil
	}
	return b.buildArrayItemList(pt.Children[0])
}

func (b *builder) buildArrayItemList(pt *types.ParseTree) []phpast.Handle {
	if len(pt.Children) == 1 {
		return []phpast.Handle{b.buildArrayItem(pt.Children[0])}
	}
	items := b.buildArrayItemList(pt.Children[0])
	b.consume(pt.Children[1]) // comma
	return append(items, b.buildArrayItem(pt.Children[2]))
}

func (b *builder) buildArrayItem(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindArrayValue)
	if len(pt.Children) == 1 {
		val := b.buildExpr(pt.Children[0])
		b.a.AppendChild(h, val)
		return h
	}
	key := b.buildExpr(pt.Children[0])
	b.a.AppendChild(h, key)
	b.punct(h, pt.Children[1]) // double_arrow
	val := b.buildExpr(pt.Children[2])
	b.a.AppendChild(h, val)
	return h
}

// --- string interpolation ---

func (b *builder) buildDoubleQuotedExpr(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindStringScalar)
	b.punct(h, pt.Children[0]) // dquote
	b.buildStringPartListInto(pt.Children[1], h)
	b.punct(h, pt.Children[2]) // dquote
	return h
}

// buildStringPartListInto unwinds "StringPartList -> StringPartList
// StringPartItem | ε" into children of parent: literal text segments
// only widen parent's span, while interpolated "$name" references
// become variable child nodes, mirroring how spec.md's heredoc scenario
// nests an interpolated variable inside the enclosing string node.
func (b *builder) buildStringPartListInto(pt *types.ParseTree, parent phpast.Handle) {
	if len(pt.Children) == 0 {
		return
	}
	b.buildStringPartListInto(pt.Children[0], parent)
	item := pt.Children[1].Children[0]
	if item.Value == "variable" {
		v := b.leaf(phpast.KindVariable, item)
		b.a.AppendChild(parent, v)
	} else {
		b.punct(parent, item) // string_part: literal text
	}
}

func (b *builder) buildHeredocExpr(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindHeredoc)
	b.punct(h, pt.Children[0]) // heredoc_open
	body := pt.Children[1]
	if body.Value == "nowdoc_body" {
		b.punct(h, body)
	} else {
		b.buildStringPartListInto(body, h)
	}
	b.punct(h, pt.Children[2]) // heredoc_close
	return h
}

func (b *builder) buildBacktickExpr(pt *types.ParseTree) phpast.Handle {
	h := b.a.New(phpast.KindBackticksExpr)
	b.punct(h, pt.Children[0]) // backtick
	b.buildStringPartListInto(pt.Children[1], h)
	b.punct(h, pt.Children[2]) // backtick
	return h
}
