package phpgrammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/phpsyn/internal/phpast"
	"github.com/dekarrin/phpsyn/internal/phplex"
)

func parseSource(t *testing.T, src string) *phpast.Tree {
	t.Helper()
	stream, err := phplex.Lex([]byte(src))
	require.NoError(t, err)

	p, err := NewParser()
	require.NoError(t, err)

	pt, err := p.Parse(stream)
	require.NoError(t, err)

	tree, err := Transform(pt)
	require.NoError(t, err)
	return tree
}

func kindPath(t *phpast.Tree, h phpast.Handle) phpast.Kind {
	return t.Arena.Node(h).Kind
}

func onlyChild(t *phpast.Tree, h phpast.Handle) phpast.Handle {
	children := t.Arena.Children(h)
	if len(children) != 1 {
		return phpast.NoHandle
	}
	return children[0]
}

// statementAt returns the nth statement node's sole inner expression/stmt
// handle, unwrapping program -> statement-list -> statement.
func statementsOf(t *phpast.Tree) []phpast.Handle {
	list := onlyChild(t, t.Root)
	return t.Arena.Children(list)
}

func Test_Transform_BareNumericScalarStatement(t *testing.T) {
	tree := parseSource(t, "<?php 1;")

	stmts := statementsOf(tree)
	require.Len(t, stmts, 1)
	assert.Equal(t, phpast.KindStatement, kindPath(tree, stmts[0]))

	inner := onlyChild(tree, stmts[0])
	assert.Equal(t, phpast.KindNumericScalar, kindPath(tree, inner))
	assert.Equal(t, "1", tree.Arena.Node(inner).Lexeme)
}

func Test_Transform_IfElseifElseFlattensToOneConditionList(t *testing.T) {
	tree := parseSource(t, `<?php
if ($a) {
	1;
} elseif ($b) {
	2;
} else {
	3;
}`)

	stmts := statementsOf(tree)
	require.Len(t, stmts, 1)
	list := stmts[0]
	assert.Equal(t, phpast.KindConditionList, kindPath(tree, list))

	children := tree.Arena.Children(list)
	require.Len(t, children, 3)
	assert.Equal(t, phpast.KindIf, kindPath(tree, children[0]))
	assert.Equal(t, phpast.KindElseif, kindPath(tree, children[1]))
	assert.Equal(t, phpast.KindElse, kindPath(tree, children[2]))
}

func Test_Transform_ConcatenationFlattensWithAlternatingOperators(t *testing.T) {
	tree := parseSource(t, `<?php "a" . "b" . "c";`)

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindConcatenationList, kindPath(tree, inner))

	children := tree.Arena.Children(inner)
	require.Len(t, children, 5)
	assert.Equal(t, phpast.KindStringScalar, kindPath(tree, children[0]))
	assert.Equal(t, phpast.KindOperator, kindPath(tree, children[1]))
	assert.Equal(t, phpast.KindStringScalar, kindPath(tree, children[2]))
	assert.Equal(t, phpast.KindOperator, kindPath(tree, children[3]))
	assert.Equal(t, phpast.KindStringScalar, kindPath(tree, children[4]))
}

func Test_Transform_HeredocWithInterpolationInsideAssignment(t *testing.T) {
	tree := parseSource(t, "<?php $greeting = <<<EOT\nhello \x24name\nEOT;\n")

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindBinaryExpr, kindPath(tree, inner))

	children := tree.Arena.Children(inner)
	require.Len(t, children, 3)
	assert.Equal(t, phpast.KindVariable, kindPath(tree, children[0]))
	assert.Equal(t, phpast.KindOperator, kindPath(tree, children[1]))
	assert.Equal(t, phpast.KindHeredoc, kindPath(tree, children[2]))

	heredocChildren := tree.Arena.Children(children[2])
	require.Len(t, heredocChildren, 1)
	assert.Equal(t, phpast.KindVariable, kindPath(tree, heredocChildren[0]))
}

func Test_Transform_AssignmentIsGenericBinaryExpression(t *testing.T) {
	tree := parseSource(t, "<?php list($a, $b) = $c;")

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindBinaryExpr, kindPath(tree, inner))

	children := tree.Arena.Children(inner)
	require.Len(t, children, 3)
	assert.Equal(t, phpast.KindList, kindPath(tree, children[0]))
	assert.Equal(t, phpast.KindOperator, kindPath(tree, children[1]))
	assert.Equal(t, "=", tree.Arena.Node(children[1]).Lexeme)
	assert.Equal(t, phpast.KindVariable, kindPath(tree, children[2]))

	assignList := onlyChild(tree, children[0])
	require.Equal(t, phpast.KindAssignmentList, kindPath(tree, assignList))
	targets := tree.Arena.Children(assignList)
	require.Len(t, targets, 2)
	assert.Equal(t, phpast.KindVariable, kindPath(tree, targets[0]))
	assert.Equal(t, phpast.KindVariable, kindPath(tree, targets[1]))
}

func Test_Transform_KeywordAndBindsWeakerThanAssignment(t *testing.T) {
	tree := parseSource(t, "<?php $a = true and false;")

	stmts := statementsOf(tree)
	outer := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindBinaryExpr, kindPath(tree, outer))

	outerChildren := tree.Arena.Children(outer)
	require.Len(t, outerChildren, 3)
	assert.Equal(t, phpast.KindOperator, kindPath(tree, outerChildren[1]))
	assert.Equal(t, "and", tree.Arena.Node(outerChildren[1]).Lexeme)

	// left side must be the assignment "$a = true", not "false"
	assignment := outerChildren[0]
	require.Equal(t, phpast.KindBinaryExpr, kindPath(tree, assignment))
	assignChildren := tree.Arena.Children(assignment)
	require.Len(t, assignChildren, 3)
	assert.Equal(t, phpast.KindOperator, kindPath(tree, assignChildren[1]))
	assert.Equal(t, "=", tree.Arena.Node(assignChildren[1]).Lexeme)

	assert.Equal(t, phpast.KindMagicScalar, kindPath(tree, outerChildren[2]))
}

func Test_Transform_KeywordXorIsAcceptedAsWeakestOperator(t *testing.T) {
	tree := parseSource(t, "<?php $a xor $b;")

	stmts := statementsOf(tree)
	outer := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindBinaryExpr, kindPath(tree, outer))

	children := tree.Arena.Children(outer)
	require.Len(t, children, 3)
	assert.Equal(t, phpast.KindOperator, kindPath(tree, children[1]))
	assert.Equal(t, "xor", tree.Arena.Node(children[1]).Lexeme)
}

func Test_Transform_SyntaxErrorOnUnexpectedEOF(t *testing.T) {
	stream, err := phplex.Lex([]byte("<?php if ("))
	require.NoError(t, err)

	p, err := NewParser()
	require.NoError(t, err)

	_, err = p.Parse(stream)
	require.Error(t, err)
}

func Test_Transform_FunctionDeclWithDefaultAndVariadicParams(t *testing.T) {
	tree := parseSource(t, `<?php
function greet($name, $greeting = "hi", ...$rest) {
	return $name;
}`)

	stmts := statementsOf(tree)
	require.Len(t, stmts, 1)
	fn := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindFunctionDecl, kindPath(tree, fn))

	children := tree.Arena.Children(fn)
	require.Len(t, children, 3) // name, param list, body
	assert.Equal(t, phpast.KindIdentifier, kindPath(tree, children[0]))

	params := tree.Arena.Children(children[1])
	require.Len(t, params, 3)
	assert.Len(t, tree.Arena.Children(params[0]), 1)
	assert.Len(t, tree.Arena.Children(params[1]), 2) // variable + default
	assert.Len(t, tree.Arena.Children(params[2]), 2) // ellipsis op + variable
}

func Test_Transform_MethodCallRecoveredFromPropertyAccessChain(t *testing.T) {
	tree := parseSource(t, "<?php $obj->doThing(1, 2);")

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindMethodCall, kindPath(tree, inner))

	children := tree.Arena.Children(inner)
	require.Len(t, children, 2)
	assert.Equal(t, phpast.KindObjectProperty, kindPath(tree, children[0]))

	args := tree.Arena.Children(children[1])
	require.Len(t, args, 2)
}

func Test_Transform_PlainFunctionCallStaysFunctionCall(t *testing.T) {
	tree := parseSource(t, "<?php strlen($s);")

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindFunctionCall, kindPath(tree, inner))

	children := tree.Arena.Children(inner)
	require.Len(t, children, 2)
	assert.Equal(t, phpast.KindIdentifier, kindPath(tree, children[0]))
}

func Test_Transform_ClassDeclWithModifiersAndMembers(t *testing.T) {
	tree := parseSource(t, `<?php
abstract class Animal extends Creature implements Named {
	private $name;
	public function speak() {
		return $this->name;
	}
}`)

	stmts := statementsOf(tree)
	class := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindClassDecl, kindPath(tree, class))
	assert.True(t, tree.Arena.Node(class).Modifiers.Has(phpast.ModifierAbstract))

	children := tree.Arena.Children(class)
	require.Len(t, children, 5) // name, extends, implements, property, method
	assert.Equal(t, phpast.KindClassName, kindPath(tree, children[0]))
	assert.Equal(t, phpast.KindExtendsList, kindPath(tree, children[1]))
	assert.Equal(t, phpast.KindImplementsList, kindPath(tree, children[2]))

	prop := children[3]
	assert.Equal(t, phpast.KindPropertyDecl, kindPath(tree, prop))
	assert.True(t, tree.Arena.Node(prop).Modifiers.Has(phpast.ModifierPrivate))

	method := children[4]
	assert.Equal(t, phpast.KindMethodDecl, kindPath(tree, method))
	assert.True(t, tree.Arena.Node(method).Modifiers.Has(phpast.ModifierPublic))
}

func Test_Transform_TryCatchFinally(t *testing.T) {
	tree := parseSource(t, `<?php
try {
	1;
} catch (Exception $e) {
	2;
} finally {
	3;
}`)

	stmts := statementsOf(tree)
	tryNode := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindTry, kindPath(tree, tryNode))

	children := tree.Arena.Children(tryNode)
	require.Len(t, children, 3) // block, catch, finally
	assert.Equal(t, phpast.KindBlock, kindPath(tree, children[0]))
	assert.Equal(t, phpast.KindCatch, kindPath(tree, children[1]))
	assert.Equal(t, phpast.KindFinally, kindPath(tree, children[2]))

	catchChildren := tree.Arena.Children(children[1])
	require.Len(t, catchChildren, 3)
	assert.Equal(t, phpast.KindTypeName, kindPath(tree, catchChildren[0]))
	assert.Equal(t, phpast.KindVariable, kindPath(tree, catchChildren[1]))
	assert.Equal(t, phpast.KindBlock, kindPath(tree, catchChildren[2]))
}

func Test_Transform_ForeachWithKeyValue(t *testing.T) {
	tree := parseSource(t, `<?php
foreach ($items as $k => $v) {
	1;
}`)

	stmts := statementsOf(tree)
	fe := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindForeach, kindPath(tree, fe))

	children := tree.Arena.Children(fe)
	require.Len(t, children, 5) // collection, key, operator, value, body
	assert.Equal(t, phpast.KindVariable, kindPath(tree, children[0]))
	assert.Equal(t, phpast.KindVariable, kindPath(tree, children[1]))
	assert.Equal(t, phpast.KindOperator, kindPath(tree, children[2]))
	assert.Equal(t, phpast.KindVariable, kindPath(tree, children[3]))
	assert.Equal(t, phpast.KindBlock, kindPath(tree, children[4]))
}

func Test_Transform_ArrayLiteralWithKeysAndBareValues(t *testing.T) {
	tree := parseSource(t, `<?php [1, "k" => 2];`)

	stmts := statementsOf(tree)
	arr := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindArrayLiteral, kindPath(tree, arr))

	valueList := onlyChild(tree, arr)
	require.Equal(t, phpast.KindArrayValueList, kindPath(tree, valueList))

	items := tree.Arena.Children(valueList)
	require.Len(t, items, 2)
	assert.Len(t, tree.Arena.Children(items[0]), 1)
	assert.Len(t, tree.Arena.Children(items[1]), 2)
}

func Test_Transform_ClosureWithUseClause(t *testing.T) {
	tree := parseSource(t, `<?php $fn = function($x) use ($y) { return $x; };`)

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	require.Equal(t, phpast.KindBinaryExpr, kindPath(tree, inner))

	rhs := tree.Arena.Children(inner)[2]
	require.Equal(t, phpast.KindClosure, kindPath(tree, rhs))

	children := tree.Arena.Children(rhs)
	require.Len(t, children, 3) // params, use, body
	assert.Equal(t, phpast.KindLexicalVarList, kindPath(tree, children[1]))
}

func Test_Transform_ArrowFunctionBody(t *testing.T) {
	tree := parseSource(t, `<?php $double = fn($x) => $x * 2;`)

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	rhs := tree.Arena.Children(inner)[2]
	require.Equal(t, phpast.KindArrowFunction, kindPath(tree, rhs))

	children := tree.Arena.Children(rhs)
	require.Len(t, children, 2) // params, body expr
	assert.Equal(t, phpast.KindBinaryExpr, kindPath(tree, children[1]))
}

func Test_Transform_CastExpression(t *testing.T) {
	tree := parseSource(t, "<?php $x = (int) $y;")

	stmts := statementsOf(tree)
	inner := onlyChild(tree, stmts[0])
	rhs := tree.Arena.Children(inner)[2]
	require.Equal(t, phpast.KindCastExpr, kindPath(tree, rhs))
	assert.Equal(t, "(int)", tree.Arena.Node(rhs).Lexeme)
}
