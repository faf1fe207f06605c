package phpast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AppendChildExtendsSpan(t *testing.T) {
	a := &Arena{}
	parent := a.New(KindBinaryExpr)
	left := a.New(KindNumericScalar)
	a.ExpandSpan(left, 0, 0)
	right := a.New(KindNumericScalar)
	a.ExpandSpan(right, 2, 2)

	a.AppendChild(parent, left)
	a.Expand(parent, 1)
	a.AppendChild(parent, right)

	p := a.Node(parent)
	assert.Equal(t, 0, p.FirstToken)
	assert.Equal(t, 2, p.LastToken)
	require.Len(t, p.Children, 2)
	assert.Equal(t, left, p.Children[0])
	assert.Equal(t, right, p.Children[1])
	assert.Equal(t, parent, a.Node(left).Parent)
}

func TestArena_Retype(t *testing.T) {
	a := &Arena{}
	h := a.New(KindIdentifier)
	a.Retype(h, KindStringScalar)
	assert.Equal(t, KindStringScalar, a.Node(h).Kind)
}

func TestArena_Enclose(t *testing.T) {
	a := &Arena{}
	h := a.New(KindArrayLiteral)
	a.Enclose(h, 0, 5)
	n := a.Node(h)
	assert.Equal(t, 0, n.FirstToken)
	assert.Equal(t, 5, n.LastToken)
}

func TestArena_AppendChildrenMovesChildrenAndLeavesSourceEmpty(t *testing.T) {
	a := &Arena{}
	parent := a.New(KindConditionList)
	other := a.New(KindStatementList)
	c1 := a.New(KindIf)
	a.ExpandSpan(c1, 0, 1)
	a.AppendChild(other, c1)

	a.AppendChildren(parent, other)

	assert.Empty(t, a.Node(other).Children)
	require.Len(t, a.Node(parent).Children, 1)
	assert.Equal(t, c1, a.Node(parent).Children[0])
}

func TestWalk_VisitsEveryNodeAndSkipsOnFalse(t *testing.T) {
	a := &Arena{}
	root := a.New(KindProgram)
	child := a.New(KindStatement)
	grandchild := a.New(KindVariable)
	a.AppendChild(child, grandchild)
	a.AppendChild(root, child)

	tree := &Tree{Arena: a, Root: root}

	counter := NewKindCounter()
	Walk(counter, tree, root)
	assert.Equal(t, 1, counter.Counts[KindProgram])
	assert.Equal(t, 1, counter.Counts[KindStatement])
	assert.Equal(t, 1, counter.Counts[KindVariable])

	var entered []Kind
	skip := &skippingVisitor{entered: &entered}
	Walk(skip, tree, root)
	assert.Equal(t, []Kind{KindProgram, KindStatement}, entered)
}

type skippingVisitor struct {
	BaseVisitor
	entered *[]Kind
}

func (v *skippingVisitor) Enter(t *Tree, h Handle) bool {
	*v.entered = append(*v.entered, t.Arena.Node(h).Kind)
	return t.Arena.Node(h).Kind != KindStatement
}
