package phpast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifier_String(t *testing.T) {
	assert.Equal(t, "none", Modifier(0).String())
	assert.Equal(t, "public", ModifierPublic.String())
	assert.Equal(t, "public|static", (ModifierPublic | ModifierStatic).String())
}

func TestTree_Dump_SingleNode(t *testing.T) {
	var a Arena
	h := a.New(KindNumericScalar)
	a.Node(h).Lexeme = "1"

	tree := &Tree{Arena: &a, Root: h}
	out := tree.Dump(h)

	assert.Contains(t, out, string(KindNumericScalar))
	assert.Contains(t, out, `"1"`)
}

func TestTree_Dump_NestedChildrenUseBranchMarkers(t *testing.T) {
	var a Arena
	root := a.New(KindBlock)
	first := a.New(KindNumericScalar)
	a.Node(first).Lexeme = "1"
	second := a.New(KindNumericScalar)
	a.Node(second).Lexeme = "2"
	a.AppendChild(root, first)
	a.AppendChild(root, second)

	tree := &Tree{Arena: &a, Root: root}
	out := tree.Dump(root)

	assert.Contains(t, out, "|-")
	assert.Contains(t, out, `\-`)
	assert.Contains(t, out, `"1"`)
	assert.Contains(t, out, `"2"`)
}

func TestTree_Dump_ShowsModifiers(t *testing.T) {
	var a Arena
	h := a.New(KindMethodDecl)
	a.Node(h).Modifiers = ModifierPublic | ModifierStatic

	tree := &Tree{Arena: &a, Root: h}
	out := tree.Dump(h)

	assert.Contains(t, out, "[public|static]")
}
