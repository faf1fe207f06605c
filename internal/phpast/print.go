package phpast

import (
	"fmt"
	"strings"
)

const (
	dumpLevelEmpty      = "    "
	dumpLevelOngoing    = "  | "
	dumpLevelPrefix     = "  |-"
	dumpLevelPrefixLast = `  \-`
)

// Dump renders t starting at h as an indented tree suitable for CLI output,
// one line per node, with Kind, Lexeme (if any), and source span. The
// layout mirrors the raw parse tree's own String() in
// internal/ictiobus/types, so a reader who has seen one recognizes the
// other.
func (t *Tree) Dump(h Handle) string {
	var sb strings.Builder
	t.dumpNode(&sb, h, "", "")
	return sb.String()
}

func (t *Tree) dumpNode(sb *strings.Builder, h Handle, firstPrefix, contPrefix string) {
	if h == NoHandle {
		return
	}
	n := t.Arena.Node(h)

	sb.WriteString(firstPrefix)
	sb.WriteString(fmt.Sprintf("(%s)", n.Kind))
	if n.Lexeme != "" {
		sb.WriteString(fmt.Sprintf(" %q", n.Lexeme))
	}
	if n.Modifiers != 0 {
		sb.WriteString(fmt.Sprintf(" [%s]", n.Modifiers))
	}

	children := n.Children
	for i, c := range children {
		sb.WriteRune('\n')
		var childFirst, childCont string
		if i+1 < len(children) {
			childFirst = contPrefix + dumpLevelPrefix
			childCont = contPrefix + dumpLevelOngoing
		} else {
			childFirst = contPrefix + dumpLevelPrefixLast
			childCont = contPrefix + dumpLevelEmpty
		}
		t.dumpNode(sb, c, childFirst, childCont)
	}
}

// String renders the bitset as the names of its set flags joined by "|",
// or "none" if no flags are set.
func (m Modifier) String() string {
	var names []string
	for _, pair := range []struct {
		bit  Modifier
		name string
	}{
		{ModifierPublic, "public"},
		{ModifierPrivate, "private"},
		{ModifierProtected, "protected"},
		{ModifierStatic, "static"},
		{ModifierAbstract, "abstract"},
		{ModifierFinal, "final"},
		{ModifierReadonly, "readonly"},
		{ModifierVar, "var"},
	} {
		if m.Has(pair.bit) {
			names = append(names, pair.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
