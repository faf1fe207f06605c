// Package phpast implements the node arena and tree API that the PHP parser
// builds its syntax tree into: every node lives in one bump-allocated arena
// addressed by stable integer handles, never by raw pointer, so the tree can
// be walked and compared without worrying about node lifetime.
package phpast

// Handle addresses a Node within an Arena. The zero Handle, NoHandle, never
// refers to a real node.
type Handle int

// NoHandle is the handle value used for "no node", e.g. a childless
// optional slot or the parent of the root.
const NoHandle Handle = -1

// Modifier is a bitset of PHP declaration modifiers, attached directly to
// class/property/method declaration nodes rather than represented as
// sibling nodes (see DESIGN.md's supplemented-features entry on this).
type Modifier uint16

const (
	ModifierPublic Modifier = 1 << iota
	ModifierPrivate
	ModifierProtected
	ModifierStatic
	ModifierAbstract
	ModifierFinal
	ModifierReadonly
	ModifierVar
)

func (m Modifier) Has(f Modifier) bool { return m&f != 0 }

// Node is one node of the syntax tree. Nodes are owned exclusively by their
// Arena; the Parent field is a navigation-only back reference, not an
// ownership edge.
type Node struct {
	Kind Kind

	// FirstToken/LastToken are indices into the token stream used to build
	// the tree, delimiting the node's source span, inclusive on both ends.
	FirstToken int
	LastToken  int

	// Lexeme holds the literal source text for leaf/terminal-derived nodes
	// (identifiers, scalars, operators). Composite nodes leave it empty.
	Lexeme string

	// Modifiers applies to class/property/method declaration nodes only.
	Modifiers Modifier

	Parent   Handle
	Children []Handle
}

// Arena owns every Node produced by one parse. Its lifetime is exactly that
// of one parse; nodes are never freed individually.
type Arena struct {
	nodes []Node
}

// New allocates a node of the given kind with an empty span and no parent,
// and returns its handle. The span is populated by the first call to Expand
// or AppendChild.
func (a *Arena) New(kind Kind) Handle {
	a.nodes = append(a.nodes, Node{Kind: kind, FirstToken: -1, LastToken: -1, Parent: NoHandle})
	return Handle(len(a.nodes) - 1)
}

// Node returns a pointer to the node addressed by h. The pointer is valid
// only until the next call to New, since New may reallocate the backing
// slice.
func (a *Arena) Node(h Handle) *Node {
	if h == NoHandle {
		return nil
	}
	return &a.nodes[h]
}

// Retype changes a node's kind in place without recreating it, used when a
// terminal value is elevated to a semantic role (e.g. a bare identifier
// becoming a string-scalar).
func (a *Arena) Retype(h Handle, kind Kind) {
	a.Node(h).Kind = kind
}

// Expand extends h's span to include token index tok, without adding a
// child. Used for syntactic delimiters (commas, parens, semicolons) that
// must be part of a node's source range but are not themselves children.
func (a *Arena) Expand(h Handle, tok int) {
	n := a.Node(h)
	if n.FirstToken == -1 || tok < n.FirstToken {
		n.FirstToken = tok
	}
	if tok > n.LastToken {
		n.LastToken = tok
	}
}

// ExpandSpan extends h's span to cover [first, last].
func (a *Arena) ExpandSpan(h Handle, first, last int) {
	if first >= 0 {
		a.Expand(h, first)
	}
	if last >= 0 {
		a.Expand(h, last)
	}
}

// Enclose sets h's span to cover both l and r, typically an opening and
// closing bracket that are not themselves children of h.
func (a *Arena) Enclose(h Handle, l, r int) {
	a.Expand(h, l)
	a.Expand(h, r)
}

// AppendChild appends child to parent's children list, reparents child, and
// extends parent's span to include child's span.
func (a *Arena) AppendChild(parent, child Handle) {
	if child == NoHandle {
		return
	}
	p := a.Node(parent)
	p.Children = append(p.Children, child)
	a.Node(child).Parent = parent
	cn := a.Node(child)
	a.ExpandSpan(parent, cn.FirstToken, cn.LastToken)
}

// AppendChildren moves every child of other onto parent, in order, as if
// each had been passed to AppendChild individually. other keeps its Kind and
// span but is left with no children of its own; it is expected to be
// discarded by the caller.
func (a *Arena) AppendChildren(parent, other Handle) {
	o := a.Node(other)
	children := o.Children
	o.Children = nil
	for _, c := range children {
		a.AppendChild(parent, c)
	}
}

// FirstChild returns the first child of n, or NoHandle if n has none.
func (a *Arena) FirstChild(n Handle) Handle {
	children := a.Node(n).Children
	if len(children) == 0 {
		return NoHandle
	}
	return children[0]
}

// Children returns the children of n.
func (a *Arena) Children(n Handle) []Handle {
	return a.Node(n).Children
}

// Len returns the number of nodes allocated in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}
