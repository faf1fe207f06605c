package phpast

import "github.com/dekarrin/phpsyn/internal/ictiobus/types"

// Tree is the result of a successful parse: an Arena plus the root handle
// and the token stream the spans index into, so a consumer can recover the
// original source slice for any node.
type Tree struct {
	Arena  *Arena
	Root   Handle
	Tokens []types.Token
}

// Source returns the concatenation of token lexemes from n.FirstToken to
// n.LastToken inclusive, i.e. the literal source slice the node covers.
// Returns the empty string for a node with an empty span.
func (t *Tree) Source(h Handle) string {
	n := t.Arena.Node(h)
	if n.FirstToken < 0 || n.LastToken < n.FirstToken {
		return ""
	}
	var out []byte
	for i := n.FirstToken; i <= n.LastToken && i < len(t.Tokens); i++ {
		out = append(out, t.Tokens[i].Lexeme()...)
	}
	return string(out)
}

// Line returns the 1-indexed source line of n's first token.
func (t *Tree) Line(h Handle) int {
	n := t.Arena.Node(h)
	if n.FirstToken < 0 || n.FirstToken >= len(t.Tokens) {
		return 0
	}
	return t.Tokens[n.FirstToken].Line()
}
