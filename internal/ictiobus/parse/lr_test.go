package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/phpsyn/internal/ictiobus/grammar"
)

func Test_LRParse_CapsExpectedTokenListOnSyntaxError(t *testing.T) {
	g := grammar.MustParse(`
		S -> a | b | c | d | e | f | g ;
	`)

	parser, err := GenerateLALR1Parser(g)
	assert.NoError(t, err, "generating LALR parser failed")

	stream := mockTokens("z")
	_, err = parser.Parse(stream)
	assert.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "and 2 more", "message should note the 2 omitted alternatives")
	assert.NotContains(t, msg, "f", "message should not list alternatives past the cap")
	assert.NotContains(t, msg, "g", "message should not list alternatives past the cap")
}
