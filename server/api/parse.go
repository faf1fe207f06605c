package api

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/dekarrin/phpsyn"
	"github.com/dekarrin/phpsyn/internal/perr"
	"github.com/dekarrin/phpsyn/internal/phpast"
	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/result"
)

// maxParseBodyBytes bounds the size of a single request body accepted by
// /v1/parse.
const maxParseBodyBytes = 4 << 20

// NodeModel is the JSON rendering of one phpast.Node, used in the response
// to a successful /v1/parse call.
type NodeModel struct {
	Kind      string      `json:"kind"`
	Lexeme    string      `json:"lexeme,omitempty"`
	Modifiers string      `json:"modifiers,omitempty"`
	Children  []NodeModel `json:"children,omitempty"`
}

// ParseErrorModel is the JSON rendering of a failed parse, matching the
// syntax-error failure record the parser itself produces.
type ParseErrorModel struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// ParseResponse is the JSON body returned by a successful /v1/parse call.
type ParseResponse struct {
	Tree      NodeModel `json:"tree"`
	NodeCount int       `json:"nodeCount"`
}

func toNodeModel(t *phpast.Tree, h phpast.Handle) NodeModel {
	if h == phpast.NoHandle {
		return NodeModel{}
	}
	n := t.Arena.Node(h)

	m := NodeModel{
		Kind:   string(n.Kind),
		Lexeme: n.Lexeme,
	}
	if n.Modifiers != 0 {
		m.Modifiers = n.Modifiers.String()
	}
	for _, c := range n.Children {
		m.Children = append(m.Children, toNodeModel(t, c))
	}
	return m
}

func countNodes(t *phpast.Tree, h phpast.Handle) int {
	if h == phpast.NoHandle {
		return 0
	}
	n := t.Arena.Node(h)
	count := 1
	for _, c := range n.Children {
		count += countNodes(t, c)
	}
	return count
}

// HTTPParse returns a HandlerFunc that parses the PHP source in the request
// body and returns its AST, recording the attempt in the parse history.
func (api API) HTTPParse() http.HandlerFunc {
	return api.httpEndpoint(api.epParse)
}

func (api API) epParse(req *http.Request) result.Result {
	src, err := io.ReadAll(io.LimitReader(req.Body, maxParseBodyBytes+1))
	if err != nil {
		return result.BadRequest("could not read request body", "%s: %s", remoteIP(req), err.Error())
	}
	if len(src) > maxParseBodyBytes {
		return result.BadRequest("request body too large")
	}

	hash := sha256.Sum256(src)
	sourceHash := hex.EncodeToString(hash[:])

	start := time.Now()
	tree, parseErr := phpsyn.ParseWithOptions(src, api.ParseOptions)
	elapsed := time.Since(start)

	rec := dao.ParseRecord{
		SourceHash: sourceHash,
		ByteLength: len(src),
		Elapsed:    elapsed,
	}

	if parseErr != nil {
		se, ok := parseErr.(*perr.SyntaxError)
		if !ok {
			return result.InternalServerError("parse failed: %s", parseErr.Error())
		}
		rec.ErrorMessage = se.Message

		if _, saveErr := api.Store.ParseRecords().Create(req.Context(), rec); saveErr != nil {
			api.Log.Warnf("could not save parse record: %s", saveErr.Error())
		}

		resp := ParseErrorModel{
			Kind:    "syntax-error",
			Line:    se.Line,
			Column:  se.Column,
			Message: se.Message,
		}
		return result.ErrBody(http.StatusBadRequest, resp, "%s: syntax error at %d:%d: %s", remoteIP(req), se.Line, se.Column, se.Message)
	}

	rec.NodeCount = countNodes(tree, tree.Root)

	if _, saveErr := api.Store.ParseRecords().Create(req.Context(), rec); saveErr != nil {
		api.Log.Warnf("could not save parse record: %s", saveErr.Error())
	}

	resp := ParseResponse{
		Tree:      toNodeModel(tree, tree.Root),
		NodeCount: rec.NodeCount,
	}
	return result.OK(resp, "%s parsed %d bytes into %d nodes", remoteIP(req), len(src), rec.NodeCount)
}
