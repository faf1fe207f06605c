// Package input contains the source readers used by the phpsyn REPL to pull
// PHP snippets from an interactive session.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// SourceReader reads one PHP snippet at a time from some underlying stream.
type SourceReader interface {
	ReadSnippet() (string, error)
	Close() error
}

// DirectSourceReader reads snippets from any io.Reader with a plain buffered
// scan. It does not sanitize control or escape sequences and should be used
// when stdin is not a real TTY (pipes, redirected files, --direct).
type DirectSourceReader struct {
	r *bufio.Reader
}

// InteractiveSourceReader reads snippets from stdin through chzyer/readline,
// giving line editing and history. It should only be used when connected to
// a real terminal.
type InteractiveSourceReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader creates a DirectSourceReader over r.
func NewDirectReader(r io.Reader) *DirectSourceReader {
	return &DirectSourceReader{r: bufio.NewReader(r)}
}

// NewInteractiveReader creates an InteractiveSourceReader reading from stdin.
// The returned reader must have Close called on it before disposal.
func NewInteractiveReader() (*InteractiveSourceReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "php> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveSourceReader{rl: rl, prompt: "php> "}, nil
}

// Close implements SourceReader.
func (dr *DirectSourceReader) Close() error {
	return nil
}

// Close cleans up readline resources.
func (ir *InteractiveSourceReader) Close() error {
	return ir.rl.Close()
}

// ReadSnippet reads the next non-blank line of input. At end of input it
// returns "" and io.EOF.
func (dr *DirectSourceReader) ReadSnippet() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
	}

	return line, nil
}

// ReadSnippet reads the next non-blank line of input via readline. At end of
// input it returns "" and io.EOF.
func (ir *InteractiveSourceReader) ReadSnippet() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
	}

	return line, nil
}

// SetPrompt updates the interactive prompt text.
func (ir *InteractiveSourceReader) SetPrompt(p string) {
	ir.rl.SetPrompt(p)
}
