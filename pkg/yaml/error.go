package yaml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// DefaultContext is the number of source lines shown around an error.
const DefaultContext = 2

// Error is a YAML error located either by a [*token.Token] or by a
// [*yaml.Path] into Source.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
	// Style is the chroma style used for the source excerpt. When empty the
	// excerpt is plain text.
	Style string
	// Context is the number of lines shown before and after the error line.
	Context int
}

type ErrorOpt func(e *Error)

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

func WithStyle(style string) ErrorOpt {
	return func(e *Error) {
		e.Style = style
	}
}

func WithContext(lines int) ErrorOpt {
	return func(e *Error) {
		e.Context = lines
	}
}

// Wrap applies opts to the [*Error] in err's chain, if any. Other errors
// are returned unchanged.
func Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if !errors.As(err, &yamlErr) {
		return err
	}

	for _, opt := range opts {
		opt(yamlErr)
	}

	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Position returns the 1-based line and column of the error.
func (e *Error) Position() (int, int, bool) {
	tk := e.token()
	if tk == nil {
		return 0, 0, false
	}

	return tk.Position.Line, tk.Position.Column, true
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	line, col, ok := e.Position()
	if !ok || len(e.Source) == 0 {
		if e.Path != nil {
			return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
		}

		return e.Err.Error()
	}

	return fmt.Sprintf("[%d:%d] %v\n\n%s", line, col, e.Err, e.excerpt(line))
}

func (e *Error) token() *token.Token {
	if e.Token != nil {
		return e.Token
	}
	if e.Path == nil || len(e.Source) == 0 {
		return nil
	}

	tk, err := tokenAtPath(e.Source, e.Path)
	if err != nil {
		return nil
	}

	return tk
}

// excerpt renders the lines around line with a gutter, marking line.
func (e *Error) excerpt(line int) string {
	src := string(e.Source)
	if e.Style != "" {
		if out, err := Highlight(e.Source, e.Style); err == nil {
			src = out
		}
	}

	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")

	first := max(1, line-e.Context)
	last := min(len(lines), line+e.Context)
	width := len(strconv.Itoa(last))

	var b strings.Builder
	for n := first; n <= last; n++ {
		marker := " "
		if n == line {
			marker = ">"
		}

		fmt.Fprintf(&b, "%s %*d | %s\n", marker, width, n, lines[n-1])
	}

	return strings.TrimRight(b.String(), "\n")
}

func tokenAtPath(source []byte, path *yaml.Path) (*token.Token, error) {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	if tk := keyToken(file, path); tk != nil {
		return tk, nil
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil, fmt.Errorf("filter by path %s: %w", path, err)
	}

	return node.GetToken(), nil
}

// keyToken returns the mapping key token for the last element of path, so
// errors point at "key:" rather than at its value.
func keyToken(file *ast.File, path *yaml.Path) *token.Token {
	s := path.String()

	dot := strings.LastIndex(s, ".")
	if dot <= strings.LastIndex(s, "]") || dot < 1 {
		return nil
	}

	parentPath, err := yaml.PathString(s[:dot])
	if err != nil {
		return nil
	}

	parent, err := parentPath.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := parent.(*ast.MappingNode)
	if !ok {
		return nil
	}

	for _, v := range mapping.Values {
		if v.Key.String() == s[dot+1:] {
			return v.Key.GetToken()
		}
	}

	return nil
}
