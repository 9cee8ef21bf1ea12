package yaml

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Formatter is the chroma formatter used by [Highlight].
var Formatter = "terminal16m"

// Highlight renders YAML source with the named chroma style. Unknown styles
// fall back to chroma's default.
func Highlight(source []byte, style string) (string, error) {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	formatter := formatters.Get(Formatter)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, string(source))
	if err != nil {
		return "", fmt.Errorf("tokenise yaml: %w", err)
	}

	var b strings.Builder
	if err := formatter.Format(&b, s, it); err != nil {
		return "", fmt.Errorf("format yaml: %w", err)
	}

	return b.String(), nil
}
