package yaml_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/yaml"
)

func TestHighlight(t *testing.T) {
	t.Parallel()

	source := []byte("apiVersion: namify.macropower.dev/v1beta1\nkind: Configuration\nui:\n  theme: dracula\n")

	tcs := map[string]struct {
		style string
	}{
		"known style":   {style: "dracula"},
		"unknown style": {style: "no-such-style"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := yaml.Highlight(source, tc.style)
			require.NoError(t, err)
			assert.NotEqual(t, string(source), out)
			assert.Equal(t, string(source), ansi.Strip(out))
		})
	}
}
