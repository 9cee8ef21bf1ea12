package theme_test

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/ui/theme"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name string
		want string
	}{
		"light alias":  {name: "light", want: "github"},
		"dark alias":   {name: "dark", want: "github-dark"},
		"chroma style": {name: "dracula", want: "dracula"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			th := theme.New(tc.name)
			require.NotNil(t, th)
			assert.Equal(t, tc.want, th.Name)
			assert.Equal(t, theme.Ellipsis, th.Ellipsis)
		})
	}
}

func TestNewUnknownFallsBack(t *testing.T) {
	t.Parallel()

	th := theme.New("no-such-style")
	require.NotNil(t, th)
	assert.NotEmpty(t, th.Name)
}

//nolint:paralleltest // Mutates the global chroma registry.
func TestRegister(t *testing.T) {
	err := theme.Register("namify-test", chroma.StyleEntries{
		chroma.Background: "#cccccc bg:#111111",
		chroma.NameTag:    "#ff00ff",
	})
	require.NoError(t, err)

	th := theme.New("namify-test")
	assert.Equal(t, "namify-test", th.Name)
	assert.NotNil(t, theme.HuhTheme(th))
}
