package keys_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/keys"
)

func TestKeyBindString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		bind keys.KeyBind
		want string
	}{
		"single": {
			bind: keys.NewBind("quit", keys.New("q")),
			want: "q",
		},
		"alias": {
			bind: keys.NewBind("previous page", keys.New("left", keys.WithAlias("←")), keys.New("h")),
			want: "←/h",
		},
		"hidden": {
			bind: keys.NewBind("quit", keys.New("q"), keys.New("ctrl+c", keys.Hidden())),
			want: "q",
		},
		"all hidden": {
			bind: keys.NewBind("suspend", keys.New("ctrl+z", keys.Hidden())),
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.bind.String())
		})
	}
}

func TestMatchAndAddKey(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("quit", keys.New("q"))
	assert.True(t, kb.Match("q"))
	assert.False(t, kb.Match("ctrl+c"))

	kb.AddKey(keys.New("ctrl+c", keys.Hidden()))
	kb.AddKey(keys.New("ctrl+c"))
	assert.True(t, kb.Match("ctrl+c"))
	assert.Len(t, kb.Keys, 2)

	var nilBind *keys.KeyBind
	assert.False(t, nilBind.Match("q"))
	nilBind.AddKey(keys.New("q"))
}

func TestSetDefaultBind(t *testing.T) {
	t.Parallel()

	def := keys.NewBind("reload", keys.New("r"))

	tcs := map[string]struct {
		in   *keys.KeyBind
		want keys.KeyBind
	}{
		"unset": {
			want: def,
		},
		"no keys": {
			in:   &keys.KeyBind{Description: "refresh"},
			want: keys.NewBind("refresh", keys.New("r")),
		},
		"no description": {
			in:   &keys.KeyBind{Keys: []keys.Key{keys.New("F5")}},
			want: keys.NewBind("reload", keys.New("F5")),
		},
		"fully set": {
			in:   &keys.KeyBind{Description: "again", Keys: []keys.Key{keys.New("R")}},
			want: keys.NewBind("again", keys.New("R")),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			kb := tc.in
			keys.SetDefaultBind(&kb, def)
			require.NotNil(t, kb)
			assert.Equal(t, tc.want, *kb)
		})
	}
}

func TestValidateBinds(t *testing.T) {
	t.Parallel()

	quit := keys.NewBind("quit", keys.New("q"))
	search := keys.NewBind("search", keys.New("/"))

	require.NoError(t, keys.ValidateBinds([]keys.KeyBind{quit}, []keys.KeyBind{search}))

	err := keys.ValidateBinds(
		[]keys.KeyBind{quit, search},
		[]keys.KeyBind{keys.NewBind("query", keys.New("q"))},
	)
	require.ErrorIs(t, err, keys.ErrDuplicateKey)
	assert.Contains(t, err.Error(), `"quit" and "query"`)
}

func TestIsTextInputAction(t *testing.T) {
	t.Parallel()

	for _, k := range []string{"a", "q", "?", "1", "backspace"} {
		assert.True(t, keys.IsTextInputAction(k), k)
	}

	for _, k := range []string{"esc", "enter", "tab", "up", "down", "ctrl+c"} {
		assert.False(t, keys.IsTextInputAction(k), k)
	}
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	var r keys.Renderer
	assert.Empty(t, r.Render(80))

	r.AddColumn()
	r.AddColumn(
		keys.NewBind("next page", keys.New("right", keys.WithAlias("→")), keys.New("l")),
		keys.NewBind("previous page", keys.New("left", keys.WithAlias("←")), keys.New("h")),
	)
	r.AddColumn(
		keys.NewBind("quit", keys.New("q")),
		keys.NewBind("suspend", keys.New("ctrl+z", keys.Hidden())),
	)

	out := r.Render(60)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "→/l  next page")
	assert.Contains(t, lines[0], "q  quit")
	assert.Contains(t, lines[1], "←/h  previous page")
	assert.NotContains(t, out, "suspend")

	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 60)
	}
}
