package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/config"
	"github.com/macropower/namify/pkg/keys"
	"github.com/macropower/namify/pkg/ui"
)

func TestNew(t *testing.T) {
	t.Parallel()

	c := config.New()

	assert.Equal(t, config.APIVersion, c.APIVersion)
	assert.Equal(t, config.Kind, c.Kind)
	assert.Equal(t, "https://swapi.dev/api/people", c.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, c.Catalog.Timeout.Duration)
	assert.Equal(t, 500*time.Millisecond, c.Search.Debounce.Duration)
	assert.Equal(t, ui.ViewCards, c.UI.View)
	assert.Equal(t, ui.DefaultCellWidth, *c.UI.CellWidth)
	require.NoError(t, c.Validate())
	assert.Len(t, c.ClientOptions(), 3)
	assert.Len(t, c.BrowseOptions(), 1)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mutate func(c *config.Config)
		errMsg string
	}{
		"defaults": {
			mutate: func(*config.Config) {},
		},
		"unsupported api version": {
			mutate: func(c *config.Config) { c.APIVersion = "namify.macropower.dev/v1" },
			errMsg: "unsupported apiVersion",
		},
		"unsupported kind": {
			mutate: func(c *config.Config) { c.Kind = "Policy" },
			errMsg: "unsupported kind",
		},
		"base url without scheme": {
			mutate: func(c *config.Config) { c.Catalog.BaseURL = "swapi.dev/api/people" },
			errMsg: "catalog.baseURL",
		},
		"zero timeout": {
			mutate: func(c *config.Config) { c.Catalog.Timeout.Duration = 0 },
			errMsg: "catalog.timeout",
		},
		"negative debounce": {
			mutate: func(c *config.Config) { c.Search.Debounce.Duration = -time.Second },
			errMsg: "search.debounce",
		},
		"duplicate key binding": {
			mutate: func(c *config.Config) {
				bind := keys.NewBind("copy name", keys.New("v"))
				c.UI.KeyBinds.Browse.Copy = &bind
			},
			errMsg: "keybinds",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := config.New()
			tc.mutate(c)

			err := c.Validate()
			if tc.errMsg == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestConfig_Write(t *testing.T) {
	t.Parallel()

	t.Run("creates file and directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "namify", "config.yaml")
		require.NoError(t, config.New().Write(path))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "apiVersion: namify.macropower.dev/v1beta1")
		assert.Contains(t, string(b), "debounce: 500ms")
	})

	t.Run("keeps existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("kind: Configuration\n"), 0o600))
		require.NoError(t, config.New().Write(path))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "kind: Configuration\n", string(b))
	})

	t.Run("rejects directory", func(t *testing.T) {
		t.Parallel()

		err := config.New().Write(t.TempDir())
		require.ErrorContains(t, err, "path is a directory")
	})
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	want := config.New()
	want.UI.View = ui.ViewTable
	want.Search.Debounce.Duration = 250 * time.Millisecond

	b, err := want.Encode()
	require.NoError(t, err)

	l, err := config.NewLoaderFromBytes(b, config.WithErrorStyle("github"))
	require.NoError(t, err)

	got, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetPath(t *testing.T) { //nolint:paralleltest // Uses t.Setenv.
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "namify", "config.yaml"), config.GetPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/padme")
	assert.Equal(t, filepath.Join("/home/padme", ".config", "namify", "config.yaml"), config.GetPath())
}
