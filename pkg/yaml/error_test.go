package yaml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/yaml"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	source := []byte("catalog:\n  baseURL: https://swapi.dev/api/people\n  timeout: soon\nsearch:\n  debounce: 500ms\n")

	tcs := map[string]struct {
		err      *yaml.Error
		want     string
		contains []string
	}{
		"plain": {
			err:  &yaml.Error{Err: errors.New("boom")},
			want: "boom",
		},
		"path without source": {
			err: &yaml.Error{
				Err:  errors.New("value is required"),
				Path: yaml.PathFromLocation([]string{"catalog", "timeout"}),
			},
			want: "error at $.catalog.timeout: value is required",
		},
		"path with source": {
			err: &yaml.Error{
				Err:     errors.New("invalid duration"),
				Path:    yaml.PathFromLocation([]string{"catalog", "timeout"}),
				Source:  source,
				Context: 1,
			},
			contains: []string{
				"[3:3] invalid duration",
				"  2 |   baseURL: https://swapi.dev/api/people",
				"> 3 |   timeout: soon",
				"  4 | search:",
			},
		},
		"nil error": {
			err:  &yaml.Error{},
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.err.Error()
			if tc.contains == nil {
				assert.Equal(t, tc.want, got)

				return
			}

			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
			assert.NotContains(t, got, "debounce")
		})
	}
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		var v struct {
			Name string `json:"name"`
		}

		require.NoError(t, yaml.Unmarshal([]byte("name: Luke\n"), &v))
		assert.Equal(t, "Luke", v.Name)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var v map[string]any
		require.NoError(t, yaml.Unmarshal(nil, &v))
		assert.Nil(t, v)
	})

	t.Run("syntax error carries position", func(t *testing.T) {
		t.Parallel()

		var v map[string]any

		err := yaml.Unmarshal([]byte("name: Luke\nvehicles: [a, b\n"), &v)
		require.Error(t, err)

		var yamlErr *yaml.Error
		require.ErrorAs(t, err, &yamlErr)

		line, _, ok := yamlErr.Position()
		require.True(t, ok)
		assert.Positive(t, line)
		assert.Equal(t, []byte("name: Luke\nvehicles: [a, b\n"), yamlErr.Source)
	})
}

func TestWrap(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")
	assert.Equal(t, plain, yaml.Wrap(plain, yaml.WithStyle("github")))
	require.NoError(t, yaml.Wrap(nil))

	yamlErr := &yaml.Error{Err: plain}
	err := yaml.Wrap(yamlErr, yaml.WithStyle("dracula"), yaml.WithContext(3))
	require.ErrorIs(t, err, plain)
	assert.Equal(t, "dracula", yamlErr.Style)
	assert.Equal(t, 3, yamlErr.Context)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(map[string]any{
		"search": map[string]any{"debounce": "500ms"},
		"vehicles": []string{"snowspeeder"},
	})
	require.NoError(t, err)
	assert.Equal(t, "search:\n  debounce: 500ms\nvehicles:\n  - snowspeeder\n", string(out))
}
