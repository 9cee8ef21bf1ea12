package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/config"
)

func TestSchema(t *testing.T) {
	t.Parallel()

	b, err := config.Schema()
	require.NoError(t, err)

	var doc struct {
		Properties map[string]struct {
			Enum []string `json:"enum"`
		} `json:"properties"`
		ID       string   `json:"$id"`
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))

	assert.Equal(t, config.SchemaID, doc.ID)
	assert.ElementsMatch(t, []string{"apiVersion", "kind"}, doc.Required)
	assert.Equal(t, []string{config.APIVersion}, doc.Properties["apiVersion"].Enum)
	assert.Equal(t, []string{config.Kind}, doc.Properties["kind"].Enum)
	assert.Contains(t, doc.Properties, "catalog")
	assert.Contains(t, doc.Properties, "search")
	assert.Contains(t, doc.Properties, "ui")
}

func TestDefaultValidator(t *testing.T) {
	t.Parallel()

	v, err := config.DefaultValidator()
	require.NoError(t, err)

	require.NoError(t, v.Validate(map[string]any{
		"apiVersion": config.APIVersion,
		"kind":       config.Kind,
		"search":     map[string]any{"debounce": "1m30s"},
	}))
	require.Error(t, v.Validate(map[string]any{
		"apiVersion": config.APIVersion,
		"kind":       config.Kind,
		"search":     map[string]any{"debounce": 5},
	}))
}

func TestSchema_Definitions(t *testing.T) {
	t.Parallel()

	b, err := config.Schema()
	require.NoError(t, err)

	var doc struct {
		Defs map[string]json.RawMessage `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))

	for _, name := range []string{"UiConfig", "UiKeyBinds", "CommonKeyBinds", "SearchbarKeyBinds", "KeysKeyBind"} {
		assert.Contains(t, doc.Defs, name)
	}

	refs := regexp.MustCompile(`"\$ref":\s*"#/\$defs/([^"]+)"`).FindAllStringSubmatch(string(b), -1)
	require.NotEmpty(t, refs)

	for _, ref := range refs {
		assert.Contains(t, doc.Defs, ref[1], "dangling $ref %s", ref[0])
	}
}

func TestDefaultValidator_UI(t *testing.T) {
	t.Parallel()

	v, err := config.DefaultValidator()
	require.NoError(t, err)

	tcs := map[string]struct {
		ui      map[string]any
		wantErr string
	}{
		"valid": {
			ui: map[string]any{
				"theme":     "dracula",
				"view":      "table",
				"cellWidth": 10,
				"keybinds": map[string]any{
					"browse": map[string]any{
						"copy": map[string]any{
							"description": "copy",
							"keys":        []any{map[string]any{"code": "c"}},
						},
					},
				},
			},
		},
		"unknown view": {
			ui:      map[string]any{"view": "grid"},
			wantErr: "$.ui.view",
		},
		"unknown field": {
			ui:      map[string]any{"colour": "red"},
			wantErr: "colour",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(map[string]any{
				"apiVersion": config.APIVersion,
				"kind":       config.Kind,
				"ui":         tc.ui,
			})
			if tc.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.wantErr), err.Error())
		})
	}
}

func TestWriteSchema(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path, err := config.WriteSchema(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.v1beta1.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(b))
}
