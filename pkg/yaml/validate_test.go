package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/yaml"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"vehicles": {"type": "array", "items": {"type": "string"}},
		"search": {
			"type": "object",
			"properties": {"debounce": {"type": "string", "pattern": "^[0-9]+ms$"}},
			"additionalProperties": false
		}
	},
	"required": ["name"]
}`

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		schema string
		errMsg string
	}{
		"valid":          {schema: testSchema},
		"empty":          {schema: `{}`},
		"invalid json":   {schema: `{"type": nope}`, errMsg: "unmarshal schema"},
		"invalid schema": {schema: `{"type": "person"}`, errMsg: "compile schema"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := yaml.NewValidator("schema.json", []byte(tc.schema))
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)
				assert.Nil(t, v)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, v)
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	v, err := yaml.NewValidator("schema.json", []byte(testSchema))
	require.NoError(t, err)

	tcs := map[string]struct {
		data     string
		wantPath string
	}{
		"valid": {
			data: "name: Luke\nvehicles: [snowspeeder]\n",
		},
		"missing required": {
			data:     "vehicles: []\n",
			wantPath: "$",
		},
		"wrong type": {
			data:     "name: 42\n",
			wantPath: "$.name",
		},
		"bad sequence item": {
			data:     "name: Luke\nvehicles: [snowspeeder, 7]\n",
			wantPath: "$.vehicles[1]",
		},
		"nested pattern": {
			data:     "name: Luke\nsearch:\n  debounce: soon\n",
			wantPath: "$.search.debounce",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var data any
			require.NoError(t, yaml.Unmarshal([]byte(tc.data), &data))

			err := v.Validate(data)
			if tc.wantPath == "" {
				require.NoError(t, err)

				return
			}

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			assert.Equal(t, tc.wantPath, yamlErr.Path.String())
			assert.NotEmpty(t, yamlErr.Err.Error())
		})
	}
}

func TestPathFromLocation(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		location []string
		want     string
	}{
		"root":  {want: "$"},
		"child": {location: []string{"ui", "theme"}, want: "$.ui.theme"},
		"index": {location: []string{"ui", "keybinds", "browse", "up", "keys", "0"}, want: "$.ui.keybinds.browse.up.keys[0]"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, yaml.PathFromLocation(tc.location).String())
		})
	}
}
