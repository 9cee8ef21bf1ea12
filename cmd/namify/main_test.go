package main_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/macropower/namify/cmd/namify"
)

func TestExecute(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check   func(t *testing.T, out string)
		args    []string
		wantErr bool
	}{
		"schema": {
			args: []string{"schema"},
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.True(t, json.Valid([]byte(out)))
				assert.Contains(t, out, "namify.macropower.dev/v1beta1")
			},
		},
		"help": {
			args: []string{"--help"},
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.Contains(t, out, "--base-url")
				assert.Contains(t, out, "NAMIFY_BASE_URL")
			},
		},
		"unknown flag": {
			args:    []string{"--colour"},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer

			err := main.Execute(t.Context(), tc.args, &stdout, &stderr)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, stderr.String(), "--colour")

				return
			}

			require.NoError(t, err)
			tc.check(t, stdout.String())
		})
	}
}
