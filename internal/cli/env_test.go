package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/internal/cli"
)

func TestBindEnvVars(t *testing.T) {
	tcs := map[string]struct {
		envVars       map[string]string
		args          []string
		wantLogLevel  string
		wantLogFormat string
		wantBaseURL   string
		wantChanged   bool
	}{
		"environment variables are bound when no args provided": {
			envVars: map[string]string{
				"NAMIFY_LOG_LEVEL":  "debug",
				"NAMIFY_LOG_FORMAT": "json",
				"NAMIFY_BASE_URL":   "http://localhost:8080/api/people",
			},
			wantLogLevel:  "debug",
			wantLogFormat: "json",
			wantBaseURL:   "http://localhost:8080/api/people",
			wantChanged:   true,
		},
		"command line args take precedence over environment variables": {
			envVars: map[string]string{
				"NAMIFY_LOG_LEVEL": "debug",
				"NAMIFY_BASE_URL":  "http://localhost:8080/api/people",
			},
			args:          []string{"--log-level", "error", "--base-url", "https://example.com/people"},
			wantLogLevel:  "error",
			wantLogFormat: "text",
			wantBaseURL:   "https://example.com/people",
			wantChanged:   true,
		},
		"no environment variables uses defaults": {
			wantLogLevel:  "info",
			wantLogFormat: "text",
			wantBaseURL:   "https://swapi.dev/api/people",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for key, val := range tc.envVars {
				t.Setenv(key, val)
			}

			cmd := cli.NewRootCmd()
			require.NoError(t, cmd.ParseFlags(tc.args))

			logLevel, err := cmd.Flags().GetString("log-level")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogLevel, logLevel)

			logFormat, err := cmd.Flags().GetString("log-format")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogFormat, logFormat)

			baseURL, err := cmd.Flags().GetString("base-url")
			require.NoError(t, err)
			assert.Equal(t, tc.wantBaseURL, baseURL)
			assert.Equal(t, tc.wantChanged, cmd.Flags().Changed("base-url"))
		})
	}
}

func TestEnvironmentVariableUsageUpdate(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCmd()

	logLevelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logLevelFlag)
	assert.Contains(t, logLevelFlag.Usage, "$NAMIFY_LOG_LEVEL")

	for _, name := range []string{"config", "base-url", "debounce", "trace-endpoint"} {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Contains(t, f.Usage, "$NAMIFY_")
	}
}
