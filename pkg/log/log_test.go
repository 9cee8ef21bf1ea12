package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/namify/pkg/log"
)

func TestRing(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		size   int
		writes int
		want   []string
	}{
		"empty": {
			size: 3,
			want: []string{},
		},
		"partial": {
			size:   3,
			writes: 2,
			want:   []string{"0", "1"},
		},
		"wraps": {
			size:   3,
			writes: 5,
			want:   []string{"2", "3", "4"},
		},
		"default size": {
			size:   0,
			writes: 1,
			want:   []string{"0"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := log.NewRing(tc.size)
			for i := range tc.writes {
				n, err := r.Write([]byte(strconv.Itoa(i)))
				require.NoError(t, err)
				assert.Equal(t, 1, n)
			}

			assert.Equal(t, tc.want, r.Lines())
			assert.Equal(t, len(tc.want), r.Len())
		})
	}
}

func TestRingWriteTo(t *testing.T) {
	t.Parallel()

	r := log.NewRing(2)
	_, err := r.Write([]byte("a\n"))
	require.NoError(t, err)
	_, err = r.Write(nil)
	require.NoError(t, err)
	_, err = r.Write([]byte("b\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, "a\nb\n", buf.String())

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 2, r.Cap())
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level   string
		format  string
		wantErr error
	}{
		"json":       {level: "debug", format: "json"},
		"logfmt":     {level: "warning", format: "logfmt"},
		"text":       {level: "INFO", format: "text"},
		"defaults":   {},
		"bad level":  {level: "loud", format: "json", wantErr: log.ErrUnknownLogLevel},
		"bad format": {level: "info", format: "xml", wantErr: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h, err := log.NewHandler(&bytes.Buffer{}, tc.level, tc.format)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	h, err := log.NewHandler(&buf, "info", "json")
	require.NoError(t, err)

	logger := slog.New(h).With(slog.String("component", "test"))
	ctx := log.IntoContext(context.Background(), logger)

	log.FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Equal(t, slog.Default(), log.FromContext(context.Background()))
}
