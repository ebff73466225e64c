package logx_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-railway/internal/logx"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := logx.ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, logx.ErrBadLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logx.New(&buf, logx.Options{JSON: true})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("input", "rails.txt").Msg("solved")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event), "exactly one JSON event expected, got %q", buf.String())
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "solved", event["message"])
	assert.Equal(t, "rails.txt", event["input"])
	assert.Contains(t, event, "time")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logx.New(&buf, logx.Options{Level: "error", Verbose: true, NoColor: true})
	require.NoError(t, err)

	log.Debug().Msg("table sized")
	assert.Contains(t, buf.String(), "table sized")
	assert.Contains(t, buf.String(), "DBG")
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logx.New(&buf, logx.Options{Level: "warn", NoColor: true})
	require.NoError(t, err)

	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()

	_, err := logx.New(&bytes.Buffer{}, logx.Options{Level: "chatty"})
	assert.ErrorIs(t, err, logx.ErrBadLevel)
}
