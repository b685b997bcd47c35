package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})

	l.Info().Str("doctor_id", "abc").Msg("doctor deleted")
	l.Debug().Msg("dropped")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "doctor deleted", line["message"])
	assert.Equal(t, "abc", line["doctor_id"])
	assert.Equal(t, "admin-api", line["service"])
}

func TestCtx(t *testing.T) {
	assert.Same(t, &log.Logger, Ctx(context.Background()))

	var buf bytes.Buffer
	l := New(Config{Level: "debug", Output: &buf}).With().Str("request_id", "req-1").Logger()
	ctx := l.WithContext(context.Background())

	Ctx(ctx).Warn().Msg("orphan left behind")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "warn", line["level"])
}
