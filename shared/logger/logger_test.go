package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariachi/config"
	"mariachi/shared/logger"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestConfigure_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "disabled", want: zerolog.Disabled},
		{level: "verbose", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.Configure(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, logger.FormatJSON)
	l.Info().Str("reservation_id", "res-1").Msg("reservation finalized")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "reservation finalized", entry["message"])
	assert.Equal(t, "res-1", entry["reservation_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, "console")
	l.Warn().Msg("slot taken")

	assert.Contains(t, buf.String(), "slot taken")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("lock not acquired"))

	assert.Contains(t, buf.String(), "lock not acquired")
	assert.Contains(t, buf.String(), "logger_test")
}
