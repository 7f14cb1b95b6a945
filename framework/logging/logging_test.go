package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/christux/bambo/framework/config"
	"github.com/christux/bambo/framework/logging"
)

func TestNewWithSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.NewWithSink(config.LogConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("module built", zap.String("module", "$site"))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "module built", entry["msg"])
	assert.Equal(t, "$site", entry["module"])
}

func TestNewWithSink_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.NewWithSink(config.LogConfig{Level: "debug", Format: "console"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Debug("boot state", zap.String("to", "booted"))

	assert.Contains(t, buf.String(), "boot state")
	assert.Contains(t, buf.String(), `{"to": "booted"}`)
}

func TestNewWithSink_UnknownLevel(t *testing.T) {
	_, err := logging.NewWithSink(config.LogConfig{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.EqualError(t, err, `logging: unknown level "loud"`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"":        zapcore.InfoLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
