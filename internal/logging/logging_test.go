package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	require.Error(t, err)

	logger, err := New("debug", true)
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewWithSink_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithSink(zapcore.InfoLevel, false, zapcore.AddSync(&buf))

	logger.Debug("hidden")
	logger.Info("frame computed", zap.String(FieldEvent, "update"), zap.Uint64(FieldSeq, 7))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "frame computed", entry["msg"])
	require.Equal(t, "update", entry[FieldEvent])
	require.EqualValues(t, 7, entry[FieldSeq])
	require.Contains(t, entry, "ts")
}
