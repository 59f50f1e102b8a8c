package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewSlog_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newSlog(&buf, SlogConfig{Level: "info", Format: "json"})
	l.Info("user login successful", "username", "alice")
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug must be filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "user login successful", entry["msg"])
	assert.Equal(t, "alice", entry["username"])
}

func TestNewSlog_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newSlog(&buf, SlogConfig{Level: "debug", Format: "text"})
	l.Debug("cache miss", "key", "users:all")

	assert.Contains(t, buf.String(), "msg=\"cache miss\"")
	assert.Contains(t, buf.String(), "key=users:all")
}
