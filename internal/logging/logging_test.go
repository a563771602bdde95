package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")
	log.Debug().Msg("hidden")
	log.Info().Str("op", "list actions").Msg("api call")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "api call", entry["message"])
	assert.Equal(t, "list actions", entry["op"])
	assert.Equal(t, "meetingmind", entry["app"])
}

func TestOpenCreatesAndTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "meetingmind.log")

	l, err := Open(Options{Path: path, Level: "debug", MaxMB: 1})
	require.NoError(t, err)
	l.Info().Msg("first")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")

	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 2<<20), 0o644))
	l, err = Open(Options{Path: path, MaxMB: 1})
	require.NoError(t, err)
	l.Info().Msg("second")
	require.NoError(t, l.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(1<<20))
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(Options{})
	assert.Error(t, err)
}
