package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		m := map[string]interface{}{}
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestLoggerFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithWriter(&buf), WithLevel(zerolog.DebugLevel))
	require.NoError(t, err)

	log.Info("window hidden", "handle", 42, "title", "Notepad", "dangling")
	log.Error("set mute failed", errors.New("device removed"), "step", "mute")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "window hidden", lines[0]["message"])
	assert.EqualValues(t, 42, lines[0]["handle"])
	assert.Equal(t, "Notepad", lines[0]["title"])
	assert.Equal(t, "logger_test.go", lines[0]["file"])
	assert.NotContains(t, lines[0], "dangling")

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "device removed", lines[1]["error"])
	assert.Equal(t, "mute", lines[1]["step"])
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithWriter(&buf), WithLevel(zerolog.WarnLevel))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestAddWriterReceivesLaterEvents(t *testing.T) {
	var first, second bytes.Buffer
	log, err := NewLogger(WithWriter(&first))
	require.NoError(t, err)

	log.Info("before")
	log.AddWriter(&second)
	log.Info("after")

	assert.Len(t, decodeLines(t, &first), 2)
	lines := decodeLines(t, &second)
	require.Len(t, lines, 1)
	assert.Equal(t, "after", lines[0]["message"])
}

func TestWithFileTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "log.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("old run\n"), 0644))

	log, err := NewLogger(WithFile(path))
	require.NoError(t, err)
	log.Info("new run")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old run")
	assert.Contains(t, string(data), "new run")
}
