package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trokit/aerotro/internal/dispatcher"
)

var _ dispatcher.Logger = (*DispatcherLogger)(nil)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestDispatcherLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(NewZerolog(&buf, "debug"))

	dl.Debug("Dispatching job", "command", "render", "queued", 3)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Dispatching job", entry["message"])
	assert.Equal(t, "render", entry["command"])
	assert.Equal(t, float64(3), entry["queued"])
	assert.Equal(t, "queue", entry["component"])
}

func TestDispatcherLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(NewZerolog(&buf, "info"))

	dl.Info("Queue drained", "pending", 0)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Queue drained", entry["message"])
}

func TestDispatcherLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(NewZerolog(&buf, "info"))

	dl.Error("Job failed", "path", "units/corsair.yaml", "error", "bad unit")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "units/corsair.yaml", entry["path"])
	assert.Equal(t, "bad unit", entry["error"])
}

func TestDispatcherLogger_DebugFilteredAtInfo(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(NewZerolog(&buf, "info"))

	dl.Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestToFields(t *testing.T) {
	assert.Equal(t, map[string]any{"a": 1, "c": "x"}, toFields([]any{"a", 1, 2, "skipped", "c", "x", "dangling"}))
	assert.Empty(t, toFields(nil))
}
