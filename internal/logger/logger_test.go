package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNew_RoleField verifies that every entry contains the "role" field.
func TestNew_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test-role", "info")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNew_CallerFieldName verifies that the caller field is named "func".
func TestNew_CallerFieldName(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "caller-role", "info")

	l.Info().Msg("caller")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	entry := decodeEntry(t, &buf)
	assert.Contains(t, entry["func"], "TestNew_CallerFieldName")
}

// TestNew_LevelFilters verifies that entries below the level are dropped.
func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "level-role", "warn")

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	assert.NotEmpty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

func TestWrap_KeepsFields(t *testing.T) {
	var buf bytes.Buffer
	l := Wrap(zerolog.New(&buf).With().Str("k", "v").Logger())

	l.Info().Msg("wrapped")

	assert.Equal(t, "v", decodeEntry(t, &buf)["k"])
}

// TestGetChildLogger_InheritsFields verifies that the child logger inherits
// the parent's fields and adds its component.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "inherited-role", "debug")

	child := parent.GetChildLogger("loader")
	assert.NotSame(t, parent, child)

	child.Info().Msg("child message")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "inherited-role", entry["role"])
	assert.Equal(t, "loader", entry["component"])
}
