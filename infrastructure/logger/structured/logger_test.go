package structured

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Options{Level: "debug", Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.Info("Metadata extracted", map[string]interface{}{
		"url":        "https://example.com",
		"namespaces": 3,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Metadata extracted", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "https://example.com", entry["url"])
	assert.EqualValues(t, 3, entry["namespaces"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	assert.Empty(t, buf.String())

	logger.Warn("shown", map[string]interface{}{"k": "v"})
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")

	logger.Error("also shown", nil)
	assert.Contains(t, buf.String(), "also shown")
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = NewLogger(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Options{Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.With(map[string]interface{}{"request_id": "abc"}).Info("hello", nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["request_id"])
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(Options{File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Info("to file", nil)
	assert.FileExists(t, path)
}
