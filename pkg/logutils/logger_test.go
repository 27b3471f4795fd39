package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_writes_json_to_file(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "beacon.log")

	logger, closer, err := New("info", file)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("cmp", "test").Msg("visible")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "test", entry["cmp"])
	assert.Contains(t, entry, "time")
}

func TestNew_appends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "beacon.log")

	for range 2 {
		logger, closer, err := New("info", file)
		require.NoError(t, err)
		logger.Info().Msg("line")
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
}

func TestNew_invalid_level(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	assert.NotNil(t, closer)
}

