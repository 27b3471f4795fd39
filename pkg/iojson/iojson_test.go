package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReader_Read_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"caller":"Ada"}`), 0o644))

	fr := &FileReader[map[string]any]{Name: "data-file", fileFlagValue: path}
	got, err := fr.Read()

	require.NoError(t, err)
	assert.Equal(t, "Ada", got["caller"])
	assert.Equal(t, "data-file", fr.Flag().Name)
}

func TestFileReader_Read_stdin(t *testing.T) {
	fr := &FileReader[map[string]any]{
		stdin:      strings.NewReader(`{"screen":"feed"}`),
		isTerminal: func() bool { return false },
	}

	got, err := fr.Read()

	require.NoError(t, err)
	assert.Equal(t, "feed", got["screen"])
}

func TestFileReader_Read_terminal(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		fr := &FileReader[map[string]any]{isTerminal: func() bool { return true }}
		_, err := fr.Read()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--file")
	})

	t.Run("optional", func(t *testing.T) {
		fr := &FileReader[map[string]any]{Optional: true, isTerminal: func() bool { return true }}
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestFileReader_Read_empty_optional_stdin(t *testing.T) {
	fr := &FileReader[map[string]any]{
		Optional:   true,
		stdin:      strings.NewReader(""),
		isTerminal: func() bool { return false },
	}

	got, err := fr.Read()

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileReader_Read_bad_json(t *testing.T) {
	fr := &FileReader[map[string]any]{
		stdin:      strings.NewReader("{"),
		isTerminal: func() bool { return false },
	}

	_, err := fr.Read()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]string{"status": "ok"}))

	assert.Equal(t, "{\n  \"status\": \"ok\"\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestMarshalError(t *testing.T) {
	s := MarshalError("relay failed", map[string]any{"code": "DeviceNotRegistered"})
	assert.Contains(t, s, `"message": "relay failed"`)
	assert.Contains(t, s, `"code": "DeviceNotRegistered"`)
}

func TestWriteErrorWith(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, WriteErrorWith(&out, "send failed", nil))

	assert.Equal(t, "{\n  \"message\": \"send failed\"\n}\n", out.String())
}

func TestWriteWith_unencodable(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)}))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"message":"encode output"`)
}
