package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowExistingLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\n"), 0644))

	var buf bytes.Buffer
	require.NoError(t, Logs(&buf, path, true, false))
	assert.Equal(t, "first\nsecond\n", buf.String())
}

func TestShowMissingLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	err := Logs(&bytes.Buffer{}, path, true, false)
	assert.ErrorContains(t, err, "no log file exists yet")

	err = Logs(&bytes.Buffer{}, path, false, false)
	assert.ErrorContains(t, err, "logging is not enabled")
}

func TestLiveLogsNeedLogging(t *testing.T) {
	err := Logs(&bytes.Buffer{}, filepath.Join(t.TempDir(), "debug.log"), false, true)
	assert.ErrorContains(t, err, "logging is not enabled")
}
