package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesPerLevelFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := NewLogger(dir)
	require.NoError(t, err)

	l.Info("loaded %d anchors", 8732)
	l.Warning("history disabled")
	l.Error("failed: %v", "boom")
	l.Close()

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "loaded 8732 anchors")
	assert.Contains(t, string(info), "logger_test.go")

	warning, err := os.ReadFile(filepath.Join(dir, "warning.log"))
	require.NoError(t, err)
	assert.Contains(t, string(warning), "history disabled")
	assert.NotContains(t, string(warning), "anchors")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errs), "failed: boom")
}

func TestLogger_NoDirectory(t *testing.T) {
	l, err := NewLogger("")
	require.NoError(t, err)
	l.Info("stderr only")
	l.Close()
}
