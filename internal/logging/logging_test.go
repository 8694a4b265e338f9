package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Stderr: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "todo")
}

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "error", Verbose: true, Stderr: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("details", "records", 3)
	assert.Contains(t, buf.String(), "details")
	assert.Contains(t, buf.String(), "records=3")
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "todo.log")
	var stderr bytes.Buffer
	logger, closer, err := New(Options{File: p, Stderr: &stderr})
	require.NoError(t, err)

	logger.Error("boom")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom")
	assert.Empty(t, stderr.String())
}
