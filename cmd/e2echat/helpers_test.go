package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "hello w...", truncate("hello world", 7))
	assert.Equal(t, "one two", truncate("one\ntwo", 20))
	assert.Equal(t, "héllo...", truncate("héllo wörld", 5))
}

func TestFmtDuration(t *testing.T) {
	assert.Equal(t, "0.5s", fmtDuration(500*time.Millisecond))
	assert.Equal(t, "12.3s", fmtDuration(12300*time.Millisecond))
	assert.Equal(t, "1m 5s", fmtDuration(65*time.Second))
	assert.Equal(t, "2m 0s", fmtDuration(2*time.Minute))
}

func TestFmtTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "2025-03-14 09:26:53", fmtTimestamp(ts))
}

func TestResolveConfigPath(t *testing.T) {
	dir := t.TempDir()

	// Explicit flag always wins.
	assert.Equal(t, "custom.yaml", resolveConfigPath("custom.yaml", dir))

	// Without a dir config, fall back to the working-directory file.
	assert.Equal(t, "e2echat.yaml", resolveConfigPath("", dir))

	dirConfig := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(dirConfig, []byte("model: m\n"), 0o600))
	assert.Equal(t, dirConfig, resolveConfigPath("", dir))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("E2E_TEST_VAR=hello\n"), 0o600))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "hello", os.Getenv("E2E_TEST_VAR"))

	t.Cleanup(func() { os.Unsetenv("E2E_TEST_VAR") })
}

func TestRandomThinkingMessage(t *testing.T) {
	assert.Contains(t, thinkingMessages, randomThinkingMessage())
}
