package chatdir_test

import (
	"path/filepath"
	"testing"

	"github.com/germanamz/e2echat/pkg/chatdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_Paths(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".e2echat")
	d := chatdir.New(root)

	assert.Equal(t, root, d.Root())
	assert.Equal(t, filepath.Join(root, "config.yaml"), d.ConfigPath())
	assert.Equal(t, filepath.Join(root, "history.json"), d.HistoryPath())
}

func TestEnsureStructure(t *testing.T) {
	d := chatdir.New(filepath.Join(t.TempDir(), ".e2echat"))
	assert.False(t, d.Exists())

	require.NoError(t, chatdir.EnsureStructure(d))
	assert.True(t, d.Exists())

	// Idempotent.
	require.NoError(t, chatdir.EnsureStructure(d))
}
