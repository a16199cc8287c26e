package transcript_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/germanamz/e2echat/pkg/chats/chat"
	"github.com/germanamz/e2echat/pkg/chats/message"
	"github.com/germanamz/e2echat/pkg/chats/role"
	"github.com/germanamz/e2echat/pkg/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *transcript.Store {
	t.Helper()

	return transcript.New(filepath.Join(t.TempDir(), ".e2echat", "history.json"))
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())
}

func TestStore_AppendPersistsAcrossLoads(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Append(
		message.New(role.User, "hi"),
		message.New(role.Assistant, "hello"),
	))

	reloaded := transcript.New(s.Path())
	require.NoError(t, reloaded.Load())

	msgs := reloaded.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, role.User, msgs[0].Role)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, "hello", msgs[1].Content)
	assert.False(t, msgs[0].Time.IsZero())
}

func TestStore_Clear(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Append(message.New(role.User, "hi")))
	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())

	reloaded := transcript.New(s.Path())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 0, reloaded.Len())
}

func TestStore_Stats(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Append(
		message.New(role.User, "q1"),
		message.New(role.Assistant, "a1"),
		message.New(role.User, "q2"),
	))

	assert.Equal(t, chat.Stats{Total: 3, User: 2, Assistant: 1}, s.Stats())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := transcript.New(path)
	assert.Error(t, s.Load())
}
