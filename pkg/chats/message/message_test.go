package message_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/germanamz/e2echat/pkg/chats/message"
	"github.com/germanamz/e2echat/pkg/chats/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StampsTime(t *testing.T) {
	before := time.Now()
	m := message.New(role.User, "hi")
	after := time.Now()

	assert.Equal(t, role.User, m.Role)
	assert.Equal(t, "hi", m.Content)
	assert.False(t, m.Time.Before(before))
	assert.False(t, m.Time.After(after))
}

func TestMessage_IsError(t *testing.T) {
	assert.True(t, message.New(role.Assistant, "Error: HTTP error 429: rate limited").IsError())
	assert.False(t, message.New(role.Assistant, "All good").IsError())
	assert.False(t, message.New(role.User, "Error: not from the model").IsError())
	assert.False(t, message.New(role.Assistant, "Err").IsError())
}

func TestMessage_JSONRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	m := message.NewAt(role.Assistant, "hello", at)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got message.Message
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, m.Role, got.Role)
	assert.Equal(t, m.Content, got.Content)
	assert.True(t, m.Time.Equal(got.Time))
}
