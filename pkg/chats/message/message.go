// Package message defines the Message type used in chat transcripts.
package message

import (
	"time"

	"github.com/germanamz/e2echat/pkg/chats/role"
)

// Message is a single timestamped entry in a conversation.
// It is a value type that copies cheaply and marshals to JSON for the
// on-disk transcript.
type Message struct {
	Role    role.Role `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"timestamp"`
}

// New creates a message stamped with the current time.
func New(r role.Role, content string) Message {
	return Message{Role: r, Content: content, Time: time.Now()}
}

// NewAt creates a message with an explicit timestamp.
func NewAt(r role.Role, content string, at time.Time) Message {
	return Message{Role: r, Content: content, Time: at}
}

// IsError reports whether the content is an absorbed call failure rather
// than a real completion. The e2e client surfaces failures as plain text
// with a fixed prefix; this is the only way to tell them apart.
func (m Message) IsError() bool {
	return m.Role == role.Assistant && len(m.Content) >= 6 && m.Content[:6] == "Error:"
}
