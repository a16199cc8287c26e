// Package chat provides a mutable transcript container for chat sessions.
package chat

import (
	"github.com/germanamz/e2echat/pkg/chats/message"
	"github.com/germanamz/e2echat/pkg/chats/role"
)

// Chat is a mutable conversation container. The zero value is ready to use.
// Chat is not safe for concurrent use; callers must synchronize externally.
type Chat struct {
	messages []message.Message
}

// Stats summarizes a conversation for display.
type Stats struct {
	Total     int
	User      int
	Assistant int
}

// New creates a Chat pre-populated with the given messages.
func New(msgs ...message.Message) *Chat {
	return &Chat{messages: msgs}
}

// Append adds one or more messages to the conversation.
func (c *Chat) Append(msgs ...message.Message) {
	c.messages = append(c.messages, msgs...)
}

// Len returns the number of messages in the conversation.
func (c *Chat) Len() int {
	return len(c.messages)
}

// At returns the message at the given index.
// It panics if the index is out of range.
func (c *Chat) At(index int) message.Message {
	return c.messages[index]
}

// Last returns the most recent message and true, or a zero Message and false
// if the conversation is empty.
func (c *Chat) Last() (message.Message, bool) {
	if len(c.messages) == 0 {
		return message.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Messages returns a copy of all messages in the conversation.
func (c *Chat) Messages() []message.Message {
	cp := make([]message.Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// ByRole returns all messages with the given role.
func (c *Chat) ByRole(r role.Role) []message.Message {
	var out []message.Message
	for _, m := range c.messages {
		if m.Role == r {
			out = append(out, m)
		}
	}
	return out
}

// Clear removes every message from the conversation.
func (c *Chat) Clear() {
	c.messages = nil
}

// Stats counts messages per sender kind.
func (c *Chat) Stats() Stats {
	s := Stats{Total: len(c.messages)}
	for _, m := range c.messages {
		switch m.Role {
		case role.User:
			s.User++
		case role.Assistant:
			s.Assistant++
		}
	}
	return s
}
