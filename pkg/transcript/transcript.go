// Package transcript persists chat history between sessions. The Store wraps
// a chat.Chat with a JSON file on disk: every append or clear is written
// through immediately so a crash never loses more than the in-flight
// exchange.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/germanamz/e2echat/pkg/chats/chat"
	"github.com/germanamz/e2echat/pkg/chats/message"
)

// Store loads and saves a conversation transcript as a JSON array of
// messages. Create one with New; the zero value is not usable.
type Store struct {
	path string

	mu   sync.Mutex
	chat *chat.Chat
}

// New creates a Store backed by the file at path. No I/O is performed until
// Load or the first write.
func New(path string) *Store {
	return &Store{path: path, chat: chat.New()}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the transcript from disk. A missing file leaves the store empty
// and is not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.chat = chat.New()
		return nil
	}
	if err != nil {
		return fmt.Errorf("transcript: read %s: %w", s.path, err)
	}

	var msgs []message.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return fmt.Errorf("transcript: parse %s: %w", s.path, err)
	}

	s.chat = chat.New(msgs...)

	return nil
}

// Append adds messages to the transcript and writes it through to disk.
func (s *Store) Append(msgs ...message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chat.Append(msgs...)

	return s.save()
}

// Clear empties the transcript and writes the empty state to disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chat.Clear()

	return s.save()
}

// Messages returns a copy of the transcript.
func (s *Store) Messages() []message.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chat.Messages()
}

// Len returns the number of messages in the transcript.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chat.Len()
}

// Stats returns message counts for display.
func (s *Store) Stats() chat.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chat.Stats()
}

// save writes the transcript to disk. Callers must hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("transcript: create dir: %w", err)
	}

	data, err := json.MarshalIndent(s.chat.Messages(), "", "  ")
	if err != nil {
		return fmt.Errorf("transcript: encode: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("transcript: write %s: %w", s.path, err)
	}

	return nil
}
