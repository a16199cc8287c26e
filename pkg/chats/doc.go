// Package chats groups the conversation value types used by the chat UI:
// role (sender kinds), message (a single timestamped entry), and chat (a
// mutable transcript container). The e2e client never touches these — the
// conversation is owned entirely by the caller.
package chats
