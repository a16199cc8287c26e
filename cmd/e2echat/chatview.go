package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/e2echat/pkg/chats/message"
	"github.com/germanamz/e2echat/pkg/chats/role"
)

// chatBlock is one rendered unit of the scrollback: a user message with its
// caption, an assistant answer, or an informational line.
type chatBlock struct {
	content string
}

// chatViewModel renders the conversation in a scrollable viewport with a
// spinner line while a request is in flight.
type chatViewModel struct {
	viewport      viewport.Model
	blocks        []chatBlock
	processing    bool
	processingMsg string
	spinnerIdx    int
	width         int
}

func newChatView() chatViewModel {
	return chatViewModel{viewport: viewport.New(0, 0)}
}

// addMessage appends a transcript message to the scrollback.
func (m *chatViewModel) addMessage(msg message.Message) {
	switch msg.Role {
	case role.User:
		m.blocks = append(m.blocks, chatBlock{content: renderUserMessage(msg)})
	case role.Assistant:
		m.blocks = append(m.blocks, chatBlock{content: renderAssistantMessage(msg)})
	case role.System:
		// System prompts are not displayed.
	}
	m.updateViewport()
}

// addInfo appends an informational line (help text, stats, notices).
func (m *chatViewModel) addInfo(text string) {
	m.blocks = append(m.blocks, chatBlock{content: text})
	m.updateViewport()
}

// addError appends an error line.
func (m *chatViewModel) addError(text string) {
	m.blocks = append(m.blocks, chatBlock{content: errorStyle.Render(text)})
	m.updateViewport()
}

// clear removes all blocks from the scrollback.
func (m *chatViewModel) clear() {
	m.blocks = nil
	m.updateViewport()
}

// setProcessing toggles the in-flight spinner and picks a random message.
func (m *chatViewModel) setProcessing(on bool) {
	m.processing = on
	if on {
		m.processingMsg = randomThinkingMessage()
	}
}

// advanceSpinner increments the spinner frame.
func (m *chatViewModel) advanceSpinner() {
	m.spinnerIdx++
}

func (m *chatViewModel) setSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = max(height, 1)
	m.updateViewport()
}

// updateViewport re-renders the scrollback into the viewport and keeps it
// pinned to the bottom.
func (m *chatViewModel) updateViewport() {
	var sb strings.Builder
	for _, b := range m.blocks {
		sb.WriteString(b.content)
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m chatViewModel) View() string {
	out := m.viewport.View()

	if m.processing {
		frame := spinnerFrames[m.spinnerIdx%len(spinnerFrames)]
		out += fmt.Sprintf("\n  %s %s",
			spinnerStyle.Render(frame),
			spinnerStyle.Render(m.processingMsg),
		)
	}

	return out
}

func (m chatViewModel) Update(msg tea.Msg) (chatViewModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// renderUserMessage formats a user message with its timestamp caption,
// indenting continuation lines to align with the first line.
func renderUserMessage(msg message.Message) string {
	prefix := userPrefixStyle.Render("🧑 You > ")

	var sb strings.Builder
	lines := strings.Split(msg.Content, "\n")
	sb.WriteString(prefix)
	sb.WriteString(lines[0])
	for _, line := range lines[1:] {
		sb.WriteString("\n  ")
		sb.WriteString(line)
	}
	sb.WriteString("\n")
	sb.WriteString(captionStyle.Render(fmtTimestamp(msg.Time)))

	return userBlockStyle.Render(sb.String())
}

// renderAssistantMessage formats an assistant reply. Real completions are
// rendered as markdown; absorbed call failures are shown in the error style.
func renderAssistantMessage(msg message.Message) string {
	if msg.IsError() {
		return answerBlockStyle.Render(
			errorStyle.Render("🤖 Bot > "+msg.Content) + "\n" +
				captionStyle.Render(fmtTimestamp(msg.Time)),
		)
	}

	rendered := renderMarkdown(msg.Content)

	return answerBlockStyle.Render(
		answerPrefixStyle.Render("🤖 Bot > ") + rendered + "\n" +
			captionStyle.Render(fmtTimestamp(msg.Time)),
	)
}
