package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/germanamz/e2echat/pkg/chats/message"
	"github.com/germanamz/e2echat/pkg/chats/role"
	"github.com/germanamz/e2echat/pkg/e2e"
	"github.com/germanamz/e2echat/pkg/transcript"
)

// appState represents the application state machine.
type appState int

const (
	stateIdle appState = iota
	stateProcessing
)

// appModel is the root bubbletea model.
type appModel struct {
	ctx       context.Context
	client    *e2e.Client
	store     *transcript.Store
	chatView  chatViewModel
	inputBox  inputModel
	statusBar statusBarModel
	state     appState
	width     int
	height    int
	sendStart time.Time
}

func newAppModel(ctx context.Context, client *e2e.Client, store *transcript.Store) appModel {
	m := appModel{
		ctx:       ctx,
		client:    client,
		store:     store,
		chatView:  newChatView(),
		inputBox:  newInput(),
		statusBar: newStatusBar(client.Model()),
		state:     stateIdle,
	}

	// Replay the persisted session into the scrollback.
	for _, msg := range store.Messages() {
		m.chatView.addMessage(msg)
	}
	m.statusBar.stats = store.Stats()

	return m
}

func (m appModel) Init() tea.Cmd {
	// Delay focusing the input so that stale terminal escape-sequence
	// responses (e.g. OSC 11 background-color) are drained first.
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return initDrainMsg{}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case initDrainMsg:
		cmd := m.inputBox.enable()
		return m, cmd

	case inputSubmitMsg:
		return m.handleSubmit(msg)

	case sendCompleteMsg:
		return m.handleSendComplete(msg)

	case tickMsg:
		if m.state == stateProcessing {
			m.chatView.advanceSpinner()
			return m, tickCmd()
		}
		return m, nil
	}

	// Delegate remaining messages to the input box when idle.
	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.chatView.View(),
		m.inputBox.View(),
		m.statusBar.View(),
	)
}

func (m *appModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	initMarkdownRenderer(m.width - 4)
	m.inputBox.setWidth(m.width)
	m.recalcLayout()

	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Forward to the input box when idle; scroll keys reach the viewport.
	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *appModel) handleSubmit(msg inputSubmitMsg) (tea.Model, tea.Cmd) {
	text := msg.text

	switch text {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/help":
		m.chatView.addInfo(helpText())
		m.recalcLayout()
		return m, nil

	case "/stats":
		s := m.store.Stats()
		m.chatView.addInfo(dimStyle.Render(fmt.Sprintf(
			"Total messages: %d · you: %d · bot: %d", s.Total, s.User, s.Assistant,
		)))
		m.recalcLayout()
		return m, nil

	case "/clear":
		if err := m.store.Clear(); err != nil {
			m.chatView.addError("error clearing history: " + err.Error())
			return m, nil
		}
		m.chatView.clear()
		m.statusBar.stats = m.store.Stats()
		m.chatView.addInfo(dimStyle.Render("Chat history cleared."))
		m.recalcLayout()
		return m, nil
	}

	userMsg := message.New(role.User, text)
	if err := m.store.Append(userMsg); err != nil {
		m.chatView.addError("error saving history: " + err.Error())
	}
	m.chatView.addMessage(userMsg)
	m.statusBar.stats = m.store.Stats()

	m.state = stateProcessing
	m.inputBox.disable()
	m.chatView.setProcessing(true)
	m.sendStart = time.Now()

	// Start the call in a background goroutine via tea.Cmd. Call never
	// fails — transport and endpoint errors come back as "Error:" text.
	client := m.client
	ctx := m.ctx
	start := m.sendStart
	sendCmd := func() tea.Msg {
		reply := client.Call(ctx, text)
		return sendCompleteMsg{reply: reply, duration: time.Since(start)}
	}

	return m, tea.Batch(sendCmd, tickCmd())
}

func (m *appModel) handleSendComplete(msg sendCompleteMsg) (tea.Model, tea.Cmd) {
	m.state = stateIdle
	m.chatView.setProcessing(false)
	m.statusBar.duration = msg.duration

	botMsg := message.New(role.Assistant, msg.reply)
	if err := m.store.Append(botMsg); err != nil {
		m.chatView.addError("error saving history: " + err.Error())
	}
	m.chatView.addMessage(botMsg)
	m.statusBar.stats = m.store.Stats()

	m.recalcLayout()

	return m, m.inputBox.enable()
}

func (m *appModel) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// Status bar = 1 line, input box = border + content lines.
	statusHeight := 1
	inputHeight := lipgloss.Height(m.inputBox.View())
	chatHeight := max(m.height-inputHeight-statusHeight, 1)
	m.chatView.setSize(m.width, chatHeight)
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func helpText() string {
	return dimStyle.Render(
		"Commands:\n" +
			"  /help          Show this help message\n" +
			"  /stats         Show message counts for this session\n" +
			"  /clear         Clear the chat history\n" +
			"  /quit          Exit the chat\n\n" +
			"Shortcuts:\n" +
			"  Enter          Submit message\n" +
			"  Alt+Enter      New line\n" +
			"  Ctrl+C         Exit",
	)
}
