package main

import (
	"fmt"
	"time"

	"github.com/germanamz/e2echat/pkg/chats/chat"
)

// statusBarModel shows the model name, message stats, and response timing.
type statusBarModel struct {
	model    string
	stats    chat.Stats
	duration time.Duration
}

func newStatusBar(model string) statusBarModel {
	return statusBarModel{model: model}
}

func (m statusBarModel) View() string {
	line := fmt.Sprintf(" %s · %d messages (%d you, %d bot)",
		m.model, m.stats.Total, m.stats.User, m.stats.Assistant)

	if m.duration > 0 {
		line += fmt.Sprintf(" · last: %s", fmtDuration(m.duration))
	}

	return statusStyle.Render(line)
}
