package main

import "time"

// inputSubmitMsg carries the text the user submitted from the input box.
type inputSubmitMsg struct {
	text string
}

// sendCompleteMsg is returned by the tea.Cmd that calls the LLM client.
// The reply is always displayable text; absorbed failures arrive with an
// "Error:" prefix.
type sendCompleteMsg struct {
	reply    string
	duration time.Duration
}

// initDrainMsg fires after a short delay so that stale terminal responses
// (e.g. OSC 11 background-color replies) are discarded before focusing input.
type initDrainMsg struct{}

// tickMsg drives the spinner animation while a request is in flight.
type tickMsg time.Time
