// Package tui hosts mini-game sessions in a terminal through Bubble Tea,
// locally or over SSH. It maps keys and mouse to game input and drives
// the session loop.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick of one session.
type TickMsg struct {
	Time    time.Time
	Session string
}

// tickCmd returns a Bubble Tea command that sends a tick for the session
// at the specified rate.
func tickCmd(tickRate int, sessionID string) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Session: sessionID}
	})
}
