// Package tui runs liquidsort games in a terminal through Bubble Tea.
// It owns the frame loop, key mapping, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval is the wall time of one simulation tick.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next simulation tick. Animations are measured in
// ticks, so a slower rate stretches them instead of skipping phases.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ticksToDuration converts simulation ticks to wall time.
func ticksToDuration(ticks, tickRate int) time.Duration {
	if tickRate <= 0 {
		return 0
	}
	return time.Duration(ticks) * time.Second / time.Duration(tickRate)
}
