// Package tui runs Walk the Dog in a terminal with Bubble Tea, locally or
// over SSH. It maps key presses to held keys, drives the fixed-step game
// loop from display ticks and paints the canvas with half blocks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the display rate used when none is configured.
const DefaultFPS = 60

// TickMsg is sent to trigger a display frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
