package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// DefaultHold is how long a key counts as held after its last press.
// Terminals report presses and auto-repeats but never releases.
const DefaultHold = 150 * time.Millisecond

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Run        key.Binding
	Jump       key.Binding
	Slide      key.Binding
	NewGame    key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Jump, k.Slide, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.Jump, k.Slide},
		{k.NewGame, k.Pause, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Run: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "run"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Slide: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "slide"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("enter", "new game"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// GameKey translates a key message to the key code the game polls.
func (k KeyMap) GameKey(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Run):
		return engine.KeyArrowRight, true
	case key.Matches(msg, k.Jump):
		return engine.KeySpace, true
	case key.Matches(msg, k.Slide):
		return engine.KeyArrowDown, true
	}
	return "", false
}

// heldKeys turns key presses into held keys that release on their own
// once no repeat arrives within the hold duration.
type heldKeys struct {
	hold   time.Duration
	expiry map[string]time.Time
}

func newHeldKeys(hold time.Duration) *heldKeys {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &heldKeys{hold: hold, expiry: make(map[string]time.Time)}
}

func (h *heldKeys) press(code string, now time.Time) {
	h.expiry[code] = now.Add(h.hold)
}

// sync copies the keys still held at now into keys and forgets the rest.
func (h *heldKeys) sync(keys *engine.KeyState, now time.Time) {
	keys.Clear()
	for code, until := range h.expiry {
		if now.After(until) {
			delete(h.expiry, code)
			continue
		}
		keys.SetPressed(code)
	}
}
