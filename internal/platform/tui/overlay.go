package tui

import (
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

var (
	overlayCell = core.Cell{Rune: ' ', Fg: core.ColorWhite, Bg: core.ColorBlack}
	focusedFg   = core.ColorWhite
	focusedBg   = core.ColorRed
)

// buttonZone is where a button landed on the last painted screen.
type buttonZone struct {
	id  string
	box core.Rect
}

// Overlay is the UI drawn above the terminal canvas: a centered dialog
// with a title and buttons, plus text elements the status bar shows.
// Buttons are clicked with the mouse or with the new game key, which
// activates the focused button.
type Overlay struct {
	title   string
	buttons []engine.Button
	focus   int
	visible bool
	texts   map[string]string
	clicks  map[string]chan struct{}
	zones   []buttonZone
}

// NewOverlay creates a hidden overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		texts:  make(map[string]string),
		clicks: make(map[string]chan struct{}),
	}
}

// Show implements engine.UI.
func (o *Overlay) Show(title string, buttons ...engine.Button) {
	o.title = title
	o.buttons = append(o.buttons[:0], buttons...)
	o.focus = 0
	o.visible = true
	o.zones = nil
}

// Hide implements engine.UI.
func (o *Overlay) Hide() {
	o.visible = false
	o.title = ""
	o.buttons = o.buttons[:0]
	o.zones = nil
}

// SetText implements engine.UI.
func (o *Overlay) SetText(id, text string) {
	o.texts[id] = text
}

// ClickReceiver implements engine.UI.
func (o *Overlay) ClickReceiver(id string) <-chan struct{} {
	return o.channel(id)
}

// Text returns the value last set for id.
func (o *Overlay) Text(id string) string { return o.texts[id] }

// Visible reports whether the dialog is shown.
func (o *Overlay) Visible() bool { return o.visible }

// Click delivers one click to the element. Clicks beyond one pending are dropped.
func (o *Overlay) Click(id string) {
	select {
	case o.channel(id) <- struct{}{}:
	default:
	}
}

// Activate clicks the focused button. It reports whether there was one.
func (o *Overlay) Activate() bool {
	if !o.visible || len(o.buttons) == 0 {
		return false
	}
	o.Click(o.buttons[o.focus].ID)
	return true
}

// FocusNext moves the focus to the next button, wrapping around.
func (o *Overlay) FocusNext() {
	if len(o.buttons) > 0 {
		o.focus = (o.focus + 1) % len(o.buttons)
	}
}

// ClickAt clicks the button painted under the cell (x, y), if any.
func (o *Overlay) ClickAt(x, y int) bool {
	if !o.visible {
		return false
	}
	for _, z := range o.zones {
		if z.box.Contains(int16(x), int16(y)) {
			o.Click(z.id)
			return true
		}
	}
	return false
}

// Paint draws the dialog centered on screen and records where its
// buttons are for ClickAt.
func (o *Overlay) Paint(screen *core.Screen) {
	o.zones = o.zones[:0]
	if !o.visible {
		return
	}

	labels := make([]string, len(o.buttons))
	buttonsWidth := 0
	for i, b := range o.buttons {
		labels[i] = "[ " + b.Label + " ]"
		if i > 0 {
			buttonsWidth += 2
		}
		buttonsWidth += len([]rune(labels[i]))
	}

	inner := core.Max(len([]rune(o.title)), buttonsWidth)
	w, h := inner+6, 5
	if len(o.buttons) == 0 {
		h = 3
	}
	x0 := (screen.Width() - w) / 2
	y0 := (screen.Height() - h) / 2

	screen.FillRect(x0, y0, w, h, overlayCell)
	screen.DrawBox(x0, y0, w, h)

	tx := x0 + (w-len([]rune(o.title)))/2
	screen.DrawTextColor(tx, y0+1, o.title, core.ColorYellow, core.ColorBlack)

	if len(o.buttons) == 0 {
		return
	}
	bx, by := x0+(w-buttonsWidth)/2, y0+3
	for i, b := range o.buttons {
		fg, bg := core.ColorWhite, core.ColorBlack
		if i == o.focus {
			fg, bg = focusedFg, focusedBg
		}
		screen.DrawTextColor(bx, by, labels[i], fg, bg)
		width := len([]rune(labels[i]))
		o.zones = append(o.zones, buttonZone{
			id:  b.ID,
			box: core.NewRect(int16(bx), int16(by), int16(width), 1),
		})
		bx += width + 2
	}
}

func (o *Overlay) channel(id string) chan struct{} {
	ch, ok := o.clicks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		o.clicks[id] = ch
	}
	return ch
}
