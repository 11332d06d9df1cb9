package engine

// Button is a clickable element of an overlay.
type Button struct {
	ID    string
	Label string
}

// UI is the overlay collaborator drawn above the game canvas.
type UI interface {
	// Show displays an overlay with a title and buttons.
	Show(title string, buttons ...Button)
	// Hide removes the overlay, if any.
	Hide()
	// SetText sets a named text element, e.g. the score label.
	SetText(id, text string)
	// ClickReceiver returns a channel that receives one value per click on
	// the element with the given id. Callers poll it without blocking.
	ClickReceiver(id string) <-chan struct{}
}

// Clicked polls a click receiver without blocking.
func Clicked(rx <-chan struct{}) bool {
	select {
	case <-rx:
		return true
	default:
		return false
	}
}

// HeadlessUI is an in-memory UI for hosts without a screen overlay:
// tests, the HTTP snapshot and spectator runs. Clicks are injected with Click.
type HeadlessUI struct {
	title   string
	buttons []Button
	visible bool
	texts   map[string]string
	clicks  map[string]chan struct{}
}

// NewHeadlessUI creates an empty headless overlay.
func NewHeadlessUI() *HeadlessUI {
	return &HeadlessUI{
		texts:  make(map[string]string),
		clicks: make(map[string]chan struct{}),
	}
}

// Show implements UI.
func (u *HeadlessUI) Show(title string, buttons ...Button) {
	u.title = title
	u.buttons = append(u.buttons[:0], buttons...)
	u.visible = true
}

// Hide implements UI.
func (u *HeadlessUI) Hide() {
	u.visible = false
	u.title = ""
	u.buttons = u.buttons[:0]
}

// SetText implements UI.
func (u *HeadlessUI) SetText(id, text string) {
	u.texts[id] = text
}

// ClickReceiver implements UI.
func (u *HeadlessUI) ClickReceiver(id string) <-chan struct{} {
	return u.channel(id)
}

// Click delivers one click to the element. Clicks beyond one pending are dropped.
func (u *HeadlessUI) Click(id string) {
	select {
	case u.channel(id) <- struct{}{}:
	default:
	}
}

// Visible reports whether an overlay is shown.
func (u *HeadlessUI) Visible() bool { return u.visible }

// Title returns the title of the shown overlay.
func (u *HeadlessUI) Title() string { return u.title }

// Buttons returns the buttons of the shown overlay.
func (u *HeadlessUI) Buttons() []Button { return u.buttons }

// Text returns the value last set for id.
func (u *HeadlessUI) Text(id string) string { return u.texts[id] }

func (u *HeadlessUI) channel(id string) chan struct{} {
	ch, ok := u.clicks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		u.clicks[id] = ch
	}
	return ch
}
