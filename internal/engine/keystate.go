package engine

// Key codes the game polls.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowDown  = "ArrowDown"
	KeySpace      = "Space"
)

// KeyState tracks which keys are currently held.
type KeyState struct {
	pressed map[string]bool
}

// NewKeyState creates an empty key state.
func NewKeyState() *KeyState {
	return &KeyState{pressed: make(map[string]bool)}
}

// IsPressed reports whether the key is held down.
func (k *KeyState) IsPressed(code string) bool {
	if k == nil || k.pressed == nil {
		return false
	}
	return k.pressed[code]
}

// SetPressed marks a key as held.
func (k *KeyState) SetPressed(code string) {
	if k.pressed == nil {
		k.pressed = make(map[string]bool)
	}
	k.pressed[code] = true
}

// SetReleased marks a key as no longer held.
func (k *KeyState) SetReleased(code string) {
	delete(k.pressed, code)
}

// Clear releases every key.
func (k *KeyState) Clear() {
	for code := range k.pressed {
		delete(k.pressed, code)
	}
}
