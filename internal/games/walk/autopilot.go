package walk

import (
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// DefaultLookahead is how far ahead of the runner the autopilot reacts.
const DefaultLookahead = 24

// Autopilot plays by reading the obstacles just ahead of the runner:
// it jumps ground obstacles and slides under low overhangs. It is meant
// for demo and spectator runs, not for winning.
type Autopilot struct {
	Lookahead int16
}

// Press replaces the contents of keys with the autopilot's input for the
// next step.
func (a Autopilot) Press(g *WalkTheDog, keys *engine.KeyState) {
	keys.Clear()
	if g.walk == nil {
		return
	}

	switch g.state {
	case StateReady:
		keys.SetPressed(engine.KeyArrowRight)
	case StateWalking:
		if key, ok := a.react(g.walk); ok {
			keys.SetPressed(key)
		}
	}
}

func (a Autopilot) react(w *Walk) (string, bool) {
	lookahead := a.Lookahead
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}

	boy := w.boy.BoundingBox()
	for _, o := range w.obstacles {
		for _, box := range o.BoundingBoxes() {
			if box.Right() <= boy.X || box.X-boy.Right() > lookahead {
				continue
			}
			if box.Bottom() <= boy.Y {
				continue // passes overhead
			}
			if box.Y >= boy.Y+boy.H/2 {
				return engine.KeySpace, true
			}
			if box.Bottom() < boy.Bottom() {
				return engine.KeyArrowDown, true
			}
		}
	}
	return "", false
}
