package engine

import (
	"errors"
	"time"
)

// ErrAlreadyInitialized is returned when a game is initialized twice.
var ErrAlreadyInitialized = errors.New("engine: game already initialized")

// FrameSize is the simulated time covered by one update step.
const FrameSize = time.Second / 60

// Game is what the loop drives: fixed-size updates and one draw per display frame.
type Game interface {
	Update(keys *KeyState)
	Draw(r Renderer)
}

// GameLoop decouples the simulation rate from the display rate.
// The host calls Tick once per display frame with the current time; the loop
// adds the elapsed time to an accumulator and drains it in FrameSize steps
// before drawing exactly once.
type GameLoop struct {
	game        Game
	keys        *KeyState
	renderer    Renderer
	step        time.Duration
	maxSteps    int
	lastFrame   time.Time
	accumulated time.Duration
	started     bool
	updates     uint64
}

// LoopOption configures a GameLoop.
type LoopOption func(*GameLoop)

// WithStepSize overrides the simulation step (default FrameSize).
func WithStepSize(step time.Duration) LoopOption {
	return func(l *GameLoop) {
		if step > 0 {
			l.step = step
		}
	}
}

// WithMaxSteps bounds the number of updates one Tick may run.
// Backlog beyond the bound is dropped. Zero means unbounded.
func WithMaxSteps(n int) LoopOption {
	return func(l *GameLoop) {
		l.maxSteps = n
	}
}

// NewGameLoop creates a loop for game reading input from keys.
func NewGameLoop(game Game, keys *KeyState, renderer Renderer, opts ...LoopOption) *GameLoop {
	l := &GameLoop{
		game:     game,
		keys:     keys,
		renderer: renderer,
		step:     FrameSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start sets the reference time the first Tick measures from.
func (l *GameLoop) Start(now time.Time) {
	l.lastFrame = now
	l.accumulated = 0
	l.started = true
}

// Tick runs the updates owed since the previous Tick, then draws once.
// It returns the number of updates run.
func (l *GameLoop) Tick(now time.Time) int {
	if !l.started {
		l.Start(now)
	}

	if delta := now.Sub(l.lastFrame); delta > 0 {
		l.accumulated += delta
	}
	l.lastFrame = now

	steps := 0
	for l.accumulated > l.step {
		if l.maxSteps > 0 && steps >= l.maxSteps {
			l.accumulated = 0
			break
		}
		l.game.Update(l.keys)
		l.accumulated -= l.step
		steps++
	}
	l.updates += uint64(steps)

	l.game.Draw(l.renderer)
	return steps
}

// Updates returns the total number of simulation steps run so far.
func (l *GameLoop) Updates() uint64 {
	return l.updates
}

// Accumulated returns the simulated time still owed to the game.
func (l *GameLoop) Accumulated() time.Duration {
	return l.accumulated
}

// SetRenderer swaps the drawing surface, e.g. after a terminal resize.
func (l *GameLoop) SetRenderer(r Renderer) {
	l.renderer = r
}
