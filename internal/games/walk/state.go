package walk

import (
	"fmt"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// Kind identifies the active state of the runner.
type Kind uint8

const (
	Idle Kind = iota
	Running
	Sliding
	Jumping
	Falling
	KnockedOut
)

var kindNames = [...]string{"idle", "running", "sliding", "jumping", "falling", "knocked_out"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// framePrefix is the sprite sheet name prefix of the state's animation.
func (k Kind) framePrefix() string {
	switch k {
	case Idle:
		return "Idle"
	case Running:
		return "Run"
	case Sliding:
		return "Slide"
	case Jumping:
		return "Jump"
	default:
		return "Dead"
	}
}

// EventKind is what can happen to the runner.
type EventKind uint8

const (
	EventRun EventKind = iota
	EventSlide
	EventJump
	EventKnockOut
	EventUpdate
	EventLand
)

// Event is delivered to the state machine. Y is the surface for EventLand.
type Event struct {
	Kind EventKind
	Y    int16
}

// Events without payload.
var (
	Run      = Event{Kind: EventRun}
	Slide    = Event{Kind: EventSlide}
	Jump     = Event{Kind: EventJump}
	KnockOut = Event{Kind: EventKnockOut}
	Update   = Event{Kind: EventUpdate}
)

// Land returns a landing event on the surface at y.
func Land(y int16) Event {
	return Event{Kind: EventLand, Y: y}
}

// Effect is a side effect a transition asks the caller to perform.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectJumpSound
)

// Tuning is the immutable set of constants the state machine runs with.
type Tuning struct {
	Gravity          int16
	JumpSpeed        int16
	TerminalVelocity int16
	RunningSpeed     int16
	Floor            int16
	StartingX        int16
	PlayerHeight     int16
	CanvasHeight     int16
	Frames           config.FrameCeilings
	Insets           config.BoxInsets
}

// NewTuning extracts the runner constants from a config.
func NewTuning(cfg config.WalkConfig) *Tuning {
	return &Tuning{
		Gravity:          cfg.Physics.Gravity,
		JumpSpeed:        cfg.Physics.JumpSpeed,
		TerminalVelocity: cfg.Physics.TerminalVelocity,
		RunningSpeed:     cfg.Physics.RunningSpeed,
		Floor:            cfg.Character.Floor,
		StartingX:        cfg.Character.StartingX,
		PlayerHeight:     cfg.PlayerHeight(),
		CanvasHeight:     cfg.World.Height,
		Frames:           cfg.Character.Frames,
		Insets:           cfg.Character.BoundingBox,
	}
}

// Context is the per-state data carried across transitions.
type Context struct {
	Frame    uint8
	Position core.Point
	Velocity core.Point
}

// advance applies one step of gravity, animation and vertical motion.
func (c Context) advance(t *Tuning, ceiling uint8) Context {
	if c.Velocity.Y < t.TerminalVelocity {
		c.Velocity.Y += t.Gravity
	}
	if c.Frame < ceiling {
		c.Frame++
	} else {
		c.Frame = 0
	}
	c.Position.Y += c.Velocity.Y
	if c.Position.Y > t.Floor {
		c.Position.Y = t.Floor
	}
	return c
}

func (c Context) resetFrame() Context {
	c.Frame = 0
	return c
}

func (c Context) stop() Context {
	c.Velocity = core.Point{}
	return c
}

func (c Context) setOn(t *Tuning, surface int16) Context {
	c.Position.Y = surface - t.PlayerHeight
	return c
}

// Machine is the runner state machine. It is a value: Transition returns
// a new machine and never modifies the receiver.
type Machine struct {
	kind   Kind
	ctx    Context
	tuning *Tuning
}

// NewMachine returns an idle runner standing on the floor.
func NewMachine(t *Tuning) Machine {
	return Machine{
		kind: Idle,
		ctx: Context{
			Position: core.Point{X: t.StartingX, Y: t.Floor},
		},
		tuning: t,
	}
}

// Kind returns the active state.
func (m Machine) Kind() Kind { return m.kind }

// Context returns the active state's context.
func (m Machine) Context() Context { return m.ctx }

// KnockedOut reports whether the runner reached the terminal state.
func (m Machine) KnockedOut() bool { return m.kind == KnockedOut }

// FrameName returns the sprite sheet cell of the current animation frame.
func (m Machine) FrameName() string {
	return fmt.Sprintf("%s (%d).png", m.kind.framePrefix(), m.ctx.Frame/3+1)
}

func (m Machine) with(k Kind, ctx Context) Machine {
	m.kind = k
	m.ctx = ctx
	return m
}

// Transition applies e. Pairs with no rule leave the machine unchanged.
func (m Machine) Transition(e Event) (Machine, Effect) {
	t := m.tuning
	ctx := m.ctx

	switch m.kind {
	case Idle:
		switch e.Kind {
		case EventRun:
			ctx = ctx.resetFrame()
			ctx.Velocity.X = t.RunningSpeed
			return m.with(Running, ctx), EffectNone
		case EventUpdate:
			return m.with(Idle, ctx.advance(t, t.Frames.Idle)), EffectNone
		}

	case Running:
		switch e.Kind {
		case EventSlide:
			return m.with(Sliding, ctx.resetFrame()), EffectNone
		case EventJump:
			ctx.Velocity.Y = t.JumpSpeed
			return m.with(Jumping, ctx.resetFrame()), EffectJumpSound
		case EventKnockOut:
			return m.with(Falling, ctx.resetFrame().stop()), EffectNone
		case EventLand:
			return m.with(Running, ctx.setOn(t, e.Y)), EffectNone
		case EventUpdate:
			return m.with(Running, ctx.advance(t, t.Frames.Running)), EffectNone
		}

	case Sliding:
		switch e.Kind {
		case EventKnockOut:
			return m.with(Falling, ctx.resetFrame().stop()), EffectNone
		case EventLand:
			return m.with(Sliding, ctx.setOn(t, e.Y)), EffectNone
		case EventUpdate:
			ctx = ctx.advance(t, t.Frames.Sliding)
			if ctx.Frame >= t.Frames.Sliding {
				return m.with(Running, ctx.resetFrame()), EffectNone
			}
			return m.with(Sliding, ctx), EffectNone
		}

	case Jumping:
		switch e.Kind {
		case EventKnockOut:
			return m.with(Falling, ctx.resetFrame().stop()), EffectNone
		case EventLand:
			return m.with(Running, ctx.resetFrame().setOn(t, e.Y)), EffectNone
		case EventUpdate:
			ctx = ctx.advance(t, t.Frames.Jumping)
			if ctx.Position.Y >= t.Floor {
				return m.with(Running, ctx.resetFrame().setOn(t, t.CanvasHeight)), EffectNone
			}
			return m.with(Jumping, ctx), EffectNone
		}

	case Falling:
		if e.Kind == EventUpdate {
			ctx = ctx.advance(t, t.Frames.Falling)
			if ctx.Frame >= t.Frames.Falling {
				return m.with(KnockedOut, ctx), EffectNone
			}
			return m.with(Falling, ctx), EffectNone
		}
	}

	return m, EffectNone
}
