package walk

import (
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// RedHatBoy is the player character: the state machine plus what it needs
// to draw itself and play its sounds.
type RedHatBoy struct {
	machine   Machine
	sheet     *engine.SpriteSheet
	jumpSound engine.Sound
	audio     engine.Audio
}

// NewRedHatBoy creates an idle runner.
func NewRedHatBoy(t *Tuning, sheet *engine.SpriteSheet, jumpSound engine.Sound, audio engine.Audio) *RedHatBoy {
	if audio == nil {
		audio = engine.NopAudio{}
	}
	return &RedHatBoy{
		machine:   NewMachine(t),
		sheet:     sheet,
		jumpSound: jumpSound,
		audio:     audio,
	}
}

// reset returns a fresh runner sharing this one's assets.
func (b *RedHatBoy) reset(t *Tuning) *RedHatBoy {
	return NewRedHatBoy(t, b.sheet, b.jumpSound, b.audio)
}

func (b *RedHatBoy) transition(e Event) {
	var effect Effect
	b.machine, effect = b.machine.Transition(e)
	if effect == EffectJumpSound {
		b.audio.PlaySound(b.jumpSound)
	}
}

func (b *RedHatBoy) Update() { b.transition(Update) }
func (b *RedHatBoy) RunRight() { b.transition(Run) }
func (b *RedHatBoy) Slide() { b.transition(Slide) }
func (b *RedHatBoy) Jump() { b.transition(Jump) }
func (b *RedHatBoy) KnockOut() { b.transition(KnockOut) }
func (b *RedHatBoy) LandOn(y int16) { b.transition(Land(y)) }
func (b *RedHatBoy) Machine() Machine { return b.machine }
func (b *RedHatBoy) KnockedOut() bool { return b.machine.KnockedOut() }
func (b *RedHatBoy) PosY() int16 { return b.machine.ctx.Position.Y }
func (b *RedHatBoy) VelocityY() int16 { return b.machine.ctx.Velocity.Y }
func (b *RedHatBoy) WalkingSpeed() int16 { return b.machine.ctx.Velocity.X }

// currentSprite panics when the sheet lacks the frame: the animation
// tables and the sheet are out of sync.
func (b *RedHatBoy) currentSprite() engine.Cell {
	return b.sheet.MustCell(b.machine.FrameName())
}

// DestinationBox is where the current frame is drawn.
func (b *RedHatBoy) DestinationBox() core.Rect {
	sprite := b.currentSprite()
	pos := b.machine.ctx.Position
	return core.NewRect(
		pos.X+sprite.SpriteSourceSize.X,
		pos.Y+sprite.SpriteSourceSize.Y,
		sprite.Frame.W,
		sprite.Frame.H,
	)
}

// BoundingBox is the collision box, inset from the drawn frame.
func (b *RedHatBoy) BoundingBox() core.Rect {
	in := b.machine.tuning.Insets
	box := b.DestinationBox()
	box.X += in.X
	box.Y += in.Y
	box.W -= in.Width
	box.H -= in.Height
	return box
}

// Draw renders the current animation frame.
func (b *RedHatBoy) Draw(r engine.Renderer) {
	b.sheet.Draw(r, b.currentSprite().Frame.Rect(), b.DestinationBox())
}
