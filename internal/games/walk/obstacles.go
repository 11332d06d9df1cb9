package walk

import (
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// Obstacle is anything in the world the runner can collide with.
type Obstacle interface {
	// CheckIntersection resolves a collision with the runner, if any.
	CheckIntersection(boy *RedHatBoy)
	Draw(r engine.Renderer)
	MoveHorizontally(dx int16)
	// Right is the rightmost x the obstacle occupies.
	Right() int16
	BoundingBoxes() []core.Rect
}

// Platform is a row of tiles the runner can land on. Only its top is
// safe: hitting it from the side or below knocks the runner out.
type Platform struct {
	sheet         *engine.SpriteSheet
	position      core.Point
	sprites       []engine.Cell
	boundingBoxes []core.Rect
}

// NewPlatform draws the named cells left to right from position.
// boxes are relative to position.
func NewPlatform(sheet *engine.SpriteSheet, position core.Point, spriteNames []string, boxes []core.Rect) *Platform {
	sprites := make([]engine.Cell, len(spriteNames))
	for i, name := range spriteNames {
		sprites[i] = sheet.MustCell(name)
	}

	absolute := make([]core.Rect, len(boxes))
	for i, box := range boxes {
		absolute[i] = box.Translate(position.X, position.Y)
	}

	return &Platform{
		sheet:         sheet,
		position:      position,
		sprites:       sprites,
		boundingBoxes: absolute,
	}
}

// Position returns the top-left corner of the first tile.
func (p *Platform) Position() core.Point {
	return p.position
}

func (p *Platform) CheckIntersection(boy *RedHatBoy) {
	boyBox := boy.BoundingBox()
	for _, box := range p.boundingBoxes {
		if !boyBox.Intersects(box) {
			continue
		}
		if boy.VelocityY() > 0 && boy.PosY() < p.position.Y {
			boy.LandOn(box.Y)
		} else {
			boy.KnockOut()
		}
		return
	}
}

func (p *Platform) Draw(r engine.Renderer) {
	x := p.position.X
	for _, sprite := range p.sprites {
		dst := core.NewRect(x, p.position.Y, sprite.Frame.W, sprite.Frame.H)
		p.sheet.Draw(r, sprite.Frame.Rect(), dst)
		x += sprite.Frame.W
	}
}

func (p *Platform) MoveHorizontally(dx int16) {
	p.position.X += dx
	for i := range p.boundingBoxes {
		p.boundingBoxes[i].X += dx
	}
}

func (p *Platform) Right() int16 {
	if len(p.boundingBoxes) == 0 {
		return p.position.X
	}
	return p.boundingBoxes[len(p.boundingBoxes)-1].Right()
}

func (p *Platform) BoundingBoxes() []core.Rect {
	return p.boundingBoxes
}

// Barrier is a solid object that knocks the runner out on any contact.
type Barrier struct {
	image engine.Image
}

// NewBarrier wraps a placed image.
func NewBarrier(image engine.Image) *Barrier {
	return &Barrier{image: image}
}

func (b *Barrier) CheckIntersection(boy *RedHatBoy) {
	if boy.BoundingBox().Intersects(b.image.BoundingBox()) {
		boy.KnockOut()
	}
}

func (b *Barrier) Draw(r engine.Renderer) {
	b.image.Draw(r)
}

func (b *Barrier) MoveHorizontally(dx int16) {
	b.image.MoveHorizontally(dx)
}

func (b *Barrier) Right() int16 {
	return b.image.Right()
}

func (b *Barrier) BoundingBoxes() []core.Rect {
	return []core.Rect{b.image.BoundingBox()}
}

// rightmost returns the largest Right of obstacles, or 0 when empty.
func rightmost(obstacles []Obstacle) int16 {
	var right int16
	for i, o := range obstacles {
		if r := o.Right(); i == 0 || r > right {
			right = r
		}
	}
	return right
}
