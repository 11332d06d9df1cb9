package walk

import (
	"image"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// Floating platform tiles and their collision zones. The end caps are
// shorter than the middle so the runner can slide under their tips.
var floatingPlatformSprites = []string{"13.png", "14.png", "15.png"}

const (
	floatingPlatformWidth = 384 // three 128px tiles
	platformEdgeWidth     = 60
	platformEdgeHeight    = 54
	platformHeight        = 93

	initialStoneOffset = 150
	highPlatformOffset = 200
	trailingStoneGap   = 76
)

var floatingPlatformBoxes = []core.Rect{
	core.NewRect(0, 0, platformEdgeWidth, platformEdgeHeight),
	core.NewRect(platformEdgeWidth, 0, floatingPlatformWidth-platformEdgeWidth*2, platformHeight),
	core.NewRect(floatingPlatformWidth-platformEdgeWidth, 0, platformEdgeWidth, platformEdgeHeight),
}

// segmentKit holds what every segment is built from.
type segmentKit struct {
	sheet *engine.SpriteSheet
	stone image.Image
	world config.WalkWorld
}

// segment builds a group of obstacles starting at offsetX. Obstacles of
// a segment never overlap each other horizontally.
type segment func(kit segmentKit, offsetX int16) []Obstacle

// catalog is the set of segments the generator picks from uniformly.
var catalog = []segment{
	stoneAndPlatform,
	platformAndStone,
}

func (k segmentKit) platform(x, y int16) *Platform {
	return NewPlatform(k.sheet, core.Point{X: x, Y: y}, floatingPlatformSprites, floatingPlatformBoxes)
}

func (k segmentKit) stoneAt(x int16) *Barrier {
	return NewBarrier(engine.NewImage(k.stone, core.Point{X: x, Y: k.world.StoneOnGround}))
}

// stoneAndPlatform is a stone to jump followed by a low platform to slide under.
func stoneAndPlatform(kit segmentKit, offsetX int16) []Obstacle {
	return []Obstacle{
		kit.stoneAt(offsetX + initialStoneOffset),
		kit.platform(offsetX+kit.world.FirstPlatform, kit.world.LowPlatform),
	}
}

// platformAndStone is a high platform followed by a stone.
func platformAndStone(kit segmentKit, offsetX int16) []Obstacle {
	platformX := offsetX + highPlatformOffset
	return []Obstacle{
		kit.platform(platformX, kit.world.HighPlatform),
		kit.stoneAt(platformX + floatingPlatformWidth + trailingStoneGap),
	}
}
