package walk

import (
	"image"
	"math/rand"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// Walk is the world: the runner, the scrolling backdrop and the obstacles
// generated ahead of it. Horizontal motion belongs to the world; the
// runner's x never changes.
type Walk struct {
	boy         *RedHatBoy
	backgrounds [2]engine.Image
	obstacles   []Obstacle
	kit         segmentKit
	rng         *rand.Rand
	world       config.WalkWorld
	timeline    int16
	score       uint64
}

// newWalk places two background tiles side by side and the opening segment.
func newWalk(boy *RedHatBoy, background image.Image, kit segmentKit, rng *rand.Rand) *Walk {
	width := int16(background.Bounds().Dx())
	w := &Walk{
		boy: boy,
		backgrounds: [2]engine.Image{
			engine.NewImage(background, core.Point{X: 0, Y: 0}),
			engine.NewImage(background, core.Point{X: width, Y: 0}),
		},
		kit:   kit,
		rng:   rng,
		world: kit.world,
	}
	w.obstacles = stoneAndPlatform(kit, 0)
	w.timeline = rightmost(w.obstacles)
	return w
}

// reset starts a new round with the same assets and random source.
func (w *Walk) reset(t *Tuning, world config.WalkWorld) *Walk {
	kit := w.kit
	kit.world = world
	return newWalk(w.boy.reset(t), w.backgrounds[0].Element(), kit, w.rng)
}

// Velocity is the world scroll per step, the negated running speed.
func (w *Walk) Velocity() int16 {
	return -w.boy.WalkingSpeed()
}

func (w *Walk) Boy() *RedHatBoy { return w.boy }
func (w *Walk) Obstacles() []Obstacle { return w.obstacles }
func (w *Walk) Timeline() int16 { return w.timeline }
func (w *Walk) Score() uint64 { return w.score }
func (w *Walk) KnockedOut() bool { return w.boy.KnockedOut() }

// Backgrounds returns the boxes of both background tiles.
func (w *Walk) Backgrounds() [2]core.Rect {
	return [2]core.Rect{w.backgrounds[0].BoundingBox(), w.backgrounds[1].BoundingBox()}
}

// step advances the world by one simulation step.
func (w *Walk) step() {
	w.boy.Update()

	velocity := w.Velocity()
	w.scrollBackgrounds(velocity)

	live := w.obstacles[:0]
	for _, o := range w.obstacles {
		if o.Right() > 0 {
			live = append(live, o)
		}
	}
	clear(w.obstacles[len(live):])
	w.obstacles = live

	for _, o := range w.obstacles {
		o.MoveHorizontally(velocity)
		o.CheckIntersection(w.boy)
	}

	if w.timeline < w.world.TimelineMinimum {
		w.generateNextSegment()
	} else {
		w.timeline += velocity
	}

	if velocity != 0 {
		w.score++
	}
}

// scrollBackgrounds moves both tiles and wraps the one that left the
// screen to the right edge of the other.
func (w *Walk) scrollBackgrounds(velocity int16) {
	first, second := &w.backgrounds[0], &w.backgrounds[1]
	first.MoveHorizontally(velocity)
	second.MoveHorizontally(velocity)

	if first.Right() < 0 {
		first.SetX(second.Right())
	}
	if second.Right() < 0 {
		second.SetX(first.Right())
	}
}

func (w *Walk) generateNextSegment() {
	next := catalog[w.rng.Intn(len(catalog))]
	obstacles := next(w.kit, w.timeline+w.world.ObstacleBuffer)
	w.timeline = rightmost(obstacles)
	w.obstacles = append(w.obstacles, obstacles...)
}

// Draw renders the backdrop, then the runner, then the obstacles.
func (w *Walk) Draw(r engine.Renderer) {
	for i := range w.backgrounds {
		w.backgrounds[i].Draw(r)
	}
	w.boy.Draw(r)
	for _, o := range w.obstacles {
		o.Draw(r)
	}
}
