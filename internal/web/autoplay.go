package web

import (
	"context"
	"image"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/games/walk"
)

// autoplay is a game played by the autopilot on a headless overlay.
// It implements engine.Game so a GameLoop can drive it in real time.
type autoplay struct {
	game    *walk.WalkTheDog
	ui      *engine.HeadlessUI
	pilot   walk.Autopilot
	restart bool
	steps   uint64
}

func newAutoplay(ctx context.Context, cfg config.WalkConfig, loader engine.Loader, seed int64, restart bool, logger *log.Logger) (*autoplay, error) {
	ui := engine.NewHeadlessUI()
	game := walk.New(
		walk.WithConfig(cfg),
		walk.WithSeed(seed),
		walk.WithUI(ui),
		walk.WithLogger(logger),
	)
	if err := game.Initialize(ctx, loader); err != nil {
		return nil, err
	}
	return &autoplay{game: game, ui: ui, restart: restart}, nil
}

// Update overrides the player's keys with the autopilot's.
func (a *autoplay) Update(keys *engine.KeyState) {
	a.pilot.Press(a.game, keys)
	a.game.Update(keys)
	a.steps++
	if a.restart && a.game.State() == walk.StateGameOver {
		a.ui.Click(walk.NewGameButton)
	}
}

func (a *autoplay) Draw(r engine.Renderer) {
	a.game.Draw(r)
}

// run advances n steps as fast as possible, stopping early once the game is
// over and not restarting.
func (a *autoplay) run(ctx context.Context, n int) error {
	keys := engine.NewKeyState()
	for i := 0; i < n; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if !a.restart && a.game.State() == walk.StateGameOver {
			return nil
		}
		a.Update(keys)
	}
	return nil
}

func (a *autoplay) snapshot() walk.Snapshot {
	return a.game.Snapshot(a.steps)
}

// discard is a renderer for loops nobody looks at.
type discard struct{}

func (discard) Clear(core.Rect) {}
func (discard) DrawSubImage(image.Image, core.Rect, core.Rect) {}
func (discard) DrawImage(image.Image, core.Point) {}
