// Package walk implements Walk the Dog, a side-scrolling runner: the
// player's state machine, the obstacle generator and the game flow from
// the start screen to game over and back.
package walk

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
)

// Asset paths inside the loader's file system.
const (
	RunnerSheet     = "rhb.json"
	RunnerImage     = "rhb.png"
	TilesSheet      = "tiles.json"
	TilesImage      = "tiles.png"
	BackgroundImage = "BG.png"
	StoneImage      = "Stone.png"
	JumpSound       = "SFX_Jump_23.wav"
	BackgroundMusic = "background_song.wav"
)

// GameID names this game in the score store.
const GameID = "walk"

// UI element ids.
const (
	ScoreElement  = "score"
	NewGameButton = "new_game"
)

// State is the game-level state.
type State uint8

const (
	StateReady State = iota
	StateWalking
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateWalking:
		return "walking"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// WalkTheDog drives a Walk through ready, walking and game over.
// All methods must be called from the single goroutine running the loop.
type WalkTheDog struct {
	state   State
	walk    *Walk
	restart <-chan struct{}
	paused  bool

	cfg        config.WalkConfig
	updates    <-chan config.WalkConfig
	rng        *rand.Rand
	audio      engine.Audio
	ui         engine.UI
	logger     *log.Logger
	onGameOver func(score uint64)
}

// Option configures a WalkTheDog.
type Option func(*WalkTheDog)

// WithConfig sets the tuning of the first round.
func WithConfig(cfg config.WalkConfig) Option {
	return func(g *WalkTheDog) { g.cfg = cfg }
}

// WithConfigUpdates supplies reloaded tuning, applied when a new round starts.
func WithConfigUpdates(rx <-chan config.WalkConfig) Option {
	return func(g *WalkTheDog) { g.updates = rx }
}

// WithRand sets the segment random source. Equal seeds give equal worlds.
func WithRand(rng *rand.Rand) Option {
	return func(g *WalkTheDog) { g.rng = rng }
}

// WithSeed seeds the segment random source; zero picks a time-based seed.
func WithSeed(seed int64) Option {
	return func(g *WalkTheDog) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithAudio(a engine.Audio) Option {
	return func(g *WalkTheDog) { g.audio = a }
}

func WithUI(ui engine.UI) Option {
	return func(g *WalkTheDog) { g.ui = ui }
}

func WithLogger(l *log.Logger) Option {
	return func(g *WalkTheDog) { g.logger = l }
}

// WithGameOverHook is called once per round with the final score.
func WithGameOverHook(fn func(score uint64)) Option {
	return func(g *WalkTheDog) { g.onGameOver = fn }
}

// New creates an uninitialized game.
func New(opts ...Option) *WalkTheDog {
	g := &WalkTheDog{
		cfg:   config.DefaultWalkConfig(),
		audio: engine.NopAudio{},
		ui:    engine.NewHeadlessUI(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g
}

// Initialize loads every asset and builds the first round. Any failure is
// fatal: there is no partially loaded game.
func (g *WalkTheDog) Initialize(ctx context.Context, loader engine.Loader) error {
	if g.walk != nil {
		return engine.ErrAlreadyInitialized
	}

	runner, err := engine.LoadSpriteSheet(ctx, loader, RunnerSheet, RunnerImage)
	if err != nil {
		return err
	}
	tiles, err := engine.LoadSpriteSheet(ctx, loader, TilesSheet, TilesImage)
	if err != nil {
		return err
	}
	background, err := loader.LoadImage(ctx, BackgroundImage)
	if err != nil {
		return err
	}
	stone, err := loader.LoadImage(ctx, StoneImage)
	if err != nil {
		return err
	}
	jump, err := loader.LoadSound(ctx, JumpSound)
	if err != nil {
		return err
	}
	music, err := loader.LoadSound(ctx, BackgroundMusic)
	if err != nil {
		return err
	}

	tuning := NewTuning(g.cfg)
	if err := checkAnimations(runner, tuning); err != nil {
		return err
	}
	for _, name := range floatingPlatformSprites {
		if _, err := tiles.Cell(name); err != nil {
			return err
		}
	}

	kit := segmentKit{sheet: tiles, stone: stone, world: g.cfg.World}
	if err := checkLayout(kit); err != nil {
		return err
	}
	boy := NewRedHatBoy(tuning, runner, jump, g.audio)
	g.walk = newWalk(boy, background, kit, g.rng)
	g.state = StateReady

	g.audio.PlayLoopingSound(music)
	g.ui.SetText(ScoreElement, "0")
	g.logger.Debug("game initialized", "timeline", g.walk.timeline, "obstacles", len(g.walk.obstacles))
	return nil
}

// checkAnimations verifies the sheet has every frame any state can show.
func checkAnimations(sheet *engine.SpriteSheet, t *Tuning) error {
	ceilings := map[Kind]uint8{
		Idle:    t.Frames.Idle,
		Running: t.Frames.Running,
		Sliding: t.Frames.Sliding,
		Jumping: t.Frames.Jumping,
		Falling: t.Frames.Falling,
	}
	for kind, ceiling := range ceilings {
		for frame := 0; frame <= int(ceiling); frame++ {
			m := Machine{kind: kind, ctx: Context{Frame: uint8(frame)}}
			if _, err := sheet.Cell(m.FrameName()); err != nil {
				return fmt.Errorf("walk: %s animation: %w", kind, err)
			}
		}
	}
	return nil
}

// checkLayout verifies the opening segment keeps its stone clear of the
// first platform.
func checkLayout(kit segmentKit) error {
	stoneEnd := initialStoneOffset + int16(kit.stone.Bounds().Dx())
	if kit.world.FirstPlatform < stoneEnd {
		return fmt.Errorf("walk: first_platform %d overlaps the opening stone ending at %d",
			kit.world.FirstPlatform, stoneEnd)
	}
	return nil
}

// checkReload runs the initialization checks against reloaded tuning. The
// canvas size is fixed for the life of the game.
func (g *WalkTheDog) checkReload(cfg config.WalkConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.World.Width != g.cfg.World.Width || cfg.World.Height != g.cfg.World.Height {
		return fmt.Errorf("walk: world size cannot change from %dx%d to %dx%d",
			g.cfg.World.Width, g.cfg.World.Height, cfg.World.Width, cfg.World.Height)
	}
	if err := checkAnimations(g.walk.boy.sheet, NewTuning(cfg)); err != nil {
		return err
	}
	kit := g.walk.kit
	kit.world = cfg.World
	return checkLayout(kit)
}

// Update advances the game by one simulation step.
func (g *WalkTheDog) Update(keys *engine.KeyState) {
	if g.walk == nil || g.paused {
		return
	}

	switch g.state {
	case StateReady:
		g.walk.boy.Update()
		if keys.IsPressed(engine.KeyArrowRight) {
			g.walk.boy.RunRight()
			g.setState(StateWalking)
		}

	case StateWalking:
		if keys.IsPressed(engine.KeySpace) {
			g.walk.boy.Jump()
		}
		if keys.IsPressed(engine.KeyArrowDown) {
			g.walk.boy.Slide()
		}
		g.walk.step()
		g.ui.SetText(ScoreElement, strconv.FormatUint(g.walk.score, 10))
		if g.walk.KnockedOut() {
			g.endGame()
		}

	case StateGameOver:
		if engine.Clicked(g.restart) {
			g.newGame()
		}
	}
}

func (g *WalkTheDog) endGame() {
	g.ui.Show("Game Over", engine.Button{ID: NewGameButton, Label: "New Game"})
	g.restart = g.ui.ClickReceiver(NewGameButton)
	g.setState(StateGameOver)
	if g.onGameOver != nil {
		g.onGameOver(g.walk.score)
	}
}

func (g *WalkTheDog) newGame() {
	g.ui.Hide()
	if cfg, ok := config.Latest(g.updates); ok {
		if err := g.checkReload(cfg); err != nil {
			g.logger.Warn("ignoring reloaded tuning", "err", err)
		} else {
			g.cfg = cfg
			g.logger.Info("applying reloaded tuning")
		}
	}
	g.walk = g.walk.reset(NewTuning(g.cfg), g.cfg.World)
	g.restart = nil
	g.ui.SetText(ScoreElement, "0")
	g.setState(StateReady)
}

func (g *WalkTheDog) setState(s State) {
	g.logger.Debug("state change", "from", g.state, "to", s, "score", g.walk.score)
	g.state = s
}

// Draw renders the whole canvas.
func (g *WalkTheDog) Draw(r engine.Renderer) {
	if g.walk == nil {
		return
	}
	r.Clear(core.NewRect(0, 0, g.cfg.World.Width, g.cfg.World.Height))
	g.walk.Draw(r)
}

// State returns the game-level state.
func (g *WalkTheDog) State() State { return g.state }

// Walk returns the current round, nil before Initialize.
func (g *WalkTheDog) Walk() *Walk { return g.walk }

// Score returns the score of the current round.
func (g *WalkTheDog) Score() uint64 {
	if g.walk == nil {
		return 0
	}
	return g.walk.score
}

// Config returns the tuning of the current round.
func (g *WalkTheDog) Config() config.WalkConfig { return g.cfg }

// SetPaused freezes or resumes the simulation. Drawing is unaffected.
func (g *WalkTheDog) SetPaused(paused bool) { g.paused = paused }

// Paused reports whether the simulation is frozen.
func (g *WalkTheDog) Paused() bool { return g.paused }

// LoopOptions translates the loop tuning into game loop options.
func LoopOptions(cfg config.WalkLoop) []engine.LoopOption {
	opts := []engine.LoopOption{engine.WithMaxSteps(cfg.MaxStepsPerFrame)}
	if cfg.StepsPerSecond > 0 {
		opts = append(opts, engine.WithStepSize(time.Second/time.Duration(cfg.StepsPerSecond)))
	}
	return opts
}
