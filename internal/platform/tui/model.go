package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/walk-the-dog/internal/assets"
	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/games/walk"
	"github.com/vovakirdan/walk-the-dog/internal/render"
	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

// chromeRows is the number of rows below the canvas: status and help.
const chromeRows = 2

const flashDuration = 3 * time.Second

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// SessionOptions configures one game session.
type SessionOptions struct {
	Config  config.WalkConfig
	Updates <-chan config.WalkConfig // reloaded tuning, optional
	Seed    int64                    // 0 picks a time-based seed
	Loader  engine.Loader            // defaults to the embedded assets
	Audio   engine.Audio             // defaults to silence
	Store   *storage.Store           // optional score persistence
	Player  string

	FPS           int
	Hold          time.Duration
	ScreenshotDir string
	Logger        *log.Logger
}

// session holds the mutable state shared by copies of the model.
type session struct {
	player   string
	seed     int64
	high     int
	lastTick time.Time
	flash    string
	flashEnd time.Time
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game    *walk.WalkTheDog
	loop    *engine.GameLoop
	keys    *engine.KeyState
	held    *heldKeys
	canvas  *render.Terminal
	screen  *core.Screen
	overlay *Overlay
	state   *session

	keymap   KeyMap
	help     help.Model
	fps      int
	shotDir  string
	logger   *log.Logger
	quitting bool
}

// NewSession loads the assets and builds a ready-to-run model.
func NewSession(ctx context.Context, opts SessionOptions) (Model, error) {
	if opts.Config == (config.WalkConfig{}) {
		opts.Config = config.DefaultWalkConfig()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Loader == nil {
		opts.Loader = engine.NewFSLoader(assets.FS)
	}
	if opts.Audio == nil {
		opts.Audio = engine.NopAudio{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = defaultScreenshotDir()
	}

	st := &session{player: opts.Player, seed: opts.Seed}
	if opts.Store != nil {
		high, err := opts.Store.HighScore(walk.GameID)
		if err != nil {
			opts.Logger.Warn("could not read high score", "err", err)
		}
		st.high = high
	}

	overlay := NewOverlay()
	game := walk.New(
		walk.WithConfig(opts.Config),
		walk.WithConfigUpdates(opts.Updates),
		walk.WithSeed(opts.Seed),
		walk.WithAudio(opts.Audio),
		walk.WithUI(overlay),
		walk.WithLogger(opts.Logger),
		walk.WithGameOverHook(scoreRecorder(st, opts.Store, opts.Logger)),
	)
	if err := game.Initialize(ctx, opts.Loader); err != nil {
		return Model{}, err
	}

	world := opts.Config.World
	canvas := render.NewTerminal(int(world.Width), int(world.Height))
	keys := engine.NewKeyState()
	loop := engine.NewGameLoop(game, keys, canvas, walk.LoopOptions(opts.Config.Loop)...)

	h := help.New()
	h.ShowAll = false

	return Model{
		game:    game,
		loop:    loop,
		keys:    keys,
		held:    newHeldKeys(opts.Hold),
		canvas:  canvas,
		screen:  core.NewScreen(80, 24-chromeRows),
		overlay: overlay,
		state:   st,
		keymap:  DefaultKeyMap(),
		help:    h,
		fps:     opts.FPS,
		shotDir: opts.ScreenshotDir,
		logger:  opts.Logger,
	}, nil
}

// scoreRecorder returns the game over hook: it tracks the session best
// and stores the run.
func scoreRecorder(st *session, store *storage.Store, logger *log.Logger) func(uint64) {
	return func(score uint64) {
		if int(score) > st.high {
			st.high = int(score)
		}
		logger.Info("run finished", "player", st.player, "score", score, "seed", st.seed)
		if store == nil {
			return
		}
		_, err := store.SaveScore(storage.ScoreEntry{
			GameID: walk.GameID,
			Player: st.player,
			Score:  int(score),
			Seed:   st.seed,
		})
		if err != nil {
			logger.Warn("could not save score", "err", err)
		}
	}
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".walkthedog", "screenshots")
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.overlay.ClickAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-chromeRows, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Pause):
		m.game.SetPaused(!m.game.Paused())
		return m, nil

	case key.Matches(msg, m.keymap.Screenshot):
		path, err := m.saveScreenshot(m.now())
		if err != nil {
			m.logger.Warn("screenshot failed", "err", err)
			m.setFlash("screenshot failed")
		} else {
			m.setFlash("saved " + path)
		}
		return m, nil

	case key.Matches(msg, m.keymap.NewGame):
		m.overlay.Activate()
		return m, nil
	}

	if msg.Type == tea.KeyTab {
		m.overlay.FocusNext()
		return m, nil
	}

	if code, ok := m.keymap.GameKey(msg); ok {
		m.held.press(code, m.now())
	}
	return m, nil
}

// handleTick runs the simulation owed since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.state.lastTick = now
	m.held.sync(m.keys, now)
	m.loop.Tick(now)
	return m, tickCmd(m.fps)
}

// now is the time of the latest display frame, so key holds are measured
// on the same clock the loop runs on.
func (m Model) now() time.Time {
	if m.state.lastTick.IsZero() {
		return time.Now()
	}
	return m.state.lastTick
}

func (m Model) setFlash(text string) {
	m.state.flash = text
	m.state.flashEnd = m.now().Add(flashDuration)
}

// saveScreenshot writes the canvas at full resolution as a PNG.
func (m Model) saveScreenshot(now time.Time) (string, error) {
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s.png", walk.GameID, now.Format("20060102_150405.000"))
	path := filepath.Join(m.shotDir, name)
	if err := m.canvas.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.canvas.Paint(m.screen)
	m.overlay.Paint(m.screen)

	return RenderScreen(m.screen) + "\n" + m.statusLine() + "\n" + m.help.View(m.keymap)
}

func (m Model) statusLine() string {
	score := m.overlay.Text(walk.ScoreElement)
	if score == "" {
		score = "0"
	}
	line := statusStyle.Render(fmt.Sprintf("SCORE %s   HIGH %d", score, m.state.high))

	var hint string
	switch {
	case m.game.Paused():
		hint = "paused"
	case m.game.State() == walk.StateReady:
		hint = "press → to start"
	case m.game.State() == walk.StateGameOver:
		hint = "press enter for a new game"
	}
	if m.state.flash != "" && m.now().Before(m.state.flashEnd) {
		return line + "   " + flashStyle.Render(m.state.flash)
	}
	if hint != "" {
		line += "   " + hintStyle.Render(hint)
	}
	return line
}

// Game returns the running game.
func (m Model) Game() *walk.WalkTheDog { return m.game }

// Overlay returns the dialog layer the game talks to.
func (m Model) Overlay() *Overlay { return m.overlay }

// Run starts a local Bubble Tea program for one session.
func Run(ctx context.Context, opts SessionOptions) error {
	model, err := NewSession(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
