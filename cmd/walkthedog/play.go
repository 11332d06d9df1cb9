package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/platform/tui"
)

var (
	flagAssets string
	flagMute   bool
	flagHold   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Right/D      - Start running
  Space/Up     - Jump
  Down/S       - Slide
  Enter        - New game (after game over)
  P            - Pause
  Ctrl+S       - Save a PNG screenshot
  Q/Ctrl+C     - Quit

The tuning file is watched while playing: saved changes apply from the
next game on. Logs go to ~/.walkthedog/walkthedog.log.

Examples:
  walkthedog play
  walkthedog play --difficulty easy
  walkthedog play --seed 42 --mute
  walkthedog play --config ./walk.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory to load assets from instead of the embedded ones")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable music and sound effects")
	playCmd.Flags().IntVar(&flagHold, "hold", 150, "Milliseconds a key counts as held after a press")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, "walk")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := tui.SessionOptions{
		Config: cfg,
		Seed:   flagSeed,
		FPS:    flagFPS,
		Hold:   time.Duration(flagHold) * time.Millisecond,
		Player: os.Getenv("USER"),
		Logger: logger,
	}

	if path := config.ResolveWalkPath(flagConfig); path != "" {
		updates, err := config.Watch(ctx, path, logger)
		if err != nil {
			logger.Warn("config changes will not be picked up", "err", err)
		} else {
			opts.Updates = withPreset(updates, config.ParseDifficulty(flagDifficulty))
		}
	}

	if flagAssets != "" {
		opts.Loader = engine.NewFSLoader(os.DirFS(flagAssets))
	}

	if !flagMute {
		audio := engine.NewBeepAudio(logger)
		if err := audio.Start(); err != nil {
			logger.Warn("playing without sound", "err", err)
		} else {
			defer audio.Close()
			opts.Audio = audio
		}
	}

	if store := openStore(logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	if err := tui.Run(ctx, opts); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openLogFile opens the log file under ~/.walkthedog, since the game owns the terminal.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".walkthedog")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "walkthedog.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// withPreset re-applies the difficulty preset to every reloaded config.
// Like the source channel, out holds only the newest pending config.
func withPreset(in <-chan config.WalkConfig, preset config.DifficultyPreset) <-chan config.WalkConfig {
	out := make(chan config.WalkConfig, 1)
	go func() {
		defer close(out)
		for cfg := range in {
			config.ApplyWalkPreset(&cfg, preset)
			select {
			case <-out:
			default:
			}
			out <- cfg
		}
	}()
	return out
}
