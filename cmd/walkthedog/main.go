// walkthedog is a side-scrolling runner played in the terminal.
//
// Usage:
//
//	walkthedog play          - Play in this terminal
//	walkthedog serve         - Start SSH server for remote play
//	walkthedog web           - Serve scores, snapshots and a spectator feed over HTTP
//	walkthedog scores        - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Display frames per second (default: 60)
//	--seed <value>        - RNG seed for a reproducible world
//	--db <path>           - Scores database (default: ~/.walkthedog/scores.db)
//	--config <path>       - Tuning file (default: search ~/.walkthedog/configs and ./configs)
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "walkthedog",
	Short: "Walk the Dog - a runner for your terminal",
	Long: `Walk the Dog is a side-scrolling runner: jump over stones, slide
under platforms and see how far you get.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Serve scores, snapshots and a spectator feed over HTTP
  scores   - View high scores

Examples:
  walkthedog play
  walkthedog play --difficulty hard --seed 42
  walkthedog serve --ssh :2222
  walkthedog web --addr :8080
  walkthedog scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display frames per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the tuning and applies the difficulty preset.
func loadConfig() (config.WalkConfig, error) {
	cfg, err := config.LoadWalk(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	config.ApplyWalkPreset(&cfg, config.ParseDifficulty(flagDifficulty))
	return cfg, nil
}

// newLogger creates a logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openStore opens the scores database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be kept", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
