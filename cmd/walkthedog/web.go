package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/walk-the-dog/internal/web"
)

var (
	flagWebAddr  string
	flagMaxTicks int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve scores, snapshots and a spectator feed over HTTP",
	Long: `Start an HTTP server with:

  GET /api/scores/:game?limit=N          - top scores and statistics as JSON
  GET /api/snapshot.png?ticks=N&seed=S   - canvas after N autopiloted steps
  GET /api/snapshot.json?ticks=N&seed=S  - game state after N autopiloted steps
  GET /ws/spectate?seed=S                - websocket feed of an endless autopiloted game

Examples:
  walkthedog web
  walkthedog web --addr :9000 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", web.DefaultConfig().MaxTicks, "Most steps a snapshot request may simulate")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "walk-web")

	game, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := web.Config{
		Address:  flagWebAddr,
		Game:     game,
		FPS:      flagFPS,
		MaxTicks: flagMaxTicks,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(cfg, store, logger).ListenAndServe(ctx)
}
