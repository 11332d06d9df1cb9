// Package web serves the score table, rendered snapshots and a live
// spectator feed over HTTP. Snapshot and spectator games are played by the
// autopilot on the server.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/walk-the-dog/internal/assets"
	"github.com/vovakirdan/walk-the-dog/internal/config"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on.
	Address string
	// Game is the tuning of every server-side game.
	Game config.WalkConfig
	// FPS is the rate spectators receive snapshots at.
	FPS int
	// MaxTicks bounds the steps a snapshot request may simulate.
	MaxTicks int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		Game:     config.DefaultWalkConfig(),
		FPS:      30,
		MaxTicks: 60 * 60 * 10,
	}
}

// Server is the HTTP front of the game.
type Server struct {
	cfg      Config
	store    *storage.Store
	loader   engine.Loader
	logger   *log.Logger
	router   *gin.Engine
	upgrader websocket.Upgrader
}

// NewServer builds the routes. store may be nil, in which case the score
// endpoint answers 503.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = DefaultConfig().MaxTicks
	}
	if cfg.Game == (config.WalkConfig{}) {
		cfg.Game = config.DefaultWalkConfig()
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		loader: engine.NewCachingLoader(engine.NewFSLoader(assets.FS)),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())
	api := router.Group("/api")
	api.GET("/scores/:game", s.handleScores)
	api.GET("/snapshot.png", s.handleSnapshotPNG)
	api.GET("/snapshot.json", s.handleSnapshotJSON)
	router.GET("/ws/spectate", s.handleSpectate)
	s.router = router

	return s
}

// Handler returns the HTTP handler of all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// logRequests logs each request once it is answered.
func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
