package web

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/games/walk"
	"github.com/vovakirdan/walk-the-dog/internal/render"
	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

const (
	defaultTicks = 600
	defaultSeed  = 1
	defaultLimit = 10
	maxLimit     = 100

	writeWait = 5 * time.Second
)

// ScoresResponse is the body of GET /api/scores/:game.
type ScoresResponse struct {
	Game   string               `json:"game"`
	Scores []storage.ScoreEntry `json:"scores"`
	Stats  *storage.GameStats   `json:"stats"`
}

func queryInt(c *gin.Context, name string, def, lo, hi int64) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", name, raw)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s: %d out of range [%d, %d]", name, v, lo, hi)
	}
	return v, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// handleScores lists the best runs of a game.
func (s *Server) handleScores(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scores are not stored"})
		return
	}

	limit, err := queryInt(c, "limit", defaultLimit, 1, maxLimit)
	if err != nil {
		badRequest(c, err)
		return
	}

	game := c.Param("game")
	scores, err := s.store.TopScores(game, int(limit))
	if err != nil {
		s.logger.Error("cannot read scores", "game", game, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read scores"})
		return
	}
	stats, err := s.store.Stats(game)
	if err != nil {
		s.logger.Error("cannot read stats", "game", game, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read scores"})
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}

	c.JSON(http.StatusOK, ScoresResponse{Game: game, Scores: scores, Stats: stats})
}

// playHeadless runs an autopiloted game for the ticks and seed in the query.
func (s *Server) playHeadless(c *gin.Context) (*autoplay, bool) {
	ticks, err := queryInt(c, "ticks", defaultTicks, 0, int64(s.cfg.MaxTicks))
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	seed, err := queryInt(c, "seed", defaultSeed, 0, 1<<62)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}

	ctx := c.Request.Context()
	play, err := newAutoplay(ctx, s.cfg.Game, s.loader, seed, false, s.logger)
	if err != nil {
		s.logger.Error("cannot start game", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot start game"})
		return nil, false
	}
	if err := play.run(ctx, int(ticks)); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return play, true
}

// handleSnapshotPNG renders the canvas after the requested steps.
func (s *Server) handleSnapshotPNG(c *gin.Context) {
	play, ok := s.playHeadless(c)
	if !ok {
		return
	}

	world := s.cfg.Game.World
	canvas := render.NewRaster(int(world.Width), int(world.Height))
	play.Draw(canvas)

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		s.logger.Error("cannot encode snapshot", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot encode snapshot"})
		return
	}
	c.Header("X-Walk-State", play.game.State().String())
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleSnapshotJSON reports the game state after the requested steps.
func (s *Server) handleSnapshotJSON(c *gin.Context) {
	play, ok := s.playHeadless(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, play.snapshot())
}

// handleSpectate streams an endless autopiloted game as JSON snapshots,
// one per display frame, until the client goes away. Seed 0 or none picks
// a fresh world.
func (s *Server) handleSpectate(c *gin.Context) {
	seed, err := queryInt(c, "seed", 0, 0, 1<<62)
	if err != nil {
		badRequest(c, err)
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", c.ClientIP(), "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Spectators only listen; reading detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	play, err := newAutoplay(ctx, s.cfg.Game, s.loader, seed, true, s.logger)
	if err != nil {
		s.logger.Error("cannot start game", "err", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "cannot start game")
		if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
			s.logger.Debug("cannot send close frame", "remote", c.ClientIP(), "err", err)
		}
		return
	}

	s.logger.Info("spectator joined", "remote", c.ClientIP(), "seed", seed)
	defer s.logger.Info("spectator left", "remote", c.ClientIP())

	loop := engine.NewGameLoop(play, engine.NewKeyState(), discard{}, walk.LoopOptions(s.cfg.Game.Loop)...)
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FPS))
	defer ticker.Stop()
	loop.Start(time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			loop.Tick(now)
			conn.SetWriteDeadline(now.Add(writeWait))
			if err := conn.WriteJSON(play.snapshot()); err != nil {
				s.logger.Debug("spectator write failed", "remote", c.ClientIP(), "err", err)
				return
			}
		}
	}
}
