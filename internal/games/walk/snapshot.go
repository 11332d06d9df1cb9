package walk

import "github.com/vovakirdan/walk-the-dog/internal/core"

// RunnerSnapshot is the observable state of the runner.
type RunnerSnapshot struct {
	State    string     `json:"state"`
	Frame    uint8      `json:"frame"`
	Sprite   string     `json:"sprite"`
	Position core.Point `json:"position"`
	Velocity core.Point `json:"velocity"`
	Box      core.Rect  `json:"box"`
}

// Snapshot is a serializable view of a game, sent to spectators.
type Snapshot struct {
	Step      uint64         `json:"step"`
	State     string         `json:"state"`
	Score     uint64         `json:"score"`
	Timeline  int16          `json:"timeline"`
	Runner    RunnerSnapshot `json:"runner"`
	Obstacles []core.Rect    `json:"obstacles"`
}

// Snapshot captures the current game. step is the caller's step counter.
func (g *WalkTheDog) Snapshot(step uint64) Snapshot {
	s := Snapshot{
		Step:  step,
		State: g.state.String(),
	}
	if g.walk == nil {
		return s
	}

	m := g.walk.boy.machine
	s.Score = g.walk.score
	s.Timeline = g.walk.timeline
	s.Runner = RunnerSnapshot{
		State:    m.kind.String(),
		Frame:    m.ctx.Frame,
		Sprite:   m.FrameName(),
		Position: m.ctx.Position,
		Velocity: m.ctx.Velocity,
		Box:      g.walk.boy.BoundingBox(),
	}
	for _, o := range g.walk.obstacles {
		s.Obstacles = append(s.Obstacles, o.BoundingBoxes()...)
	}
	return s
}
