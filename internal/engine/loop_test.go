package engine

import (
	"image"
	"testing"
	"time"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

type countingGame struct {
	updates  int
	draws    int
	lastKeys *KeyState
}

func (g *countingGame) Update(keys *KeyState) {
	g.updates++
	g.lastKeys = keys
}

func (g *countingGame) Draw(Renderer) {
	g.draws++
}

type nopRenderer struct{}

func (nopRenderer) Clear(core.Rect) {}
func (nopRenderer) DrawSubImage(image.Image, core.Rect, core.Rect) {}
func (nopRenderer) DrawImage(image.Image, core.Point) {}

func TestGameLoopFixedSteps(t *testing.T) {
	g := &countingGame{}
	keys := NewKeyState()
	loop := NewGameLoop(g, keys, nopRenderer{}, WithStepSize(10*time.Millisecond))

	t0 := time.Unix(1000, 0)
	loop.Start(t0)

	tests := []struct {
		at    time.Duration
		steps int
	}{
		{25 * time.Millisecond, 2}, // 25ms owed: two steps, 5ms left
		{30 * time.Millisecond, 0}, // exactly one step owed is not drained yet
		{31 * time.Millisecond, 1}, // 11ms owed
		{31 * time.Millisecond, 0}, // no time passed
	}

	for i, tc := range tests {
		steps := loop.Tick(t0.Add(tc.at))
		if steps != tc.steps {
			t.Errorf("tick %d at %v: steps = %d, expected %d", i, tc.at, steps, tc.steps)
		}
	}

	if g.draws != len(tests) {
		t.Errorf("draws = %d, expected exactly one per tick (%d)", g.draws, len(tests))
	}
	if g.updates != 3 {
		t.Errorf("updates = %d, expected 3", g.updates)
	}
	if g.lastKeys != keys {
		t.Error("Update should receive the loop's key state")
	}
}

func TestGameLoopJitter(t *testing.T) {
	g := &countingGame{}
	step := 10 * time.Millisecond
	loop := NewGameLoop(g, NewKeyState(), nopRenderer{}, WithStepSize(step))

	now := time.Unix(0, 0)
	loop.Start(now)

	intervals := []time.Duration{3, 17, 9, 41, 5, 25}
	var elapsed time.Duration
	ticks := 0
	for round := 0; round < 10; round++ {
		for _, ms := range intervals {
			d := ms * time.Millisecond
			now = now.Add(d)
			elapsed += d
			loop.Tick(now)
			ticks++
		}
	}

	simulated := time.Duration(g.updates) * step
	if simulated+loop.Accumulated() != elapsed {
		t.Errorf("simulated %v + owed %v != elapsed %v", simulated, loop.Accumulated(), elapsed)
	}
	if loop.Accumulated() > step {
		t.Errorf("accumulator %v should never exceed one step after a tick", loop.Accumulated())
	}
	if g.draws != ticks {
		t.Errorf("draws = %d, expected %d", g.draws, ticks)
	}
	if loop.Updates() != uint64(g.updates) {
		t.Errorf("Updates() = %d, expected %d", loop.Updates(), g.updates)
	}
}

func TestGameLoopFirstTickStarts(t *testing.T) {
	g := &countingGame{}
	loop := NewGameLoop(g, NewKeyState(), nopRenderer{})

	if steps := loop.Tick(time.Unix(50, 0)); steps != 0 {
		t.Errorf("first tick should only set the reference time, ran %d steps", steps)
	}
	if g.draws != 1 {
		t.Errorf("first tick should still draw, draws = %d", g.draws)
	}
}

func TestGameLoopMaxSteps(t *testing.T) {
	g := &countingGame{}
	loop := NewGameLoop(g, NewKeyState(), nopRenderer{},
		WithStepSize(10*time.Millisecond),
		WithMaxSteps(3),
	)

	t0 := time.Unix(0, 0)
	loop.Start(t0)
	if steps := loop.Tick(t0.Add(time.Second)); steps != 3 {
		t.Errorf("steps = %d, expected cap of 3", steps)
	}
	if loop.Accumulated() != 0 {
		t.Errorf("backlog should be dropped, got %v", loop.Accumulated())
	}
}

func TestGameLoopIgnoresClockGoingBackwards(t *testing.T) {
	g := &countingGame{}
	loop := NewGameLoop(g, NewKeyState(), nopRenderer{}, WithStepSize(10*time.Millisecond))

	t0 := time.Unix(100, 0)
	loop.Start(t0)
	loop.Tick(t0.Add(-time.Second))
	if g.updates != 0 || loop.Accumulated() != 0 {
		t.Errorf("negative delta should not run updates (updates=%d owed=%v)", g.updates, loop.Accumulated())
	}
}
