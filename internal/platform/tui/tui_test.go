package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/walk-the-dog/internal/core"
	"github.com/vovakirdan/walk-the-dog/internal/engine"
	"github.com/vovakirdan/walk-the-dog/internal/games/walk"
	"github.com/vovakirdan/walk-the-dog/internal/storage"
)

var quiet = log.New(io.Discard)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		code string
		ok   bool
	}{
		{"right arrow runs", tea.KeyMsg{Type: tea.KeyRight}, engine.KeyArrowRight, true},
		{"d runs", runes("d"), engine.KeyArrowRight, true},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, engine.KeySpace, true},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, engine.KeySpace, true},
		{"down slides", tea.KeyMsg{Type: tea.KeyDown}, engine.KeyArrowDown, true},
		{"p is not a game key", runes("p"), "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, ok := km.GameKey(tc.msg)
			if code != tc.code || ok != tc.ok {
				t.Errorf("GameKey() = (%q, %v), expected (%q, %v)", code, ok, tc.code, tc.ok)
			}
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	held := newHeldKeys(100 * time.Millisecond)
	keys := engine.NewKeyState()
	t0 := time.Unix(1000, 0)

	held.press(engine.KeySpace, t0)
	held.sync(keys, t0.Add(50*time.Millisecond))
	if !keys.IsPressed(engine.KeySpace) {
		t.Fatal("key should be held within the hold duration")
	}

	// A repeat extends the hold
	held.press(engine.KeySpace, t0.Add(80*time.Millisecond))
	held.sync(keys, t0.Add(150*time.Millisecond))
	if !keys.IsPressed(engine.KeySpace) {
		t.Fatal("repeat should extend the hold")
	}

	held.sync(keys, t0.Add(300*time.Millisecond))
	if keys.IsPressed(engine.KeySpace) {
		t.Error("key should be released after the hold expires")
	}
	if len(held.expiry) != 0 {
		t.Errorf("expired keys should be forgotten, have %v", held.expiry)
	}
}

func TestOverlayPaintAndClick(t *testing.T) {
	o := NewOverlay()
	screen := core.NewScreen(40, 12)

	o.Paint(screen)
	if strings.TrimSpace(screen.String()) != "" {
		t.Fatal("hidden overlay should not paint")
	}

	o.Show("Game Over", engine.Button{ID: walk.NewGameButton, Label: "New Game"})
	rx := o.ClickReceiver(walk.NewGameButton)
	o.Paint(screen)

	if !strings.Contains(screen.String(), "Game Over") || !strings.Contains(screen.String(), "[ New Game ]") {
		t.Fatalf("dialog not painted:\n%s", screen.String())
	}
	if len(o.zones) != 1 {
		t.Fatalf("expected one button zone, got %d", len(o.zones))
	}

	z := o.zones[0].box
	x, y := int(z.X), int(z.Y)
	if o.ClickAt(x-1, y) {
		t.Error("click left of the button should miss")
	}
	if engine.Clicked(rx) {
		t.Fatal("missed click should not be delivered")
	}
	if !o.ClickAt(int(z.Right())-1, y) {
		t.Error("click on the button should hit")
	}
	if !engine.Clicked(rx) {
		t.Error("click should be delivered to the receiver")
	}

	if !o.Activate() || !engine.Clicked(rx) {
		t.Error("Activate should click the focused button")
	}

	o.Hide()
	if o.Activate() || o.ClickAt(x, y) {
		t.Error("hidden overlay should not take clicks")
	}
}

func TestOverlayTexts(t *testing.T) {
	o := NewOverlay()
	o.SetText(walk.ScoreElement, "42")
	if got := o.Text(walk.ScoreElement); got != "42" {
		t.Errorf("Text() = %q", got)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "plain")
	s.DrawTextColor(0, 1, "ab", core.ColorRed, core.ColorBlack)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "plain " {
		t.Errorf("uncoloured row should be written as is, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "ab") {
		t.Errorf("coloured row lost its text: %q", lines[1])
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewSession(context.Background(), SessionOptions{
		Seed:          42,
		ScreenshotDir: t.TempDir(),
		Logger:        quiet,
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelStartsWalking(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Unix(1000, 0)

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(t, m, TickMsg(t0))
	if m.Game().State() != walk.StateReady {
		t.Fatalf("state = %v, expected ready", m.Game().State())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, TickMsg(t0.Add(20*time.Millisecond)))
	if m.Game().State() != walk.StateWalking {
		t.Fatalf("state = %v, expected walking", m.Game().State())
	}

	for i := 1; i <= 10; i++ {
		m = send(t, m, TickMsg(t0.Add(20*time.Millisecond+time.Duration(i)*engine.FrameSize)))
	}
	if m.Game().Score() == 0 {
		t.Error("score should grow while walking")
	}

	view := m.View()
	if !strings.Contains(view, "SCORE") {
		t.Errorf("view should carry the status line")
	}
	if !strings.ContainsRune(view, '▀') {
		t.Errorf("view should paint the canvas with half blocks")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	t0 := time.Unix(1000, 0)

	m = send(t, m, TickMsg(t0))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, TickMsg(t0.Add(20*time.Millisecond)))

	m = send(t, m, runes("p"))
	if !m.Game().Paused() {
		t.Fatal("p should pause")
	}
	score := m.Game().Score()
	m = send(t, m, TickMsg(t0.Add(time.Second)))
	if m.Game().Score() != score {
		t.Error("score should not change while paused")
	}
	if !strings.Contains(m.statusLine(), "paused") {
		t.Error("status line should say paused")
	}

	m = send(t, m, runes("p"))
	if m.Game().Paused() {
		t.Error("p should resume")
	}
}

func TestModelScreenshot(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, TickMsg(time.Unix(1000, 0)))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(m.shotDir, "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one screenshot, got %v", files)
	}
	info, err := os.Stat(files[0])
	if err != nil || info.Size() == 0 {
		t.Errorf("screenshot should not be empty: %v", err)
	}
	if !strings.Contains(m.statusLine(), "saved") {
		t.Error("status line should report the saved file")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestScoreRecorder(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	st := &session{player: "ana", seed: 7, high: 100}
	record := scoreRecorder(st, store, quiet)

	record(50)
	if st.high != 100 {
		t.Errorf("lower score should keep the high, got %d", st.high)
	}
	record(120)
	if st.high != 120 {
		t.Errorf("high = %d, expected 120", st.high)
	}

	scores, err := store.TopScores(walk.GameID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 || scores[0].Score != 120 || scores[0].Player != "ana" || scores[0].Seed != 7 {
		t.Errorf("stored scores = %+v", scores)
	}

	// Without a store only the session high changes
	scoreRecorder(st, nil, quiet)(500)
	if st.high != 500 {
		t.Errorf("high = %d, expected 500", st.high)
	}
}

func TestScoreboardView(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	empty := NewScoreboardModel(store, walk.GameID, 80, 24)
	if !strings.Contains(empty.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}

	if _, err := store.SaveScore(storage.ScoreEntry{GameID: walk.GameID, Player: "ana", Score: 321}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, walk.GameID, 100, 30)
	view := m.View()
	if !strings.Contains(view, "ana") || !strings.Contains(view, "321") {
		t.Errorf("scoreboard should list the run:\n%s", view)
	}
	if !strings.Contains(view, "1 runs") {
		t.Errorf("scoreboard should show stats:\n%s", view)
	}
}
