package engine

import (
	"context"
	"errors"
	"image"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/walk-the-dog/internal/assets"
	"github.com/vovakirdan/walk-the-dog/internal/core"
)

const sampleSheet = `{
	"frames": {
		"Run (1).png": {
			"frame": {"x": 10, "y": 20, "w": 90, "h": 121},
			"spriteSourceSize": {"x": 15, "y": 0, "w": 90, "h": 121}
		}
	}
}`

func TestParseSheet(t *testing.T) {
	sheet, err := ParseSheet([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("ParseSheet() failed: %v", err)
	}

	cell, ok := sheet.Frames["Run (1).png"]
	if !ok {
		t.Fatal("expected Run (1).png in frames")
	}
	if cell.Frame.Rect() != core.NewRect(10, 20, 90, 121) {
		t.Errorf("frame = %+v", cell.Frame)
	}
	if cell.SpriteSourceSize.X != 15 {
		t.Errorf("spriteSourceSize.x = %d, expected 15", cell.SpriteSourceSize.X)
	}
}

func TestParseSheetErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"frames": [`},
		{"no frames", `{"frames": {}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSheet([]byte(tc.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSpriteSheetLookup(t *testing.T) {
	sheet, err := ParseSheet([]byte(sampleSheet))
	if err != nil {
		t.Fatal(err)
	}
	ss := NewSpriteSheet(sheet, image.NewRGBA(image.Rect(0, 0, 200, 200)))

	if _, err := ss.Cell("Run (1).png"); err != nil {
		t.Errorf("Cell() failed: %v", err)
	}

	_, err = ss.Cell("Run (99).png")
	if !errors.Is(err, ErrCellNotFound) {
		t.Errorf("expected ErrCellNotFound, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustCell should panic on a missing frame")
		}
	}()
	ss.MustCell("Nope.png")
}

func TestFSLoader(t *testing.T) {
	loader := NewFSLoader(assets.FS)
	ctx := context.Background()

	ss, err := LoadSpriteSheet(ctx, loader, "rhb.json", "rhb.png")
	if err != nil {
		t.Fatalf("LoadSpriteSheet() failed: %v", err)
	}
	for _, name := range []string{"Idle (1).png", "Run (8).png", "Slide (5).png", "Jump (12).png", "Dead (10).png"} {
		if _, err := ss.Cell(name); err != nil {
			t.Errorf("embedded sheet missing %s: %v", name, err)
		}
	}

	bg, err := loader.LoadImage(ctx, "BG.png")
	if err != nil {
		t.Fatalf("LoadImage() failed: %v", err)
	}
	if bg.Bounds().Dx() == 0 {
		t.Error("background should not be empty")
	}

	sound, err := loader.LoadSound(ctx, "SFX_Jump_23.wav")
	if err != nil {
		t.Fatalf("LoadSound() failed: %v", err)
	}
	if sound.Len() == 0 {
		t.Error("jump sound should contain samples")
	}
}

func TestFSLoaderErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.json": {Data: []byte("not json")},
		"bad.png":  {Data: []byte("not a png")},
		"bad.wav":  {Data: []byte("RIFF")},
	}
	loader := NewFSLoader(fsys)
	ctx := context.Background()

	if _, err := loader.FetchSheet(ctx, "bad.json"); err == nil {
		t.Error("FetchSheet should fail on malformed json")
	}
	if _, err := loader.FetchSheet(ctx, "missing.json"); err == nil {
		t.Error("FetchSheet should fail on a missing file")
	}
	if _, err := loader.LoadImage(ctx, "bad.png"); err == nil {
		t.Error("LoadImage should fail on a corrupt image")
	}
	if _, err := loader.LoadSound(ctx, "bad.wav"); err == nil {
		t.Error("LoadSound should fail on a corrupt wav")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := loader.LoadImage(cancelled, "BG.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// countingLoader counts calls reaching the wrapped loader.
type countingLoader struct {
	Loader
	images, sheets, sounds int
}

func (l *countingLoader) LoadImage(ctx context.Context, path string) (image.Image, error) {
	l.images++
	return l.Loader.LoadImage(ctx, path)
}

func (l *countingLoader) FetchSheet(ctx context.Context, path string) (Sheet, error) {
	l.sheets++
	return l.Loader.FetchSheet(ctx, path)
}

func (l *countingLoader) LoadSound(ctx context.Context, path string) (Sound, error) {
	l.sounds++
	return l.Loader.LoadSound(ctx, path)
}

func TestCachingLoader(t *testing.T) {
	inner := &countingLoader{Loader: NewFSLoader(assets.FS)}
	loader := NewCachingLoader(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := LoadSpriteSheet(ctx, loader, "rhb.json", "rhb.png"); err != nil {
			t.Fatalf("LoadSpriteSheet() failed: %v", err)
		}
		if _, err := loader.LoadSound(ctx, "background_song.wav"); err != nil {
			t.Fatalf("LoadSound() failed: %v", err)
		}
	}
	if inner.images != 1 || inner.sheets != 1 || inner.sounds != 1 {
		t.Errorf("inner loader calls = %d images, %d sheets, %d sounds, expected one each",
			inner.images, inner.sheets, inner.sounds)
	}

	// Failures are retried, not remembered
	for i := 0; i < 2; i++ {
		if _, err := loader.LoadImage(ctx, "missing.png"); err == nil {
			t.Fatal("LoadImage should fail on a missing file")
		}
	}
	if inner.images != 3 {
		t.Errorf("failed loads should reach the inner loader each time, got %d calls", inner.images)
	}
}

func TestImageMovement(t *testing.T) {
	img := NewImage(image.NewRGBA(image.Rect(0, 0, 90, 54)), core.Point{X: 150, Y: 546})

	if img.Right() != 240 {
		t.Errorf("Right() = %d, expected 240", img.Right())
	}
	img.MoveHorizontally(-4)
	if img.BoundingBox().X != 146 {
		t.Errorf("X after move = %d, expected 146", img.BoundingBox().X)
	}
	img.SetX(-10)
	if img.Right() != 80 {
		t.Errorf("Right() after SetX = %d, expected 80", img.Right())
	}
}

func TestKeyState(t *testing.T) {
	k := NewKeyState()
	if k.IsPressed(KeySpace) {
		t.Error("new key state should have nothing pressed")
	}
	k.SetPressed(KeySpace)
	k.SetPressed(KeyArrowRight)
	if !k.IsPressed(KeySpace) || !k.IsPressed(KeyArrowRight) {
		t.Error("pressed keys should report pressed")
	}
	k.SetReleased(KeySpace)
	if k.IsPressed(KeySpace) {
		t.Error("released key should not report pressed")
	}
	k.Clear()
	if k.IsPressed(KeyArrowRight) {
		t.Error("Clear should release every key")
	}

	var nilKeys *KeyState
	if nilKeys.IsPressed(KeySpace) {
		t.Error("nil key state should report nothing pressed")
	}
}

func TestClicked(t *testing.T) {
	rx := make(chan struct{}, 1)
	if Clicked(rx) {
		t.Error("empty receiver should not report a click")
	}
	rx <- struct{}{}
	if !Clicked(rx) {
		t.Error("buffered click should be reported")
	}
	if Clicked(nil) {
		t.Error("nil receiver should never report a click")
	}
}

func TestHeadlessUI(t *testing.T) {
	ui := NewHeadlessUI()
	rx := ui.ClickReceiver("new_game")

	ui.Show("Game Over", Button{ID: "new_game", Label: "New Game"})
	if !ui.Visible() || ui.Title() != "Game Over" || len(ui.Buttons()) != 1 {
		t.Errorf("overlay not shown: visible=%v title=%q buttons=%v", ui.Visible(), ui.Title(), ui.Buttons())
	}

	ui.Click("new_game")
	ui.Click("new_game")
	if !Clicked(rx) {
		t.Error("click should reach the receiver obtained before it")
	}
	if Clicked(rx) {
		t.Error("extra clicks beyond one pending should be dropped")
	}

	ui.SetText("score", "42")
	if ui.Text("score") != "42" {
		t.Errorf("Text(score) = %q", ui.Text("score"))
	}

	ui.Hide()
	if ui.Visible() {
		t.Error("Hide should remove the overlay")
	}
}
