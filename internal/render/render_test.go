package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
)

func pixel(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRasterDrawSubImage(t *testing.T) {
	r := NewRaster(100, 100)
	r.Clear(core.NewRect(0, 0, 100, 100))

	// Left half red, right half green.
	sheet := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				sheet.SetNRGBA(x, y, red)
			} else {
				sheet.SetNRGBA(x, y, green)
			}
		}
	}

	r.DrawSubImage(sheet, core.NewRect(10, 0, 10, 10), core.NewRect(50, 50, 10, 10))

	if got := pixel(r.Image(), 55, 55); got != green {
		t.Errorf("pixel inside dst = %+v, expected green", got)
	}
	if got := pixel(r.Image(), 45, 55); got != ClearColor {
		t.Errorf("pixel outside dst = %+v, expected clear colour", got)
	}
}

func TestRasterDrawSubImageScales(t *testing.T) {
	r := NewRaster(100, 100)
	r.DrawSubImage(solid(4, 4, red), core.NewRect(0, 0, 4, 4), core.NewRect(0, 0, 40, 40))

	if got := pixel(r.Image(), 39, 39); got != red {
		t.Errorf("scaled pixel = %+v, expected red", got)
	}
}

func TestRasterDrawImageNegativeOffset(t *testing.T) {
	r := NewRaster(50, 50)
	r.Clear(core.NewRect(0, 0, 50, 50))
	r.DrawImage(solid(30, 30, red), core.Point{X: -20, Y: 0})

	if got := pixel(r.Image(), 9, 5); got != red {
		t.Errorf("pixel = %+v, expected red", got)
	}
	if got := pixel(r.Image(), 10, 5); got != ClearColor {
		t.Errorf("pixel = %+v, expected clear colour", got)
	}
}

func TestRasterPanicsOnBadSource(t *testing.T) {
	tests := []struct {
		name string
		src  core.Rect
	}{
		{"empty", core.NewRect(0, 0, 0, 5)},
		{"outside", core.NewRect(5, 5, 10, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			NewRaster(10, 10).DrawSubImage(solid(8, 8, red), tc.src, core.NewRect(0, 0, 5, 5))
		})
	}
}

func TestRasterPNG(t *testing.T) {
	r := NewRaster(16, 8)
	r.DrawImage(solid(16, 8, green), core.Point{})

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() failed: %v", err)
	}
}

func TestTerminalViewport(t *testing.T) {
	term := NewTerminal(600, 600)

	tests := []struct {
		cols, rows int
		x, y, w, h int
	}{
		{120, 40, 20, 0, 80, 40}, // height bound: 80 pixel rows
		{40, 40, 0, 10, 40, 20},  // width bound
		{0, 10, 0, 0, 0, 0},
	}
	for _, tc := range tests {
		x, y, w, h := term.Viewport(tc.cols, tc.rows)
		if x != tc.x || y != tc.y || w != tc.w || h != tc.h {
			t.Errorf("Viewport(%d, %d) = (%d, %d, %d, %d), expected (%d, %d, %d, %d)",
				tc.cols, tc.rows, x, y, w, h, tc.x, tc.y, tc.w, tc.h)
		}
	}
}

func TestTerminalPaint(t *testing.T) {
	term := NewTerminal(100, 100)
	term.DrawImage(solid(100, 50, red), core.Point{})
	term.DrawImage(solid(100, 50, green), core.Point{X: 0, Y: 50})

	screen := core.NewScreen(10, 5)
	term.Paint(screen)

	// 10x5 cells hold 10x10 pixels: rows 0-1 red, rows 3-4 green.
	top := screen.GetCell(5, 0)
	if top.Rune != HalfBlock || top.Fg != core.RGB(255, 0, 0) || top.Bg != core.RGB(255, 0, 0) {
		t.Errorf("top cell = %+v", top)
	}
	bottom := screen.GetCell(5, 4)
	if bottom.Fg != core.RGB(0, 255, 0) || bottom.Bg != core.RGB(0, 255, 0) {
		t.Errorf("bottom cell = %+v", bottom)
	}
}
