package render

import (
	"github.com/disintegration/imaging"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// HalfBlock shows the top pixel in the foreground colour and the bottom
// pixel in the background colour.
const HalfBlock = '▀'

// Terminal is a raster canvas that can be painted into a cell screen.
// A cell is about twice as tall as it is wide, so each cell holds two
// square pixels stacked vertically.
type Terminal struct {
	*Raster
}

// NewTerminal creates a terminal renderer for a world of the given size.
func NewTerminal(worldWidth, worldHeight int) *Terminal {
	return &Terminal{Raster: NewRaster(worldWidth, worldHeight)}
}

// Viewport returns the cell area Paint fills on a screen of the given
// size: the largest area keeping the world's aspect ratio, centered.
func (t *Terminal) Viewport(cols, rows int) (x, y, w, h int) {
	if cols <= 0 || rows <= 0 {
		return 0, 0, 0, 0
	}
	ww, wh := t.Width(), t.Height()

	// Pixel size of the largest fit into cols x rows*2 square pixels.
	pw, ph := cols, cols*wh/ww
	if ph > rows*2 {
		ph = rows * 2
		pw = ph * ww / wh
	}
	ph -= ph % 2

	w, h = pw, ph/2
	return (cols - w) / 2, (rows - h) / 2, w, h
}

// Paint downsamples the canvas into screen. Cells outside the viewport
// are left untouched.
func (t *Terminal) Paint(screen *core.Screen) {
	x0, y0, w, h := t.Viewport(screen.Width(), screen.Height())
	if w == 0 || h == 0 {
		return
	}

	small := imaging.Resize(t.Image(), w, h*2, imaging.Box)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := small.NRGBAAt(x, 2*y)
			bottom := small.NRGBAAt(x, 2*y+1)
			screen.SetCell(x0+x, y0+y, core.Cell{
				Rune: HalfBlock,
				Fg:   core.RGB(top.R, top.G, top.B),
				Bg:   core.RGB(bottom.R, bottom.G, bottom.B),
			})
		}
	}
}
