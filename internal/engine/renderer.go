package engine

import (
	"image"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// Renderer is the drawing surface the game paints into once per display frame.
// Implementations panic on drawing failures: a corrupted frame is never
// silently skipped.
type Renderer interface {
	// Clear erases the given world rectangle.
	Clear(rect core.Rect)
	// DrawSubImage copies the src rectangle of img to the dst rectangle of the world.
	DrawSubImage(img image.Image, src, dst core.Rect)
	// DrawImage draws the whole img with its top-left corner at p.
	DrawImage(img image.Image, p core.Point)
}
