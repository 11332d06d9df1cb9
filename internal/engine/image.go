package engine

import (
	"image"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// Image is a whole picture placed in the world, e.g. a background tile or a stone.
type Image struct {
	element     image.Image
	boundingBox core.Rect
}

// NewImage places img with its top-left corner at position.
func NewImage(img image.Image, position core.Point) Image {
	b := img.Bounds()
	return Image{
		element:     img,
		boundingBox: core.RectAt(position, int16(b.Dx()), int16(b.Dy())),
	}
}

// Draw renders the image at its current position.
func (i *Image) Draw(r Renderer) {
	r.DrawImage(i.element, i.boundingBox.Position())
}

// BoundingBox returns the area the image covers.
func (i *Image) BoundingBox() core.Rect {
	return i.boundingBox
}

// MoveHorizontally shifts the image by dx.
func (i *Image) MoveHorizontally(dx int16) {
	i.boundingBox.X += dx
}

// SetX moves the image so its left edge is at x.
func (i *Image) SetX(x int16) {
	i.boundingBox.SetX(x)
}

// Right returns the x-coordinate of the right edge.
func (i *Image) Right() int16 {
	return i.boundingBox.Right()
}

// Width returns the image width in pixels.
func (i *Image) Width() int16 {
	return i.boundingBox.W
}

// Element returns the underlying picture.
func (i *Image) Element() image.Image {
	return i.element
}
