// Package render turns the game's draw calls into pixels: a raster canvas
// for PNG output and a terminal painter built on top of it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// ClearColor is what Clear paints.
var ClearColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// Raster is an in-memory canvas implementing engine.Renderer.
// Drawing failures panic: a frame is never silently skipped.
type Raster struct {
	dc *gg.Context
}

// NewRaster creates a canvas of the given size in world pixels.
func NewRaster(width, height int) *Raster {
	return &Raster{dc: gg.NewContext(width, height)}
}

// Width returns the canvas width.
func (r *Raster) Width() int { return r.dc.Width() }

// Height returns the canvas height.
func (r *Raster) Height() int { return r.dc.Height() }

func (r *Raster) Clear(rect core.Rect) {
	r.dc.SetColor(ClearColor)
	r.dc.DrawRectangle(float64(rect.X), float64(rect.Y), float64(rect.W), float64(rect.H))
	r.dc.Fill()
}

func (r *Raster) DrawSubImage(img image.Image, src, dst core.Rect) {
	if src.W <= 0 || src.H <= 0 || dst.W <= 0 || dst.H <= 0 {
		panic(fmt.Sprintf("render: empty rectangle, src %+v dst %+v", src, dst))
	}

	area := image.Rect(int(src.X), int(src.Y), int(src.Right()), int(src.Bottom()))
	if !area.In(img.Bounds()) {
		panic(fmt.Sprintf("render: source %v outside image %v", area, img.Bounds()))
	}

	part := imaging.Crop(img, area)
	if part.Bounds().Dx() != int(dst.W) || part.Bounds().Dy() != int(dst.H) {
		part = imaging.Resize(part, int(dst.W), int(dst.H), imaging.NearestNeighbor)
	}
	r.dc.DrawImage(part, int(dst.X), int(dst.Y))
}

func (r *Raster) DrawImage(img image.Image, p core.Point) {
	r.dc.DrawImage(img, int(p.X), int(p.Y))
}

// Image returns the current canvas.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to a PNG file.
func (r *Raster) SavePNG(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
