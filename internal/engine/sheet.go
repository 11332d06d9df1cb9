// Package engine holds the pieces every game built on the walker shares:
// sprite sheets, positioned images, keyboard state, the fixed-timestep loop
// and the narrow interfaces to rendering, audio, assets and UI overlays.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

// ErrCellNotFound is returned when a sprite sheet has no cell of the requested name.
var ErrCellNotFound = errors.New("engine: cell not found in sheet")

// SheetRect is a rectangle as it appears in a sprite sheet descriptor.
type SheetRect struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
	W int16 `json:"w"`
	H int16 `json:"h"`
}

// Rect converts the descriptor rectangle to a core.Rect.
func (r SheetRect) Rect() core.Rect {
	return core.NewRect(r.X, r.Y, r.W, r.H)
}

// Cell is one named frame of a sprite sheet.
type Cell struct {
	Frame            SheetRect `json:"frame"`            // Source rectangle inside the sheet image
	SpriteSourceSize SheetRect `json:"spriteSourceSize"` // Trim offset of the frame inside the untrimmed sprite
}

// Sheet is the decoded sprite sheet descriptor:
// {"frames": {"<name>": {"frame": {...}, "spriteSourceSize": {...}}}}
type Sheet struct {
	Frames map[string]Cell `json:"frames"`
}

// ParseSheet decodes a sprite sheet descriptor.
func ParseSheet(data []byte) (Sheet, error) {
	var sheet Sheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return Sheet{}, fmt.Errorf("engine: cannot parse sheet: %w", err)
	}
	if len(sheet.Frames) == 0 {
		return Sheet{}, errors.New("engine: sheet has no frames")
	}
	return sheet, nil
}

// SpriteSheet pairs a sheet descriptor with its decoded image.
// It is never mutated after construction, so a single *SpriteSheet is
// shared by every entity drawing from it.
type SpriteSheet struct {
	sheet Sheet
	image image.Image
}

// NewSpriteSheet creates a shared sprite sheet.
func NewSpriteSheet(sheet Sheet, img image.Image) *SpriteSheet {
	return &SpriteSheet{sheet: sheet, image: img}
}

// Cell looks up a frame by name.
func (s *SpriteSheet) Cell(name string) (Cell, error) {
	cell, ok := s.sheet.Frames[name]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrCellNotFound, name)
	}
	return cell, nil
}

// MustCell looks up a frame by name and panics if it is missing.
// A missing animation frame is an asset consistency fault, not a runtime condition.
func (s *SpriteSheet) MustCell(name string) Cell {
	cell, err := s.Cell(name)
	if err != nil {
		panic(err)
	}
	return cell
}

// Image returns the decoded sheet image.
func (s *SpriteSheet) Image() image.Image {
	return s.image
}

// Draw copies the source rectangle of the sheet image to dst.
func (s *SpriteSheet) Draw(r Renderer, src, dst core.Rect) {
	r.DrawSubImage(s.image, src, dst)
}
