// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is a position or velocity in world pixels.
type Point struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// Rect represents an axis-aligned bounding box used for collision detection.
// Width and height may be negative while a box is being assembled, but
// Intersects assumes both operands have non-negative extents.
type Rect struct {
	X int16 `json:"x"` // Top-left corner position
	Y int16 `json:"y"`
	W int16 `json:"w"` // Width and height
	H int16 `json:"h"`
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int16) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAt creates a rectangle whose top-left corner is p.
func RectAt(p Point, w, h int16) Rect {
	return Rect{X: p.X, Y: p.Y, W: w, H: h}
}

// Position returns the top-left corner.
func (r Rect) Position() Point {
	return Point{X: r.X, Y: r.Y}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int16 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int16 {
	return r.Y + r.H
}

// SetX moves the rectangle horizontally to x.
func (r *Rect) SetX(x int16) {
	r.X = x
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as an overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int16) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int16) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
