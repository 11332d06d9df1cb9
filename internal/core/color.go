package core

import "fmt"

// Color is a 24-bit terminal colour. The zero value means "terminal default".
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB builds a set colour from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// Hex returns the colour as #rrggbb, or an empty string for the default colour.
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Predefined colors for HUD elements.
var (
	ColorDefault = Color{}
	ColorWhite   = RGB(250, 250, 250)
	ColorBlack   = RGB(0, 0, 0)
	ColorYellow  = RGB(240, 200, 40)
	ColorRed     = RGB(200, 30, 40)
	ColorGray    = RGB(140, 140, 140)
)
