package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/walk-the-dog/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache keeps one lipgloss style per colour pair seen so far.
type styleCache map[colorPair]lipgloss.Style

func (c styleCache) style(p colorPair) lipgloss.Style {
	if st, ok := c[p]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if p.fg.Valid {
		st = st.Foreground(lipgloss.Color(p.fg.Hex()))
	}
	if p.bg.Valid {
		st = st.Background(lipgloss.Color(p.bg.Hex()))
	}
	c[p] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := make(styleCache)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.Fg, cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !start.fg.Valid && !start.bg.Valid {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
