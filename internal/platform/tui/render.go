package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Theme maps core.Color roles to lipgloss styles.
type Theme struct {
	styles map[core.Color]lipgloss.Style
}

// NewTheme builds a theme from the configured palette. Empty entries
// fall back to the terminal default.
func NewTheme(p config.PaletteConfig) Theme {
	base := lipgloss.NewStyle()
	if p.Background != "" {
		base = base.Background(lipgloss.Color(p.Background))
	}
	fg := func(c string) lipgloss.Style {
		if c == "" {
			return base
		}
		return base.Foreground(lipgloss.Color(c))
	}

	return Theme{styles: map[core.Color]lipgloss.Style{
		core.ColorDefault:   base,
		core.ColorGrid:      fg(p.Grid),
		core.ColorSnakeHead: fg(p.SnakeHead).Bold(true),
		core.ColorSnakeBody: fg(p.SnakeBody),
		core.ColorFood:      fg(p.Food).Bold(true),
		core.ColorObstacle:  fg(p.Obstacle),
		core.ColorText:      fg(p.Text),
		core.ColorOverlay:   fg(p.Overlay).Bold(true),
	}}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (t Theme) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetGlyph(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				g := s.GetGlyph(x, y)
				if g.Color != startColor {
					break
				}
				run.WriteRune(g.Rune)
				x++
			}

			style, ok := t.styles[startColor]
			if !ok {
				style = t.styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
