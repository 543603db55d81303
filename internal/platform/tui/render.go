package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/motorush/internal/core"
)

// Palette maps core.Color to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

var dayPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRoad:      fg("250"),
	core.ColorLaneMark:  fg("229"),
	core.ColorRider:     fg("15").Bold(true),
	core.ColorRiderHurt: fg("9").Bold(true),
	core.ColorCar:       fg("33"),
	core.ColorCone:      fg("208"),
	core.ColorTruck:     fg("160"),
	core.ColorPothole:   fg("94"),
	core.ColorShield:    fg("51").Bold(true),
	core.ColorTurbo:     fg("226").Bold(true),
	core.ColorMagnet:    fg("201").Bold(true),
	core.ColorHUD:       fg("255"),
	core.ColorWarning:   fg("196").Bold(true),
	core.ColorNight:     fg("240"),
}

var nightPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRoad:      fg("61"),
	core.ColorLaneMark:  fg("103"),
	core.ColorRider:     fg("229").Bold(true),
	core.ColorRiderHurt: fg("203").Bold(true),
	core.ColorCar:       fg("69"),
	core.ColorCone:      fg("172"),
	core.ColorTruck:     fg("124"),
	core.ColorPothole:   fg("58"),
	core.ColorShield:    fg("45").Bold(true),
	core.ColorTurbo:     fg("220").Bold(true),
	core.ColorMagnet:    fg("170").Bold(true),
	core.ColorHUD:       fg("189"),
	core.ColorWarning:   fg("203").Bold(true),
	core.ColorNight:     fg("17"),
}

// PaletteFor returns the day or night palette.
func PaletteFor(day bool) Palette {
	if day {
		return dayPalette
	}
	return nightPalette
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
