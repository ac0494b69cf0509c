package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridrun/internal/render"
	"github.com/vovakirdan/gridrun/internal/sim"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// glyphStyles maps cell codes and overlay glyphs to lipgloss styles.
var glyphStyles = map[byte]lipgloss.Style{
	sim.CellWallSurface:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	sim.CellWallMiddle:   lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	sim.CellEdgeLeft:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	sim.CellEdgeRight:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	sim.CellLadder:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	sim.CellLavaSurface:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	sim.CellLavaMiddle:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	sim.CellSpike:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	sim.CellCoin:         lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	sim.CellGem:          lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	sim.CellCrate:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	sim.CellCrateDouble:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	sim.CellCrateSingle:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	sim.CellCrateWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	'@':                  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	'm':                  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	'x':                  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

var defaultGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))

// renderEpisode converts the episode's text form to a styled string.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func renderEpisode(e *sim.Episode) string {
	rows := render.ASCII(e)

	var sb strings.Builder
	sb.Grow(len(rows) * (len(rows[0])*2 + 1))

	for y, row := range rows {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < len(row) {
			start := row[x]

			var run strings.Builder
			for x < len(row) && row[x] == start {
				run.WriteByte(displayGlyph(row[x]))
				x++
			}

			style, ok := glyphStyles[start]
			if !ok {
				style = defaultGlyphStyle
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// displayGlyph swaps a few cell codes for nicer terminal glyphs.
func displayGlyph(c byte) byte {
	switch c {
	case sim.CellSpace:
		return ' '
	case sim.CellWallSurface, sim.CellWallMiddle, sim.CellEdgeLeft, sim.CellEdgeRight:
		return '#'
	case sim.CellCoin:
		return 'o'
	case sim.CellGem:
		return '*'
	case sim.CellLavaSurface, sim.CellLavaMiddle:
		return '~'
	case sim.CellCrateDouble, sim.CellCrateSingle, sim.CellCrateWarning:
		return sim.CellCrate
	default:
		return c
	}
}
