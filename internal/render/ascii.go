package render

import "github.com/vovakirdan/gridrun/internal/sim"

// Glyphs overlaid on the level's own ASCII form.
const (
	glyphAgent       = '@'
	glyphMonster     = 'm'
	glyphDeadMonster = 'x'
)

// ASCII returns the episode as text rows, top row first: the grid's cell
// codes with the agent and monsters overlaid. Used by the gen command and
// the watch viewer.
func ASCII(e *sim.Episode) []string {
	g := e.Grid
	base := g.Rows()
	rows := make([][]byte, g.H)
	for y := range rows {
		rows[y] = []byte(base[y])
	}

	put := func(x, y float64, glyph byte) {
		ix, iy := int(x), int(y)
		if ix < 0 || ix >= g.W || iy < 0 || iy >= g.H {
			return
		}
		rows[g.H-1-iy][ix] = glyph
	}

	for _, m := range g.Monsters {
		if m.Dead {
			put(m.X, m.Y, glyphDeadMonster)
		} else {
			put(m.X, m.Y, glyphMonster)
		}
	}
	put(e.Agent.X, e.Agent.Y, glyphAgent)
	put(e.Agent.X, e.Agent.Y+1, glyphAgent)

	out := make([]string, g.H)
	for y := range rows {
		out[y] = string(rows[y])
	}
	return out
}
