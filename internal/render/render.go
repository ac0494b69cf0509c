// Package render produces observation buffers from read-only episode
// snapshots: an RGB rasterization of the world around the agent and the
// discrete audio-event vector. Pixel content is deliberately simple — the
// benchmark contract is one buffer per episode per completed step, not
// visual fidelity.
package render

import "github.com/vovakirdan/gridrun/internal/sim"

// Observation buffer shapes.
const (
	ResW  = 64
	ResH  = 64
	Video = 1024 // high-res side length, data-collection mode only
)

// Renderer turns an episode snapshot into observation buffers. The engine
// calls it while holding the episode's state lock; implementations must
// not retain the episode.
type Renderer interface {
	// RenderAgent paints the ResW x ResH x 3 policy observation.
	RenderAgent(e *sim.Episode, buf []uint8)
	// RenderVideo paints the Video x Video x 3 high-res frame.
	RenderVideo(e *sim.Episode, buf []uint8)
}

type rgb struct {
	r, g, b uint8
}

var cellColors = map[byte]rgb{
	sim.CellSpace:        {30, 30, 60},
	sim.CellLadder:       {180, 140, 60},
	sim.CellLavaSurface:  {240, 110, 30},
	sim.CellLavaMiddle:   {220, 70, 20},
	sim.CellWallSurface:  {110, 170, 90},
	sim.CellWallMiddle:   {90, 70, 50},
	sim.CellEdgeLeft:     {110, 170, 90},
	sim.CellEdgeRight:    {110, 170, 90},
	sim.CellCoin:         {250, 220, 60},
	sim.CellGem:          {230, 50, 80},
	sim.CellSpike:        {190, 190, 200},
	sim.CellCrate:        {170, 120, 60},
	sim.CellCrateDouble:  {170, 120, 60},
	sim.CellCrateSingle:  {170, 120, 60},
	sim.CellCrateWarning: {170, 120, 60},
}

var (
	agentColor        = rgb{250, 250, 90}
	agentPowerUpColor = rgb{120, 220, 250}
	monsterColor      = rgb{200, 60, 200}
	monsterDeadColor  = rgb{120, 60, 120}
	trailColor        = rgb{90, 40, 90}
)

// Rasterizer is the default Renderer: flat-color cells in a zoomed window
// centered on the agent, monsters drawn with their trails so a single
// frame reveals movement direction.
type Rasterizer struct {
	// Zoom is the number of screen cells a world cell covers relative to
	// a 64-cell viewport. The benchmark default shows roughly 13 cells.
	Zoom float64
}

// NewRasterizer returns a rasterizer at the default zoom.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Zoom: 5.0}
}

// RenderAgent implements Renderer.
func (r *Rasterizer) RenderAgent(e *sim.Episode, buf []uint8) {
	r.paint(e, buf, ResW, ResH)
}

// RenderVideo implements Renderer.
func (r *Rasterizer) RenderVideo(e *sim.Episode, buf []uint8) {
	r.paint(e, buf, Video, Video)
}

func (r *Rasterizer) paint(e *sim.Episode, buf []uint8, w, h int) {
	g := e.Grid
	a := e.Agent

	// Pixels per world cell, and the world coordinate of pixel (0, 0).
	// y is flipped: world y grows upward, pixels grow downward.
	k := r.Zoom * float64(w) / 64.0
	ox := a.X + 0.5 - float64(w)/(2*k)
	oy := a.Y + 1.0 + float64(h)/(2*k)

	for py := 0; py < h; py++ {
		wy := int(oy - float64(py)/k)
		for px := 0; px < w; px++ {
			wx := int(ox + float64(px)/k)
			c, ok := cellColors[g.At(wx, wy)]
			if !ok {
				c = cellColors[sim.CellSpace]
			}
			setPixel(buf, w, px, py, c)
		}
	}

	for _, m := range g.Monsters {
		if !m.Dead {
			for t := 0; t < sim.MonsterTrail; t++ {
				r.fillCell(buf, w, h, k, ox, oy, m.PrevX[t], m.PrevY[t], 0.3, trailColor)
			}
		}
		c := monsterColor
		if m.Dead {
			c = monsterDeadColor
		}
		r.fillCell(buf, w, h, k, ox, oy, m.X, m.Y, 1.0, c)
	}

	c := agentColor
	if a.PowerUpMode {
		c = agentPowerUpColor
	}
	// The agent body is two cells tall.
	r.fillCell(buf, w, h, k, ox, oy, a.X, a.Y, 1.0, c)
	r.fillCell(buf, w, h, k, ox, oy, a.X, a.Y+1, 1.0, c)
}

// fillCell paints a size-scaled world cell at (x, y) into the buffer.
func (r *Rasterizer) fillCell(buf []uint8, w, h int, k, ox, oy, x, y, size float64, c rgb) {
	px0 := int((x - ox) * k)
	py0 := int((oy - y - 1) * k)
	side := int(k * size)
	for py := py0; py < py0+side; py++ {
		if py < 0 || py >= h {
			continue
		}
		for px := px0; px < px0+side; px++ {
			if px < 0 || px >= w {
				continue
			}
			setPixel(buf, w, px, py, c)
		}
	}
}

func setPixel(buf []uint8, w, x, y int, c rgb) {
	i := (y*w + x) * 3
	buf[i] = c.r
	buf[i+1] = c.g
	buf[i+2] = c.b
}
