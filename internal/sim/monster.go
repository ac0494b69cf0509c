package sim

// MonsterTrail is the number of recent positions kept per monster. The
// trail is consumed only by the renderer (it lets a policy infer movement
// direction from a single frame).
const MonsterTrail = 14

// MonsterDeathAnimLength is the number of frames of the monster death
// animation replayed in data-collection mode.
const MonsterDeathAnimLength = 2

// Monster is one enemy on a level. Created by the generator, stepped every
// frame, removed only by level regeneration.
type Monster struct {
	X, Y   float64
	VX, VY float64

	PrevX [MonsterTrail]float64
	PrevY [MonsterTrail]float64

	Flying  bool
	Walking bool
	Dead    bool

	DyingFrames int
	SpeciesIdx  int
	Pause       int
}

func newMonster(x, y int, cell byte) *Monster {
	m := &Monster{
		X:       float64(x),
		Y:       float64(y),
		VX:      0.01,
		Flying:  cell == CellFlyingMonster,
		Walking: cell == CellWalkingMonster,
	}
	for t := 0; t < MonsterTrail; t++ {
		m.PrevX[t] = m.X
		m.PrevY[t] = m.Y
	}
	return m
}

// Species returns the behavior parameters for this monster.
func (m *Monster) Species() Species {
	return speciesTable[m.SpeciesIdx]
}

// Step advances the monster one frame. Ground-class monsters are
// stationary hazards and only update their trail. The rng is the owning
// episode's generator; it is consumed only by jumpers drawing a pause.
func (m *Monster) Step(g *Grid, rng *RNG) {
	if !m.Flying && !m.Walking {
		m.pushTrail()
		return
	}

	control := sign(m.VX)
	ix := int(m.X)
	iy := int(m.Y)
	if IsWall(g.At(ix, iy)) {
		control = +1
	}
	if IsWall(g.At(ix+1, iy)) {
		control = -1
	}
	if m.Walking {
		// Reverse before walking off a ledge.
		if !IsWall(g.At(ix, iy-1)) {
			control = +1
		}
		if !IsWall(g.At(ix+1, iy-1)) {
			control = -1
		}
	}

	sp := m.Species()
	m.VX = clipAbs(monsterMixRate*control+(1-monsterMixRate)*m.VX, sp.MaxSpeed)

	if sp.Jumping {
		if m.VY == 0 && m.Pause == 0 {
			m.VY = sp.JumpHeight
		} else if m.Pause == 0 {
			// Jumpers fall lighter than the agent.
			m.VY -= 0.8 * g.Physics.Gravity
		}

		ny := m.Y + m.VY
		if m.VY < 0 && !g.HasVerticalSpace(m.X, ny, false) {
			m.Y = float64(int(ny) + 1)
			m.VY = 0
			if sp.MaxPause > 0 {
				m.Pause = rng.Intn(0, sp.MaxPause)
			}
		}
	}

	if m.Pause > 0 {
		m.Pause--
	} else {
		m.X += m.VX
		m.Y += m.VY
	}
	m.pushTrail()
}

func (m *Monster) pushTrail() {
	for t := 1; t < MonsterTrail; t++ {
		m.PrevX[t-1] = m.PrevX[t]
		m.PrevY[t-1] = m.PrevY[t]
	}
	m.PrevX[MonsterTrail-1] = m.X
	m.PrevY[MonsterTrail-1] = m.Y
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func clipAbs(x, limit float64) float64 {
	if x > limit {
		return limit
	}
	if x < -limit {
		return -limit
	}
	return x
}
