package sim

import "math"

// generator carves one level into a fresh grid. All randomness flows
// through a request-scoped RNG so generation is a pure function of
// (params, seed).
type generator struct {
	g   *Grid
	rng *RNG

	// Worklist of reachable cells. Every cell pushed here can be stood on
	// or jumped from, which is what lets platforms chain upward; leftovers
	// become coin candidates.
	stack []cellRef
}

type cellRef struct {
	x, y int
}

// GenerateLevel builds a populated level from a seed. Identical inputs
// produce byte-identical grids and monster sets.
func GenerateLevel(params LevelParams, phys Physics, seed uint32) *Grid {
	gen := &generator{
		g:   NewGrid(params.Width, params.Height, phys),
		rng: NewRNG(seed),
	}
	gen.floorAndWalls()

	g := gen.g
	g.SpawnX = 1 + gen.rng.Intn(0, g.W-2)
	g.SpawnY = 1

	for x := 0; x < g.W; x++ {
		gen.stack = append(gen.stack, cellRef{x, 1})
	}

	// Placements can fail validity checks, so allow ten attempts per
	// wanted platform. A failed attempt leaves any partial carving in
	// place; that noise is part of the benchmark's level distribution.
	want := params.Platforms
	for p := 0; p < params.Platforms*10 && want > 0; p++ {
		if gen.buildPlatform() {
			want--
		}
	}

	gen.placeItems()
	gen.finalize()
	return g
}

func (gen *generator) floorAndWalls() {
	g := gen.g
	g.Fill(0, 0, g.W, g.H, CellSpace)
	g.Fill(0, 0, g.W, 1, CellWallSurface)
	g.Fill(0, 0, 1, g.H, CellWallMiddle)
	g.Fill(g.W-1, 0, 1, g.H, CellWallMiddle)
	g.Fill(0, g.H-1, g.W, 1, CellWallMiddle)
}

// buildPlatform makes one placement attempt: pick a reachable cell, carve
// either a ballistic access path or a ladder to a landing cell, then extend
// a platform there. Returns false if any validity check rejects the
// attempt; partial carvings are not rolled back.
func (gen *generator) buildPlatform() bool {
	g := gen.g
	phys := g.Physics
	if len(gen.stack) == 0 {
		return false
	}

	// sqrt(uniform(n^2)) biases selection toward recently added cells,
	// which is what chains platforms into higher ones. Keep the formula:
	// it shapes the difficulty distribution.
	n := int(math.Sqrt(float64(gen.rng.Intn(0, len(gen.stack)*len(gen.stack)))))
	r := gen.stack[n]

	vx := (gen.rng.Float01()*2 - 1) * 0.5 * phys.MaxSpeed
	vy := (0.8 + 0.2*gen.rng.Float01()) * phys.MaxJump

	top := 1 + int(vy/phys.Gravity)
	var ix, iy int
	if gen.rng.Intn(0, 2) == 1 {
		// Ballistic access path: walk the simulated throw cell by cell,
		// scratching each cell; reject if it exits bounds or crosses
		// non-empty terrain.
		steps := top
		if top/2 > 0 {
			steps += gen.rng.Intn(0, top/2)
		}
		x := float64(r.x)
		y := float64(r.y + 1)

		ix, iy = -1, -1
		for s := 0; s < steps; s++ {
			vy -= phys.Gravity
			x += vx
			y += vy
			if ix != int(x) || iy != int(y) {
				ix = int(x)
				iy = int(y)
				if ix < 1 || ix >= g.W-1 || iy < 1 || iy >= g.H-2 {
					return false
				}
				c := g.At(ix, iy)
				if c != CellSpace && c != CellScratch {
					return false
				}
				g.Set(ix, iy, CellScratch)
			}
		}
	} else {
		// Vertical ladder of random length, carved downward from the
		// picked cell.
		ix = r.x
		iy = r.y
		if iy >= g.H-3 {
			return false
		}
		if IsCrate(g.At(ix, iy)) || IsCrate(g.At(ix, iy-1)) {
			return false // ladders must not start on crates
		}
		gen.stack = append(gen.stack[:n], gen.stack[n+1:]...)
		var rungs []cellRef
		ladderLen := 5 + gen.rng.Intn(0, 10)
		for s := 0; s < ladderLen; s++ {
			rungs = append(rungs, cellRef{ix, iy})
			iy++
			if iy >= g.H-3 ||
				g.At(ix, iy) != CellSpace ||
				g.At(ix-1, iy) == CellLadder ||
				g.At(ix+1, iy) == CellLadder {
				return false
			}
		}
		for _, f := range rungs {
			g.Set(f.x, f.y, CellLadder)
		}
		g.Set(ix, iy, CellLadder)
	}

	if iy >= g.H-3 {
		return false
	}
	if c := g.At(ix, iy); c == CellSpace || c == CellScratch {
		if vx > 0 {
			g.Set(ix, iy, CellEdgeLeft)
		} else {
			g.Set(ix, iy, CellEdgeRight)
		}
	}

	// Extend a platform from the landing cell in the throw direction,
	// stopping early if it merges into existing terrain. Interior cells
	// are monster candidates; a deterministic stride marks crate bases.
	var crates []cellRef
	var monsterCandidates []cellRef
	length := 2 + gen.rng.Intn(0, 10)
	cratesShift := gen.rng.Intn(0, 20)
	for platform := 0; platform < length; platform++ {
		if vx > 0 {
			ix++
		} else {
			ix--
		}
		c := g.At(ix, iy)
		if c == CellScratch || c == CellSpace {
			if platform < length-1 {
				g.Set(ix, iy, CellWallSurface)
			} else if vx > 0 {
				g.Set(ix, iy, CellEdgeRight)
			} else {
				g.Set(ix, iy, CellEdgeLeft)
			}
			gen.stack = append(gen.stack, cellRef{ix, iy + 1})
			if int(float64(ix)*0.2+float64(iy+cratesShift))%4 == 0 {
				crates = append(crates, cellRef{ix, iy + 1})
			} else if platform > 0 && platform < length-1 {
				monsterCandidates = append(monsterCandidates, cellRef{ix, iy + 1})
			}
		} else {
			if c == CellEdgeLeft || c == CellEdgeRight {
				g.Set(ix, iy, CellWallSurface)
			}
			break
		}
	}

	if len(monsterCandidates) > 1 {
		m := monsterCandidates[gen.rng.Intn(0, len(monsterCandidates))]
		if gen.rng.Intn(0, 10) >= 8 {
			g.Set(m.x, m.y, CellGroundMonster)
		} else {
			g.Set(m.x, m.y, CellWalkingMonster)
		}
	}

	// Stack crates upward. The continuation probability rises with
	// adjacent crates and falls next to ladders or under walls; the exact
	// formula is tuned, keep it.
	for len(crates) > 0 {
		for c := 0; c < len(crates); {
			w := g.At(crates[c].x, crates[c].y)
			wl := g.At(crates[c].x-1, crates[c].y)
			wr := g.At(crates[c].x+1, crates[c].y)
			wu := g.At(crates[c].x, crates[c].y+1)
			want := 2 + b2i(IsCrate(wl)) + b2i(IsCrate(wr)) -
				b2i(wr == CellLadder) - b2i(wl == CellLadder) - b2i(IsWall(wu))
			if gen.rng.Intn(0, 4) < want && crates[c].y < g.H-2 {
				if w == CellScratch || w == CellSpace {
					g.Set(crates[c].x, crates[c].y, CellCrate)
				}
				crates[c].y++
				// Coins can sit on crates and jumps can start from them.
				gen.stack = append(gen.stack, crates[c])
				c++
			} else {
				crates = append(crates[:c], crates[c+1:]...)
			}
		}
	}

	return true
}

// placeItems drains the reachable worklist, dropping a coin (or, one time
// in ten, a gem) on every cell that is enclosed by empty space on the
// sides and above and fully supported below. The enclosure rule guarantees
// an item can be reached by walking onto or jumping through it, never
// embedded in a wall.
func (gen *generator) placeItems() {
	g := gen.g
	open := func(c byte) bool {
		return c == CellSpace || c == CellWalkingMonster
	}
	coins := 0
	for len(gen.stack) > 0 {
		r := gen.stack[len(gen.stack)-1]
		gen.stack = gen.stack[:len(gen.stack)-1]
		x, y := r.x, r.y
		goodPlace := open(g.At(x, y)) && y > 2 &&
			open(g.At(x-1, y)) &&
			open(g.At(x+1, y)) &&
			open(g.At(x, y+1)) &&
			IsSolid(g.At(x-1, y-1)) &&
			IsSolid(g.At(x, y-1)) &&
			IsSolid(g.At(x+1, y-1))
		if goodPlace {
			if gen.rng.Intn(0, 10) >= 9 {
				g.Set(x, y, CellGem)
			} else {
				g.Set(x, y, CellCoin)
			}
			coins++
		}
	}
	g.Coins = coins
}

// finalize converts leftover scratch markers into space or the occasional
// flying monster, fixes up edge and surface codes, and instantiates
// Monster entries for every marker. Monsters in physically impossible
// spots (walkers with no room, grounded types with no floor) are dropped.
func (gen *generator) finalize() {
	g := gen.g
	g.Monsters = g.Monsters[:0]
	for y := 1; y < g.H; y++ {
		for x := 1; x < g.W-1; x++ {
			c := g.At(x, y)
			b := g.At(x, y-1)
			cl := g.At(x-1, y)
			cr := g.At(x+1, y)

			if c == CellScratch && gen.rng.Intn(0, 20) == 0 && !IsWall(b) && y > 2 {
				c = CellFlyingMonster
				g.Set(x, y, c)
			} else if c == CellScratch {
				c = CellSpace
				g.Set(x, y, c)
			}
			if (c == CellEdgeLeft || c == CellEdgeRight) && IsWall(b) {
				c = CellWallSurface
				g.Set(x, y, c)
			}
			if IsWall(c) && IsWall(b) {
				b = CellWallMiddle
				g.Set(x, y-1, b)
			}

			if c == CellFlyingMonster || c == CellWalkingMonster || c == CellGroundMonster {
				m := newMonster(x, y, c)
				var classIdxs []int
				switch {
				case m.Flying:
					classIdxs = flyingSpeciesIdxs
				case m.Walking:
					classIdxs = walkingSpeciesIdxs
				default:
					classIdxs = groundSpeciesIdxs
				}
				m.SpeciesIdx = classIdxs[gen.rng.Intn(0, len(classIdxs))]

				g.Set(x, y, CellSpace)

				// Walkers need lateral room; non-flyers need a floor.
				if (!m.Walking || (!IsWall(cl) && !IsWall(cr))) && (m.Flying || IsWall(b)) {
					g.Monsters = append(g.Monsters, m)
				}
			}
		}
	}
}

// LoadLevel builds a grid from ASCII rows (top row first), instantiating
// monsters for any markers. Intended for tests and hand-built layouts; the
// rng is consumed only for monster species selection and may be nil when
// the rows contain no markers.
func LoadLevel(rows []string, phys Physics, rng *RNG) *Grid {
	h := len(rows)
	w := len(rows[0])
	g := NewGrid(w, h, phys)
	coins := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := rows[h-1-y][x]
			if IsCoin(c) {
				coins++
			}
			g.Set(x, y, c)
		}
	}
	g.Coins = coins
	g.SpawnX = 2
	g.SpawnY = 2
	gen := &generator{g: g, rng: rng}
	gen.finalize()
	return g
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
