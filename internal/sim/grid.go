package sim

// Grid is one level: a rectangular array of cell codes plus the mutable
// episode state that lives on the level (remaining coins, termination flag,
// monsters). Cells are stored row-major with y increasing upward, so y=0 is
// the floor row.
type Grid struct {
	W, H  int
	cells []byte

	SpawnX, SpawnY int
	Coins          int
	Terminated     bool
	NewLevel       bool

	Monsters []*Monster

	Physics Physics
}

// NewGrid creates a grid filled with empty space.
func NewGrid(w, h int, phys Physics) *Grid {
	g := &Grid{
		W:        w,
		H:        h,
		cells:    make([]byte, w*h),
		NewLevel: true,
		Physics:  phys,
	}
	for i := range g.cells {
		g.cells[i] = CellSpace
	}
	return g
}

// At returns the cell at (x, y). Coordinates outside the grid count as
// solid wall, which keeps the physics defined even if a body probes past
// the border ring.
func (g *Grid) At(x, y int) byte {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return CellWallMiddle
	}
	return g.cells[g.W*y+x]
}

// Set writes the cell at (x, y). Out-of-bounds writes are dropped.
func (g *Grid) Set(x, y int, c byte) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.cells[g.W*y+x] = c
}

// Fill stamps a dx by dy rectangle with the given cell.
func (g *Grid) Fill(x, y, dx, dy int, c byte) {
	for j := 0; j < dx; j++ {
		for k := 0; k < dy; k++ {
			g.Set(x+j, y+k, c)
		}
	}
}

// HasVerticalSpace reports whether a one-cell-wide body at horizontal
// position x fits at height y. The body is probed at x+0.1 and x+0.9 so a
// body flush against a wall still fits in its own column.
func (g *Grid) HasVerticalSpace(x, y float64, crateCounts bool) bool {
	iy := int(y)
	left := g.At(int(x+0.1), iy)
	right := g.At(int(x+0.9), iy)
	if IsWall(left) || IsWall(right) {
		return false
	}
	if crateCounts && (IsCrate(left) || IsCrate(right)) {
		return false
	}
	return true
}

// ItemCount returns the number of coin and gem cells currently present.
func (g *Grid) ItemCount() int {
	n := 0
	for _, c := range g.cells {
		if IsCoin(c) || IsGem(c) {
			n++
		}
	}
	return n
}

// Equal reports whether two grids have identical dimensions and cells.
// Monsters and episode flags are not compared.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the level as ASCII rows, top row first. Used by the debug
// renderer and tests.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	for y := 0; y < g.H; y++ {
		row := make([]byte, g.W)
		for x := 0; x < g.W; x++ {
			row[x] = g.At(x, g.H-1-y)
		}
		rows[y] = string(row)
	}
	return rows
}
