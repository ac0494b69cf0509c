// Package sim provides the deterministic simulation core for GridRun:
// seeded level generation, agent physics, monster behavior and episode
// control. This package is renderer-agnostic and safe to step from worker
// goroutines as long as each episode is owned by one goroutine at a time.
package sim

// Cell codes stored in the grid. Values double as the ASCII form used by
// LoadLevel and the debug renderer.
const (
	CellSpace       byte = '.'
	CellLadder      byte = '='
	CellLavaSurface byte = '^'
	CellLavaMiddle  byte = '|'
	CellWallSurface byte = 'S'
	CellWallMiddle  byte = 'A'
	CellCoin        byte = '1'
	CellGem         byte = '2'
	CellSpike       byte = 'P'

	// Edge markers for the left/right end of a platform. They behave as
	// walls and are only distinguished for rendering.
	CellEdgeLeft  byte = 'a'
	CellEdgeRight byte = 'b'

	// Crate variants. All behave identically; the variants only select a
	// sprite.
	CellCrate        byte = '#'
	CellCrateDouble  byte = '$'
	CellCrateSingle  byte = '&'
	CellCrateWarning byte = '%'

	// Scratch marker left by the generator while carving access paths.
	// None survive generation.
	CellScratch byte = ' '

	// Monster placement markers, replaced by Monster entries during the
	// generator's final pass.
	CellFlyingMonster  byte = 'F'
	CellWalkingMonster byte = 'M'
	CellGroundMonster  byte = 'G'
)

// IsCrate reports whether c is any crate variant.
func IsCrate(c byte) bool {
	return c == CellCrate || c == CellCrateDouble || c == CellCrateSingle || c == CellCrateWarning
}

// IsWall reports whether c blocks movement. Crates are not walls; use
// IsSolid where crates count.
func IsWall(c byte) bool {
	return c == CellWallSurface || c == CellWallMiddle || c == CellEdgeLeft || c == CellEdgeRight
}

// IsSolid reports whether c blocks movement including crates.
func IsSolid(c byte) bool {
	return IsWall(c) || IsCrate(c)
}

// IsLethal reports whether touching c kills the agent.
func IsLethal(c byte) bool {
	return c == CellLavaSurface || c == CellLavaMiddle || c == CellSpike
}

// IsCoin reports whether c is a coin.
func IsCoin(c byte) bool {
	return c == CellCoin
}

// IsGem reports whether c is a gem.
func IsGem(c byte) bool {
	return c == CellGem
}
