package sim

// Monster movement baseline. Species speeds are multiples of this.
const (
	monsterBaseSpeed = 0.05
	monsterMixRate   = 0.05
)

// Species describes one monster type's behavior parameters. The sprite
// name identifies the species to the renderer; behavior is fully described
// by the numeric fields.
type Species struct {
	Name       string
	MaxSpeed   float64
	Killable   bool
	Jumping    bool
	MaxPause   int     // max randomized pause after a jumper lands
	JumpHeight float64 // launch velocity for jumpers
	AnimFreq   int     // frames per animation phase (rendering only)
}

// The species table is fixed: indices are stable across runs because the
// generator stores them in generated levels.
var speciesTable = []Species{
	// Ground class: stationary hazards sitting on platforms.
	{Name: "sawHalf", MaxSpeed: monsterBaseSpeed, AnimFreq: 1},
	{Name: "barnacle", MaxSpeed: monsterBaseSpeed, AnimFreq: 10},

	// Walking class: patrols platforms, reverses at edges.
	{Name: "slimeBlock", MaxSpeed: monsterBaseSpeed, Killable: true, AnimFreq: 5},
	{Name: "slimeBlue", MaxSpeed: monsterBaseSpeed, AnimFreq: 5},
	{Name: "mouse", MaxSpeed: monsterBaseSpeed * 2.0, AnimFreq: 5},
	{Name: "snail", MaxSpeed: monsterBaseSpeed * 0.4, Killable: true, AnimFreq: 5},
	{Name: "ladybug", MaxSpeed: monsterBaseSpeed * 1.8, Jumping: true, MaxPause: 15, JumpHeight: 0.08, AnimFreq: 5},
	{Name: "wormPink", MaxSpeed: monsterBaseSpeed * 0.6, Killable: true, AnimFreq: 5},
	{Name: "frog", MaxSpeed: monsterBaseSpeed * 2.0, Jumping: true, MaxPause: 60, JumpHeight: 0.2, AnimFreq: 5},

	// Flying class.
	{Name: "bee", MaxSpeed: monsterBaseSpeed, AnimFreq: 1},
}

var (
	groundSpeciesIdxs  = []int{0, 1}
	walkingSpeciesIdxs = []int{2, 3, 4, 5, 6, 7, 8}
	flyingSpeciesIdxs  = []int{9}
)

// SpeciesByIndex returns the species for a stored index.
func SpeciesByIndex(i int) Species {
	return speciesTable[i]
}

// NumSpecies returns the size of the species table.
func NumSpecies() int {
	return len(speciesTable)
}
