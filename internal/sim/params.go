package sim

// Physics holds the movement constants fixed at level creation.
type Physics struct {
	Gravity    float64
	MaxJump    float64
	MaxSpeed   float64
	MixRate    float64
	AirControl float64
}

// DefaultPhysics returns the benchmark's canonical movement constants.
// Changing these changes level solvability, since the generator derives
// platform reachability from the same values.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:    0.08,
		MaxJump:    0.9,
		MaxSpeed:   0.2,
		MixRate:    0.1,
		AirControl: 0.15,
	}
}

// Rewards holds the scoring knobs. Penalties are subtracted and default to
// zero so plain runs only score coins, gems, level completion and monster
// kills.
type Rewards struct {
	Coin        float64
	Completion  float64
	Gem         float64
	KillMonster float64

	BumpHeadPenalty    float64
	DiePenalty         float64
	JumpPenalty        float64
	SquatPenalty       float64
	JitterSquatPenalty float64
}

// DefaultRewards returns the canonical reward values.
func DefaultRewards() Rewards {
	return Rewards{
		Coin:        1.0,
		Completion:  10.0,
		Gem:         1.0,
		KillMonster: 5.0,
	}
}

// LevelParams controls level generation and episode length.
type LevelParams struct {
	Width     int
	Height    int
	Platforms int // successful platform placements per level
	Timeout   int // steps before the episode is cut off
}

// DefaultLevelParams returns the canonical level dimensions.
func DefaultLevelParams() LevelParams {
	return LevelParams{
		Width:     64,
		Height:    13,
		Platforms: 11,
		Timeout:   1000,
	}
}

// Params bundles everything an episode needs to run independently.
type Params struct {
	Physics Physics
	Rewards Rewards
	Level   LevelParams

	// LevelSeeds, when non-empty, restricts generation to a fixed pool of
	// seeds sampled uniformly on every reset (reproducible train/test
	// splits). When empty every reset draws a fresh 32-bit seed.
	LevelSeeds []uint32
}

// DefaultParams returns a fully populated parameter set.
func DefaultParams() Params {
	return Params{
		Physics: DefaultPhysics(),
		Rewards: DefaultRewards(),
		Level:   DefaultLevelParams(),
	}
}
