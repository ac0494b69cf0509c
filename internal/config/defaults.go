package config

import (
	_ "embed"
)

//go:embed defaults/gridrun.yaml
var defaultYAML []byte

// Default returns the default configuration: the standard benchmark
// tuning with an unbounded level distribution.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:    0.08,
			MaxJump:    0.9,
			MaxSpeed:   0.2,
			MixRate:    0.1,
			AirControl: 0.15,
		},
		Rewards: RewardsConfig{
			Coin:        1.0,
			Completion:  10.0,
			Gem:         1.0,
			KillMonster: 5.0,
		},
		Level: LevelConfig{
			Width:     64,
			Height:    13,
			Platforms: 11,
			Timeout:   1000,
		},
		Engine: EngineConfig{
			Threads: 4,
			Seed:    1,
		},
	}
}
