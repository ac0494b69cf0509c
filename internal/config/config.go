// Package config provides YAML-based configuration loading for the
// simulation, the level generator, and the stepping engine.
package config

import (
	"fmt"

	"github.com/vovakirdan/gridrun/internal/engine"
	"github.com/vovakirdan/gridrun/internal/sim"
)

// Config contains all runtime configuration.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Rewards RewardsConfig `yaml:"rewards"`
	Level   LevelConfig   `yaml:"level"`
	Engine  EngineConfig  `yaml:"engine"`
}

// PhysicsConfig defines the agent movement parameters.
type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	MaxJump    float64 `yaml:"max_jump"`
	MaxSpeed   float64 `yaml:"max_speed"`
	MixRate    float64 `yaml:"mix_rate"`
	AirControl float64 `yaml:"air_control"`
}

// RewardsConfig defines reward magnitudes and shaping penalties.
// Penalties are subtracted, so positive values here discourage the event.
type RewardsConfig struct {
	Coin               float64 `yaml:"coin"`
	Completion         float64 `yaml:"completion"`
	Gem                float64 `yaml:"gem"`
	KillMonster        float64 `yaml:"kill_monster"`
	BumpHeadPenalty    float64 `yaml:"bump_head_penalty"`
	DiePenalty         float64 `yaml:"die_penalty"`
	JumpPenalty        float64 `yaml:"jump_penalty"`
	SquatPenalty       float64 `yaml:"squat_penalty"`
	JitterSquatPenalty float64 `yaml:"jitter_squat_penalty"`
}

// LevelConfig defines level generation parameters and the optional fixed
// level set. With num_levels > 0, every episode draws its seed from a pool
// of num_levels seeds derived from set_seed, so training and evaluation
// can run on a fixed collection of levels.
type LevelConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Platforms int `yaml:"platforms"`
	Timeout   int `yaml:"timeout"`

	NumLevels int    `yaml:"num_levels"`
	SetSeed   uint32 `yaml:"set_seed"`
}

// EngineConfig defines worker pool parameters.
type EngineConfig struct {
	Threads int    `yaml:"threads"`
	Seed    uint32 `yaml:"seed"`
}

// Validate checks the ranges a caller would otherwise trip over deep in
// the generator.
func (c Config) Validate() error {
	if c.Level.Width < 8 || c.Level.Height < 5 {
		return fmt.Errorf("config: level %dx%d too small", c.Level.Width, c.Level.Height)
	}
	if c.Level.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %d", c.Level.Timeout)
	}
	if c.Physics.Gravity <= 0 || c.Physics.MaxJump <= 0 || c.Physics.MaxSpeed <= 0 {
		return fmt.Errorf("config: physics parameters must be positive")
	}
	return nil
}

// ToSimParams converts the configuration into simulation parameters,
// materializing the level-seed pool when a fixed level set is requested.
func (c Config) ToSimParams() sim.Params {
	p := sim.Params{
		Physics: sim.Physics{
			Gravity:    c.Physics.Gravity,
			MaxJump:    c.Physics.MaxJump,
			MaxSpeed:   c.Physics.MaxSpeed,
			MixRate:    c.Physics.MixRate,
			AirControl: c.Physics.AirControl,
		},
		Rewards: sim.Rewards{
			Coin:               c.Rewards.Coin,
			Completion:         c.Rewards.Completion,
			Gem:                c.Rewards.Gem,
			KillMonster:        c.Rewards.KillMonster,
			BumpHeadPenalty:    c.Rewards.BumpHeadPenalty,
			DiePenalty:         c.Rewards.DiePenalty,
			JumpPenalty:        c.Rewards.JumpPenalty,
			SquatPenalty:       c.Rewards.SquatPenalty,
			JitterSquatPenalty: c.Rewards.JitterSquatPenalty,
		},
		Level: sim.LevelParams{
			Width:     c.Level.Width,
			Height:    c.Level.Height,
			Platforms: c.Level.Platforms,
			Timeout:   c.Level.Timeout,
		},
	}

	if c.Level.NumLevels > 0 {
		rng := sim.NewRNG(c.Level.SetSeed)
		p.LevelSeeds = make([]uint32, c.Level.NumLevels)
		for i := range p.LevelSeeds {
			p.LevelSeeds[i] = rng.Uint32()
		}
	}
	return p
}

// ToEngineConfig converts the engine section.
func (c Config) ToEngineConfig() engine.Config {
	ec := engine.DefaultConfig()
	if c.Engine.Threads > 0 {
		ec.Threads = c.Engine.Threads
	}
	if c.Engine.Seed != 0 {
		ec.Seed = c.Engine.Seed
	}
	return ec
}
