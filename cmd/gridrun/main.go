// gridrun is a procedural platformer benchmark for reinforcement learning
// agents: seeded level generation, deterministic physics, and a batched
// concurrent stepping engine.
//
// Usage:
//
//	gridrun gen [seed]       - Generate a level and print it
//	gridrun play             - Run headless episodes under a random policy
//	gridrun bench            - Benchmark the stepping engine
//	gridrun watch            - Watch live episodes under a random policy
//	gridrun stats            - Show recorded episode statistics
//
// Global flags:
//
//	--config <path>  - Path to a custom config YAML
//	--db <path>      - Set database path (default: ~/.gridrun/episodes.db)
//	--seed <value>   - Master seed for episode streams
//	--threads <n>    - Worker pool size
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridrun/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagSeed    uint32
	flagThreads int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridrun",
	Short: "GridRun - procedural platformer benchmark for RL agents",
	Long: `GridRun generates platformer levels from integer seeds and steps many
episodes concurrently through a worker pool, producing the observation and
reward stream a training loop consumes.

Available commands:
  gen      - Generate a level from a seed and print it
  play     - Run headless episodes under a random policy
  bench    - Measure stepping throughput
  watch    - Watch live episodes under a random policy
  stats    - View recorded episode statistics

Examples:
  gridrun gen 42
  gridrun play --episodes 20 --save
  gridrun bench --batch 32 --steps 10000
  gridrun watch --batch 4
  gridrun stats`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridrun/episodes.db", "Path to episodes database")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Master seed (0 = config default)")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "Worker pool size (0 = config default)")

	// Add subcommands
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Engine.Seed = flagSeed
	}
	if flagThreads > 0 {
		cfg.Engine.Threads = flagThreads
	}
	return cfg, nil
}
