package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridrun/internal/engine"
	"github.com/vovakirdan/gridrun/internal/sim"
)

var (
	flagBenchBatch int
	flagBenchSteps int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure stepping throughput",
	Long: `Run a batch of episodes under a random policy for a fixed number of
steps and report frames per second.

Examples:
  gridrun bench
  gridrun bench --batch 32 --steps 10000 --threads 8`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchBatch, "batch", 16, "Number of episode slots")
	benchCmd.Flags().IntVar(&flagBenchSteps, "steps", 5000, "Steps per slot")
}

func runBench(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(cfg.ToSimParams(), cfg.ToEngineConfig())
	eng.Start()
	defer eng.Shutdown()

	handle := eng.CreateBatch(flagBenchBatch, 0, false)
	defer eng.CloseBatch(handle)

	rng := sim.NewRNG(cfg.Engine.Seed)
	actions := make([]int, flagBenchBatch)

	var episodes int
	var reward float64

	start := time.Now()
	for step := 0; step < flagBenchSteps; step++ {
		for i := range actions {
			actions[i] = rng.Intn(0, sim.NumActions)
		}
		eng.SubmitActions(handle, actions)
		for _, o := range eng.Wait(handle) {
			reward += o.Reward
			if o.Done {
				episodes++
			}
		}
	}
	elapsed := time.Since(start)

	frames := flagBenchSteps * flagBenchBatch
	fmt.Printf("batch %d  threads %d  steps %d\n", flagBenchBatch, cfg.Engine.Threads, flagBenchSteps)
	fmt.Printf("%d frames in %v (%.0f frames/sec)\n", frames, elapsed.Round(time.Millisecond), float64(frames)/elapsed.Seconds())
	fmt.Printf("episodes finished: %d  total reward: %.1f\n", episodes, reward)
}
