package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridrun/internal/sim"
	"github.com/vovakirdan/gridrun/internal/storage"
)

var (
	flagPlayEpisodes int
	flagPlaySave     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run headless episodes under a random policy",
	Long: `Roll out episodes with uniformly random actions and print each
result. With --save, results are also recorded to the episodes database
for 'gridrun stats'.

Examples:
  gridrun play --episodes 10
  gridrun play --episodes 100 --save --seed 7`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayEpisodes, "episodes", 10, "Number of episodes to run")
	playCmd.Flags().BoolVar(&flagPlaySave, "save", false, "Record results to the database")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagPlaySave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening episodes database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	params := cfg.ToSimParams()
	rng := sim.NewRNG(seed)
	ep := sim.NewEpisode(params, sim.NewRNG(rng.Uint32()))
	actRNG := sim.NewRNG(rng.Uint32())

	fmt.Printf("%4s %12s %8s %10s %-12s\n", "#", "SEED", "STEPS", "REWARD", "OUTCOME")
	finished := 0
	for finished < flagPlayEpisodes {
		act := sim.DiscreteActions[actRNG.Intn(0, sim.NumActions)]
		ep.Agent.ActionDX = act.DX
		ep.Agent.ActionDY = act.DY

		res := ep.Step()
		if res == nil {
			continue
		}
		finished++
		fmt.Printf("%4d %12d %8d %10.2f %-12s\n",
			finished, res.LevelSeed, res.Steps, res.Reward, res.Outcome)
		if store != nil {
			if err := store.SaveEpisode(*res); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving episode: %v\n", err)
				os.Exit(1)
			}
		}
	}
}
