package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridrun/internal/sim"
)

var genCmd = &cobra.Command{
	Use:   "gen [seed]",
	Short: "Generate a level from a seed and print it",
	Long: `Generate one level from the given seed and print its cell codes, top
row first. The same seed and config always produce the same level.

Examples:
  gridrun gen 42
  gridrun gen 42 --config ./my-config.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGen,
}

func runGen(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := uint32(1)
	if len(args) == 1 {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: seed must be a 32-bit unsigned integer: %v\n", err)
			os.Exit(1)
		}
		seed = uint32(v)
	} else if flagSeed != 0 {
		seed = flagSeed
	}

	params := cfg.ToSimParams()
	g := sim.GenerateLevel(params.Level, params.Physics, seed)

	fmt.Printf("seed %d  spawn (%d, %d)  coins %d  monsters %d\n\n",
		seed, g.SpawnX, g.SpawnY, g.Coins, len(g.Monsters))
	for _, row := range g.Rows() {
		fmt.Println(row)
	}
}
