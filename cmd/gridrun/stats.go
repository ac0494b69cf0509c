package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridrun/internal/storage"
)

var flagStatsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded episode statistics",
	Long: `Display aggregate statistics over recorded episodes, grouped by
outcome, plus the highest-reward episodes.

Examples:
  gridrun stats
  gridrun stats --top 20`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsTop, "top", 10, "Number of top episodes to show")
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening episodes database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	total, err := store.EpisodeCount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading episode count: %v\n", err)
		os.Exit(1)
	}
	if total == 0 {
		fmt.Println("No episodes recorded yet. Run 'gridrun watch --save' first.")
		return
	}

	stats, err := store.StatsByOutcome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statistics: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Episodes recorded: %d\n\n", total)
	fmt.Printf("%-12s %8s %10s %10s %10s\n", "OUTCOME", "COUNT", "AVG STEPS", "AVG RWD", "MAX RWD")
	for _, s := range stats {
		fmt.Printf("%-12s %8d %10.1f %10.2f %10.2f\n",
			s.Outcome, s.Episodes, s.AvgSteps, s.AvgReward, s.MaxReward)
	}

	top, err := store.TopEpisodes(flagStatsTop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading top episodes: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nTop episodes by reward:\n")
	fmt.Printf("%4s %12s %8s %10s %-12s\n", "#", "SEED", "STEPS", "REWARD", "OUTCOME")
	for i, e := range top {
		fmt.Printf("%4d %12d %8d %10.2f %-12s\n", i+1, e.LevelSeed, e.Steps, e.Reward, e.Outcome)
	}
}
