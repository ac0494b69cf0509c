package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridrun/internal/engine"
	"github.com/vovakirdan/gridrun/internal/platform/tui"
	"github.com/vovakirdan/gridrun/internal/storage"
)

var (
	flagWatchBatch int
	flagWatchFPS   int
	flagWatchSave  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch live episodes under a random policy",
	Long: `Step a batch of episodes with uniformly random actions and draw one
slot's world in the terminal.

Controls:
  Left/Right - Switch displayed slot
  P/Space    - Pause
  Q/Ctrl+C   - Quit

Examples:
  gridrun watch
  gridrun watch --batch 4 --fps 30
  gridrun watch --save`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagWatchBatch, "batch", 1, "Number of episode slots")
	watchCmd.Flags().IntVar(&flagWatchFPS, "fps", 15, "Display frame rate")
	watchCmd.Flags().BoolVar(&flagWatchSave, "save", false, "Record finished episodes to the database")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(cfg.ToSimParams(), cfg.ToEngineConfig())

	if flagWatchSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening episodes database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		eng.SetSink(store)
	}

	eng.Start()
	defer eng.Shutdown()

	handle := eng.CreateBatch(flagWatchBatch, 0, false)
	defer eng.CloseBatch(handle)

	m := tui.NewModel(eng, handle, flagWatchFPS)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}
