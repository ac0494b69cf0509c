package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridrun/internal/engine"
	"github.com/vovakirdan/gridrun/internal/sim"
)

// Model is the Bubble Tea model for the episode viewer. It owns one engine
// batch and submits a uniformly random action per slot per tick.
type Model struct {
	eng    *engine.Engine
	handle int
	fps    int

	slot     int // which slot is displayed
	paused   bool
	quitting bool

	rng *sim.RNG

	view      string
	reward    float64
	steps     int
	episodes  int
	lastDone  bool
	termWidth int
}

// NewModel creates a viewer model over an already started engine batch.
func NewModel(eng *engine.Engine, handle, fps int) Model {
	if fps <= 0 {
		fps = 15
	}
	return Model{
		eng:    eng,
		handle: handle,
		fps:    fps,
		rng:    sim.NewRNG(uint32(time.Now().UnixNano())),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "p", " ":
		m.paused = !m.paused
	case "left", "h":
		if m.slot > 0 {
			m.slot--
		}
	case "right", "l":
		if m.slot < m.eng.BatchSize(m.handle)-1 {
			m.slot++
		}
	}
	return m, nil
}

// handleTick runs one engine step and refreshes the displayed slot.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.fps)
	}

	n := m.eng.BatchSize(m.handle)
	actions := make([]int, n)
	for i := range actions {
		actions[i] = m.rng.Intn(0, sim.NumActions)
	}
	m.eng.SubmitActions(m.handle, actions)
	obs := m.eng.Wait(m.handle)

	o := obs[m.slot]
	m.reward += o.Reward
	m.steps++
	m.lastDone = o.Done
	if o.NewLevel && m.steps > 1 {
		m.episodes++
		m.reward = 0
	}

	m.eng.Inspect(m.handle, m.slot, func(e *sim.Episode) {
		m.view = renderEpisode(e)
	})

	return m, tickCmd(m.fps)
}

// View renders the world plus a one-line status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	state := pauseLabel(m.paused)
	if m.lastDone {
		state = "terminal"
	}
	status := fmt.Sprintf(
		"slot %d/%d  episodes %d  reward %.1f  %s",
		m.slot+1, m.eng.BatchSize(m.handle), m.episodes, m.reward, state,
	)
	if m.termWidth > 0 && len(status) > m.termWidth {
		status = status[:m.termWidth]
	}
	help := "←/→ slot · p pause · q quit"
	return m.view + "\n" + statusStyle.Render(status) + "\n" + helpStyle.Render(help)
}

func pauseLabel(paused bool) string {
	if paused {
		return "PAUSED"
	}
	return "running"
}
