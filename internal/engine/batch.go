package engine

import (
	"sync"

	"github.com/vovakirdan/gridrun/internal/render"
	"github.com/vovakirdan/gridrun/internal/sim"
)

// StepObservation is what the training loop reads back for one slot after
// a completed step.
type StepObservation struct {
	// Obs is the ResW x ResH x 3 policy observation.
	Obs []uint8
	// Reward accumulated since the previous read.
	Reward float64
	// Done reports that the frame is the terminal frame of an episode.
	Done bool
	// NewLevel reports that the level was regenerated since the last read.
	NewLevel bool

	// Video and Audio are only populated in data-collection batches.
	Video []uint8
	Audio []uint8
}

// Batch is a group of episode slots stepped together. The pending counter
// is the countdown latch: SubmitActions arms it at the slot count and each
// worker decrements it once, broadcasting at zero for Wait.
type Batch struct {
	handle   int
	slots    []*slot
	renderer render.Renderer
	collect  bool

	latchMu   sync.Mutex
	latchCond *sync.Cond
	pending   int
}

// slot is one episode plus its observation buffers. mu guards the episode
// state; the handshake fields are guarded by hsMu so the viewer's Inspect
// never blocks a submit.
type slot struct {
	batch *Batch
	ep    *sim.Episode

	mu sync.Mutex

	hsMu       sync.Mutex
	ready      bool
	inProgress bool
	action     sim.Action

	obs   []uint8
	video []uint8
	audio []uint8
}
