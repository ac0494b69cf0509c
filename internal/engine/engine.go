// Package engine runs many episodes concurrently and exposes the batched
// submit/wait stepping contract a vectorized training loop drives. A fixed
// worker pool steps episode slots from a shared queue; each batch carries a
// countdown latch so Wait blocks until every slot in the batch has stepped
// exactly once.
package engine

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridrun/internal/render"
	"github.com/vovakirdan/gridrun/internal/sim"
)

// EpisodeSink receives a summary of every finished episode. This allows the
// engine to record results without depending on the storage package.
type EpisodeSink interface {
	SaveEpisode(res sim.EpisodeResult) error
}

// Config holds engine configuration.
type Config struct {
	Threads int    // Worker pool size
	Seed    uint32 // Master seed for per-slot streams
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Threads: 4,
		Seed:    1,
	}
}

// Engine owns the episode slots, the worker pool, and the batch registry.
// All public methods are safe for concurrent use, with the usual caveat
// that a single batch is driven by one training loop: SubmitActions and
// Wait on the same handle must alternate.
type Engine struct {
	cfg    Config
	params sim.Params
	logger *log.Logger
	sink   EpisodeSink // Optional, can be nil

	mu        sync.Mutex
	batches   map[int]*Batch
	handleSeq int
	seedRNG   *sim.RNG
	started   bool

	todo chan *slot
	done chan struct{}
	wg   sync.WaitGroup
}

// New creates an engine. Workers do not run until Start.
func New(params sim.Params, cfg Config) *Engine {
	if cfg.Threads <= 0 {
		cfg.Threads = DefaultConfig().Threads
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridrun",
	})
	return &Engine{
		cfg:       cfg,
		params:    params,
		logger:    logger,
		batches:   make(map[int]*Batch),
		handleSeq: 100,
		seedRNG:   sim.NewRNG(cfg.Seed),
		todo:      make(chan *slot, 256),
		done:      make(chan struct{}),
	}
}

// SetSink sets the optional episode result sink.
func (e *Engine) SetSink(sink EpisodeSink) {
	e.sink = sink
}

// Logger returns the engine's logger, for commands that want to share it.
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// Start launches the worker pool. Calling Start again is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	e.logger.Info("starting workers", "threads", e.cfg.Threads)
	for i := 0; i < e.cfg.Threads; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}
}

// Shutdown stops the worker pool and waits for workers to drain. Batches
// become unusable afterwards.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	e.mu.Unlock()

	close(e.done)
	e.wg.Wait()
	e.logger.Info("workers stopped")
}

// CreateBatch allocates n episode slots and returns an opaque handle.
// Handles are never zero and never reused. collectExtra enables the
// high-res frame and audio-label buffers used in data-collection mode.
func (e *Engine) CreateBatch(n int, zoom float64, collectExtra bool) int {
	if n <= 0 {
		panic("engine: batch size must be positive")
	}
	ras := render.NewRasterizer()
	if zoom > 0 {
		ras.Zoom = zoom
	}

	b := &Batch{
		slots:    make([]*slot, n),
		renderer: ras,
		collect:  collectExtra,
	}
	b.latchCond = sync.NewCond(&b.latchMu)

	e.mu.Lock()
	handle := e.handleSeq
	e.handleSeq++
	for i := 0; i < n; i++ {
		params := e.params
		rng := sim.NewRNG(e.seedRNG.Uint32())
		ep := sim.NewEpisode(params, rng)
		ep.CollectData = collectExtra
		s := &slot{
			batch: b,
			ep:    ep,
			obs:   make([]uint8, render.ResW*render.ResH*3),
		}
		if collectExtra {
			s.video = make([]uint8, render.Video*render.Video*3)
			s.audio = make([]uint8, render.AudioMapSize)
		}
		b.slots[i] = s
	}
	e.batches[handle] = b
	e.mu.Unlock()

	b.handle = handle
	e.logger.Info("batch created", "handle", handle, "slots", n, "collect", collectExtra)
	return handle
}

// CloseBatch releases a batch's slots. Handle 0 is accepted and ignored,
// so callers can close unconditionally. Closing while a Wait is pending
// is a caller bug.
func (e *Engine) CloseBatch(handle int) {
	if handle == 0 {
		return
	}
	e.mu.Lock()
	_, ok := e.batches[handle]
	delete(e.batches, handle)
	e.mu.Unlock()
	if !ok {
		e.logger.Warn("close of unknown batch", "handle", handle)
		return
	}
	e.logger.Info("batch closed", "handle", handle)
}

// batch looks up a handle or panics: an unknown handle is always a caller
// bug, not a runtime condition.
func (e *Engine) batch(handle int) *Batch {
	e.mu.Lock()
	b, ok := e.batches[handle]
	e.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("engine: unknown batch handle %d", handle))
	}
	return b
}

// SubmitActions hands one action per slot to the worker pool. Actions are
// indices into sim.DiscreteActions. Panics if the batch still has a step
// in flight (submit before the matching Wait) or on a malformed action.
func (e *Engine) SubmitActions(handle int, actions []int) {
	b := e.batch(handle)
	if len(actions) != len(b.slots) {
		panic(fmt.Sprintf("engine: got %d actions for %d slots", len(actions), len(b.slots)))
	}

	b.latchMu.Lock()
	if b.pending != 0 {
		b.latchMu.Unlock()
		panic("engine: actions submitted before previous step completed")
	}
	b.pending = len(b.slots)
	b.latchMu.Unlock()

	for i, s := range b.slots {
		if actions[i] < 0 || actions[i] >= sim.NumActions {
			panic(fmt.Sprintf("engine: action index %d out of range", actions[i]))
		}
		act := sim.DiscreteActions[actions[i]]
		s.hsMu.Lock()
		if s.ready {
			s.hsMu.Unlock()
			panic("engine: slot already has a pending action")
		}
		s.action = act
		s.ready = true
		s.hsMu.Unlock()
		e.todo <- s
	}
}

// Wait blocks until every slot in the batch has stepped, then drains the
// per-slot observations. The returned slice is freshly allocated; reward
// and event flags are cleared as they are read.
func (e *Engine) Wait(handle int) []StepObservation {
	b := e.batch(handle)

	b.latchMu.Lock()
	for b.pending != 0 {
		b.latchCond.Wait()
	}
	b.latchMu.Unlock()

	out := make([]StepObservation, len(b.slots))
	for i, s := range b.slots {
		s.mu.Lock()
		o := StepObservation{
			Obs:      append([]uint8(nil), s.obs...),
			Reward:   s.ep.Agent.Reward,
			Done:     s.ep.Agent.GameOver,
			NewLevel: s.ep.Grid.NewLevel,
		}
		if b.collect {
			o.Video = append([]uint8(nil), s.video...)
			o.Audio = append([]uint8(nil), s.audio...)
		}
		s.ep.Agent.Reward = 0
		s.ep.Agent.GameOver = false
		s.ep.Grid.NewLevel = false
		s.mu.Unlock()
		out[i] = o
	}
	return out
}

// Inspect runs fn against one slot's episode under its state lock. Used by
// the watch viewer to draw the live world without racing the workers.
func (e *Engine) Inspect(handle, idx int, fn func(*sim.Episode)) {
	b := e.batch(handle)
	if idx < 0 || idx >= len(b.slots) {
		panic(fmt.Sprintf("engine: slot index %d out of range", idx))
	}
	s := b.slots[idx]
	s.mu.Lock()
	fn(s.ep)
	s.mu.Unlock()
}

// BatchSize returns the number of slots in a batch.
func (e *Engine) BatchSize(handle int) int {
	return len(e.batch(handle).slots)
}
