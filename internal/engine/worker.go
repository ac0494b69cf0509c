package engine

import "github.com/vovakirdan/gridrun/internal/render"

// worker pulls slots off the shared queue and steps them. One slot is
// stepped by exactly one worker at a time: a slot is only enqueued once
// per submit, and the handshake flags catch double-dispatch bugs.
func (e *Engine) worker(id int) {
	defer e.wg.Done()
	for {
		select {
		case <-e.done:
			return
		case s := <-e.todo:
			e.stepSlot(s)
		}
	}
}

func (e *Engine) stepSlot(s *slot) {
	s.hsMu.Lock()
	if !s.ready || s.inProgress {
		s.hsMu.Unlock()
		panic("engine: slot dispatched out of order")
	}
	s.inProgress = true
	act := s.action
	s.hsMu.Unlock()

	s.mu.Lock()
	s.ep.Agent.ActionDX = act.DX
	s.ep.Agent.ActionDY = act.DY
	res := s.ep.Step()

	b := s.batch
	b.renderer.RenderAgent(s.ep, s.obs)
	if b.collect {
		b.renderer.RenderVideo(s.ep, s.video)
		render.AudioLabels(s.ep, s.audio)
	}
	s.ep.Agent.ClearEventFlags()
	s.mu.Unlock()

	if res != nil && e.sink != nil {
		if err := e.sink.SaveEpisode(*res); err != nil {
			e.logger.Warn("could not save episode result", "error", err)
		}
	}

	s.hsMu.Lock()
	s.ready = false
	s.inProgress = false
	s.hsMu.Unlock()

	b.latchMu.Lock()
	b.pending--
	if b.pending == 0 {
		b.latchCond.Broadcast()
	}
	b.latchMu.Unlock()
}
