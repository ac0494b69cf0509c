package render

import (
	"testing"

	"github.com/vovakirdan/gridrun/internal/sim"
)

func testEpisode() *sim.Episode {
	return sim.NewEpisode(sim.DefaultParams(), sim.NewRNG(1))
}

func TestRasterizerPaintsObservation(t *testing.T) {
	e := testEpisode()
	buf := make([]uint8, ResW*ResH*3)
	NewRasterizer().RenderAgent(e, buf)

	distinct := map[uint8]bool{}
	for _, b := range buf {
		distinct[b] = true
	}
	if len(distinct) < 3 {
		t.Errorf("observation has only %d distinct byte values; expected a painted scene", len(distinct))
	}
}

func TestRasterizerDeterministic(t *testing.T) {
	e := testEpisode()
	r := NewRasterizer()

	a := make([]uint8, ResW*ResH*3)
	b := make([]uint8, ResW*ResH*3)
	r.RenderAgent(e, a)
	r.RenderAgent(e, b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("render differs at byte %d for an unchanged episode", i)
		}
	}
}

func TestASCIIDimensions(t *testing.T) {
	e := testEpisode()
	rows := ASCII(e)
	if len(rows) != e.Grid.H {
		t.Fatalf("got %d rows, want %d", len(rows), e.Grid.H)
	}
	for y, row := range rows {
		if len(row) != e.Grid.W {
			t.Fatalf("row %d has %d columns, want %d", y, len(row), e.Grid.W)
		}
	}
}

func TestASCIIShowsAgent(t *testing.T) {
	e := testEpisode()
	found := false
	for _, row := range ASCII(e) {
		for i := 0; i < len(row); i++ {
			if row[i] == '@' {
				found = true
			}
		}
	}
	if !found {
		t.Error("agent glyph missing from the rendered level")
	}
}

func TestAudioLabels(t *testing.T) {
	e := testEpisode()
	buf := make([]uint8, AudioMapSize)

	a := e.Agent
	a.CollectedCoin = true
	a.PowerUpMode = true
	AudioLabels(e, buf)

	if buf[AudioCoin] != 1 {
		t.Error("coin label not set")
	}
	if buf[AudioPowerUpMode] != 1 {
		t.Error("power-up label not set")
	}
	if buf[AudioKilled] != 0 {
		t.Error("killed label set without a death")
	}

	// Labels are recomputed from scratch every call.
	a.CollectedCoin = false
	a.PowerUpMode = false
	AudioLabels(e, buf)
	for i, v := range buf {
		if i != AudioWalk && i != AudioLadderClimbing && v != 0 {
			t.Errorf("slot %d still set after flags cleared", i)
		}
	}
}

func TestAudioLabelsJump(t *testing.T) {
	e := testEpisode()
	buf := make([]uint8, AudioMapSize)

	e.Agent.VY = e.Grid.Physics.MaxJump
	AudioLabels(e, buf)
	if buf[AudioJump] != 1 {
		t.Error("jump label not set at launch velocity")
	}
}
