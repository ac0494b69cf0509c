package render

import "github.com/vovakirdan/gridrun/internal/sim"

// Audio event labels. Each observation in data-collection mode carries a
// fixed-size 0/1 vector indexed by these slots.
const (
	AudioLadderClimbing = 0
	AudioJump           = 1
	AudioWalk           = 2
	AudioBumpedHead     = 3
	AudioKilled         = 4
	AudioCoin           = 5
	AudioKilledMonster  = 6
	AudioGem            = 7
	AudioPowerUpMode    = 8

	AudioMapSize = 9
)

// AudioLabels derives the audio-event vector for the current frame from
// the agent's event flags. Periodic events (climbing, walking) fire every
// fifth frame to match their animation cadence.
func AudioLabels(e *sim.Episode, buf []uint8) {
	for i := 0; i < AudioMapSize; i++ {
		buf[i] = 0
	}
	a := e.Agent

	if a.PowerUpMode {
		buf[AudioPowerUpMode] = 1
	}
	if a.CollectedGem {
		buf[AudioGem] = 1
	}
	if a.Killed && a.KilledAnimFrames == sim.DeathAnimLength {
		buf[AudioKilled] = 1
	}
	if a.KilledMonster {
		buf[AudioKilledMonster] = 1
	}
	if a.BumpedHead {
		buf[AudioBumpedHead] = 1
	}
	if a.CollectedCoin {
		buf[AudioCoin] = 1
	}

	switch {
	case a.LadderMode && a.TimeAlive%5 == 0:
		buf[AudioLadderClimbing] = 1
	case a.VY == e.Grid.Physics.MaxJump:
		buf[AudioJump] = 1
	case a.VX != 0 && a.VY == 0 && a.Spring == 0 && a.TimeAlive%5 == 0:
		buf[AudioWalk] = 1
	}
}
