package sim

import "math"

// Outcome labels recorded per finished episode.
const (
	OutcomeCompleted = "completed"
	OutcomeKilled    = "killed"
	OutcomeTimeout   = "timeout"
)

// EpisodeResult summarizes one finished episode for telemetry sinks.
type EpisodeResult struct {
	GameID    int
	LevelSeed uint32
	Steps     int
	Reward    float64
	Outcome   string
}

// Episode owns one grid and one agent and drives the
// running/terminated/regenerate cycle. The episode fully owns its grid and
// monsters; nothing else holds a reference to them across a reset.
type Episode struct {
	Grid  *Grid
	Agent *Agent

	// GameID increases by one per level regeneration, starting at 0 for
	// the first level.
	GameID int

	// Time counts collector steps across the life of the episode slot.
	Time int

	// LevelSeed is the seed the current grid was generated from.
	LevelSeed uint32

	params Params
	rng    *RNG

	// CollectData enables the frozen death/completion animation replay
	// used when recording videos; training configurations leave it off.
	CollectData bool
}

// NewEpisode creates an episode slot with its first level generated. The
// rng is owned by the episode and drives level-seed draws and monster
// pause randomization.
func NewEpisode(params Params, rng *RNG) *Episode {
	e := &Episode{
		params: params,
		rng:    rng,
		GameID: -1,
	}
	e.Reset()
	return e
}

// drawLevelSeed picks the next level seed: uniformly from the fixed pool
// when a level set is configured, otherwise a fresh 32-bit draw.
func (e *Episode) drawLevelSeed() uint32 {
	if n := len(e.params.LevelSeeds); n > 0 {
		return e.params.LevelSeeds[e.rng.Intn(0, n)]
	}
	return e.rng.Uint32()
}

// Reset regenerates the level and agent wholesale. GameID increments and
// NewLevel stays true until the next collector read.
func (e *Episode) Reset() {
	e.LevelSeed = e.drawLevelSeed()
	e.Grid = GenerateLevel(e.params.Level, e.params.Physics, e.LevelSeed)

	if e.Agent == nil {
		e.Agent = NewAgent(e.Grid, e.params.Rewards, e.params.Level.Timeout)
	} else {
		e.Agent.Rebind(e.Grid)
	}

	a := e.Agent
	a.Killed = false
	a.PreparingJump = false
	a.KilledMonster = false
	a.BumpedHead = false
	a.KilledAnimFrames = 0
	a.FinishedLevelFrames = 0
	a.PowerUpMode = false

	e.Time = 0
	e.GameID++
}

// result captures the episode summary before Reset wipes the agent.
func (e *Episode) result() EpisodeResult {
	outcome := OutcomeTimeout
	switch {
	case e.Agent.Killed:
		outcome = OutcomeKilled
	case e.Grid.Coins == 0:
		outcome = OutcomeCompleted
	}
	return EpisodeResult{
		GameID:    e.GameID,
		LevelSeed: e.LevelSeed,
		Steps:     e.Agent.TimeAlive,
		Reward:    e.Agent.RewardSum,
		Outcome:   outcome,
	}
}

// stepMonsters advances all live monsters and resolves agent contact. For
// each monster the kill check runs before the death check, so an overlap
// that satisfies both kills the monster, not the agent.
func (e *Episode) stepMonsters() {
	a := e.Agent
	for _, m := range e.Grid.Monsters {
		if m.Dead {
			continue
		}
		m.Step(e.Grid, e.rng)
		dx := math.Abs(m.X - a.X)
		dy := a.Y - m.Y
		if dx < 0.6 && dy < 1.0 && dy > 0.0 && m.Species().Killable {
			m.Dead = true
			m.DyingFrames = MonsterDeathAnimLength - 1
			a.addReward(a.rewards.KillMonster)
			a.KilledMonster = true
		} else if dx+math.Abs(m.Y-a.Y) < 1.0 && !a.PowerUpMode {
			e.Grid.Terminated = true
			a.Killed = true
			a.KilledAnimFrames = DeathAnimLength
			a.addReward(-a.rewards.DiePenalty)
		}
	}
}

// Step advances the episode exactly one collector step: monsters and their
// agent interactions, then the agent's own physics step, then — if the
// previous frame terminated the level — the regeneration. Termination is
// reported on the step after it happens, so the collector observes the
// terminal frame before the level is replaced.
//
// Returns a non-nil result exactly once per finished episode.
func (e *Episode) Step() *EpisodeResult {
	a := e.Agent

	if e.CollectData && (a.KilledAnimFrames > 1 || a.FinishedLevelFrames > 1) {
		// Replay a few frames of the death or completion animation
		// instead of simulating. A killed agent stays frozen; a finishing
		// agent keeps falling into the coin.
		a.KilledAnimFrames--
		a.FinishedLevelFrames--
		if a.FinishedLevelFrames > 1 {
			a.Step()
		}
		return nil
	}

	e.Time++
	gameOver := e.Grid.Terminated

	e.stepMonsters()

	var res *EpisodeResult
	if gameOver {
		r := e.result()
		res = &r
	}
	a.GameOver = gameOver
	if !a.Killed {
		a.Step()
	}

	if gameOver {
		e.Reset()
	}
	return res
}
