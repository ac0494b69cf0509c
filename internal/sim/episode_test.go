package sim

import "testing"

// contactEpisode builds an episode on a hand-made level with one walking
// monster right next to the agent, so a contact resolves on the first step.
func contactEpisode(t *testing.T, speciesIdx int) *Episode {
	t.Helper()
	e := NewEpisode(DefaultParams(), NewRNG(1))

	g := LoadLevel([]string{
		"AAAAAAAAAA",
		"A........A",
		"A...M....A",
		"ASSSSSSSSA",
		"AAAAAAAAAA",
	}, DefaultPhysics(), NewRNG(1))
	if len(g.Monsters) != 1 {
		t.Fatalf("got %d monsters, want 1", len(g.Monsters))
	}
	g.Monsters[0].SpeciesIdx = speciesIdx

	e.Grid = g
	e.Agent.Rebind(g)
	return e
}

func TestEpisodeTimeout(t *testing.T) {
	p := DefaultParams()
	p.Level.Timeout = 30
	p.Level.Platforms = 0 // bare floor, nothing can end the episode early
	e := NewEpisode(p, NewRNG(5))

	var res *EpisodeResult
	for i := 0; i < 100 && res == nil; i++ {
		res = e.Step()
	}
	if res == nil {
		t.Fatal("no result after exceeding the timeout")
	}
	if res.Outcome != OutcomeTimeout {
		t.Errorf("Outcome = %q, want %q", res.Outcome, OutcomeTimeout)
	}
	if res.GameID != 0 {
		t.Errorf("GameID = %d, want 0", res.GameID)
	}
	if e.GameID != 1 {
		t.Errorf("episode GameID after reset = %d, want 1", e.GameID)
	}
	if !e.Grid.NewLevel {
		t.Error("regenerated grid should have NewLevel set")
	}
}

func TestEpisodeResultReportedOnce(t *testing.T) {
	p := DefaultParams()
	p.Level.Timeout = 20
	p.Level.Platforms = 0
	e := NewEpisode(p, NewRNG(5))

	results := 0
	for i := 0; i < 70; i++ {
		if e.Step() != nil {
			results++
		}
	}
	// Every regeneration reports exactly one result.
	if results != e.GameID {
		t.Errorf("got %d results across %d finished episodes", results, e.GameID)
	}
	if results == 0 {
		t.Error("no episodes finished within the step budget")
	}
}

func TestEpisodeDeterminism(t *testing.T) {
	a := NewEpisode(DefaultParams(), NewRNG(9))
	b := NewEpisode(DefaultParams(), NewRNG(9))
	if !a.Grid.Equal(b.Grid) {
		t.Fatal("same rng seed produced different first levels")
	}

	actRNG := NewRNG(4)
	for i := 0; i < 500; i++ {
		act := DiscreteActions[actRNG.Intn(0, NumActions)]
		a.Agent.ActionDX, a.Agent.ActionDY = act.DX, act.DY
		b.Agent.ActionDX, b.Agent.ActionDY = act.DX, act.DY
		a.Step()
		b.Step()
		if a.Agent.X != b.Agent.X || a.Agent.Y != b.Agent.Y {
			t.Fatalf("step %d: positions diverged", i)
		}
		if a.Agent.RewardSum != b.Agent.RewardSum {
			t.Fatalf("step %d: rewards diverged", i)
		}
	}
}

func TestEpisodeLevelSeedPool(t *testing.T) {
	p := DefaultParams()
	p.LevelSeeds = []uint32{11, 22, 33}
	e := NewEpisode(p, NewRNG(1))

	seen := map[uint32]bool{}
	for i := 0; i < 50; i++ {
		seen[e.LevelSeed] = true
		e.Reset()
	}
	for seed := range seen {
		if seed != 11 && seed != 22 && seed != 33 {
			t.Fatalf("level seed %d drawn outside the configured pool", seed)
		}
	}
}

func TestStompKillsMonster(t *testing.T) {
	e := contactEpisode(t, 2) // slimeBlock, killable

	// Agent directly above the monster, within the kill window.
	m := e.Grid.Monsters[0]
	e.Agent.X = m.X + 0.2
	e.Agent.Y = m.Y + 0.5

	e.Step()

	if !m.Dead {
		t.Fatal("killable monster should die under a stomp")
	}
	if e.Agent.Killed {
		t.Error("agent must survive a successful stomp")
	}
	if !e.Agent.KilledMonster {
		t.Error("KilledMonster flag not set")
	}
	if e.Agent.RewardSum != DefaultRewards().KillMonster {
		t.Errorf("RewardSum = %v, want %v", e.Agent.RewardSum, DefaultRewards().KillMonster)
	}
}

func TestStompBeatsContactDeath(t *testing.T) {
	// The overlap satisfies both the kill window and the contact radius;
	// the kill must win.
	e := contactEpisode(t, 5) // snail, killable

	m := e.Grid.Monsters[0]
	e.Agent.X = m.X + 0.1
	e.Agent.Y = m.Y + 0.3

	e.Step()

	if !m.Dead {
		t.Fatal("overlapping stomp should kill the monster")
	}
	if e.Agent.Killed {
		t.Error("agent died in an overlap that satisfies the kill window")
	}
}

func TestUnkillableMonsterKillsAgent(t *testing.T) {
	e := contactEpisode(t, 3) // slimeBlue, not killable

	m := e.Grid.Monsters[0]
	e.Agent.X = m.X + 0.2
	e.Agent.Y = m.Y + 0.5

	e.Step()

	if m.Dead {
		t.Fatal("unkillable monster died")
	}
	if !e.Agent.Killed {
		t.Error("contact with an unkillable monster should kill the agent")
	}
	if !e.Grid.Terminated {
		t.Error("agent death must terminate the level")
	}
}

func TestPowerUpModeGrantsImmunity(t *testing.T) {
	e := contactEpisode(t, 3) // slimeBlue, not killable

	m := e.Grid.Monsters[0]
	e.Agent.X = m.X + 0.1
	e.Agent.Y = m.Y // side contact, not a stomp
	e.Agent.PowerUpMode = true

	e.Step()

	if e.Agent.Killed {
		t.Error("powered-up agent must survive monster contact")
	}
	if e.Grid.Terminated {
		t.Error("level terminated despite power-up immunity")
	}
}
