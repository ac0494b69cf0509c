package sim

import "testing"

// testAgent loads a hand-built level and returns an agent standing at the
// spawn cell (2, 2).
func testAgent(t *testing.T, rows []string) (*Grid, *Agent) {
	t.Helper()
	g := LoadLevel(rows, DefaultPhysics(), NewRNG(1))
	return g, NewAgent(g, DefaultRewards(), 1000)
}

func TestActionTable(t *testing.T) {
	if NumActions != 7 {
		t.Fatalf("NumActions = %d, want 7", NumActions)
	}
	if got := ActionIndex(0, -1); got != 6 {
		t.Errorf("ActionIndex(0,-1) = %d, want 6", got)
	}
	if got := ActionIndex(1, 1); got != 4 {
		t.Errorf("ActionIndex(1,1) = %d, want 4", got)
	}
	if got := ActionIndex(0, 0); got != 0 {
		t.Errorf("ActionIndex(0,0) = %d, want 0", got)
	}
}

func TestAgentCollectsCoin(t *testing.T) {
	g, a := testAgent(t, []string{
		"A......A",
		"A1.....A", // second coin, out of reach
		"A......A",
		"A....1.A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	a.ActionDX = 1
	for i := 0; i < 40; i++ {
		a.Step()
	}

	if !a.CollectedCoin {
		t.Fatal("agent walked past the coin without collecting it")
	}
	if g.Coins != 1 {
		t.Errorf("Coins = %d, want 1", g.Coins)
	}
	if a.RewardSum != 1 {
		t.Errorf("RewardSum = %v, want 1", a.RewardSum)
	}
	if g.Terminated {
		t.Error("level terminated with a coin remaining")
	}
}

func TestAgentLastCoinCompletesLevel(t *testing.T) {
	g, a := testAgent(t, []string{
		"A......A",
		"A......A",
		"A......A",
		"A....1.A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	a.ActionDX = 1
	for i := 0; i < 40 && !g.Terminated; i++ {
		a.Step()
	}

	if !g.Terminated {
		t.Fatal("collecting the last coin did not terminate the level")
	}
	if g.Coins != 0 {
		t.Errorf("Coins = %d, want 0", g.Coins)
	}
	// Completion pays its own reward, not the per-coin one.
	if a.RewardSum != 10 {
		t.Errorf("RewardSum = %v, want 10", a.RewardSum)
	}
	if a.FinishedLevelFrames != FinishedLevelAnimLength {
		t.Errorf("FinishedLevelFrames = %d, want %d", a.FinishedLevelFrames, FinishedLevelAnimLength)
	}
	if a.Killed {
		t.Error("agent marked killed on completion")
	}
}

func TestAgentGemPowerUp(t *testing.T) {
	g, a := testAgent(t, []string{
		"A......A",
		"A......A",
		"A......A",
		"A....2.A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	a.ActionDX = 1
	for i := 0; i < 40; i++ {
		a.Step()
	}

	if !a.CollectedGem || !a.PowerUpMode {
		t.Fatal("gem did not enable power-up mode")
	}
	if a.RewardSum != 1 {
		t.Errorf("RewardSum = %v, want 1", a.RewardSum)
	}
	if g.Terminated {
		t.Error("gem pickup must not terminate the level")
	}
}

func TestAgentCoinClearsPowerUp(t *testing.T) {
	_, a := testAgent(t, []string{
		"A1.....A", // keeps the level from completing
		"A......A",
		"A......A",
		"A...2.1A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	a.ActionDX = 1
	for i := 0; i < 60; i++ {
		a.Step()
	}

	if !a.CollectedGem || !a.CollectedCoin {
		t.Fatal("agent did not pick up both items")
	}
	if a.PowerUpMode {
		t.Error("coin pickup should clear power-up mode")
	}
}

func TestAgentDiesOnSpike(t *testing.T) {
	g, a := testAgent(t, []string{
		"A......A",
		"A......A",
		"A......A",
		"A....P.A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	a.ActionDX = 1
	for i := 0; i < 40 && !g.Terminated; i++ {
		a.Step()
	}

	if !a.Killed {
		t.Fatal("agent survived the spike")
	}
	if !g.Terminated {
		t.Error("death must terminate the level")
	}
	if a.KilledAnimFrames != DeathAnimLength {
		t.Errorf("KilledAnimFrames = %d, want %d", a.KilledAnimFrames, DeathAnimLength)
	}
}

func TestAgentFallsIntoLava(t *testing.T) {
	g, a := testAgent(t, []string{
		"A......A",
		"A......A",
		"A......A",
		"A......A",
		"ASS^^SSA",
		"AAAAAAAA",
	})

	a.ActionDX = 1
	for i := 0; i < 60 && !g.Terminated; i++ {
		a.Step()
	}

	if !a.Killed {
		t.Fatal("agent crossed the lava pit unharmed")
	}
}

func TestAgentSpringJumpAndHeadBump(t *testing.T) {
	_, a := testAgent(t, []string{
		"A......A",
		"ASSSSSSA", // low ceiling
		"A......A",
		"A......A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	// Charge the spring, then release.
	a.ActionDY = 1
	a.Step()
	a.Step()
	a.ActionDY = 0
	for i := 0; i < 10; i++ {
		a.Step()
	}

	if !a.BumpedHead {
		t.Error("jump under a low ceiling should bump the head")
	}
	if a.Y >= 4 {
		t.Errorf("agent ended inside the ceiling at y=%v", a.Y)
	}
}

func TestAgentStepsDownThroughCrate(t *testing.T) {
	g, a := testAgent(t, []string{
		"A......A",
		"A......A",
		"A...##.A",
		"A......A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	// Drop the agent onto the crates.
	a.X = 4
	a.Y = 5
	for i := 0; i < 30; i++ {
		a.Step()
	}
	if a.Y != 4 {
		t.Fatalf("agent should rest on the crate top at y=4, got %v", a.Y)
	}

	// Holding down passes through the crate to the floor.
	a.ActionDY = -1
	for i := 0; i < 30; i++ {
		a.Step()
	}
	if a.Y != 2 {
		t.Errorf("agent should land on the floor at y=2, got %v", a.Y)
	}
	if g.Terminated {
		t.Error("stepping through a crate must not terminate the level")
	}
}

func TestAgentClimbsLadder(t *testing.T) {
	_, a := testAgent(t, []string{
		"A......A",
		"A...=..A",
		"A...=..A",
		"A...=..A",
		"ASSSSSSA",
		"AAAAAAAA",
	})

	a.X = 4
	a.ActionDY = 1
	sawLadderMode := false
	for i := 0; i < 40; i++ {
		a.Step()
		sawLadderMode = sawLadderMode || a.LadderMode
	}

	if !sawLadderMode {
		t.Error("agent on a ladder with vertical input should enter ladder mode")
	}
	if a.Y <= 2.5 {
		t.Errorf("agent did not climb, y=%v", a.Y)
	}
}

func TestAgentTimeout(t *testing.T) {
	g := LoadLevel([]string{
		"A......A",
		"A......A",
		"ASSSSSSA",
		"AAAAAAAA",
	}, DefaultPhysics(), NewRNG(1))
	a := NewAgent(g, DefaultRewards(), 5)

	for i := 0; i < 6; i++ {
		a.Step()
	}
	if !g.Terminated {
		t.Error("exceeding the timeout must terminate the level")
	}
	if a.Killed {
		t.Error("timeout is not a death")
	}
}

func TestAgentStaysInBounds(t *testing.T) {
	p := DefaultParams()
	e := NewEpisode(p, NewRNG(77))
	actRNG := NewRNG(123)

	for i := 0; i < 2000; i++ {
		act := DiscreteActions[actRNG.Intn(0, NumActions)]
		e.Agent.ActionDX = act.DX
		e.Agent.ActionDY = act.DY
		e.Step()
		a := e.Agent
		g := e.Grid
		if a.X < 0 || a.X >= float64(g.W) || a.Y < 0 || a.Y >= float64(g.H) {
			t.Fatalf("step %d: agent out of bounds at (%v, %v)", i, a.X, a.Y)
		}
	}
}
