package sim

// Ladder movement constants. Ladder-mode suspends gravity and blends
// velocity toward the input at its own rates.
const (
	ladderMixRateY = 0.4
	ladderMixRateX = 0.1
	ladderMaxV     = 0.4
)

// Animation lengths in frames. The counters only advance during
// data-collection replay; in training they just mark the event.
const (
	DeathAnimLength         = 30
	FinishedLevelAnimLength = 20
)

// Action is a discrete policy action: a horizontal/vertical intent pair.
type Action struct {
	DX, DY int
}

// DiscreteActions is the fixed action table. Index 6 is the down action
// that lets the agent step through a crate top.
var DiscreteActions = [...]Action{
	{0, 0},
	{+1, 0}, // right
	{-1, 0}, // left
	{0, +1}, // jump
	{+1, +1}, // right-jump
	{-1, +1}, // left-jump
	{0, -1}, // down (step down from a crate)
}

// NumActions is the size of the discrete action table.
const NumActions = len(DiscreteActions)

// ActionIndex maps an intent pair back to its table index. Any negative
// vertical intent maps to the down action. Panics on pairs outside the
// table (caller bug).
func ActionIndex(dx, dy int) int {
	if dy == -1 {
		return NumActions - 1
	}
	for i, a := range DiscreteActions {
		if a.DX == dx && a.DY == dy {
			return i
		}
	}
	panic("sim: no discrete action for intent pair")
}

// Agent is the player body: continuous position and velocity plus the
// scoring and event state for the current episode. One agent is owned by
// exactly one episode.
type Agent struct {
	grid    *Grid
	rewards Rewards
	timeout int

	X, Y   float64
	VX, VY float64

	// Spring is the charged-jump accumulator: positive while crouched
	// preparing to jump, released as upward velocity.
	Spring float64

	FacingRight bool
	LadderMode  bool

	ActionDX, ActionDY int

	TimeAlive int

	// Reward accumulates since the last collector read; RewardSum over the
	// whole episode.
	Reward    float64
	RewardSum float64
	GameOver  bool

	Killed        bool
	PreparingJump bool
	KilledMonster bool
	BumpedHead    bool
	CollectedCoin bool
	CollectedGem  bool
	PowerUpMode   bool

	KilledAnimFrames   int
	FinishedLevelFrames int

	// Whether the agent had ground support during the current step.
	support bool
}

// NewAgent creates an agent bound to a grid, placed at the spawn cell.
func NewAgent(g *Grid, rewards Rewards, timeout int) *Agent {
	a := &Agent{rewards: rewards, timeout: timeout}
	a.Rebind(g)
	return a
}

// Rebind attaches the agent to a freshly generated grid and reinitializes
// movement state. Reward flags are reset separately by the episode so the
// collector still observes the final frame of the previous level.
func (a *Agent) Rebind(g *Grid) {
	a.grid = g
	a.X = float64(g.SpawnX)
	a.Y = float64(g.SpawnY)
	a.ActionDX = 0
	a.ActionDY = 0
	a.TimeAlive = 0
	a.RewardSum = 0
	a.VX = 0
	a.VY = 0
	a.Spring = 0
	a.FacingRight = true
}

func (a *Agent) addReward(r float64) {
	a.Reward += r
	a.RewardSum += r
}

// eat applies the content transition for one grid cell under the agent's
// footprint: lethal cells terminate, coins score and count down toward
// completion, gems grant power-up mode.
func (a *Agent) eat(x, y int) {
	g := a.grid
	obj := g.At(x, y)

	if IsLethal(obj) {
		g.Terminated = true
		a.Killed = true
		a.KilledAnimFrames = DeathAnimLength
	}

	if IsCoin(obj) {
		g.Set(x, y, CellSpace)
		g.Coins--
		a.CollectedCoin = true
		if a.PowerUpMode {
			a.PowerUpMode = false
		}
		if g.Coins == 0 {
			a.addReward(a.rewards.Completion)
			g.Terminated = true
			a.FinishedLevelFrames = FinishedLevelAnimLength
		} else {
			a.addReward(a.rewards.Coin)
		}
	}

	if IsGem(obj) {
		g.Set(x, y, CellSpace)
		a.addReward(a.rewards.Gem)
		a.PowerUpMode = true
		a.CollectedGem = true
	}
}

// subStep integrates a fraction of the velocity with axis-separated
// collision resolution, then applies eat transitions for the four cells the
// agent's footprint covers.
func (a *Agent) subStep(vx, vy float64) {
	g := a.grid
	ny := a.Y + vy
	nx := a.X + vx

	switch {
	case vy < 0 && !g.HasVerticalSpace(a.X, ny, false):
		// Landed on a proper wall.
		a.Y = float64(int(ny) + 1)
		a.support = true
		a.VY = 0

	case vy < 0 && !g.HasVerticalSpace(a.X, ny, true):
		// Only a crate is below. Explicit down input steps through it;
		// otherwise it supports the agent like a wall.
		if a.ActionDY >= 0 && int(ny) != int(a.Y) {
			a.Y = float64(int(ny) + 1)
			a.VY = 0
			a.support = true
		} else {
			a.support = false
			a.Y = ny
		}

	case vy > 0 && !g.HasVerticalSpace(a.X, ny+1, false):
		// Head bump: snap to the first open cell below the obstruction.
		a.Y = float64(int(ny))
		for !g.HasVerticalSpace(a.X, a.Y, false) {
			a.Y--
		}
		a.BumpedHead = true
		a.VY = 0
		a.addReward(-a.rewards.BumpHeadPenalty)

	default:
		a.Y = ny
	}

	ix := int(a.X)
	iy := int(a.Y)
	inx := int(nx)

	if vx < 0 && IsWall(g.At(inx, iy)) {
		a.VX = 0
		a.X = float64(inx + 1)
	} else if vx > 0 && IsWall(g.At(inx+1, iy)) {
		a.VX = 0
		a.X = float64(inx)
	} else {
		a.X = nx
	}

	a.eat(ix, iy)
	a.eat(ix, iy+1)
	a.eat(ix+1, iy)
	a.eat(ix+1, iy+1)
}

// stepPhysics advances the movement state machine one frame.
func (a *Agent) stepPhysics() {
	g := a.grid
	a.support = false
	if a.FinishedLevelFrames > 0 {
		a.ActionDX = 0
		a.ActionDY = 0
	}

	// Ladder contact is probed just above and below the body center.
	nearX := int(a.X + 0.5)
	onLadder := g.At(nearX, int(a.Y+0.2)) == CellLadder ||
		g.At(nearX, int(a.Y-0.2)) == CellLadder
	if onLadder {
		if a.ActionDY != 0 {
			a.LadderMode = true
		}
	} else {
		a.LadderMode = false
	}

	maxJump := g.Physics.MaxJump
	maxSpeed := g.Physics.MaxSpeed
	mixRate := g.Physics.MixRate

	if a.LadderMode {
		// The ladder pulls the body toward its center column.
		a.VX = (1-ladderMixRateX)*a.VX +
			ladderMixRateX*maxSpeed*(float64(a.ActionDX)+0.2*(float64(nearX)-a.X))
		a.VX = clipAbs(a.VX, ladderMaxV)
		a.VY = (1-ladderMixRateY)*a.VY + ladderMixRateY*maxSpeed*float64(a.ActionDY)
		a.VY = clipAbs(a.VY, ladderMaxV)
	} else if a.Spring > 0 && a.VY == 0 && a.ActionDY == 0 {
		// Release the charged spring as a jump.
		a.VY = maxJump
		a.addReward(-a.rewards.JumpPenalty)
		a.Spring = 0
		a.support = true
	} else {
		a.VY -= g.Physics.Gravity
	}

	a.VY = clipAbs(a.VY, maxJump)
	a.VX = clipAbs(a.VX, maxSpeed)

	// Exactly two sub-steps; half the velocity each. Resolving collision
	// twice per frame keeps the fast fall from tunneling through
	// one-cell-thick platforms.
	const numSubSteps = 2
	for s := 0; s < numSubSteps; s++ {
		a.subStep(a.VX/numSubSteps, a.VY/numSubSteps)
		if a.VX == 0 && a.VY == 0 {
			break
		}
	}

	if a.support {
		if a.ActionDY > 0 {
			a.Spring += maxJump / 4 // four charge levels
		}
		if a.ActionDY < 0 {
			a.Spring = -0.01
		}
		if a.ActionDY == 0 && a.Spring < 0 {
			a.Spring = 0
		}
		a.Spring = clipAbs(a.Spring, maxJump)
		a.VX = (1 - mixRate) * a.VX
		if a.Spring == 0 {
			a.VX += mixRate * maxSpeed * float64(a.ActionDX)
		}
		if abs64(a.VX) < mixRate*maxSpeed {
			a.VX = 0
		}
	} else {
		a.Spring = 0
		ac := g.Physics.AirControl
		a.VX = (1-ac*mixRate)*a.VX + ac*mixRate*float64(a.ActionDX)
	}

	if a.VX < 0 {
		a.FacingRight = false
	} else if a.VX > 0 {
		a.FacingRight = true
	}

	if a.Spring != 0 && !(a.Killed || a.LadderMode || a.VY != 0) {
		a.addReward(-a.rewards.SquatPenalty)
		a.PreparingJump = true
	} else {
		if a.PreparingJump && a.VY != maxJump {
			a.addReward(-a.rewards.JitterSquatPenalty)
		}
		a.PreparingJump = false
	}
}

// Step advances the agent one frame and enforces the episode timeout.
func (a *Agent) Step() {
	a.TimeAlive++
	a.stepPhysics()
	if a.TimeAlive > a.timeout {
		a.grid.Terminated = true
	}
}

// ClearEventFlags resets the per-frame event flags after the frame has
// been rendered and its audio labels emitted.
func (a *Agent) ClearEventFlags() {
	a.CollectedCoin = false
	a.CollectedGem = false
	a.KilledMonster = false
	a.BumpedHead = false
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
