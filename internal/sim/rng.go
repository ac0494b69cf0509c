package sim

// RNG is a deterministic 32-bit Mersenne twister (MT19937).
// Level layouts must be reproducible across runs and across language ports of
// the benchmark, so the generator is matched bit for bit instead of relying
// on math/rand.
type RNG struct {
	state  [624]uint32
	index  int
	seeded bool
}

// NewRNG creates a generator seeded with the given value.
func NewRNG(seed uint32) *RNG {
	r := &RNG{}
	r.Seed(seed)
	return r
}

// Seed initializes the generator state.
func (r *RNG) Seed(seed uint32) {
	r.state[0] = seed
	for i := uint32(1); i < 624; i++ {
		prev := r.state[i-1]
		r.state[i] = 1812433253*(prev^(prev>>30)) + i
	}
	r.index = 624
	r.seeded = true
}

// Uint32 returns the next raw 32-bit output.
// Panics if the generator was never seeded: an unseeded draw is a caller bug
// that would silently break benchmark reproducibility.
func (r *RNG) Uint32() uint32 {
	if !r.seeded {
		panic("sim: RNG used before seeding")
	}
	if r.index >= 624 {
		r.twist()
	}
	y := r.state[r.index]
	r.index++
	y ^= y >> 11
	y ^= (y << 7) & 0x9D2C5680
	y ^= (y << 15) & 0xEFC60000
	y ^= y >> 18
	return y
}

func (r *RNG) twist() {
	for i := 0; i < 624; i++ {
		y := (r.state[i] & 0x80000000) | (r.state[(i+1)%624] & 0x7FFFFFFF)
		next := y >> 1
		if y&1 != 0 {
			next ^= 0x9908B0DF
		}
		r.state[i] = r.state[(i+397)%624] ^ next
	}
	r.index = 0
}

// Intn returns a value in [low, high). The modulo is slightly biased, which
// is acceptable here; what matters is that every port of the benchmark
// reduces the same raw draws the same way.
func (r *RNG) Intn(low, high int) int {
	if high <= low {
		panic("sim: RNG.Intn called with empty range")
	}
	x := r.Uint32()
	return low + int(x%uint32(high-low))
}

// Float01 returns a value in [0, 1).
func (r *RNG) Float01() float64 {
	return float64(r.Uint32()) / 4294967296.0
}
