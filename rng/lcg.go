// Package rng provides the linear congruential generator the serial
// collision-handling strategy uses to pick a fresh focus-contact ordering
// every iteration. It is deliberately not math/rand: the serial strategy's
// determinism guarantee (spec: "identical inputs + identical RNG seed
// produce bit-identical outputs") must not depend on the standard
// library's generator algorithm ever changing underneath it, so the exact
// recurrence is owned here. The generator is explicitly injected into
// callers rather than held as global state, so concurrent simulations
// never share (or race on) one sequence.
package rng

// LCG is a 64-bit linear congruential generator, constants from
// Knuth's MMIX (TAOCP Vol. 2). It is not cryptographically secure; it
// exists purely for reproducible focus-contact orderings.
type LCG struct {
	state uint64
}

const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1442695040888963407
)

// New creates an LCG seeded deterministically from seed.
func New(seed int64) *LCG {
	g := &LCG{state: uint64(seed)}
	g.Next() // mix the seed before first use, so seed=0 isn't degenerate
	return g
}

// Reseed resets the generator's sequence from seed.
func (g *LCG) Reseed(seed int64) {
	g.state = uint64(seed)
	g.Next()
}

// Next advances the generator and returns the next raw 64-bit value.
func (g *LCG) Next() uint64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return g.state
}

// Intn returns a uniform pseudo-random integer in [0, n). Panics if n <= 0.
func (g *LCG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(g.Next() % uint64(n))
}

// Permutation returns a uniform random permutation of [0, n), via
// Fisher-Yates using the generator's own stream so it changes on every
// call, as the serial strategy's focus selection requires.
func (g *LCG) Permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
