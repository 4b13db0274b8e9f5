package statistics

import "math"

// DefaultSeed seeds an LCG when the caller supplies none.
const DefaultSeed uint64 = 12345

const (
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1442695040888963407
)

// LCG is a 64-bit linear congruential generator. Identical seeds produce
// identical sequences. An LCG is not safe for concurrent use; give each
// simulation its own.
type LCG struct {
	state uint64
}

// NewLCG returns a generator starting from seed.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Next advances the generator and returns a sample in [0,1].
func (g *LCG) Next() float64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return float64(g.state) / float64(math.MaxUint64)
}

// Intn returns a sample in [0,n). n must be positive.
func (g *LCG) Intn(n int) int {
	i := int(g.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
