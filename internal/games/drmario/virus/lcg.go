package virus

import "math"

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// LCG is the seeded linear congruential generator used for placement.
// It is a plain value: Next returns the draw and the advanced generator,
// so the state is always threaded explicitly through callers.
//
// The state is a float64 so very large or negative seeds behave exactly
// as in double-precision arithmetic, keeping placements portable.
type LCG struct {
	value float64
}

// NewLCG seeds a generator.
func NewLCG(seed int64) LCG {
	return LCG{value: float64(seed)}
}

// Next returns a draw in (-1, 1) ([0, 1) for non-negative seeds) and
// the advanced generator.
func (g LCG) Next() (float64, LCG) {
	g.value = math.Mod(g.value*lcgMultiplier+lcgIncrement, lcgModulus)
	return g.value / lcgModulus, g
}

// Intn draws floor(r*n).
func (g LCG) Intn(n int) (int, LCG) {
	r, next := g.Next()
	return int(math.Floor(r * float64(n))), next
}
