// Package pcg implements a small, fast, deterministic PCG random number
// generator used to drive property and fuzz-style tests with reproducible
// sequences.
package pcg

import (
	"math/bits"
)

// T is a pcg generator. The zero value is invalid; use New.
type T struct {
	State uint64
	Inc   uint64
}

const mul = 6364136223846793005

// New constructs a pcg with the given state and inc.
func New(state, inc uint64) T {
	inc = inc<<1 | 1
	return T{
		State: (inc+state)*mul + inc,
		Inc:   inc,
	}
}

// Uint32 returns a random uint32.
func (p *T) Uint32() uint32 {
	oldstate := p.State
	p.State = oldstate*mul + p.Inc

	xorshift := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	return bits.RotateLeft32(xorshift, int(oldstate>>59))
}

// Intn returns an int uniformly in [0, n).
func (p *T) Intn(n int) int {
	return fastMod(p.Uint32(), n)
}

// Float64 returns a random float64 in [0, 1).
func (p *T) Float64() float64 {
	hi, lo := uint64(p.Uint32()), uint64(p.Uint32())
	return float64(((hi<<32)|lo)>>11) / (1 << 53)
}

// fastMod computes n % m assuming that n is a random number in the full
// uint32 range.
func fastMod(n uint32, m int) int {
	return int((uint64(n) * uint64(m)) >> 32)
}
