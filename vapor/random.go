package vapor

import (
	"math"
	"time"
)

const defaultRandomState = 0x9E3779B97F4A7C15

// A Random is a small deterministic generator based on xorshift64*.
//
// The same seed yields the same sequence on every platform, which makes
// sampling reproducible when a fixed seed is supplied.
//
// Random implements math/rand.Source64, so it can back a *rand.Rand.
type Random struct {
	state uint64
}

// NewRandom creates a generator for the seed.
// A zero seed is replaced by a fixed non-zero state.
func NewRandom(seed uint64) *Random {
	r := &Random{}
	r.setState(seed)
	return r
}

// TimeSeed derives a non-zero seed from the wall clock.
func TimeSeed() uint64 {
	seed := uint64(time.Now().UnixNano())
	if seed == 0 {
		return defaultRandomState
	}
	return seed
}

func (r *Random) setState(seed uint64) {
	if seed == 0 {
		seed = defaultRandomState
	}
	r.state = seed
}

// Uint64 advances the state and returns the scrambled output.
func (r *Random) Uint64() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * 0x2545F4914F6CDD1D
}

// Float64 returns a uniform deviate in [0, 1).
//
// The top 52 bits of the output become the mantissa of a double in [1, 2),
// and 1 is subtracted.
func (r *Random) Float64() float64 {
	bits := uint64(0x3FF0000000000000) | (r.Uint64() >> 12)
	return math.Float64frombits(bits) - 1
}

// Int63 is part of math/rand.Source.
func (r *Random) Int63() int64 {
	return int64(r.Uint64() >> 1)
}

// Seed is part of math/rand.Source.
func (r *Random) Seed(seed int64) {
	r.setState(uint64(seed))
}
