package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"
)

// Rand is the random source used by the engine.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64

	// IntN returns a number in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// pcgStream is the fixed PCG stream selector; the seed picks the state.
const pcgStream = 0x9e3779b97f4a7c15

// NewRand returns a generator whose output is fully determined by seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// orFresh returns r, or a freshly seeded generator when r is nil.
// The fresh generator belongs to the caller alone.
func orFresh(r Rand) Rand {
	if r != nil {
		return r
	}
	seed, err := NewSeed()
	if err != nil {
		seed = uint64(time.Now().UnixNano())
	}
	return NewRand(seed)
}
