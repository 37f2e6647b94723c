// Package rng provides interchangeable uniform random number generators.
//
// Every generator satisfies the same contract: Float64 returns values in
// [0, 1), IntN returns values in [0, n) and panics for n <= 0. Only Default,
// Crypto and Synchronized are safe for concurrent use; the seeded generators
// are meant to be owned by a single worker or wrapped with NewSynchronized.
package rng

import "sync"

// PRNG is a pluggable uniform random number source
type PRNG interface {
	// Float64 returns a uniformly distributed value in [0, 1)
	Float64() float64
	// IntN returns a uniformly distributed value in [0, n)
	IntN(n int) int
	// Seed resets the generator state
	Seed(seed int64)
}

// float64From53 maps the high 53 bits of a 64-bit draw onto [0, 1)
func float64From53(x uint64) float64 {
	return float64(x>>11) * 0x1p-53
}

// boundedInt draws from [0, n) by rejecting the biased tail of the 64-bit range
func boundedInt(next func() uint64, n int) int {
	if n <= 0 {
		panic("rng: invalid argument to IntN")
	}
	bound := uint64(n)
	if bound&(bound-1) == 0 {
		return int(next() & (bound - 1))
	}
	limit := ^uint64(0) - (^uint64(0)%bound+1)%bound
	for {
		v := next()
		if v <= limit {
			return int(v % bound)
		}
	}
}

// Synchronized serializes access to a generator that is not goroutine-safe
type Synchronized struct {
	mu   sync.Mutex
	prng PRNG
}

// NewSynchronized wraps prng with a mutex
func NewSynchronized(prng PRNG) *Synchronized {
	if prng == nil {
		panic("rng: nil generator")
	}
	return &Synchronized{prng: prng}
}

func (s *Synchronized) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prng.Float64()
}

func (s *Synchronized) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prng.IntN(n)
}

func (s *Synchronized) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prng.Seed(seed)
}
