package rng

import "github.com/seehuhn/mt19937"

// MersenneTwister is the 64-bit MT19937 generator
type MersenneTwister struct {
	mt *mt19937.MT19937
}

// NewMersenneTwister creates a Mersenne Twister seeded with seed
func NewMersenneTwister(seed int64) *MersenneTwister {
	m := &MersenneTwister{mt: mt19937.New()}
	m.mt.Seed(seed)
	return m
}

func (m *MersenneTwister) Float64() float64 {
	return float64From53(m.mt.Uint64())
}

func (m *MersenneTwister) IntN(n int) int {
	return boundedInt(m.mt.Uint64, n)
}

func (m *MersenneTwister) Seed(seed int64) {
	m.mt.Seed(seed)
}
