package rng

import (
	"math/rand/v2"
	"sync"
)

// Default uses the runtime's per-thread generator behind the math/rand/v2
// top-level functions, so concurrent workers never contend on shared state.
// Seeding switches it to a private PCG stream guarded by a mutex, trading
// throughput for reproducibility.
type Default struct {
	mu     sync.Mutex
	seeded *rand.Rand
}

// NewDefault creates the default generator
func NewDefault() *Default {
	return &Default{}
}

func (d *Default) Float64() float64 {
	d.mu.Lock()
	seeded := d.seeded
	if seeded == nil {
		d.mu.Unlock()
		return rand.Float64()
	}
	defer d.mu.Unlock()
	return seeded.Float64()
}

func (d *Default) IntN(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to IntN")
	}
	d.mu.Lock()
	seeded := d.seeded
	if seeded == nil {
		d.mu.Unlock()
		return rand.IntN(n)
	}
	defer d.mu.Unlock()
	return seeded.IntN(n)
}

func (d *Default) Seed(seed int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seeded = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0xda3e39cb94b95bdb))
}
