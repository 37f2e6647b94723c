package rng

import (
	"math"
	"sync"
	"testing"
)

func generators() map[string]PRNG {
	return map[string]PRNG{
		"mersenne":     NewMersenneTwister(42),
		"xorshift":     NewXorShift(42),
		"crypto":       NewCrypto(),
		"default":      NewDefault(),
		"synchronized": NewSynchronized(NewXorShift(7)),
	}
}

func TestFloat64RangeAndMean(t *testing.T) {
	const draws = 100000

	for name, r := range generators() {
		t.Run(name, func(t *testing.T) {
			sum := 0.0
			for i := 0; i < draws; i++ {
				v := r.Float64()
				if v < 0 || v >= 1 {
					t.Fatalf("Float64 returned %f outside [0,1)", v)
				}
				sum += v
			}

			// Standard error of the mean is ~0.0009 for 1e5 uniform draws
			mean := sum / draws
			if math.Abs(mean-0.5) > 0.01 {
				t.Errorf("Expected mean near 0.5, got %f", mean)
			}
		})
	}
}

func TestIntNRange(t *testing.T) {
	bounds := []int{1, 2, 3, 7, 10, 64, 1000}

	for name, r := range generators() {
		t.Run(name, func(t *testing.T) {
			for _, bound := range bounds {
				counts := make([]int, bound)
				for i := 0; i < 20000; i++ {
					v := r.IntN(bound)
					if v < 0 || v >= bound {
						t.Fatalf("IntN(%d) returned %d", bound, v)
					}
					counts[v]++
				}
				if bound <= 10 {
					for v, c := range counts {
						if c == 0 {
							t.Errorf("IntN(%d) never produced %d", bound, v)
						}
					}
				}
			}
		})
	}
}

func TestIntNPanicsOnInvalidBound(t *testing.T) {
	for name, r := range generators() {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected panic for IntN(0)")
				}
			}()
			r.IntN(0)
		})
	}
}

func TestSeedIsReproducible(t *testing.T) {
	seeded := map[string]func() PRNG{
		"mersenne": func() PRNG { return NewMersenneTwister(0) },
		"xorshift": func() PRNG { return NewXorShift(0) },
		"default":  func() PRNG { return NewDefault() },
	}

	for name, create := range seeded {
		t.Run(name, func(t *testing.T) {
			a, b := create(), create()
			a.Seed(1234)
			b.Seed(1234)
			for i := 0; i < 100; i++ {
				if va, vb := a.Float64(), b.Float64(); va != vb {
					t.Fatalf("Draw %d differs after identical seeding: %f vs %f", i, va, vb)
				}
			}
		})
	}
}

func TestXorShiftZeroSeed(t *testing.T) {
	x := NewXorShift(0)
	if x.state == 0 {
		t.Fatal("Zero seed must not produce zero state")
	}
	first := x.Float64()
	if first == x.Float64() {
		t.Error("Generator appears stuck")
	}
}

func TestDefaultConcurrentUse(t *testing.T) {
	r := NewDefault()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if v := r.Float64(); v < 0 || v >= 1 {
					t.Errorf("Float64 returned %f", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}
