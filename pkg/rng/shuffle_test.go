package rng

import (
	"math"
	"testing"
)

func TestShuffleIsPermutation(t *testing.T) {
	r := NewMersenneTwister(1)
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	ShuffleInts(r, values)

	seen := make(map[int]bool)
	for _, v := range values {
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Errorf("Shuffle lost elements: %v", values)
	}
}

func TestShuffleUniformity(t *testing.T) {
	// Each of the 6 permutations of 3 elements should appear ~1/6 of the time
	r := NewXorShift(99)
	counts := make(map[[3]int]int)
	const trials = 60000

	for i := 0; i < trials; i++ {
		values := []int{0, 1, 2}
		ShuffleInts(r, values)
		counts[[3]int{values[0], values[1], values[2]}]++
	}

	if len(counts) != 6 {
		t.Fatalf("Expected 6 distinct permutations, got %d", len(counts))
	}
	expected := float64(trials) / 6
	for perm, c := range counts {
		if math.Abs(float64(c)-expected)/expected > 0.05 {
			t.Errorf("Permutation %v appeared %d times, expected ~%.0f", perm, c, expected)
		}
	}
}

func TestShuffleDimsKeepsTuples(t *testing.T) {
	r := NewMersenneTwister(5)
	count, dims := 8, 3
	values := make([]float64, count*dims)
	for i := 0; i < count; i++ {
		for d := 0; d < dims; d++ {
			values[dims*i+d] = float64(i*10 + d)
		}
	}

	ShuffleDims(r, values, count, dims)

	seen := make(map[int]bool)
	for i := 0; i < count; i++ {
		base := int(values[dims*i]) / 10
		for d := 0; d < dims; d++ {
			if int(values[dims*i+d]) != base*10+d {
				t.Fatalf("Tuple %d was split: %v", i, values[dims*i:dims*i+dims])
			}
		}
		seen[base] = true
	}
	if len(seen) != count {
		t.Errorf("Expected %d distinct tuples, got %d", count, len(seen))
	}
}
