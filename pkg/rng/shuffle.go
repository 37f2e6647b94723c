package rng

// Shuffle permutes n elements uniformly with Fisher-Yates, calling swap to
// exchange positions.
func Shuffle(r PRNG, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		swap(i, j)
	}
}

// ShuffleFloats permutes values in place
func ShuffleFloats(r PRNG, values []float64) {
	Shuffle(r, len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

// ShuffleDims permutes count tuples of dims consecutive values stored in a
// flattened slice, keeping each tuple intact.
func ShuffleDims(r PRNG, values []float64, count, dims int) {
	Shuffle(r, count, func(i, j int) {
		for d := 0; d < dims; d++ {
			values[dims*i+d], values[dims*j+d] = values[dims*j+d], values[dims*i+d]
		}
	})
}

// ShuffleInts permutes values in place
func ShuffleInts(r PRNG, values []int) {
	Shuffle(r, len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}
