package sampling

import (
	"math"
	"math/bits"
)

// RadicalInverse mirrors the base-b digits of n about the radix point
func RadicalInverse(n uint64, base int) float64 {
	invBase := 1 / float64(base)
	invBi := invBase
	result := 0.0
	b := uint64(base)
	for n > 0 {
		digit := n % b
		result += float64(digit) * invBi
		n /= b
		invBi *= invBase
	}
	return math.Min(result, OneMinusEpsilon)
}

// VanDerCorput returns the scrambled base-2 radical inverse of n
func VanDerCorput(n, scramble uint32) float64 {
	n = bits.Reverse32(n)
	n ^= scramble
	return math.Min(float64(n)*0x1p-32, OneMinusEpsilon)
}

// Sobol2 returns the second dimension of the scrambled base-2 Sobol sequence
func Sobol2(n, scramble uint32) float64 {
	for v := uint32(1) << 31; n != 0; n, v = n>>1, v^(v>>1) {
		if n&1 != 0 {
			scramble ^= v
		}
	}
	return math.Min(float64(scramble)*0x1p-32, OneMinusEpsilon)
}

// Sample02 returns point n of the scrambled (0,2)-sequence, which pairs
// Van der Corput and Sobol so that any power-of-two prefix is stratified
// over elementary intervals.
func Sample02(n uint32, scramble [2]uint32) (x, y float64) {
	return VanDerCorput(n, scramble[0]), Sobol2(n, scramble[1])
}
