package rng

// XorShift is Marsaglia's xorshift64* generator. Small state and fast, but
// not suitable for anything beyond sampling.
type XorShift struct {
	state uint64
}

// NewXorShift creates a xorshift64* generator seeded with seed
func NewXorShift(seed int64) *XorShift {
	x := &XorShift{}
	x.Seed(seed)
	return x
}

func (x *XorShift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 2685821657736338717
}

func (x *XorShift) Float64() float64 {
	return float64From53(x.next())
}

func (x *XorShift) IntN(n int) int {
	return boundedInt(x.next, n)
}

// Seed scrambles seed with splitmix64 so that small and zero seeds still
// produce a non-zero state.
func (x *XorShift) Seed(seed int64) {
	z := uint64(seed) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 0x9e3779b97f4a7c15
	}
	x.state = z
}
