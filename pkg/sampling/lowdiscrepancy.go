package sampling

import (
	"image"

	"github.com/df07/go-progressive-core/pkg/rng"
)

// LowDiscrepancySampler draws per-pixel samples from a randomly scrambled
// (0,2)-sequence. The per-pixel count is rounded up to a power of two so
// that every pixel receives a fully stratified prefix.
type LowDiscrepancySampler struct {
	Region

	px, py    int
	samplePos int

	imageSamples []float64
	lensSamples  []float64
	timeSamples  []float64
}

// NewLowDiscrepancySampler creates a low-discrepancy sampler over bounds
func NewLowDiscrepancySampler(bounds image.Rectangle, samplesPerPixel int, shutterOpen, shutterClose float64) *LowDiscrepancySampler {
	n := roundUpPow2(samplesPerPixel)
	s := &LowDiscrepancySampler{
		Region:       NewRegion(bounds, n, shutterOpen, shutterClose),
		imageSamples: make([]float64, 2*n),
		lensSamples:  make([]float64, 2*n),
		timeSamples:  make([]float64, n),
	}
	s.Reset()
	return s
}

func (s *LowDiscrepancySampler) Resize(bounds image.Rectangle) {
	s.bounds = bounds.Canon()
	s.Reset()
}

func (s *LowDiscrepancySampler) Reset() {
	s.px = s.bounds.Min.X
	s.py = s.bounds.Min.Y
	s.samplePos = s.samplesPerPixel
}

func (s *LowDiscrepancySampler) RoundSize(n int) int {
	return roundUpPow2(n)
}

func (s *LowDiscrepancySampler) Sample(out *Sample, random rng.PRNG) bool {
	if s.samplePos == s.samplesPerPixel {
		if s.bounds.Empty() || s.py >= s.bounds.Max.Y {
			return false
		}
		n := s.samplesPerPixel
		ldShuffleScrambled2D(s.imageSamples, n, 1, random)
		ldShuffleScrambled2D(s.lensSamples, n, 1, random)
		ldShuffleScrambled1D(s.timeSamples, n, 1, random)
		s.samplePos = 0
	}

	i := s.samplePos
	out.X = float64(s.px) + s.imageSamples[2*i]
	out.Y = float64(s.py) + s.imageSamples[2*i+1]
	out.LensU = s.lensSamples[2*i]
	out.LensV = s.lensSamples[2*i+1]
	out.Time = s.shutterTime(s.timeSamples[i])
	out.Weight = 1

	for _, values := range out.oneD {
		ldShuffleScrambled1D(values, len(values), 1, random)
	}
	for _, values := range out.twoD {
		ldShuffleScrambled2D(values, len(values)/2, 1, random)
	}

	s.samplePos++
	if s.samplePos == s.samplesPerPixel {
		s.px++
		if s.px == s.bounds.Max.X {
			s.px = s.bounds.Min.X
			s.py++
		}
	}
	return true
}

func (s *LowDiscrepancySampler) NewSubSampler(index, count int) Sampler {
	return NewLowDiscrepancySampler(s.SubBounds(index, count), s.samplesPerPixel, s.shutterOpen, s.shutterClose)
}

// ldShuffleScrambled1D fills nPixel groups of nSamples scrambled Van der
// Corput values and shuffles the groups and the values within each group
func ldShuffleScrambled1D(samples []float64, nSamples, nPixel int, random rng.PRNG) {
	scramble := randomUint32(random)
	for i := 0; i < nSamples*nPixel; i++ {
		samples[i] = VanDerCorput(uint32(i), scramble)
	}
	for i := 0; i < nPixel; i++ {
		rng.ShuffleFloats(random, samples[i*nSamples:(i+1)*nSamples])
	}
	rng.ShuffleDims(random, samples, nPixel, nSamples)
}

// ldShuffleScrambled2D is the 2D counterpart using the (0,2)-sequence
func ldShuffleScrambled2D(samples []float64, nSamples, nPixel int, random rng.PRNG) {
	scramble := [2]uint32{randomUint32(random), randomUint32(random)}
	for i := 0; i < nSamples*nPixel; i++ {
		samples[2*i], samples[2*i+1] = Sample02(uint32(i), scramble)
	}
	for i := 0; i < nPixel; i++ {
		rng.ShuffleDims(random, samples[2*i*nSamples:2*(i+1)*nSamples], nSamples, 2)
	}
	rng.ShuffleDims(random, samples, nPixel, 2*nSamples)
}

// randomUint32 draws a scramble value from the generator's 53-bit output
func randomUint32(random rng.PRNG) uint32 {
	return uint32(random.Float64() * (1 << 32))
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
