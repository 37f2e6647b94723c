package sampling

import (
	"fmt"
	"image"

	"github.com/df07/go-progressive-core/pkg/rng"
)

// StratifiedSampler places xSamples by ySamples jittered samples in every
// pixel. Lens and time are stratified too and decorrelated from the image
// position by Latin hypercube shuffling.
type StratifiedSampler struct {
	Region
	xSamples, ySamples int
	jitter             bool

	// Current pixel and position within its sample buffer
	px, py    int
	samplePos int

	imageSamples []float64
	lensSamples  []float64
	timeSamples  []float64
}

// NewStratifiedSampler creates a stratified sampler over bounds. Both grid
// dimensions must be at least 1; smaller values panic.
func NewStratifiedSampler(bounds image.Rectangle, xSamples, ySamples int, jitter bool, shutterOpen, shutterClose float64) *StratifiedSampler {
	if xSamples < 1 || ySamples < 1 {
		panic(fmt.Sprintf("sampling: stratified grid must be at least 1x1, got %dx%d", xSamples, ySamples))
	}
	n := xSamples * ySamples
	s := &StratifiedSampler{
		Region:       NewRegion(bounds, n, shutterOpen, shutterClose),
		xSamples:     xSamples,
		ySamples:     ySamples,
		jitter:       jitter,
		imageSamples: make([]float64, 2*n),
		lensSamples:  make([]float64, 2*n),
		timeSamples:  make([]float64, n),
	}
	s.Reset()
	return s
}

func (s *StratifiedSampler) Resize(bounds image.Rectangle) {
	s.bounds = bounds.Canon()
	s.Reset()
}

func (s *StratifiedSampler) Reset() {
	s.px = s.bounds.Min.X
	s.py = s.bounds.Min.Y
	s.samplePos = s.samplesPerPixel
}

func (s *StratifiedSampler) RoundSize(n int) int {
	return n
}

func (s *StratifiedSampler) Sample(out *Sample, random rng.PRNG) bool {
	if s.samplePos == s.samplesPerPixel {
		if s.bounds.Empty() || s.py >= s.bounds.Max.Y {
			return false
		}
		s.generate(random)
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
		LatinHypercube(values, len(values), 1, random)
	}
	for _, values := range out.twoD {
		LatinHypercube(values, len(values)/2, 2, random)
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

// generate fills the sample buffers for the current pixel
func (s *StratifiedSampler) generate(random rng.PRNG) {
	n := s.samplesPerPixel
	StratifiedSample2D(s.imageSamples, s.xSamples, s.ySamples, random, s.jitter)
	StratifiedSample2D(s.lensSamples, s.xSamples, s.ySamples, random, s.jitter)
	StratifiedSample1D(s.timeSamples, random, s.jitter)

	// Decorrelate lens and time from the image strata
	rng.ShuffleDims(random, s.lensSamples, n, 2)
	rng.ShuffleFloats(random, s.timeSamples)
}

func (s *StratifiedSampler) NewSubSampler(index, count int) Sampler {
	return NewStratifiedSampler(s.SubBounds(index, count), s.xSamples, s.ySamples, s.jitter, s.shutterOpen, s.shutterClose)
}
