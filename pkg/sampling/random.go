package sampling

import (
	"image"

	"github.com/df07/go-progressive-core/pkg/rng"
)

// RandomSampler draws every sample dimension independently from the PRNG.
// With NoMaximum samples per pixel it sweeps the region forever, one sample
// per pixel per sweep.
type RandomSampler struct {
	Region
	pos int
}

// NewRandomSampler creates a random sampler over bounds
func NewRandomSampler(bounds image.Rectangle, samplesPerPixel int, shutterOpen, shutterClose float64) *RandomSampler {
	return &RandomSampler{
		Region: NewRegion(bounds, samplesPerPixel, shutterOpen, shutterClose),
	}
}

func (s *RandomSampler) Resize(bounds image.Rectangle) {
	s.bounds = bounds.Canon()
	s.Reset()
}

func (s *RandomSampler) Reset() {
	s.pos = 0
}

func (s *RandomSampler) RoundSize(n int) int {
	return n
}

func (s *RandomSampler) Sample(out *Sample, random rng.PRNG) bool {
	area := s.area()
	if area == 0 {
		return false
	}

	var idx int
	if s.samplesPerPixel == NoMaximum {
		idx = s.pos % area
	} else {
		if s.pos >= area*s.samplesPerPixel {
			return false
		}
		idx = s.pos / s.samplesPerPixel
	}
	s.pos++

	px, py := s.pixelAt(idx)
	out.X = float64(px) + random.Float64()
	out.Y = float64(py) + random.Float64()
	out.LensU = random.Float64()
	out.LensV = random.Float64()
	out.Time = s.shutterTime(random.Float64())
	out.Weight = 1

	for _, values := range out.oneD {
		for i := range values {
			values[i] = random.Float64()
		}
	}
	for _, values := range out.twoD {
		for i := range values {
			values[i] = random.Float64()
		}
	}
	return true
}

func (s *RandomSampler) NewSubSampler(index, count int) Sampler {
	return NewRandomSampler(s.SubBounds(index, count), s.samplesPerPixel, s.shutterOpen, s.shutterClose)
}
