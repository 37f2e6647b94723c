package sampling

import (
	"image"

	"github.com/df07/go-progressive-core/pkg/rng"
)

// NoMaximum marks a sampler that never runs out of samples
const NoMaximum = -1

// Sampler produces samples for a rectangular pixel region
type Sampler interface {
	// Bounds returns the pixel region [Min, Max)
	Bounds() image.Rectangle
	// SamplesPerPixel returns the per-pixel budget or NoMaximum
	SamplesPerPixel() int
	// Shutter returns the shutter open and close times
	Shutter() (open, close float64)
	// Resize moves the sampler to a new region and resets its progress
	Resize(bounds image.Rectangle)
	// Reset rewinds the sampler to the first sample of its region
	Reset()
	// RoundSize adjusts a requested auxiliary array length to one the
	// sampler can stratify well
	RoundSize(n int) int
	// Sample fills out with the next sample and reports false once the
	// region's budget is exhausted
	Sample(out *Sample, random rng.PRNG) bool
	// NewSubSampler returns a sampler for the index-th of count disjoint
	// sub-regions
	NewSubSampler(index, count int) Sampler
}

// Region is the state shared by all samplers: the pixel bounds, the
// per-pixel budget and the shutter interval.
type Region struct {
	bounds          image.Rectangle
	samplesPerPixel int
	shutterOpen     float64
	shutterClose    float64
}

// NewRegion creates region state for the given bounds
func NewRegion(bounds image.Rectangle, samplesPerPixel int, shutterOpen, shutterClose float64) Region {
	return Region{
		bounds:          bounds.Canon(),
		samplesPerPixel: samplesPerPixel,
		shutterOpen:     shutterOpen,
		shutterClose:    shutterClose,
	}
}

func (r *Region) Bounds() image.Rectangle { return r.bounds }

func (r *Region) SamplesPerPixel() int { return r.samplesPerPixel }

func (r *Region) Shutter() (open, close float64) { return r.shutterOpen, r.shutterClose }

// shutterTime maps u in [0,1) onto the shutter interval
func (r *Region) shutterTime(u float64) float64 {
	return (1-u)*r.shutterOpen + u*r.shutterClose
}

// SubBounds computes the index-th of count sub-regions. The count is split
// into nx columns by ny rows: halving nx and doubling ny while nx stays even
// and the cells are still wider than they are tall keeps the cells near
// square whatever the factorization of count. Cell edges come from the same
// interpolation on both sides, so the sub-regions tile the region exactly.
func (r *Region) SubBounds(index, count int) image.Rectangle {
	dx := r.bounds.Dx()
	dy := r.bounds.Dy()

	nx, ny := count, 1
	for nx%2 == 0 && 2*dx*ny < dy*nx {
		nx /= 2
		ny *= 2
	}

	xo := index % nx
	yo := index / nx

	return image.Rect(
		r.bounds.Min.X+dx*xo/nx,
		r.bounds.Min.Y+dy*yo/ny,
		r.bounds.Min.X+dx*(xo+1)/nx,
		r.bounds.Min.Y+dy*(yo+1)/ny,
	)
}

// pixelAt returns the coordinates of the idx-th pixel in scanline order
func (r *Region) pixelAt(idx int) (x, y int) {
	w := r.bounds.Dx()
	return r.bounds.Min.X + idx%w, r.bounds.Min.Y + idx/w
}

// area returns the number of pixels in the region
func (r *Region) area() int {
	return r.bounds.Dx() * r.bounds.Dy()
}
