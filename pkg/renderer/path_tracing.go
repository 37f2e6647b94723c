package renderer

import (
	"image"
	"math"
	"sync/atomic"
	"time"

	"github.com/df07/go-progressive-core/pkg/camera"
	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/filter"
	"github.com/df07/go-progressive-core/pkg/rng"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

// PathTracingRenderer is the progressive integrator. Every Render call is one
// pass over a region: each pixel gets one jittered sample whose radiance is
// added to its running sum. Workers share one renderer, so the pass counter
// and the throughput counters are atomic.
type PathTracingRenderer struct {
	RayTracingRenderer

	pass    atomic.Int64
	elapsed atomic.Int64 // Nanoseconds spent in completed regions
	samples atomic.Int64

	grid *pixelGrid
}

// pixelGrid replaces the single jittered sample with a filtered grid of
// samples per pixel
type pixelGrid struct {
	sampler sampling.Sampler
	filter  filter.Filter
}

// NewPathTracingRenderer creates an idle renderer at pass 0. Nil scene,
// camera or PRNG panic; a non-positive resolution is an error.
func NewPathTracingRenderer(scene core.Scene, cam camera.Camera, random rng.PRNG, width, height int) (*PathTracingRenderer, error) {
	rt, err := newRayTracingRenderer(scene, cam, random, width, height)
	if err != nil {
		return nil, err
	}
	return &PathTracingRenderer{RayTracingRenderer: rt}, nil
}

// Pass returns the index the next Render call will use
func (r *PathTracingRenderer) Pass() int { return int(r.pass.Load()) }

// Elapsed returns the time spent in completed regions since the last clear
func (r *PathTracingRenderer) Elapsed() time.Duration { return time.Duration(r.elapsed.Load()) }

// Samples returns the number of camera samples taken since the last clear
func (r *PathTracingRenderer) Samples() int64 { return r.samples.Load() }

// SamplesPerSecond is the throughput over completed regions
func (r *PathTracingRenderer) SamplesPerSecond() float64 {
	elapsed := r.Elapsed()
	if elapsed <= 0 {
		return 0
	}
	return float64(r.Samples()) / elapsed.Seconds()
}

// ResetPass restarts pass numbering. Pixels and timing are untouched.
func (r *PathTracingRenderer) ResetPass() {
	r.pass.Store(0)
}

// Clear resets the pass counter and the throughput counters
func (r *PathTracingRenderer) Clear() {
	r.pass.Store(0)
	r.elapsed.Store(0)
	r.samples.Store(0)
}

// SetPixelFilter switches every pixel from one jittered sample to the full
// per-pixel budget of sampler, weighted by f and averaged into a single
// sub-sample. The sampler is only used as a template and is never advanced.
// Must be called between frames.
func (r *PathTracingRenderer) SetPixelFilter(sampler sampling.Sampler, f filter.Filter) error {
	if sampler == nil || f == nil {
		panic("renderer: nil pixel sampler or filter")
	}
	if sampler.SamplesPerPixel() == sampling.NoMaximum {
		return ErrUnboundedSampler
	}
	r.grid = &pixelGrid{sampler: sampler, filter: f}
	return nil
}

// ClearPixelFilter restores one jittered sample per pixel
func (r *PathTracingRenderer) ClearPixelFilter() {
	r.grid = nil
}

// Render adds one sub-sample to every pixel of the region. Cancellation is
// checked before each pixel; when it fires, all progress is reset and Render
// returns false with the region partly updated.
func (r *PathTracingRenderer) Render(pixels PixelIterable, onUpdate func(*Pixel), cancelled Cancelled) bool {
	pass := int(r.pass.Add(1) - 1)
	start := time.Now()

	if cancelled == nil {
		cancelled = NeverCancelled
	}
	cam := r.ActiveCamera()
	sample := sampling.NewSample()

	// Samplers are stateful, so each call works on its own copy
	var grid sampling.Sampler
	if r.grid != nil {
		grid = r.grid.sampler.NewSubSampler(0, 1)
	}

	var taken int64
	for p := range pixels.Pixels() {
		if cancelled() {
			r.Clear()
			return false
		}

		var radiance core.Spectrum
		if grid != nil {
			var n int64
			radiance, n = r.filtered(pass, p, cam, grid, sample)
			taken += n
		} else {
			radiance = r.jittered(pass, p, cam, sample)
			taken++
		}

		p.AddSubSample()
		p.Accumulate(radiance)
		if onUpdate != nil {
			onUpdate(p)
		}
	}

	r.elapsed.Add(int64(time.Since(start)))
	r.samples.Add(taken)
	return true
}

// jittered traces one sample at a tent-distributed offset around the pixel
// center
func (r *PathTracingRenderer) jittered(pass int, p *Pixel, cam camera.Camera, s *sampling.Sample) core.Spectrum {
	random := r.random
	jx := tent(2 * random.Float64())
	jy := tent(2 * random.Float64())
	u := normalizedCoordinate(p.X, jx, r.invWidth)
	v := normalizedCoordinate(p.Y, jy, r.invHeight)

	// Cameras take raster coordinates
	s.X = rasterCoordinate(u, r.width)
	s.Y = rasterCoordinate(v, r.height)
	s.LensU = random.Float64()
	s.LensV = random.Float64()
	s.Time = 0
	s.Weight = 1

	return r.scene.Radiance(pass, cam.NewRay(s), random)
}

// filtered traces the sampler's whole budget for one pixel and returns the
// filter-weighted mean with the number of samples drawn
func (r *PathTracingRenderer) filtered(pass int, p *Pixel, cam camera.Camera, sampler sampling.Sampler, s *sampling.Sample) (core.Spectrum, int64) {
	sampler.Resize(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	cx := float64(p.X) + 0.5
	cy := float64(p.Y) + 0.5

	var sum, plain core.Spectrum
	var weightSum, absWeightSum float64
	var n, traced int64
	for sampler.Sample(s, r.random) {
		n++
		s.Weight = r.grid.filter.Evaluate(s.X-cx, s.Y-cy)
		if s.Weight == 0 {
			continue
		}
		radiance := r.scene.Radiance(pass, cam.NewRay(s), r.random)
		sum = sum.Add(radiance.Multiply(s.Weight))
		plain = plain.Add(radiance)
		weightSum += s.Weight
		absWeightSum += math.Abs(s.Weight)
		traced++
	}

	if traced == 0 {
		return core.Spectrum{}, n
	}
	// Negative lobes can cancel the positive weights of a small grid
	if weightSum <= minWeightFraction*absWeightSum {
		return plain.Multiply(1 / float64(traced)), n
	}
	return sum.Multiply(1 / weightSum), n
}

// minWeightFraction is the smallest share of the absolute filter weight the
// signed weight sum may keep before the filtered mean falls back to a plain
// average
const minWeightFraction = 1e-3

// tent warps u in [0,2) to [-1,1) with a triangular density peaked at 0
func tent(u float64) float64 {
	if u < 1 {
		return math.Sqrt(u) - 1
	}
	return 1 - math.Sqrt(2-u)
}

// maxNormalized is the largest normalized coordinate below 0.5
var maxNormalized = math.Nextafter(0.5, 0)

// normalizedCoordinate maps a jittered pixel coordinate into [-0.5, 0.5).
// Rounding can land the last pixel exactly on 0.5, so the result is clamped.
func normalizedCoordinate(p int, jitter, inv float64) float64 {
	return math.Min((float64(p)+0.5+0.5*jitter)*inv-0.5, maxNormalized)
}

// rasterCoordinate maps a normalized coordinate back to [0, size)
func rasterCoordinate(n float64, size int) float64 {
	return math.Min((n+0.5)*float64(size), math.Nextafter(float64(size), 0))
}
