package renderer

import (
	"fmt"
	"image"
	"math"

	"github.com/df07/go-progressive-core/pkg/camera"
	"github.com/df07/go-progressive-core/pkg/filter"
	"github.com/df07/go-progressive-core/pkg/rng"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

// Options is the render configuration. It is validated once at the boundary;
// nothing in the render loop checks it again.
type Options struct {
	// Output image size.
	Width  int
	Height int

	// Path depth after which the scene applies russian roulette, and a flag
	// that disables roulette altogether. Passed through to the scene.
	RussianRouletteDepth int
	SkipRussianRoulette  bool

	// Render at QualityMultiplier times the output size and scale down.
	Supersample       bool
	QualityMultiplier int

	// Render at 1/QualityDivisor of the output size for fast previews.
	QualityDivisor int

	// Number of render workers, 0 for one per CPU.
	Workers int

	// Number of frames to render, 0 to render until cancelled.
	MaxFrames int

	// Camera model: pinhole, perspective, basis or ortho.
	Camera        string
	FOV           float64
	LensRadius    float64
	FocalDistance float64

	// Random number generator: default, mersenne, xorshift or crypto.
	PRNG string
	Seed int64

	// Optional filtered grid of PixelSamples x PixelSamples stratified
	// samples per pixel per pass. Empty Filter keeps one jittered sample.
	Filter       string
	FilterWidth  float64
	PixelSamples int
}

// DefaultOptions returns a small interactive preview configuration
func DefaultOptions() Options {
	return Options{
		Width:                400,
		Height:               225,
		RussianRouletteDepth: 5,
		QualityMultiplier:    2,
		QualityDivisor:       1,
		MaxFrames:            16,
		Camera:               "perspective",
		FOV:                  45,
		FocalDistance:        1,
		PRNG:                 "default",
		FilterWidth:          0.5,
		PixelSamples:         2,
	}
}

// Validate rejects configurations the renderer cannot run
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidResolution, o.Width, o.Height)
	}
	if o.RussianRouletteDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRRDepth, o.RussianRouletteDepth)
	}
	if o.QualityDivisor < 1 || o.QualityMultiplier < 1 {
		return fmt.Errorf("%w: got divisor %d, multiplier %d", ErrInvalidQuality, o.QualityDivisor, o.QualityMultiplier)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, o.Workers)
	}
	if o.MaxFrames < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrames, o.MaxFrames)
	}
	if _, err := o.newCamera(); err != nil {
		return err
	}
	if _, err := o.NewPRNG(); err != nil {
		return err
	}
	if o.Filter != "" {
		if _, err := filter.New(o.Filter, o.FilterWidth, o.FilterWidth); err != nil {
			return err
		}
		if o.PixelSamples < 1 {
			return fmt.Errorf("%w: pixel samples must be at least 1, got %d", ErrInvalidQuality, o.PixelSamples)
		}
	}
	return nil
}

// RenderSize is the resolution actually traced, after supersampling and the
// preview divisor. It never drops below one pixel.
func (o Options) RenderSize() (int, int) {
	w, h := o.Width, o.Height
	if o.Supersample {
		w *= o.QualityMultiplier
		h *= o.QualityMultiplier
	}
	return max(1, w/o.QualityDivisor), max(1, h/o.QualityDivisor)
}

// NewPRNG builds the configured generator, safe for use by every worker. A
// zero seed leaves the default generator on the runtime's random stream.
func (o Options) NewPRNG() (rng.PRNG, error) {
	switch o.PRNG {
	case "", "default":
		d := rng.NewDefault()
		if o.Seed != 0 {
			d.Seed(o.Seed)
		}
		return d, nil
	case "mersenne":
		return rng.NewSynchronized(rng.NewMersenneTwister(o.Seed)), nil
	case "xorshift":
		return rng.NewSynchronized(rng.NewXorShift(o.Seed)), nil
	case "crypto":
		return rng.NewCrypto(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPRNG, o.PRNG)
	}
}

// NewCamera builds the configured camera at the render resolution. Basis
// cameras come back attached to a viewport that has already been applied.
func (o Options) NewCamera() (camera.Camera, *camera.Viewport, error) {
	cam, err := o.newCamera()
	if err != nil {
		return nil, nil, err
	}
	w, h := o.RenderSize()
	switch c := cam.(type) {
	case *camera.PinholeCamera:
		if err := c.SetResolution(w, h); err != nil {
			return nil, nil, err
		}
	case *camera.PerspectiveCamera:
		if err := c.SetResolution(w, h); err != nil {
			return nil, nil, err
		}
	case camera.Attachable:
		vp, err := camera.NewViewport(w, h)
		if err != nil {
			return nil, nil, err
		}
		vp.Attach(c)
		vp.Apply()
		return cam, vp, nil
	}
	cam.Configure()
	return cam, nil, nil
}

func (o Options) newCamera() (camera.Camera, error) {
	switch o.Camera {
	case "pinhole":
		return camera.NewPinholeCamera(o.Width, o.Height, o.FOV)
	case "", "perspective":
		c, err := camera.NewPerspectiveCamera(o.Width, o.Height, o.FOV)
		if err != nil {
			return nil, err
		}
		if err := c.SetLens(o.LensRadius, o.FocalDistance); err != nil {
			return nil, err
		}
		return c, nil
	case "basis":
		return camera.NewBasisCamera(o.FOV)
	case "ortho":
		// Frame the same extent the perspective view covers at the focal distance
		return camera.NewOrthoBasisCamera(2 * o.FocalDistance * math.Tan(o.FOV*math.Pi/360))
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCamera, o.Camera)
	}
}

// NewPixelFilter builds the optional filtered grid. Both results are nil when
// no filter is configured.
func (o Options) NewPixelFilter() (sampling.Sampler, filter.Filter, error) {
	if o.Filter == "" {
		return nil, nil, nil
	}
	f, err := filter.New(o.Filter, o.FilterWidth, o.FilterWidth)
	if err != nil {
		return nil, nil, err
	}
	w, h := o.RenderSize()
	sampler := sampling.NewStratifiedSampler(image.Rect(0, 0, w, h), o.PixelSamples, o.PixelSamples, true, 0, 0)
	return sampler, f, nil
}
