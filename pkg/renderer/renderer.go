// Package renderer drives progressive Monte Carlo rendering. A Renderer adds
// one stochastic sample to every pixel of a region per call; the Progressive
// driver splits the frame into regions and runs one per worker, frame after
// frame, until cancelled.
package renderer

import (
	"context"

	"github.com/df07/go-progressive-core/pkg/rng"
)

// Cancelled is polled once per pixel. Returning true abandons the current
// pass and resets all progress.
type Cancelled func() bool

// NeverCancelled never cancels
func NeverCancelled() bool { return false }

// FromContext polls ctx for cancellation
func FromContext(ctx context.Context) Cancelled {
	return func() bool {
		return ctx.Err() != nil
	}
}

// Renderer accumulates samples into pixels
type Renderer interface {
	// Render adds one sample to every pixel, invoking onUpdate after each
	// pixel. It returns false when cancelled part way through.
	Render(pixels PixelIterable, onUpdate func(*Pixel), cancelled Cancelled) bool
	// ResetPass restarts pass numbering without touching pixels or timing
	ResetPass()
	PRNG() rng.PRNG
	SetPRNG(random rng.PRNG)
}

// base owns the random number generator shared by every worker rendering
// through the same renderer. It must be safe for concurrent use.
type base struct {
	random rng.PRNG
}

func (b *base) PRNG() rng.PRNG { return b.random }

// SetPRNG replaces the generator. It must only be called between frames.
func (b *base) SetPRNG(random rng.PRNG) {
	if random == nil {
		panic("renderer: nil PRNG")
	}
	b.random = random
}
