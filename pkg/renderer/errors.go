package renderer

import "errors"

var (
	ErrInvalidResolution = errors.New("renderer: frame dimensions must be positive")
	ErrInvalidRRDepth    = errors.New("renderer: russian roulette depth must not be negative")
	ErrInvalidQuality    = errors.New("renderer: quality divisor and multiplier must be at least 1")
	ErrInvalidWorkers    = errors.New("renderer: worker count must not be negative")
	ErrInvalidFrames     = errors.New("renderer: frame count must not be negative")
	ErrUnknownCamera     = errors.New("renderer: unknown camera")
	ErrUnknownPRNG       = errors.New("renderer: unknown random number generator")
	ErrUnboundedSampler  = errors.New("renderer: pixel filter needs a sampler with a per-pixel budget")
	ErrInterrupted       = errors.New("renderer: interrupted while rendering")
)
