// Package scene provides a small sphere scene that answers radiance queries
// by path tracing against a sky gradient. It is the scene the command line
// renderer draws and the one end-to-end tests exercise.
package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/rng"
)

var (
	ErrInvalidMaxDepth    = errors.New("scene: max depth must be at least 1")
	ErrInvalidRRDepth     = errors.New("scene: russian roulette depth must not be negative")
	ErrInvalidRRMinPasses = errors.New("scene: russian roulette minimum passes must not be negative")
)

// Config controls path termination
type Config struct {
	MaxDepth                 int  // Hard bounce limit, always enforced
	RussianRouletteDepth     int  // Bounces before Russian roulette can activate
	RussianRouletteMinPasses int  // Passes before Russian roulette can activate
	SkipRussianRoulette      bool // Trace every path to MaxDepth
}

// DefaultConfig returns the termination settings used by the CLI
func DefaultConfig() Config {
	return Config{
		MaxDepth:             50,
		RussianRouletteDepth: 5,
	}
}

// Validate rejects termination settings that cannot bound a path
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	if c.RussianRouletteDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRRDepth, c.RussianRouletteDepth)
	}
	if c.RussianRouletteMinPasses < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRRMinPasses, c.RussianRouletteMinPasses)
	}
	return nil
}

// Scene is a list of spheres lit by a vertical sky gradient. Add spheres
// before rendering starts; Radiance is safe for concurrent use afterwards.
type Scene struct {
	Spheres     []*Sphere
	TopColor    core.Spectrum
	BottomColor core.Spectrum
	config      Config
}

// New creates an empty scene with the default sky. A zero MaxDepth, as in
// a zero Config, is raised to one bounce; callers taking settings from
// users should Validate first.
func New(config Config) *Scene {
	if config.MaxDepth < 1 {
		config.MaxDepth = 1
	}
	return &Scene{
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
		config:      config,
	}
}

// Config returns the termination settings
func (s *Scene) Config() Config {
	return s.config
}

// Add appends spheres to the scene
func (s *Scene) Add(spheres ...*Sphere) {
	s.Spheres = append(s.Spheres, spheres...)
}

// Intersect finds the closest sphere along ray
func (s *Scene) Intersect(ray core.Ray) (Hit, bool) {
	is := core.NewIntersection(s)
	is.Reset(ray)
	var closest *Sphere
	for _, sphere := range s.Spheres {
		if sphere.Intersect(is) {
			closest = sphere
		}
	}
	if closest == nil {
		return Hit{}, false
	}
	return closest.Surface(is), true
}

// Radiance traces a path from ray and returns the light arriving along it
func (s *Scene) Radiance(pass int, ray core.Ray, random rng.PRNG) core.Spectrum {
	radiance := core.Spectrum{}
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < s.config.MaxDepth; bounce++ {
		hit, ok := s.Intersect(ray)
		if !ok {
			return radiance.Add(throughput.MultiplyVec(s.background(ray)))
		}

		radiance = radiance.Add(throughput.MultiplyVec(hit.Material.Emitted()))

		scattered, weight, ok := hit.Material.Scatter(ray, hit, random)
		if !ok {
			return radiance
		}
		throughput = throughput.MultiplyVec(weight)

		survive, compensation := s.russianRoulette(bounce, pass, throughput, random)
		if !survive {
			return radiance
		}
		throughput = throughput.Multiply(compensation)
		ray = scattered
	}
	return radiance
}

// russianRoulette reports whether the path survives and the factor that keeps
// the estimate unbiased when it does
func (s *Scene) russianRoulette(bounce, pass int, throughput core.Spectrum, random rng.PRNG) (bool, float64) {
	if s.config.SkipRussianRoulette || bounce < s.config.RussianRouletteDepth || pass < s.config.RussianRouletteMinPasses {
		return true, 1
	}
	survival := math.Min(0.95, math.Max(0.05, throughput.MaxComponent()))
	if random.Float64() > survival {
		return false, 0
	}
	return true, 1 / survival
}

// background blends from BottomColor to TopColor along the ray's Y direction
func (s *Scene) background(ray core.Ray) core.Spectrum {
	t := 0.5 * (ray.Direction.Normalize().Y + 1)
	return s.BottomColor.Multiply(1 - t).Add(s.TopColor.Multiply(t))
}
