package core

import (
	"math"

	"github.com/df07/go-progressive-core/pkg/rng"
)

// Scene answers radiance queries for the integrator. Implementations must be
// safe for concurrent use by multiple workers, each passing its own PRNG.
// Path termination (for example Russian roulette depth) is the scene's
// responsibility.
type Scene interface {
	Radiance(pass int, ray Ray, random rng.PRNG) Spectrum
}

// Intersection carries a ray query against a scene. Distance is reset to
// +Inf before every query so the closest hit wins.
type Intersection struct {
	Ray      Ray
	Distance float64
	Scene    Scene
}

// NewIntersection creates an intersection bound to a scene
func NewIntersection(scene Scene) *Intersection {
	return &Intersection{Scene: scene, Distance: math.Inf(1)}
}

// Reset prepares the intersection for a new query along ray
func (is *Intersection) Reset(ray Ray) {
	is.Ray = ray
	is.Distance = math.Inf(1)
}

// Hit reports whether a surface was recorded
func (is *Intersection) Hit() bool {
	return !math.IsInf(is.Distance, 1)
}

// Record stores t when it is closer than the current hit and positive
func (is *Intersection) Record(t float64) bool {
	if math.IsNaN(t) || t <= 0 || t >= is.Distance {
		return false
	}
	is.Distance = t
	return true
}
