package scene

import (
	"math"

	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/rng"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

// Material decides how light leaves a surface
type Material interface {
	// Scatter returns the continuation ray and the throughput weight applied
	// to radiance arriving along it. ok is false when the ray is absorbed.
	Scatter(in core.Ray, hit Hit, random rng.PRNG) (scattered core.Ray, weight core.Spectrum, ok bool)
	Emitted() core.Spectrum
}

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Spectrum
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Spectrum) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter samples a cosine-weighted direction about the normal. The cosine
// and pdf cancel against the albedo/π BRDF, leaving the albedo as weight.
func (l *Lambertian) Scatter(in core.Ray, hit Hit, random rng.PRNG) (core.Ray, core.Spectrum, bool) {
	local := sampling.CosineSampleHemisphere(random.Float64(), random.Float64())
	dir := toWorld(local, hit.Normal)
	return core.Ray{Origin: hit.Point, Direction: dir, Time: in.Time}, l.Albedo, true
}

func (l *Lambertian) Emitted() core.Spectrum { return core.Spectrum{} }

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Spectrum
	Fuzz   float64 // 0 = perfect mirror, 1 = very fuzzy
}

// NewMetal creates a new metal material, clamping fuzz to [0, 1]
func NewMetal(albedo core.Spectrum, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: math.Max(0, math.Min(1, fuzz))}
}

// Scatter reflects about the normal and perturbs the reflection within a
// sphere of radius Fuzz. Perturbed rays that end up below the surface are
// absorbed.
func (m *Metal) Scatter(in core.Ray, hit Hit, random rng.PRNG) (core.Ray, core.Spectrum, bool) {
	d := in.Direction.Normalize()
	reflected := d.Subtract(hit.Normal.Multiply(2 * d.Dot(hit.Normal)))
	if m.Fuzz > 0 {
		p := sampling.UniformSampleSphere(random.Float64(), random.Float64())
		reflected = reflected.Add(p.Multiply(m.Fuzz * math.Cbrt(random.Float64())))
	}
	if reflected.Dot(hit.Normal) <= 0 {
		return core.Ray{}, core.Spectrum{}, false
	}
	return core.Ray{Origin: hit.Point, Direction: reflected, Time: in.Time}, m.Albedo, true
}

func (m *Metal) Emitted() core.Spectrum { return core.Spectrum{} }

// Emissive is a light source material that absorbs everything it is hit by
type Emissive struct {
	Emission core.Spectrum
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Spectrum) *Emissive {
	return &Emissive{Emission: emission}
}

func (e *Emissive) Scatter(core.Ray, Hit, rng.PRNG) (core.Ray, core.Spectrum, bool) {
	return core.Ray{}, core.Spectrum{}, false
}

func (e *Emissive) Emitted() core.Spectrum { return e.Emission }

// toWorld rotates a +Z hemisphere direction into the frame around n
func toWorld(local, n core.Vec3) core.Vec3 {
	helper := core.NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = core.NewVec3(0, 1, 0)
	}
	t := helper.Cross(n).Normalize()
	b := n.Cross(t)
	return t.Multiply(local.X).Add(b.Multiply(local.Y)).Add(n.Multiply(local.Z))
}
