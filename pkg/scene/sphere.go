package scene

import (
	"math"

	"github.com/df07/go-progressive-core/pkg/core"
)

// hitEpsilon rejects hits this close to the ray origin so scattered rays do
// not re-intersect the surface they left
const hitEpsilon = 1e-4

// Hit describes the closest surface point found along a ray
type Hit struct {
	Point     core.Vec3
	Normal    core.Vec3 // Always faces against the incoming ray
	FrontFace bool
	Material  Material

	// Surface parameterization at Point
	U, V       float64
	DpDu, DpDv core.Vec3
}

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Intersect records the nearest valid root in is and reports whether it
// replaced the current closest hit
func (s *Sphere) Intersect(is *core.Intersection) bool {
	ray := is.Ray
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	t0, t1 := core.SolveQuadratic(a, b, c)
	if math.IsNaN(t0) {
		return false
	}
	t := t0
	if t < hitEpsilon {
		t = t1
		if t < hitEpsilon {
			return false
		}
	}
	return is.Record(t)
}

// Surface builds the hit record for the distance stored in is
func (s *Sphere) Surface(is *core.Intersection) Hit {
	point := is.Ray.At(is.Distance)
	outward := point.Subtract(s.Center).Multiply(1 / s.Radius)
	front := is.Ray.Direction.Dot(outward) < 0
	normal := outward
	if !front {
		normal = outward.Negate()
	}

	hit := Hit{Point: point, Normal: normal, FrontFace: front, Material: s.Material}
	s.parameterize(&hit, outward)
	return hit
}

// parameterize fills in spherical coordinates with u running around the Z
// axis and v from the +Z pole to the -Z pole, both in [0, 1]
func (s *Sphere) parameterize(hit *Hit, outward core.Vec3) {
	phi := math.Atan2(outward.Y, outward.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	theta := math.Acos(math.Max(-1, math.Min(1, outward.Z)))

	hit.U = phi / (2 * math.Pi)
	hit.V = theta / math.Pi

	r := s.Radius
	hit.DpDu = core.NewVec3(-2*math.Pi*r*outward.Y, 2*math.Pi*r*outward.X, 0)
	hit.DpDv = core.NewVec3(
		math.Cos(theta)*math.Cos(phi),
		math.Cos(theta)*math.Sin(phi),
		-math.Sin(theta),
	).Multiply(math.Pi * r)
}
