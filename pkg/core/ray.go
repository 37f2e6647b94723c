package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64 // Shutter time the ray was generated for
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// RayDifferential is a primary ray plus two auxiliary rays offset by one
// raster pixel along x and y.
type RayDifferential struct {
	Ray
	HasDifferentials bool
	RxOrigin         Vec3
	RxDirection      Vec3
	RyOrigin         Vec3
	RyDirection      Vec3
}

// ScaleDifferentials shrinks the auxiliary rays toward the primary ray, used
// when a pixel is sampled more than once per pass.
func (rd *RayDifferential) ScaleDifferentials(s float64) {
	rd.RxOrigin = rd.Origin.Add(rd.RxOrigin.Subtract(rd.Origin).Multiply(s))
	rd.RyOrigin = rd.Origin.Add(rd.RyOrigin.Subtract(rd.Origin).Multiply(s))
	rd.RxDirection = rd.Direction.Add(rd.RxDirection.Subtract(rd.Direction).Multiply(s))
	rd.RyDirection = rd.Direction.Add(rd.RyDirection.Subtract(rd.Direction).Multiply(s))
}
