package camera

import (
	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

// PinholeCamera is an ideal perspective camera with no lens
type PinholeCamera struct {
	projective
}

// NewPinholeCamera creates a configured pinhole camera at the origin looking
// down +Z
func NewPinholeCamera(width, height int, fov float64) (*PinholeCamera, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidResolution
	}
	if !(fov > 0 && fov < 180) {
		return nil, ErrInvalidFOV
	}
	return &PinholeCamera{projective: newProjective(width, height, fov)}, nil
}

func (c *PinholeCamera) camera() {}

// Kind returns KindPinhole
func (c *PinholeCamera) Kind() Kind { return KindPinhole }

// Configure rebuilds the transform chain
func (c *PinholeCamera) Configure() { c.configure() }

// NewRay returns the ray through the sample's raster position
func (c *PinholeCamera) NewRay(s *sampling.Sample) core.Ray {
	dir := c.rasterToCamera.Point(core.Vec3{X: s.X, Y: s.Y}).Normalize()
	return c.toWorld(core.Vec3{}, dir, s.Time)
}

// NewRayDifferential returns the ray through the sample with auxiliary rays
// one raster pixel away in x and y
func (c *PinholeCamera) NewRayDifferential(s *sampling.Sample) core.RayDifferential {
	pCamera := c.rasterToCamera.Point(core.Vec3{X: s.X, Y: s.Y})
	rd := core.RayDifferential{
		Ray:              c.toWorld(core.Vec3{}, pCamera.Normalize(), s.Time),
		HasDifferentials: true,
	}
	rd.RxOrigin = rd.Origin
	rd.RyOrigin = rd.Origin
	rd.RxDirection = c.rig.cameraToWorld.Vector(pCamera.Add(c.dxCamera).Normalize()).Normalize()
	rd.RyDirection = c.rig.cameraToWorld.Vector(pCamera.Add(c.dyCamera).Normalize()).Normalize()
	return rd
}

func (p *projective) toWorld(origin, dir core.Vec3, time float64) core.Ray {
	ray := core.NewRay(p.rig.cameraToWorld.Point(origin), p.rig.cameraToWorld.Vector(dir).Normalize())
	ray.Time = time
	return ray
}

// PerspectiveCamera is a perspective camera with a thin lens. A zero lens
// radius behaves as a pinhole.
type PerspectiveCamera struct {
	projective
	lensRadius    float64
	focalDistance float64
}

// NewPerspectiveCamera creates a configured perspective camera with depth of
// field disabled
func NewPerspectiveCamera(width, height int, fov float64) (*PerspectiveCamera, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidResolution
	}
	if !(fov > 0 && fov < 180) {
		return nil, ErrInvalidFOV
	}
	return &PerspectiveCamera{projective: newProjective(width, height, fov), focalDistance: 1}, nil
}

func (c *PerspectiveCamera) camera() {}

// Kind returns KindPerspective
func (c *PerspectiveCamera) Kind() Kind { return KindPerspective }

// Configure rebuilds the transform chain
func (c *PerspectiveCamera) Configure() { c.configure() }

// SetLens sets the lens radius and the distance to the plane in focus
func (c *PerspectiveCamera) SetLens(radius, focalDistance float64) error {
	if !(radius >= 0 && focalDistance >= 0) {
		return ErrInvalidLens
	}
	c.lensRadius = radius
	c.focalDistance = focalDistance
	return nil
}

// Lens returns the lens radius and focal distance
func (c *PerspectiveCamera) Lens() (radius, focalDistance float64) {
	return c.lensRadius, c.focalDistance
}

func (c *PerspectiveCamera) depthOfField() bool {
	return c.lensRadius > 0 && c.focalDistance > 0
}

// focus bends a camera-space ray from the pinhole through the lens sample so
// that it still meets the original ray on the plane of focus
func (c *PerspectiveCamera) focus(dir core.Vec3, s *sampling.Sample) (origin, focused core.Vec3) {
	lu, lv := sampling.ConcentricSampleDisk(s.LensU, s.LensV)
	origin = core.Vec3{X: lu * c.lensRadius, Y: lv * c.lensRadius}

	ft := c.focalDistance / dir.Z
	pFocus := dir.Multiply(ft)
	return origin, pFocus.Subtract(origin).Normalize()
}

// NewRay returns the ray through the sample, refracted through the lens when
// depth of field is enabled
func (c *PerspectiveCamera) NewRay(s *sampling.Sample) core.Ray {
	dir := c.rasterToCamera.Point(core.Vec3{X: s.X, Y: s.Y}).Normalize()
	origin := core.Vec3{}
	if c.depthOfField() {
		origin, dir = c.focus(dir, s)
	}
	return c.toWorld(origin, dir, s.Time)
}

// NewRayDifferential returns the ray through the sample with auxiliary rays
// one raster pixel away in x and y. The auxiliary rays share the lens sample.
func (c *PerspectiveCamera) NewRayDifferential(s *sampling.Sample) core.RayDifferential {
	pCamera := c.rasterToCamera.Point(core.Vec3{X: s.X, Y: s.Y})
	dir := pCamera.Normalize()
	dx := pCamera.Add(c.dxCamera).Normalize()
	dy := pCamera.Add(c.dyCamera).Normalize()

	origin, rxOrigin, ryOrigin := core.Vec3{}, core.Vec3{}, core.Vec3{}
	if c.depthOfField() {
		origin, dir = c.focus(dir, s)
		rxOrigin, dx = c.focus(dx, s)
		ryOrigin, dy = c.focus(dy, s)
	}

	toWorld := c.rig.cameraToWorld
	return core.RayDifferential{
		Ray:              c.toWorld(origin, dir, s.Time),
		HasDifferentials: true,
		RxOrigin:         toWorld.Point(rxOrigin),
		RyOrigin:         toWorld.Point(ryOrigin),
		RxDirection:      toWorld.Vector(dx).Normalize(),
		RyDirection:      toWorld.Vector(dy).Normalize(),
	}
}
