package camera

import (
	"math"

	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

// Viewport is the image surface a basis camera renders into. A viewport and a
// camera are paired one-to-one; attaching either side to something new
// breaks the old pairing in both directions.
type Viewport struct {
	width, height int
	attached      Attachable
}

// Attachable is implemented by the cameras a Viewport can drive: BasisCamera
// and OrthoBasisCamera
type Attachable interface {
	Camera
	basis() *orthoBasis
}

// NewViewport creates a detached viewport
func NewViewport(width, height int) (*Viewport, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidResolution
	}
	return &Viewport{width: width, height: height}, nil
}

// Size returns the viewport dimensions
func (vp *Viewport) Size() (int, int) { return vp.width, vp.height }

// Resize changes the dimensions. The attached camera is not notified; call
// Apply once the viewport is in its final state.
func (vp *Viewport) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidResolution
	}
	vp.width, vp.height = width, height
	return nil
}

// Camera returns the attached camera, or nil
func (vp *Viewport) Camera() Camera {
	if vp.attached == nil {
		return nil
	}
	return vp.attached
}

// Attach pairs cam with this viewport. Any camera previously attached here is
// detached, and cam is detached from its previous viewport.
func (vp *Viewport) Attach(cam Attachable) {
	if vp.attached == cam {
		return
	}
	vp.Detach()

	b := cam.basis()
	if b.viewport != nil {
		b.viewport.Detach()
	}
	vp.attached = cam
	b.viewport = vp
}

// Detach breaks the current pairing, if any
func (vp *Viewport) Detach() {
	if vp.attached == nil {
		return
	}
	vp.attached.basis().viewport = nil
	vp.attached = nil
}

// Apply recomputes the attached camera's basis from the viewport size and
// the camera placement
func (vp *Viewport) Apply() {
	if vp.attached != nil {
		vp.attached.Configure()
	}
}

// orthoBasis is the camera frame shared by the basis cameras: an eye point
// and right/up/forward unit vectors, with the letterboxed half extents of the
// image plane.
type orthoBasis struct {
	rig      Rig
	viewport *Viewport

	eye, right, up, forward core.Vec3
	halfX, halfY            float64
	invWidth, invHeight     float64
}

func newOrthoBasis() orthoBasis {
	return orthoBasis{rig: NewRig(), halfX: 1, halfY: 1, invWidth: 1, invHeight: 1}
}

func (b *orthoBasis) basis() *orthoBasis { return b }

// Rig returns the placement
func (b *orthoBasis) Rig() *Rig { return &b.rig }

// Viewport returns the attached viewport, or nil
func (b *orthoBasis) Viewport() *Viewport { return b.viewport }

func (b *orthoBasis) configure() {
	width, height := 1, 1
	if b.viewport != nil {
		width, height = b.viewport.width, b.viewport.height
	}
	b.invWidth = 1 / float64(width)
	b.invHeight = 1 / float64(height)

	aspect := float64(width) / float64(height)
	if aspect > 1 {
		b.halfX, b.halfY = aspect, 1
	} else {
		b.halfX, b.halfY = 1, 1/aspect
	}

	b.eye = b.rig.Position()
	b.right = b.rig.Right()
	b.up = b.rig.Up()
	b.forward = b.rig.Forward()
}

// normalized converts a raster sample into image-plane coordinates in
// [-0.5, 0.5)
func (b *orthoBasis) normalized(s *sampling.Sample) (u, v float64) {
	return s.X*b.invWidth - 0.5, s.Y*b.invHeight - 0.5
}

func (b *orthoBasis) differential(rayAt func(u, v float64) core.Ray, s *sampling.Sample) core.RayDifferential {
	u, v := b.normalized(s)
	ray := rayAt(u, v)
	ray.Time = s.Time
	rx := rayAt(u+b.invWidth, v)
	ry := rayAt(u, v+b.invHeight)
	return core.RayDifferential{
		Ray:              ray,
		HasDifferentials: true,
		RxOrigin:         rx.Origin,
		RxDirection:      rx.Direction,
		RyOrigin:         ry.Origin,
		RyDirection:      ry.Direction,
	}
}

// BasisCamera is a perspective camera built directly from its orthonormal
// basis. All rays leave the eye.
type BasisCamera struct {
	orthoBasis
	fov     float64
	tanHalf float64
}

// NewBasisCamera creates a detached basis camera at the origin looking down
// +Z. fov is in degrees and spans the shorter viewport axis.
func NewBasisCamera(fov float64) (*BasisCamera, error) {
	c := &BasisCamera{orthoBasis: newOrthoBasis()}
	if err := c.SetFOV(fov); err != nil {
		return nil, err
	}
	c.Configure()
	return c, nil
}

func (c *BasisCamera) camera() {}

// Kind returns KindBasis
func (c *BasisCamera) Kind() Kind { return KindBasis }

// SetFOV changes the field of view in degrees
func (c *BasisCamera) SetFOV(fov float64) error {
	if !(fov > 0 && fov < 180) {
		return ErrInvalidFOV
	}
	c.fov = fov
	return nil
}

// Configure recomputes the basis from the rig and the attached viewport
func (c *BasisCamera) Configure() {
	c.configure()
	c.tanHalf = math.Tan(c.fov * math.Pi / 360)
}

// RayAt returns the ray through normalized image coordinates (u, v) in
// [-0.5, 0.5), with v growing downward
func (c *BasisCamera) RayAt(u, v float64) core.Ray {
	dir := c.forward.
		Add(c.right.Multiply(2 * u * c.halfX * c.tanHalf)).
		Subtract(c.up.Multiply(2 * v * c.halfY * c.tanHalf))
	return core.NewRay(c.eye, dir.Normalize())
}

// NewRay returns the ray through the sample's raster position
func (c *BasisCamera) NewRay(s *sampling.Sample) core.Ray {
	ray := c.RayAt(c.normalized(s))
	ray.Time = s.Time
	return ray
}

// NewRayDifferential returns the ray through the sample with auxiliary rays
// one raster pixel away
func (c *BasisCamera) NewRayDifferential(s *sampling.Sample) core.RayDifferential {
	return c.differential(c.RayAt, s)
}

// OrthoBasisCamera is a parallel-projection camera. All rays share the
// forward direction and leave from points on the image plane.
type OrthoBasisCamera struct {
	orthoBasis
	viewHeight float64
}

// NewOrthoBasisCamera creates a detached orthographic camera whose image
// plane spans viewHeight world units along the shorter viewport axis
func NewOrthoBasisCamera(viewHeight float64) (*OrthoBasisCamera, error) {
	c := &OrthoBasisCamera{orthoBasis: newOrthoBasis()}
	if err := c.SetViewHeight(viewHeight); err != nil {
		return nil, err
	}
	c.Configure()
	return c, nil
}

func (c *OrthoBasisCamera) camera() {}

// Kind returns KindOrthoBasis
func (c *OrthoBasisCamera) Kind() Kind { return KindOrthoBasis }

// SetViewHeight changes the world-space extent of the image plane
func (c *OrthoBasisCamera) SetViewHeight(h float64) error {
	if !(h > 0) || math.IsInf(h, 1) {
		return ErrInvalidViewHeight
	}
	c.viewHeight = h
	return nil
}

// Configure recomputes the basis from the rig and the attached viewport
func (c *OrthoBasisCamera) Configure() { c.configure() }

// RayAt returns the ray through normalized image coordinates (u, v) in
// [-0.5, 0.5), with v growing downward
func (c *OrthoBasisCamera) RayAt(u, v float64) core.Ray {
	origin := c.eye.
		Add(c.right.Multiply(u * c.halfX * c.viewHeight)).
		Subtract(c.up.Multiply(v * c.halfY * c.viewHeight))
	return core.NewRay(origin, c.forward)
}

// NewRay returns the ray through the sample's raster position
func (c *OrthoBasisCamera) NewRay(s *sampling.Sample) core.Ray {
	ray := c.RayAt(c.normalized(s))
	ray.Time = s.Time
	return ray
}

// NewRayDifferential returns the ray through the sample with auxiliary rays
// one raster pixel away
func (c *OrthoBasisCamera) NewRayDifferential(s *sampling.Sample) core.RayDifferential {
	return c.differential(c.RayAt, s)
}
