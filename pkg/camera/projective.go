package camera

import (
	"math"

	"github.com/df07/go-progressive-core/pkg/core"
)

// projective is the transform chain shared by the pinhole and perspective
// cameras. Raster space has its origin at the top-left corner of the image
// with y growing downward; screen space is the letterboxed image plane.
type projective struct {
	rig Rig

	width, height int
	fov           float64 // Degrees, spans the shorter image axis
	near, far     float64

	cameraToScreen Transform
	screenToRaster Transform
	rasterToScreen Transform
	rasterToCamera Transform
	dxCamera       core.Vec3 // Camera-space step for one raster pixel in x
	dyCamera       core.Vec3 // Camera-space step for one raster pixel in y
	screenMin      [2]float64
	screenMax      [2]float64
}

func newProjective(width, height int, fov float64) projective {
	p := projective{
		rig:    NewRig(),
		width:  width,
		height: height,
		fov:    fov,
		near:   1e-2,
		far:    1000,
	}
	p.configure()
	return p
}

// configure rebuilds every derived transform. It must run after any
// parameter change for the change to take effect.
func (p *projective) configure() {
	aspect := float64(p.width) / float64(p.height)
	if aspect > 1 {
		p.screenMin = [2]float64{-aspect, -1}
		p.screenMax = [2]float64{aspect, 1}
	} else {
		p.screenMin = [2]float64{-1, -1 / aspect}
		p.screenMax = [2]float64{1, 1 / aspect}
	}

	p.cameraToScreen = Perspective(p.fov, p.near, p.far)
	p.screenToRaster = Scale(float64(p.width), float64(p.height), 1).
		Compose(Scale(1/(p.screenMax[0]-p.screenMin[0]), 1/(p.screenMin[1]-p.screenMax[1]), 1)).
		Compose(Translate(-p.screenMin[0], -p.screenMax[1], 0))
	p.rasterToScreen = p.screenToRaster.Inverse()
	p.rasterToCamera = p.cameraToScreen.Inverse().Compose(p.rasterToScreen)

	origin := p.rasterToCamera.Point(core.Vec3{})
	p.dxCamera = p.rasterToCamera.Point(core.Vec3{X: 1}).Subtract(origin)
	p.dyCamera = p.rasterToCamera.Point(core.Vec3{Y: 1}).Subtract(origin)
}

// Rig returns the placement
func (p *projective) Rig() *Rig { return &p.rig }

// Resolution returns the raster size
func (p *projective) Resolution() (int, int) { return p.width, p.height }

// SetResolution changes the raster size
func (p *projective) SetResolution(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidResolution
	}
	p.width, p.height = width, height
	return nil
}

// FOV returns the field of view in degrees
func (p *projective) FOV() float64 { return p.fov }

// SetFOV changes the field of view in degrees
func (p *projective) SetFOV(fov float64) error {
	if !(fov > 0 && fov < 180) {
		return ErrInvalidFOV
	}
	p.fov = fov
	return nil
}

// SetClipping changes the near and far planes
func (p *projective) SetClipping(near, far float64) error {
	if !(near > 0 && far > near) || math.IsInf(far, 1) {
		return ErrInvalidClipping
	}
	p.near, p.far = near, far
	return nil
}

// RasterToCamera maps a raster point onto the near plane in camera space
func (p *projective) RasterToCamera(raster core.Vec3) core.Vec3 {
	return p.rasterToCamera.Point(raster)
}

// CameraToRaster projects a camera-space point into raster space
func (p *projective) CameraToRaster(c core.Vec3) core.Vec3 {
	return p.screenToRaster.Point(p.cameraToScreen.Point(c))
}

// ScreenWindow returns the letterboxed bounds of the image plane
func (p *projective) ScreenWindow() (min, max [2]float64) {
	return p.screenMin, p.screenMax
}
