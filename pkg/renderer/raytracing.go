package renderer

import (
	"github.com/df07/go-progressive-core/pkg/camera"
	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/rng"
)

// RayTracingRenderer holds what every ray-based renderer needs: the scene,
// the full projective camera, an optional legacy basis camera, and the
// resolution that maps pixels onto the image plane. Exactly one camera is
// active; which one is the caller's choice.
type RayTracingRenderer struct {
	base
	scene     core.Scene
	camera    camera.Camera
	legacy    camera.Camera
	useLegacy bool

	width, height       int
	invWidth, invHeight float64
}

func newRayTracingRenderer(scene core.Scene, cam camera.Camera, random rng.PRNG, width, height int) (RayTracingRenderer, error) {
	var r RayTracingRenderer
	r.SetScene(scene)
	r.SetCamera(cam)
	r.SetPRNG(random)
	if err := r.SetResolution(width, height); err != nil {
		return RayTracingRenderer{}, err
	}
	return r, nil
}

func (r *RayTracingRenderer) Scene() core.Scene { return r.scene }

// SetScene replaces the scene. Panics on nil.
func (r *RayTracingRenderer) SetScene(scene core.Scene) {
	if scene == nil {
		panic("renderer: nil scene")
	}
	r.scene = scene
}

func (r *RayTracingRenderer) Camera() camera.Camera { return r.camera }

// SetCamera replaces the projective camera. Panics on nil.
func (r *RayTracingRenderer) SetCamera(cam camera.Camera) {
	if cam == nil {
		panic("renderer: nil camera")
	}
	r.camera = cam
}

func (r *RayTracingRenderer) LegacyCamera() camera.Camera { return r.legacy }

// SetLegacyCamera installs the basis camera used when UseLegacyCamera is on.
// Panics on nil.
func (r *RayTracingRenderer) SetLegacyCamera(cam camera.Camera) {
	if cam == nil {
		panic("renderer: nil legacy camera")
	}
	r.legacy = cam
}

// UseLegacyCamera selects which camera generates rays. Enabling it without a
// legacy camera installed panics.
func (r *RayTracingRenderer) UseLegacyCamera(use bool) {
	if use && r.legacy == nil {
		panic("renderer: no legacy camera installed")
	}
	r.useLegacy = use
}

// ActiveCamera returns the camera rays are generated from
func (r *RayTracingRenderer) ActiveCamera() camera.Camera {
	if r.useLegacy {
		return r.legacy
	}
	return r.camera
}

// Resolution returns the viewport size pixels are normalized against
func (r *RayTracingRenderer) Resolution() (int, int) { return r.width, r.height }

// SetResolution changes the viewport size. It must match the cameras'
// resolution and only change between frames.
func (r *RayTracingRenderer) SetResolution(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidResolution
	}
	r.width, r.height = width, height
	r.invWidth = 1 / float64(width)
	r.invHeight = 1 / float64(height)
	return nil
}
