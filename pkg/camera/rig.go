package camera

import "github.com/df07/go-progressive-core/pkg/core"

// Rig holds a camera's placement as a camera-to-world transform. Camera space
// looks down +Z with +Y up, so every move and turn is expressed in the
// camera's own frame and post-multiplied onto the current placement.
type Rig struct {
	cameraToWorld Transform
}

// NewRig returns a rig at the origin looking down world +Z
func NewRig() Rig {
	return Rig{cameraToWorld: Identity()}
}

// CameraToWorld returns the current placement
func (r *Rig) CameraToWorld() Transform { return r.cameraToWorld }

// SetCameraToWorld replaces the placement
func (r *Rig) SetCameraToWorld(t Transform) { r.cameraToWorld = t }

// LookAt places the rig at eye looking toward target
func (r *Rig) LookAt(eye, target, up core.Vec3) {
	r.cameraToWorld = LookAt(eye, target, up)
}

// Position returns the camera origin in world space
func (r *Rig) Position() core.Vec3 {
	return r.cameraToWorld.Point(core.Vec3{})
}

// Forward returns the world-space viewing direction
func (r *Rig) Forward() core.Vec3 {
	return r.cameraToWorld.Vector(core.Vec3{Z: 1}).Normalize()
}

// Up returns the world-space up direction
func (r *Rig) Up() core.Vec3 {
	return r.cameraToWorld.Vector(core.Vec3{Y: 1}).Normalize()
}

// Right returns the world-space right direction
func (r *Rig) Right() core.Vec3 {
	return r.cameraToWorld.Vector(core.Vec3{X: 1}).Normalize()
}

func (r *Rig) apply(t Transform) {
	r.cameraToWorld = r.cameraToWorld.Compose(t)
}

func (r *Rig) MoveForward(d float64)  { r.apply(Translate(0, 0, d)) }
func (r *Rig) MoveBackward(d float64) { r.apply(Translate(0, 0, -d)) }
func (r *Rig) MoveRight(d float64)    { r.apply(Translate(d, 0, 0)) }
func (r *Rig) MoveLeft(d float64)     { r.apply(Translate(-d, 0, 0)) }
func (r *Rig) MoveUp(d float64)       { r.apply(Translate(0, d, 0)) }
func (r *Rig) MoveDown(d float64)     { r.apply(Translate(0, -d, 0)) }

// pitch tilts the view direction toward +Y for positive angles
func (r *Rig) pitch(angle float64) { r.apply(RotateX(-angle)) }

// yaw swings the view direction toward +X for positive angles
func (r *Rig) yaw(angle float64) { r.apply(RotateY(angle)) }

// TurnUp pitches the camera up by angle radians
func (r *Rig) TurnUp(angle float64) { r.pitch(angle) }

// TurnDown pitches the camera down by angle radians
func (r *Rig) TurnDown(angle float64) { r.pitch(-angle) }

// TurnRight yaws the camera right by angle radians
func (r *Rig) TurnRight(angle float64) { r.yaw(angle) }

// TurnLeft yaws the camera left by angle radians
func (r *Rig) TurnLeft(angle float64) { r.yaw(-angle) }
