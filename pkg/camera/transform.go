package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-progressive-core/pkg/core"
)

// Transform is a 4x4 homogeneous transform stored with its inverse
type Transform struct {
	m, inv mgl64.Mat4
}

// NewTransform wraps m and computes its inverse
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{m: m, inv: m.Inv()}
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{m: mgl64.Ident4(), inv: mgl64.Ident4()}
}

// Translate returns a translation by (x, y, z)
func Translate(x, y, z float64) Transform {
	return Transform{m: mgl64.Translate3D(x, y, z), inv: mgl64.Translate3D(-x, -y, -z)}
}

// Scale returns a non-uniform scale
func Scale(x, y, z float64) Transform {
	return Transform{m: mgl64.Scale3D(x, y, z), inv: mgl64.Scale3D(1/x, 1/y, 1/z)}
}

// RotateX returns a rotation of angle radians about the X axis
func RotateX(angle float64) Transform {
	return Transform{m: mgl64.HomogRotate3DX(angle), inv: mgl64.HomogRotate3DX(-angle)}
}

// RotateY returns a rotation of angle radians about the Y axis
func RotateY(angle float64) Transform {
	return Transform{m: mgl64.HomogRotate3DY(angle), inv: mgl64.HomogRotate3DY(-angle)}
}

// Perspective returns the projection that maps camera space, looking down
// +Z, onto the screen window at z=near with depth remapped to [0, 1] between
// near and far. fov is in degrees and spans the shorter screen axis.
func Perspective(fov, near, far float64) Transform {
	// Column-major: the w row picks up z for the perspective divide
	persp := mgl64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, far / (far - near), 1,
		0, 0, -far * near / (far - near), 0,
	}
	invTan := 1 / math.Tan(mgl64.DegToRad(fov)/2)
	return Scale(invTan, invTan, 1).Compose(NewTransform(persp))
}

// LookAt places a camera at eye looking toward target. Camera space has +X to
// the right, +Y up and +Z forward.
func LookAt(eye, target, up core.Vec3) Transform {
	dir := target.Subtract(eye).Normalize()
	right := dir.Cross(up.Normalize()).Normalize()
	newUp := right.Cross(dir)

	m := mgl64.Mat4{
		right.X, right.Y, right.Z, 0,
		newUp.X, newUp.Y, newUp.Z, 0,
		dir.X, dir.Y, dir.Z, 0,
		eye.X, eye.Y, eye.Z, 1,
	}
	return NewTransform(m)
}

// Matrix returns the forward matrix
func (t Transform) Matrix() mgl64.Mat4 { return t.m }

// Inverse swaps the forward and inverse matrices
func (t Transform) Inverse() Transform {
	return Transform{m: t.inv, inv: t.m}
}

// Compose returns t·o, which applies o first
func (t Transform) Compose(o Transform) Transform {
	return Transform{m: t.m.Mul4(o.m), inv: o.inv.Mul4(t.inv)}
}

// Point transforms a point, applying the homogeneous divide
func (t Transform) Point(p core.Vec3) core.Vec3 {
	h := t.m.Mul4x1(p.Mgl().Vec4(1))
	if h[3] != 1 && h[3] != 0 {
		h = h.Mul(1 / h[3])
	}
	return core.FromMgl(h.Vec3())
}

// Vector transforms a direction, ignoring translation
func (t Transform) Vector(v core.Vec3) core.Vec3 {
	return core.FromMgl(t.m.Mul4x1(v.Mgl().Vec4(0)).Vec3())
}

// ApproxEqual compares forward matrices within eps
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return t.m.ApproxEqualThreshold(o.m, eps)
}
