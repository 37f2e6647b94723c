package scene

import (
	"math"

	"github.com/df07/go-progressive-core/pkg/core"
)

// Footprint is how far the hit point and its surface coordinates move for a
// one pixel step along the raster axes
type Footprint struct {
	DpDx, DpDy core.Vec3
	DuDx, DvDx float64
	DuDy, DvDy float64
}

// Footprint intersects the auxiliary rays of rd with the tangent plane at the
// hit. It reports false when rd carries no differentials, when an auxiliary
// ray runs parallel to the plane, or at a pole where the parameterization
// degenerates.
func (h Hit) Footprint(rd core.RayDifferential) (Footprint, bool) {
	if !rd.HasDifferentials {
		return Footprint{}, false
	}

	dx, okX := h.offset(rd.RxOrigin, rd.RxDirection)
	dy, okY := h.offset(rd.RyOrigin, rd.RyDirection)
	if !okX || !okY {
		return Footprint{}, false
	}

	return Footprint{
		DpDx: h.DpDu.Multiply(dx.Y).Add(h.DpDv.Multiply(dx.Z)),
		DpDy: h.DpDu.Multiply(dy.Y).Add(h.DpDv.Multiply(dy.Z)),
		DuDx: dx.Y,
		DvDx: dx.Z,
		DuDy: dy.Y,
		DvDy: dy.Z,
	}, true
}

// offset solves origin + t·dir = Point + du·DpDu + dv·DpDv and returns
// (t, du, dv)
func (h Hit) offset(origin, dir core.Vec3) (core.Vec3, bool) {
	a := [3][3]float64{
		{dir.X, -h.DpDu.X, -h.DpDv.X},
		{dir.Y, -h.DpDu.Y, -h.DpDv.Y},
		{dir.Z, -h.DpDu.Z, -h.DpDv.Z},
	}
	rhs := h.Point.Subtract(origin)
	x := core.SolveLinear3(a, [3]float64{rhs.X, rhs.Y, rhs.Z})
	if x.IsNaN() || math.IsInf(x.X, 0) || math.IsInf(x.Y, 0) || math.IsInf(x.Z, 0) {
		return core.Vec3{}, false
	}
	return x, true
}
