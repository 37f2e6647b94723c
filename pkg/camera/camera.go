// Package camera turns camera samples into world-space rays.
//
// Camera is a closed set of variants: PinholeCamera and PerspectiveCamera
// share a projective transform chain, BasisCamera and OrthoBasisCamera are
// the simpler orthonormal-basis cameras driven by an attached Viewport. All
// of them hold their placement in a Rig.
//
// Parameter setters never rebuild derived state. After a batch of edits the
// owner MUST call Configure (or Viewport.Apply for basis cameras); until then
// rays are generated from the previous configuration.
package camera

import (
	"errors"

	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

// Kind identifies a camera variant
type Kind int

const (
	KindPinhole Kind = iota
	KindPerspective
	KindBasis
	KindOrthoBasis
)

func (k Kind) String() string {
	switch k {
	case KindPinhole:
		return "pinhole"
	case KindPerspective:
		return "perspective"
	case KindBasis:
		return "basis"
	case KindOrthoBasis:
		return "ortho-basis"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidResolution = errors.New("camera: resolution must be positive")
	ErrInvalidFOV        = errors.New("camera: field of view must be in (0, 180) degrees")
	ErrInvalidClipping   = errors.New("camera: clipping planes must satisfy 0 < near < far")
	ErrInvalidLens       = errors.New("camera: lens radius and focal distance must be non-negative")
	ErrInvalidViewHeight = errors.New("camera: view height must be positive")
)

// Camera generates rays for samples whose X, Y are raster coordinates
type Camera interface {
	Kind() Kind
	// Rig exposes the move and turn operations
	Rig() *Rig
	// Configure rebuilds every derived transform from the current parameters
	Configure()
	NewRay(s *sampling.Sample) core.Ray
	NewRayDifferential(s *sampling.Sample) core.RayDifferential

	camera()
}
