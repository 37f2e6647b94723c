package scene

import "github.com/df07/go-progressive-core/pkg/core"

// View is a camera placement suggested by a scene
type View struct {
	Eye, Target, Up core.Vec3
}

// NewDefaultScene creates three spheres on a large ground sphere with a
// small warm light overhead
func NewDefaultScene(config Config) (*Scene, View) {
	s := New(config)

	ground := NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	blue := NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	silver := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	gold := NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	light := NewEmissive(core.NewVec3(15.0, 14.0, 13.0))

	s.Add(
		NewSphere(core.NewVec3(0, -1000, -1), 1000, ground),
		NewSphere(core.NewVec3(0, 0.5, -1), 0.5, blue),
		NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver),
		NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
		NewSphere(core.NewVec3(30, 30.5, 15), 10, light),
	)

	return s, View{
		Eye:    core.NewVec3(0, 0.75, 2),
		Target: core.NewVec3(0, 0.5, -1),
		Up:     core.NewVec3(0, 1, 0),
	}
}
