// Package session wires the built-in scene, a camera, the path tracing
// renderer and the progressive driver together from one set of options.
// The command line tool and the preview server both render through it.
package session

import (
	"context"
	"math"
	"time"

	"github.com/df07/go-progressive-core/pkg/camera"
	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/log"
	"github.com/df07/go-progressive-core/pkg/renderer"
	"github.com/df07/go-progressive-core/pkg/sampling"
	"github.com/df07/go-progressive-core/pkg/scene"
)

// StopTimeout is how long shutdown waits for busy workers to notice
// cancellation
const StopTimeout = 2 * time.Second

// Session is one configured render
type Session struct {
	Options     renderer.Options
	Scene       *scene.Scene
	Camera      camera.Camera
	Viewport    *camera.Viewport // Only set for basis cameras
	Renderer    *renderer.PathTracingRenderer
	Progressive *renderer.Progressive

	logger log.Logger
}

// New validates opts and sceneConfig and builds every stage of the pipeline
func New(opts renderer.Options, sceneConfig scene.Config) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := sceneConfig.Validate(); err != nil {
		return nil, err
	}

	sc, view := scene.NewDefaultScene(sceneConfig)

	random, err := opts.NewPRNG()
	if err != nil {
		return nil, err
	}

	cam, vp, err := opts.NewCamera()
	if err != nil {
		return nil, err
	}
	cam.Rig().LookAt(view.Eye, view.Target, view.Up)
	cam.Configure()

	width, height := opts.RenderSize()
	r, err := renderer.NewPathTracingRenderer(sc, cam, random, width, height)
	if err != nil {
		return nil, err
	}

	logger := log.New("session")
	sampler, f, err := opts.NewPixelFilter()
	if err != nil {
		return nil, err
	}
	if f != nil {
		if err := r.SetPixelFilter(sampler, f); err != nil {
			return nil, err
		}
		logger.Infof("using %s filter over %dx%d samples per pixel", opts.Filter, opts.PixelSamples, opts.PixelSamples)
	}

	p, err := renderer.NewProgressive(r, renderer.ProgressiveConfig{
		MaxFrames:   opts.MaxFrames,
		NumWorkers:  opts.Workers,
		StopTimeout: StopTimeout,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		Options:     opts,
		Scene:       sc,
		Camera:      cam,
		Viewport:    vp,
		Renderer:    r,
		Progressive: p,
		logger:      logger,
	}, nil
}

// Render starts progressive rendering. See renderer.Progressive.RenderProgressive.
func (s *Session) Render(ctx context.Context, onUpdate func(*renderer.Pixel)) (<-chan renderer.FrameResult, <-chan error) {
	return s.Progressive.RenderProgressive(ctx, onUpdate)
}

// MoveCamera queues a rig edit. It is applied before the next frame, which
// restarts refinement from an empty frame.
func (s *Session) MoveCamera(move func(rig *camera.Rig)) {
	s.Progressive.Edit(func() {
		move(s.Camera.Rig())
		s.Camera.Configure()
	})
}

// Inspection is what a ray through a pixel center sees
type Inspection struct {
	Ray core.Ray
	Hit scene.Hit
	OK  bool // False when the ray escapes to the sky

	// Surface area covered by one sample spacing at the hit
	Footprint    scene.Footprint
	HasFootprint bool
}

// Inspect casts one ray through the center of raster pixel (x, y) with the
// lens at its center. The footprint is measured between neighboring samples,
// so a filtered grid of N samples per pixel shrinks it by 1/sqrt(N). The
// caller must not edit the camera concurrently.
func (s *Session) Inspect(x, y int) Inspection {
	sample := sampling.NewSample()
	sample.X = float64(x) + 0.5
	sample.Y = float64(y) + 0.5
	sample.LensU = 0.5
	sample.LensV = 0.5

	rd := s.Renderer.ActiveCamera().NewRayDifferential(sample)
	rd.ScaleDifferentials(1 / math.Sqrt(float64(s.samplesPerPixel())))

	hit, ok := s.Scene.Intersect(rd.Ray)
	result := Inspection{Ray: rd.Ray, Hit: hit, OK: ok}
	if ok {
		result.Footprint, result.HasFootprint = hit.Footprint(rd)
	}
	return result
}

func (s *Session) samplesPerPixel() int {
	if s.Options.Filter == "" {
		return 1
	}
	return s.Options.PixelSamples * s.Options.PixelSamples
}
