package renderer

import (
	"image"
	"math"
	"sync"
	"testing"

	"github.com/df07/go-progressive-core/pkg/camera"
	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/filter"
	"github.com/df07/go-progressive-core/pkg/rng"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

func TestConstantSceneOnePass(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 4, 4)
	fb := newTestFrame(t, 4, 4)

	if !r.Render(fb, nil, NeverCancelled) {
		t.Fatal("Expected pass to complete")
	}

	for p := range fb.Pixels() {
		if p.SubSamples != 1 {
			t.Errorf("Pixel (%d,%d): expected 1 sub-sample, got %d", p.X, p.Y, p.SubSamples)
		}
		if p.Sum != core.NewVec3(1, 1, 1) {
			t.Errorf("Pixel (%d,%d): expected sum (1,1,1), got %v", p.X, p.Y, p.Sum)
		}
	}
}

func TestConstantSceneTwoPasses(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 4, 4)
	fb := newTestFrame(t, 4, 4)

	for pass := 0; pass < 2; pass++ {
		if !r.Render(fb, nil, NeverCancelled) {
			t.Fatalf("Expected pass %d to complete", pass)
		}
	}

	for p := range fb.Pixels() {
		if p.SubSamples != 2 {
			t.Errorf("Pixel (%d,%d): expected 2 sub-samples, got %d", p.X, p.Y, p.SubSamples)
		}
		if p.Sum != core.NewVec3(2, 2, 2) {
			t.Errorf("Pixel (%d,%d): expected sum (2,2,2), got %v", p.X, p.Y, p.Sum)
		}
	}
	if r.Samples() != 32 {
		t.Errorf("Expected 32 samples, got %d", r.Samples())
	}
	if r.Pass() != 2 {
		t.Errorf("Expected next pass 2, got %d", r.Pass())
	}
}

func TestPassIndexReachesScene(t *testing.T) {
	scene := NewMockScene(core.NewVec3(0.5, 0.5, 0.5))
	r, _ := newTestRenderer(t, scene, 2, 1)
	fb := newTestFrame(t, 2, 1)

	r.Render(fb, nil, NeverCancelled)
	r.Render(fb, nil, NeverCancelled)

	want := []int{0, 0, 1, 1}
	got := scene.Passes()
	if len(got) != len(want) {
		t.Fatalf("Expected %d scene queries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Query %d: expected pass %d, got %d", i, want[i], got[i])
		}
	}
}

func TestCancelBeforeFirstPixelIsIdempotent(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 4, 4)
	fb := newTestFrame(t, 4, 4)

	always := func() bool { return true }
	for i := 0; i < 3; i++ {
		if r.Render(fb, nil, always) {
			t.Fatal("Expected cancelled render to return false")
		}
		if r.Pass() != 0 || r.Samples() != 0 || r.Elapsed() != 0 {
			t.Errorf("Expected fresh state, got pass %d samples %d elapsed %v", r.Pass(), r.Samples(), r.Elapsed())
		}
	}

	if scene.calls.Load() != 0 {
		t.Errorf("Expected no scene queries, got %d", scene.calls.Load())
	}
	for p := range fb.Pixels() {
		if p.SubSamples != 0 {
			t.Errorf("Pixel (%d,%d) touched by a cancelled pass", p.X, p.Y)
		}
	}
}

func TestCancelMidRegionResetsProgress(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 4, 4)
	fb := newTestFrame(t, 4, 4)

	// Build up some progress first
	r.Render(fb, nil, NeverCancelled)
	r.Render(fb, nil, NeverCancelled)

	polls := 0
	cancelAfterFive := func() bool {
		polls++
		return polls > 5
	}
	if r.Render(fb, nil, cancelAfterFive) {
		t.Fatal("Expected cancelled render to return false")
	}

	if r.Pass() != 0 || r.Samples() != 0 || r.Elapsed() != 0 {
		t.Errorf("Expected counters reset, got pass %d samples %d elapsed %v", r.Pass(), r.Samples(), r.Elapsed())
	}

	touched := 0
	for p := range fb.Pixels() {
		if p.SubSamples == 3 {
			touched++
		}
	}
	if touched != 5 {
		t.Errorf("Expected 5 pixels sampled before cancellation, got %d", touched)
	}

	// The next invocation starts again from pass 0
	r.Render(fb, nil, NeverCancelled)
	passes := scene.Passes()
	if last := passes[len(passes)-1]; last != 0 {
		t.Errorf("Expected restart at pass 0, got %d", last)
	}
}

func TestResetPassKeepsPixels(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 4, 4)
	fb := newTestFrame(t, 4, 4)

	r.Render(fb, nil, NeverCancelled)
	r.Render(fb, nil, NeverCancelled)
	samples := r.Samples()

	r.ResetPass()

	if r.Pass() != 0 {
		t.Errorf("Expected pass 0 after reset, got %d", r.Pass())
	}
	if r.Samples() != samples {
		t.Errorf("Expected sample count kept at %d, got %d", samples, r.Samples())
	}
	for p := range fb.Pixels() {
		if p.SubSamples != 2 || p.Sum != core.NewVec3(2, 2, 2) {
			t.Errorf("Pixel (%d,%d) changed by ResetPass: %d %v", p.X, p.Y, p.SubSamples, p.Sum)
		}
	}
}

func TestClearResetsCounters(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 2, 2)
	fb := newTestFrame(t, 2, 2)

	r.Render(fb, nil, NeverCancelled)
	r.Clear()
	if r.Pass() != 0 || r.Samples() != 0 || r.Elapsed() != 0 || r.SamplesPerSecond() != 0 {
		t.Errorf("Expected all counters zero after Clear")
	}
}

func TestOnUpdateOncePerPixel(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 3, 2)
	fb := newTestFrame(t, 3, 2)

	seen := map[image.Point]int{}
	r.Render(fb, func(p *Pixel) {
		seen[image.Pt(p.X, p.Y)]++
		if p.SubSamples != 1 {
			t.Errorf("Expected callback after accumulation, got %d sub-samples", p.SubSamples)
		}
	}, nil)

	if len(seen) != 6 {
		t.Errorf("Expected 6 pixels updated, got %d", len(seen))
	}
	for pt, n := range seen {
		if n != 1 {
			t.Errorf("Pixel %v updated %d times", pt, n)
		}
	}
}

func TestJitterStaysInsidePixel(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, cam := newTestRenderer(t, scene, 8, 8)
	fb := newTestFrame(t, 8, 8)

	for pass := 0; pass < 20; pass++ {
		r.Render(fb.Region(image.Rect(3, 5, 4, 6)), nil, NeverCancelled)
	}

	for _, ray := range scene.Rays() {
		raster := cam.CameraToRaster(ray.Direction)
		if raster.X < 3-1e-9 || raster.X > 4+1e-9 || raster.Y < 5-1e-9 || raster.Y > 6+1e-9 {
			t.Errorf("Ray lands at raster %v, outside pixel (3,5)", raster)
		}
	}
}

func TestTentWarp(t *testing.T) {
	tests := []struct {
		u    float64
		want float64
	}{
		{0, -1},
		{0.25, -0.5},
		{1, 0},
		{1.75, 0.5},
	}
	for _, tt := range tests {
		if got := tent(tt.u); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("tent(%v): expected %v, got %v", tt.u, tt.want, got)
		}
	}

	for i := 0; i < 1000; i++ {
		u := 2 * float64(i) / 1000
		if j := tent(u); j < -1 || j >= 1 {
			t.Errorf("tent(%v) = %v outside [-1, 1)", u, j)
		}
	}
}

func TestNormalizedCoordinateRange(t *testing.T) {
	inv := 1.0 / 4
	tests := []struct {
		p      int
		jitter float64
		want   float64
	}{
		{0, -1, -0.5},
		{0, 0, -0.375},
		{3, 0, 0.375},
		{2, -1, 0},
	}
	for _, tt := range tests {
		if got := normalizedCoordinate(tt.p, tt.jitter, inv); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalizedCoordinate(%d, %v): expected %v, got %v", tt.p, tt.jitter, tt.want, got)
		}
	}
	if got := normalizedCoordinate(3, math.Nextafter(1, 0), inv); got >= 0.5 {
		t.Errorf("Expected coordinate below 0.5, got %v", got)
	}
}

func TestRasterCoordinateStaysInsideImage(t *testing.T) {
	for _, size := range []int{1, 3, 4, 640, 1080} {
		inv := 1 / float64(size)
		u := normalizedCoordinate(size-1, math.Nextafter(1, 0), inv)
		if got := rasterCoordinate(u, size); got >= float64(size) {
			t.Errorf("size %d: expected raster coordinate below %d, got %v", size, size, got)
		}
		if got := rasterCoordinate(normalizedCoordinate(0, -1, inv), size); got != 0 {
			t.Errorf("size %d: expected raster coordinate 0, got %v", size, got)
		}
	}
}

func TestConcurrentRegions(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 16, 16)
	r.SetPRNG(rng.NewDefault())
	fb := newTestFrame(t, 16, 16)

	splitter := sampling.NewRandomSampler(fb.Bounds(), sampling.NoMaximum, 0, 0)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		region := fb.Region(splitter.NewSubSampler(i, 4).Bounds())
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Render(region, nil, NeverCancelled)
		}()
	}
	wg.Wait()

	for p := range fb.Pixels() {
		if p.SubSamples != 1 {
			t.Errorf("Pixel (%d,%d): expected 1 sub-sample, got %d", p.X, p.Y, p.SubSamples)
		}
	}
	if r.Pass() != 4 {
		t.Errorf("Expected one pass per region, got %d", r.Pass())
	}
	if r.Samples() != 256 {
		t.Errorf("Expected 256 samples, got %d", r.Samples())
	}
}

func TestPixelFilterGrid(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, _ := newTestRenderer(t, scene, 4, 4)
	fb := newTestFrame(t, 4, 4)

	sampler := sampling.NewStratifiedSampler(fb.Bounds(), 3, 3, true, 0, 0)
	if err := r.SetPixelFilter(sampler, filter.NewBox(0.5, 0.5)); err != nil {
		t.Fatalf("SetPixelFilter failed: %v", err)
	}

	r.Render(fb, nil, NeverCancelled)

	for p := range fb.Pixels() {
		if p.SubSamples != 1 {
			t.Errorf("Pixel (%d,%d): expected one filtered sub-sample, got %d", p.X, p.Y, p.SubSamples)
		}
		if !p.Sum.ApproxEqual(core.NewVec3(1, 1, 1), 1e-12) {
			t.Errorf("Pixel (%d,%d): expected weighted mean (1,1,1), got %v", p.X, p.Y, p.Sum)
		}
	}
	if r.Samples() != 16*9 {
		t.Errorf("Expected 144 camera samples, got %d", r.Samples())
	}
	if calls := scene.calls.Load(); calls != 16*9 {
		t.Errorf("Expected 144 scene queries, got %d", calls)
	}

	r.ClearPixelFilter()
	r.Render(fb, nil, NeverCancelled)
	if calls := scene.calls.Load(); calls != 16*9+16 {
		t.Errorf("Expected one query per pixel after clearing the filter, got %d total", calls)
	}
}

func TestPixelFilterWeightsSamples(t *testing.T) {
	scene := NewMockScene(core.NewVec3(2, 4, 6))
	r, _ := newTestRenderer(t, scene, 2, 2)
	fb := newTestFrame(t, 2, 2)

	sampler := sampling.NewLowDiscrepancySampler(fb.Bounds(), 8, 0, 0)
	if err := r.SetPixelFilter(sampler, filter.NewGaussian(1, 1, 2)); err != nil {
		t.Fatalf("SetPixelFilter failed: %v", err)
	}
	r.Render(fb, nil, NeverCancelled)

	// A normalized weighted mean of a constant is the constant
	for p := range fb.Pixels() {
		if !p.Sum.ApproxEqual(core.NewVec3(2, 4, 6), 1e-9) {
			t.Errorf("Pixel (%d,%d): expected (2,4,6), got %v", p.X, p.Y, p.Sum)
		}
	}
}

func TestPixelFilterCancellingWeights(t *testing.T) {
	tests := []struct {
		name     string
		right    float64
		expected core.Spectrum
	}{
		{"positive weights keep the weighted mean", 3, core.NewVec3(2.5, 2.5, 2.5)},
		{"weights summing to zero", -1, core.NewVec3(2, 2, 2)},
		{"negative weight sum", -2, core.NewVec3(2, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := &MockSplitScene{left: core.NewVec3(1, 1, 1), right: core.NewVec3(3, 3, 3)}
			r, _ := newTestRenderer(t, scene, 1, 1)
			fb := newTestFrame(t, 1, 1)

			sampler := sampling.NewStratifiedSampler(fb.Bounds(), 2, 2, false, 0, 0)
			if err := r.SetPixelFilter(sampler, &MockFilter{right: tt.right}); err != nil {
				t.Fatalf("SetPixelFilter failed: %v", err)
			}
			r.Render(fb, nil, NeverCancelled)

			if got := fb.At(0, 0).Sum; !got.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPixelFilterRejectsUnboundedSampler(t *testing.T) {
	r, _ := newTestRenderer(t, NewMockScene(core.Vec3{}), 2, 2)
	sampler := sampling.NewRandomSampler(image.Rect(0, 0, 2, 2), sampling.NoMaximum, 0, 0)
	if err := r.SetPixelFilter(sampler, filter.NewBox(0.5, 0.5)); err != ErrUnboundedSampler {
		t.Errorf("Expected ErrUnboundedSampler, got %v", err)
	}
}

func TestNilPreconditionsPanic(t *testing.T) {
	r, _ := newTestRenderer(t, NewMockScene(core.Vec3{}), 2, 2)

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil PRNG", func() { r.SetPRNG(nil) }},
		{"nil scene", func() { r.SetScene(nil) }},
		{"nil camera", func() { r.SetCamera(nil) }},
		{"nil legacy camera", func() { r.SetLegacyCamera(nil) }},
		{"legacy camera missing", func() { r.UseLegacyCamera(true) }},
		{"nil pixel filter", func() { r.SetPixelFilter(nil, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestResolutionValidation(t *testing.T) {
	cam, _ := camera.NewPinholeCamera(4, 4, 45)
	if _, err := NewPathTracingRenderer(NewMockScene(core.Vec3{}), cam, rng.NewDefault(), 0, 4); err != ErrInvalidResolution {
		t.Errorf("Expected ErrInvalidResolution, got %v", err)
	}
	if _, err := NewFrameBuffer(4, -1); err != ErrInvalidResolution {
		t.Errorf("Expected ErrInvalidResolution, got %v", err)
	}
}

func TestLegacyCameraSelection(t *testing.T) {
	scene := NewMockScene(core.NewVec3(1, 1, 1))
	r, cam := newTestRenderer(t, scene, 4, 4)

	ortho, err := camera.NewOrthoBasisCamera(2)
	if err != nil {
		t.Fatalf("NewOrthoBasisCamera failed: %v", err)
	}
	vp, _ := camera.NewViewport(4, 4)
	vp.Attach(ortho)
	vp.Apply()

	r.SetLegacyCamera(ortho)
	if r.ActiveCamera() != camera.Camera(cam) {
		t.Errorf("Expected projective camera active by default")
	}

	r.UseLegacyCamera(true)
	if r.ActiveCamera().Kind() != camera.KindOrthoBasis {
		t.Errorf("Expected ortho camera active, got %s", r.ActiveCamera().Kind())
	}

	fb := newTestFrame(t, 4, 4)
	r.Render(fb, nil, NeverCancelled)
	for _, ray := range scene.Rays() {
		if ray.Direction != core.NewVec3(0, 0, 1) {
			t.Errorf("Expected parallel rays from the ortho camera, got %v", ray.Direction)
		}
	}
}
