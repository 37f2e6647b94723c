package renderer

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/df07/go-progressive-core/pkg/camera"
	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/rng"
)

// MockScene returns a constant radiance and records what it was asked
type MockScene struct {
	radiance core.Spectrum
	calls    atomic.Int64

	mu     sync.Mutex
	passes []int
	rays   []core.Ray
}

func NewMockScene(radiance core.Spectrum) *MockScene {
	return &MockScene{radiance: radiance}
}

func (s *MockScene) Radiance(pass int, ray core.Ray, random rng.PRNG) core.Spectrum {
	s.calls.Add(1)
	s.mu.Lock()
	s.passes = append(s.passes, pass)
	s.rays = append(s.rays, ray)
	s.mu.Unlock()
	return s.radiance
}

func (s *MockScene) Passes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.passes...)
}

func (s *MockScene) Rays() []core.Ray {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Ray(nil), s.rays...)
}

// MockSplitScene returns left for rays pointing toward -X and right
// otherwise
type MockSplitScene struct {
	left, right core.Spectrum
}

func (s *MockSplitScene) Radiance(pass int, ray core.Ray, random rng.PRNG) core.Spectrum {
	if ray.Direction.X < 0 {
		return s.left
	}
	return s.right
}

// MockFilter weights samples left of the pixel center by 1 and the rest by
// right
type MockFilter struct {
	right float64
}

func (f *MockFilter) Evaluate(x, y float64) float64 {
	if x < 0 {
		return 1
	}
	return f.right
}

func (f *MockFilter) Width() float64  { return 0.5 }
func (f *MockFilter) Height() float64 { return 0.5 }

// MockRenderer marks every pixel it visits and can be held at the start of
// each region
type MockRenderer struct {
	base
	calls atomic.Int64
	hold  chan struct{}
}

func (m *MockRenderer) Render(pixels PixelIterable, onUpdate func(*Pixel), cancelled Cancelled) bool {
	m.calls.Add(1)
	if m.hold != nil {
		<-m.hold
	}
	for p := range pixels.Pixels() {
		if cancelled() {
			return false
		}
		p.AddSubSample()
		if onUpdate != nil {
			onUpdate(p)
		}
	}
	return true
}

func (m *MockRenderer) ResetPass() {}

var _ Renderer = (*MockRenderer)(nil)
var _ Renderer = (*PathTracingRenderer)(nil)

func newTestRenderer(t *testing.T, scene core.Scene, width, height int) (*PathTracingRenderer, *camera.PerspectiveCamera) {
	t.Helper()
	cam, err := camera.NewPerspectiveCamera(width, height, 45)
	if err != nil {
		t.Fatalf("NewPerspectiveCamera failed: %v", err)
	}
	r, err := NewPathTracingRenderer(scene, cam, rng.NewSynchronized(rng.NewXorShift(7)), width, height)
	if err != nil {
		t.Fatalf("NewPathTracingRenderer failed: %v", err)
	}
	return r, cam
}

func newTestFrame(t *testing.T, width, height int) *FrameBuffer {
	t.Helper()
	fb, err := NewFrameBuffer(width, height)
	if err != nil {
		t.Fatalf("NewFrameBuffer failed: %v", err)
	}
	return fb
}
