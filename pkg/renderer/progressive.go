package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-progressive-core/pkg/log"
	"github.com/df07/go-progressive-core/pkg/sampling"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	MaxFrames   int           // Frames to render, 0 to run until cancelled
	NumWorkers  int           // Number of parallel workers (0 = use CPU count)
	StopTimeout time.Duration // How long shutdown waits for busy workers
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		MaxFrames:   16,
		NumWorkers:  0,
		StopTimeout: 2 * time.Second,
	}
}

// FrameResult is sent after every completed frame
type FrameResult struct {
	Frame  int
	Image  *image.RGBA
	Stats  RenderStats
	IsLast bool
}

// Progressive renders the frame buffer over and over, one sample per pixel
// per frame, with one region per worker. Camera and scene edits are queued
// with Edit and applied between frames, where they restart refinement.
type Progressive struct {
	renderer *PathTracingRenderer
	frame    *FrameBuffer
	regions  []Region
	config   ProgressiveConfig
	logger   log.Logger

	mu    sync.Mutex
	edits []func()
	stats []RenderStats
}

// NewProgressive creates a driver rendering into a new frame buffer at the
// renderer's resolution
func NewProgressive(r *PathTracingRenderer, config ProgressiveConfig) (*Progressive, error) {
	if config.MaxFrames < 0 {
		return nil, ErrInvalidFrames
	}
	if config.NumWorkers < 0 {
		return nil, ErrInvalidWorkers
	}

	width, height := r.Resolution()
	frame, err := NewFrameBuffer(width, height)
	if err != nil {
		return nil, err
	}

	return &Progressive{
		renderer: r,
		frame:    frame,
		regions:  splitRegions(frame, config.NumWorkers),
		config:   config,
		logger:   log.New("progressive"),
	}, nil
}

// splitRegions partitions the frame into one disjoint region per worker
func splitRegions(frame *FrameBuffer, numWorkers int) []Region {
	count := numWorkers
	if count <= 0 {
		count = runtime.NumCPU()
	}

	splitter := sampling.NewRandomSampler(frame.Bounds(), sampling.NoMaximum, 0, 0)
	regions := make([]Region, 0, count)
	for i := 0; i < count; i++ {
		bounds := splitter.NewSubSampler(i, count).Bounds()
		if bounds.Empty() {
			continue
		}
		regions = append(regions, frame.Region(bounds))
	}
	return regions
}

// Frame returns the frame buffer being refined
func (p *Progressive) Frame() *FrameBuffer { return p.frame }

// Regions returns the per-worker regions
func (p *Progressive) Regions() []Region { return p.regions }

// Stats returns the statistics of every completed frame
func (p *Progressive) Stats() []RenderStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]RenderStats(nil), p.stats...)
}

// Edit queues a change to the camera or scene. It runs on the render
// goroutine before the next frame, after which the frame buffer is cleared
// and the pass counter reset.
func (p *Progressive) Edit(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.edits = append(p.edits, fn)
}

func (p *Progressive) applyEdits() bool {
	p.mu.Lock()
	edits := p.edits
	p.edits = nil
	p.mu.Unlock()

	if len(edits) == 0 {
		return false
	}
	for _, edit := range edits {
		edit()
	}
	p.frame.Clear()
	p.renderer.ResetPass()
	p.logger.Debugf("applied %d edits, restarting refinement", len(edits))
	return true
}

// renderFrame submits every region and waits for all of them. It reports
// false if any region was cancelled.
func (p *Progressive) renderFrame(pool *WorkerPool, frame int, onUpdate func(*Pixel)) bool {
	for i, region := range p.regions {
		pool.SubmitTask(RegionTask{
			Frame:    frame,
			TaskID:   i,
			Region:   region,
			OnUpdate: onUpdate,
		})
	}

	completed := true
	for range p.regions {
		result, ok := pool.GetResult()
		if !ok {
			return false
		}
		completed = completed && result.Completed
	}
	return completed
}

// RenderProgressive renders frames on a background goroutine, sending one
// FrameResult per completed frame. Cancelling ctx stops the current frame at
// the next pixel, resets the renderer, and reports ctx.Err() on the error
// channel. Both channels are closed when rendering ends.
func (p *Progressive) RenderProgressive(ctx context.Context, onUpdate func(*Pixel)) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		pool := NewWorkerPool(p.renderer, len(p.regions), FromContext(ctx))
		pool.Start()
		defer pool.StopWithin(p.config.StopTimeout)

		p.logger.Infof("rendering %dx%d with %d workers", p.frame.Width(), p.frame.Height(), pool.GetNumWorkers())

		for frame := 1; p.config.MaxFrames == 0 || frame <= p.config.MaxFrames; frame++ {
			select {
			case <-ctx.Done():
				p.logger.Infof("rendering cancelled before frame %d", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			p.applyEdits()

			startTime := time.Now()
			if !p.renderFrame(pool, frame, onUpdate) {
				p.logger.Infof("frame %d cancelled", frame)
				if err := ctx.Err(); err != nil {
					errChan <- err
				} else {
					errChan <- ErrInterrupted
				}
				return
			}

			stats := p.frame.Stats()
			stats.Frame = frame
			stats.Duration = time.Since(startTime)
			stats.SamplesPerSecond = p.renderer.SamplesPerSecond()

			p.mu.Lock()
			p.stats = append(p.stats, stats)
			p.mu.Unlock()

			p.logger.Infof("frame %d completed in %v (%.1f samples/pixel)", frame, stats.Duration, stats.AverageSamples)

			result := FrameResult{
				Frame:  frame,
				Image:  p.frame.Image(),
				Stats:  stats,
				IsLast: frame == p.config.MaxFrames,
			}
			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}

		p.logger.Noticef("rendered %d samples at %.0f samples/sec", p.renderer.Samples(), p.renderer.SamplesPerSecond())
	}()

	return frameChan, errChan
}
