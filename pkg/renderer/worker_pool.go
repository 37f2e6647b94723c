package renderer

import (
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-progressive-core/pkg/log"
)

// RegionTask is one region of one frame
type RegionTask struct {
	Frame    int
	TaskID   int           // Index of the region within the frame
	Region   PixelIterable // Pixels owned by this task alone
	OnUpdate func(*Pixel)  // Optional per-pixel callback, called from the worker
}

// RegionResult reports a finished region
type RegionResult struct {
	Frame     int
	TaskID    int
	WorkerID  int
	Completed bool // False when the region was abandoned on cancellation
}

// WorkerPool runs regions through a shared renderer in parallel
type WorkerPool struct {
	taskQueue   chan RegionTask
	resultQueue chan RegionResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	logger      log.Logger
}

// Worker renders regions until the task queue closes
type Worker struct {
	ID          int
	renderer    Renderer
	cancelled   Cancelled
	taskQueue   chan RegionTask
	resultQueue chan RegionResult
}

// NewWorkerPool creates a pool of numWorkers workers sharing r. Zero workers
// means one per CPU. The queues hold one frame's worth of regions.
func NewWorkerPool(r Renderer, numWorkers int, cancelled Cancelled) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if cancelled == nil {
		cancelled = NeverCancelled
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RegionTask, numWorkers),
		resultQueue: make(chan RegionResult, numWorkers),
		numWorkers:  numWorkers,
		logger:      log.New("worker pool"),
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    r,
			cancelled:   cancelled,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue and waits for every worker to exit
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// StopWithin closes the task queue and waits up to d for the workers. It
// reports whether they all exited in time. A timeout is not an error: the
// stragglers finish their region and exit on their own.
func (wp *WorkerPool) StopWithin(d time.Duration) bool {
	close(wp.taskQueue)

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		wp.logger.Debugf("workers still busy after %s, continuing shutdown", d)
		return false
	}
}

// SubmitTask queues a region
func (wp *WorkerPool) SubmitTask(task RegionTask) {
	wp.taskQueue <- task
}

// GetResult waits for the next finished region
func (wp *WorkerPool) GetResult() (RegionResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		completed := w.renderer.Render(task.Region, task.OnUpdate, w.cancelled)

		w.resultQueue <- RegionResult{
			Frame:     task.Frame,
			TaskID:    task.TaskID,
			WorkerID:  w.ID,
			Completed: completed,
		}
	}
}
