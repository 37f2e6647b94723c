package renderer

import (
	"image"
	"sort"
	"testing"
	"time"

	"github.com/df07/go-progressive-core/pkg/rng"
)

func TestWorkerPoolRendersEveryRegion(t *testing.T) {
	fb := newTestFrame(t, 8, 8)
	mock := &MockRenderer{}
	mock.SetPRNG(rng.NewDefault())

	wp := NewWorkerPool(mock, 4, nil)
	if wp.GetNumWorkers() != 4 {
		t.Fatalf("Expected 4 workers, got %d", wp.GetNumWorkers())
	}
	wp.Start()

	for i := 0; i < 4; i++ {
		wp.SubmitTask(RegionTask{
			Frame:  1,
			TaskID: i,
			Region: fb.Region(image.Rect(0, 2*i, 8, 2*i+2)),
		})
	}

	var ids []int
	for i := 0; i < 4; i++ {
		result, ok := wp.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if !result.Completed {
			t.Errorf("Task %d not completed", result.TaskID)
		}
		ids = append(ids, result.TaskID)
	}
	wp.Stop()

	sort.Ints(ids)
	for i, id := range ids {
		if id != i {
			t.Errorf("Expected task ids 0..3, got %v", ids)
			break
		}
	}
	for p := range fb.Pixels() {
		if p.SubSamples != 1 {
			t.Errorf("Pixel (%d,%d) rendered %d times", p.X, p.Y, p.SubSamples)
		}
	}
	if _, ok := wp.GetResult(); ok {
		t.Error("Expected result queue closed after Stop")
	}
}

func TestWorkerPoolDefaultsToCPUCount(t *testing.T) {
	wp := NewWorkerPool(&MockRenderer{}, 0, nil)
	if wp.GetNumWorkers() < 1 {
		t.Errorf("Expected at least one worker, got %d", wp.GetNumWorkers())
	}
}

func TestWorkerPoolReportsCancellation(t *testing.T) {
	fb := newTestFrame(t, 4, 4)
	wp := NewWorkerPool(&MockRenderer{}, 1, func() bool { return true })
	wp.Start()
	defer wp.Stop()

	wp.SubmitTask(RegionTask{TaskID: 0, Region: fb})
	result, ok := wp.GetResult()
	if !ok || result.Completed {
		t.Errorf("Expected cancelled result, got %+v", result)
	}
}

func TestStopWithinTimesOut(t *testing.T) {
	fb := newTestFrame(t, 2, 2)
	mock := &MockRenderer{hold: make(chan struct{})}
	wp := NewWorkerPool(mock, 1, nil)
	wp.Start()

	wp.SubmitTask(RegionTask{Region: fb})
	// Wait until the worker is inside Render
	for mock.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	if wp.StopWithin(10 * time.Millisecond) {
		t.Error("Expected timeout while the worker is held")
	}

	// Released workers finish and the result queue closes
	close(mock.hold)
	if _, ok := wp.GetResult(); !ok {
		t.Error("Expected the held region's result")
	}
	if _, ok := wp.GetResult(); ok {
		t.Error("Expected result queue closed once workers exit")
	}
}

func TestStopWithinCompletes(t *testing.T) {
	wp := NewWorkerPool(&MockRenderer{}, 2, nil)
	wp.Start()
	if !wp.StopWithin(time.Second) {
		t.Error("Expected idle workers to stop in time")
	}
}
