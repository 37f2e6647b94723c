package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-progressive-core/pkg/renderer"
	"github.com/df07/go-progressive-core/pkg/session"
)

// FrameUpdate is sent after every completed frame
type FrameUpdate struct {
	Frame       int    `json:"frame"`
	TotalFrames int    `json:"totalFrames"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// SSEEvent is one server-sent event queued for the writer goroutine
type SSEEvent struct {
	Type string // "frame", "error", "complete"
	Data string
}

// handleRender streams a progressive render as server-sent events. The render
// stops when the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan SSEEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writeSSEEvents(ctx, w, events)
	}()
	defer func() {
		close(events)
		<-done
	}()

	opts, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sess, err := session.New(opts, s.sceneConfig)
	if err != nil {
		s.sendEvent(ctx, events, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	s.logger.Infof("render %dx%d, %d frames, %s camera", opts.Width, opts.Height, opts.MaxFrames, opts.Camera)
	frames, errs := sess.Render(ctx, nil)
	s.handleRenderingEvents(ctx, events, frames, errs, opts)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents is the only goroutine writing to w
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent) {
	flusher := w.(http.Flusher)
	for event := range events {
		select {
		case <-ctx.Done():
			// Client disconnected; drain so senders never block
			continue
		default:
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			s.logger.Debugf("client write failed: %v", err)
			continue
		}
		flusher.Flush()
	}
}

// sendEvent queues an event unless the client is gone
func (s *Server) sendEvent(ctx context.Context, events chan<- SSEEvent, event SSEEvent) {
	select {
	case events <- event:
	case <-ctx.Done():
	}
}

// handleRenderingEvents forwards frames until the render ends
func (s *Server) handleRenderingEvents(ctx context.Context, events chan<- SSEEvent, frames <-chan renderer.FrameResult, errs <-chan error, opts renderer.Options) {
	startTime := time.Now()

	for result := range frames {
		imageData, err := imageToBase64PNG(renderer.Resample(result.Image, opts.Width, opts.Height))
		if err != nil {
			s.sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode image: %v", err)})
			continue
		}

		update := FrameUpdate{
			Frame:       result.Frame,
			TotalFrames: opts.MaxFrames,
			ImageData:   imageData,
			Stats:       toStats(result.Stats),
			IsComplete:  result.IsLast,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		data, err := json.Marshal(update)
		if err != nil {
			s.sendEvent(ctx, events, SSEEvent{Type: "error", Data: err.Error()})
			continue
		}
		s.sendEvent(ctx, events, SSEEvent{Type: "frame", Data: string(data)})
	}

	if err := <-errs; err != nil {
		if ctx.Err() != nil {
			s.logger.Infof("client disconnected: %v", err)
			return
		}
		s.sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)})
		return
	}
	s.sendEvent(ctx, events, SSEEvent{Type: "complete", Data: "Rendering completed"})
}
