package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-progressive-core/pkg/log"
	"github.com/df07/go-progressive-core/pkg/renderer"
	"github.com/df07/go-progressive-core/pkg/scene"
)

// Request limits
const (
	minSize   = 16
	maxSize   = 2000
	maxFrames = 10000
)

// Server streams progressive renders of the built-in scene to browsers
type Server struct {
	port        int
	defaults    renderer.Options
	sceneConfig scene.Config
	logger      log.Logger
}

// NewServer creates a new web server. Requests start from defaults and
// override individual options through query parameters.
func NewServer(port int, defaults renderer.Options, sceneConfig scene.Config) *Server {
	return &Server{
		port:        port,
		defaults:    defaults,
		sceneConfig: sceneConfig,
		logger:      log.New("server"),
	}
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	MinSamples       int     `json:"minSamples"`
	MaxSamplesUsed   int     `json:"maxSamplesUsed"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
}

// Handler returns the routes served by Start
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start serves until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// parseRenderRequest applies query overrides to the server defaults and
// validates the result
func (s *Server) parseRenderRequest(r *http.Request) (renderer.Options, error) {
	query := r.URL.Query()
	opts := s.defaults

	var err error
	if opts.Width, err = parseIntParam(query, "width", opts.Width, minSize, maxSize); err != nil {
		return opts, err
	}
	if opts.Height, err = parseIntParam(query, "height", opts.Height, minSize, maxSize); err != nil {
		return opts, err
	}
	if opts.MaxFrames, err = parseIntParam(query, "frames", opts.MaxFrames, 1, maxFrames); err != nil {
		return opts, err
	}
	if opts.FOV, err = parseFloatParam(query, "fov", opts.FOV, 1, 179); err != nil {
		return opts, err
	}
	if opts.LensRadius, err = parseFloatParam(query, "lensRadius", opts.LensRadius, 0, 1); err != nil {
		return opts, err
	}
	if opts.FocalDistance, err = parseFloatParam(query, "focalDistance", opts.FocalDistance, 0, 1000); err != nil {
		return opts, err
	}
	if camera := query.Get("camera"); camera != "" {
		opts.Camera = camera
	}
	if filter := query.Get("filter"); filter != "" {
		opts.Filter = filter
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}

	// Performance warning
	if opts.Width*opts.Height > 800*600 && opts.MaxFrames > 100 {
		s.logger.Warning("large image with many frames may render slowly")
	}
	return opts, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     int64(stats.TotalSamples),
		AverageSamples:   stats.AverageSamples,
		MinSamples:       stats.MinSamples,
		MaxSamplesUsed:   stats.MaxSamplesUsed,
		SamplesPerSecond: stats.SamplesPerSecond,
	}
}
