package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/output"
	"github.com/df07/go-wknder/pkg/renderer"
	"github.com/df07/go-wknder/pkg/scene"
)

const defaultSeed = 42

// Request limits
const (
	minSize, maxSize       = 1, 2000
	maxSamplesPerPixel     = 10000
	maxDepthLimit          = 1000
	maxWorkers, maxPreview = 128, 2000
)

var renderCounter atomic.Int64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string        `json:"scene"`   // Scene name (e.g., "basic")
	Width   int           `json:"width"`   // Image width
	Height  int           `json:"height"`  // Image height
	Samples int           `json:"samples"` // Samples per pixel
	Depth   int           `json:"depth"`   // Maximum bounce depth
	Workers int           `json:"workers"` // Worker goroutines (0 = auto)
	Seed    int64         `json:"seed"`    // Base random seed
	Gamma   bool          `json:"gamma"`   // Square-root gamma
	Format  output.Format `json:"format"`  // Encoding of the returned image
	Preview int           `json:"preview"` // Downscale to this width (0 = full size)
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int   `json:"totalPixels"`
	TotalSamples int64 `json:"totalSamples"`
	Bands        int   `json:"bands"`
	Workers      int   `json:"workers"`
	ElapsedMs    int64 `json:"elapsedMs"`
}

// CompleteEvent is the final SSE event of a streamed render
type CompleteEvent struct {
	ImageData string `json:"imageData"` // Base64 encoded image
	Format    string `json:"format"`
	Stats     Stats  `json:"stats"`
}

// parseRenderRequest parses request parameters. Unset sizes and sampling
// values fall back to the scene's recommendations.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Seed: defaultSeed}
	if req.Scene == "" {
		req.Scene = "basic"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamplesPerPixel); err != nil {
		return nil, nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 0, maxDepthLimit); err != nil {
		return nil, nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 1, maxWorkers); err != nil {
		return nil, nil, err
	}
	if req.Preview, err = parseIntParam(query, "preview", 0, 1, maxPreview); err != nil {
		return nil, nil, err
	}
	if req.Gamma, err = parseBoolParam(query, "gamma", true); err != nil {
		return nil, nil, err
	}
	if seed := query.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}
	if req.Format, err = output.ParseFormat(query.Get("format")); err != nil {
		return nil, nil, err
	}

	sc, err := scene.CreateForImage(req.Scene, req.Seed, req.Width, req.Height)
	if err != nil {
		return nil, nil, err
	}
	if req.Width == 0 {
		req.Width = sc.CameraConfig.Width
	}
	if req.Height == 0 {
		req.Height = sc.CameraConfig.ImageHeight()
	}
	if req.Samples == 0 {
		req.Samples = sc.SamplingConfig.SamplesPerPixel
	}
	if query.Get("depth") == "" {
		req.Depth = sc.SamplingConfig.MaxDepth
	}

	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		s.logger.Warn("large image with high samples may render slowly",
			"width", req.Width, "height", req.Height, "samples", req.Samples)
	}
	return req, sc, nil
}

// samplingConfig converts the request into renderer settings
func (req *RenderRequest) samplingConfig() renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.Depth
	config.NumWorkers = req.Workers
	config.Seed = req.Seed
	config.GammaCorrect = req.Gamma
	return config
}

// render runs a complete render and returns the display image
func (s *Server) render(req *RenderRequest, sc *scene.Scene, logger core.Logger) (image.Image, Stats, error) {
	rt := renderer.NewRaytracer(sc, req.Width, req.Height, req.samplingConfig(), logger)
	fb, stats, err := rt.Render()
	if err != nil {
		return nil, Stats{}, err
	}

	var img image.Image = fb.ToImage(req.Gamma)
	if req.Preview > 0 {
		img = output.Scale(img, req.Preview)
	}

	s.logger.Info("render completed", "scene", req.Scene,
		"width", req.Width, "height", req.Height, "duration", stats.Duration.Round(time.Millisecond))
	return img, Stats{
		TotalPixels:  stats.TotalPixels,
		TotalSamples: int64(stats.TotalSamples),
		Bands:        stats.Bands,
		Workers:      stats.Workers,
		ElapsedMs:    stats.Duration.Milliseconds(),
	}, nil
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	img, stats, err := s.render(req, sc, NewWebLogger(renderID, nil, s.logger))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("render error: %w", err))
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Samples", strconv.FormatInt(stats.TotalSamples, 10))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene and streams progress via SSE,
// finishing with the encoded image
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	consoleChan := make(chan ConsoleMessage, 100)
	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))

	type renderOutcome struct {
		img   image.Image
		stats Stats
		err   error
	}
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := s.render(req, sc, NewWebLogger(renderID, consoleChan, s.logger))
		done <- renderOutcome{img, stats, err}
	}()

	ctx := r.Context()
	for {
		select {
		case msg := <-consoleChan:
			data, _ := json.Marshal(msg)
			sendSSEEvent(w, flusher, "console", string(data))
		case result := <-done:
			s.drainConsole(w, flusher, consoleChan)
			if result.err != nil {
				sendSSEEvent(w, flusher, "error", result.err.Error())
				return
			}
			var buf bytes.Buffer
			if err := output.Encode(&buf, result.img, req.Format); err != nil {
				sendSSEEvent(w, flusher, "error", err.Error())
				return
			}
			data, _ := json.Marshal(CompleteEvent{
				ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
				Format:    string(req.Format),
				Stats:     result.stats,
			})
			sendSSEEvent(w, flusher, "complete", string(data))
			return
		case <-ctx.Done():
			// The render goroutine finishes on its own; its result is dropped
			s.logger.Info("client disconnected", "render", renderID)
			return
		}
	}
}

// drainConsole forwards any progress messages still queued
func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			data, _ := json.Marshal(msg)
			sendSSEEvent(w, flusher, "console", string(data))
		default:
			return
		}
	}
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
