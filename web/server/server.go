package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-wknder/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port   int
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server. A nil logger uses slog.Default().
func NewServer(port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{port: port, logger: logger, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/scenes", s.handleScenes)
	s.mux.HandleFunc("GET /api/render", s.handleRender)
	s.mux.HandleFunc("GET /api/render/stream", s.handleRenderStream)
	s.mux.HandleFunc("GET /api/inspect", s.handleInspect)
	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "url", "http://localhost"+addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes with their recommended settings
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	type sceneEntry struct {
		scene.SceneInfo
		Width           int `json:"width"`
		Height          int `json:"height"`
		SamplesPerPixel int `json:"samplesPerPixel"`
		MaxDepth        int `json:"maxDepth"`
	}

	entries := make([]sceneEntry, 0)
	for _, info := range scene.ListScenes() {
		sc, err := scene.Create(info.ID, defaultSeed)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		entries = append(entries, sceneEntry{
			SceneInfo:       info,
			Width:           sc.CameraConfig.Width,
			Height:          sc.CameraConfig.ImageHeight(),
			SamplesPerPixel: sc.SamplingConfig.SamplesPerPixel,
			MaxDepth:        sc.SamplingConfig.MaxDepth,
		})
	}
	writeJSON(w, http.StatusOK, entries)
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

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
