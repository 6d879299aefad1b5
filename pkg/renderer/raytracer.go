package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/geometry"
	"github.com/df07/go-wknder/pkg/integrator"
)

// progressUpdates is the approximate number of progress messages per render
const progressUpdates = 20

// Scene interface to avoid depending on a concrete scene type
type Scene interface {
	integrator.Scene
	GetCamera() *geometry.Camera
}

// Raytracer handles the rendering process. The scene, camera and integrator
// are only read during a render and are shared by all workers.
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger

	rowsDone atomic.Int64 // Rows finished in the current render
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		config: config,
		integrator: integrator.NewPathTracingIntegrator(integrator.IntegratorConfig{
			MaxDepth: config.MaxDepth,
		}),
		logger: logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render splits the image into row bands, renders them in parallel and
// returns once every band has finished
func (rt *Raytracer) Render() (*Framebuffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.width, rt.height)
	}

	startTime := time.Now()
	workers := rt.config.resolveWorkers()
	bands := NewBandGrid(rt.height, rt.config.resolveBands(workers, rt.height), rt.config.Seed)
	fb := NewFramebuffer(rt.width, rt.height)
	rt.rowsDone.Store(0)

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d (%d bands on %d workers)\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(bands), workers)

	pool := NewWorkerPool(rt, workers, len(bands))
	pool.Start()
	for _, band := range bands {
		pool.SubmitTask(BandTask{Band: band, Framebuffer: fb})
	}

	stats := RenderStats{
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Bands:           len(bands),
		Workers:         pool.GetNumWorkers(),
	}
	for range bands {
		result, ok := pool.GetResult()
		if !ok {
			pool.Stop()
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	return fb, stats, nil
}

// RenderBand renders every pixel of the band into fb. Bands cover disjoint
// rows, so concurrent calls never touch the same pixel.
func (rt *Raytracer) RenderBand(band *Band, fb *Framebuffer) RenderStats {
	camera := rt.scene.GetCamera()
	stats := RenderStats{}

	for y := band.MinY; y < band.MaxY; y++ {
		// Camera t runs bottom to top
		j := rt.height - 1 - y
		for i := 0; i < rt.width; i++ {
			var ps PixelStats
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				s := (float64(i) + band.Sampler.Get1D()) / float64(rt.width)
				t := (float64(j) + band.Sampler.Get1D()) / float64(rt.height)

				ray := camera.GetRay(s, t, band.Sampler)
				ps.AddSample(rt.integrator.RayColor(ray, rt.scene, band.Sampler))
			}
			fb.Set(i, y, ps.GetColor())

			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount
		}
		rt.reportRow(rt.rowsDone.Add(1))
	}

	return stats
}

// reportRow logs progress after every height/progressUpdates finished rows and after
// the last one. Each count is returned by the atomic add exactly once, so
// concurrent bands never repeat a message.
func (rt *Raytracer) reportRow(done int64) {
	step := int64(max(1, rt.height/progressUpdates))
	if done%step != 0 && done != int64(rt.height) {
		return
	}
	rt.logger.Printf("Traced %d of %d rows (%.0f%%)\n",
		done, rt.height, 100*float64(done)/float64(rt.height))
}
