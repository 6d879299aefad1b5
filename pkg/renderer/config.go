package renderer

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

// WorkersEnvVar overrides the default worker count when set to a positive integer
const WorkersEnvVar = "PATHTRACER_WORKERS"

// maxWorkers caps the environment override
const maxWorkers = 128

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	NumBands        int   // Number of row bands (0 = one per worker)
	Seed            int64 // Base seed; band i draws from Seed+i
	GammaCorrect    bool  // Apply square-root gamma before quantizing
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		NumBands:        0,
		Seed:            42,
		GammaCorrect:    true,
	}
}

// Validate reports configuration values the renderer cannot work with
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	if c.NumBands < 0 {
		return fmt.Errorf("band count must not be negative, got %d", c.NumBands)
	}
	return nil
}

// resolveWorkers returns the effective worker count: the configured value,
// else the environment override, else the CPU count
func (c SamplingConfig) resolveWorkers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	if env := os.Getenv(WorkersEnvVar); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 && n <= maxWorkers {
			return n
		}
	}
	return max(1, runtime.NumCPU())
}

// resolveBands returns the effective band count for an image of the given height
func (c SamplingConfig) resolveBands(workers, height int) int {
	bands := c.NumBands
	if bands <= 0 {
		bands = workers
	}
	return max(1, min(bands, height))
}
