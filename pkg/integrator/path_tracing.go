package integrator

import (
	"math"

	"github.com/df07/go-wknder/pkg/core"
)

// IntegratorConfig controls the path tracing estimator
type IntegratorConfig struct {
	MaxDepth int     // Bounces before a path is cut off and returns black
	TMin     float64 // Self-intersection guard for secondary rays
}

// DefaultIntegratorConfig returns sensible default values
func DefaultIntegratorConfig() IntegratorConfig {
	return IntegratorConfig{
		MaxDepth: 50,
		TMin:     0.001,
	}
}

// PathTracingIntegrator implements unidirectional path tracing with a hard
// depth cutoff and no light sampling
type PathTracingIntegrator struct {
	config IntegratorConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config IntegratorConfig) *PathTracingIntegrator {
	if config.TMin <= 0 {
		config.TMin = DefaultIntegratorConfig().TMin
	}
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, scene, sampler, 0)
}

// rayColor recurses once per bounce; the stack never grows beyond MaxDepth frames
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := scene.Hit(ray, pt.config.TMin, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray, scene)
	}

	// The bounce limit only applies to rays that hit something
	if depth >= pt.config.MaxDepth {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, scene, sampler, depth+1))
}

// BackgroundGradient returns a gradient color based on ray direction
func BackgroundGradient(r core.Ray, scene Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}
