package integrator

import (
	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/material"
)

// Scene is the read-only view of a scene that integrators need.
// Implementations must be safe for concurrent reads.
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
