package material

import (
	"github.com/df07/go-wknder/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false when
	// the incoming ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// Normal is the shape's geometric normal divided by its signed size, so it
// is not flipped to face the ray.
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Surface normal at intersection
	T        float64   // Parameter t along the ray
	Material Material  // Material of the hit object
}
