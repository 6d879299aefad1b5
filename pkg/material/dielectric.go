package material

import (
	"math"

	"github.com/df07/go-wknder/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass never absorbs
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	direction := rayIn.Direction
	dirDotNormal := direction.Dot(hit.Normal)

	// The hit normal is not face-oriented: a positive dot means the ray is
	// leaving the medium (or the normal was flipped by a negative radius).
	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if dirDotNormal > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dirDotNormal / direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dirDotNormal / direction.Length()
	}

	reflected := core.NewRay(hit.Point, Reflect(direction, hit.Normal))

	refracted, ok := Refract(direction, outwardNormal, niOverNt)
	if !ok {
		// Total internal reflection
		return ScatterResult{Scattered: reflected, Attenuation: attenuation}, true
	}

	// A single draw decides between the Fresnel-weighted branches
	if sampler.Get1D() < Schlick(cosine, d.RefractiveIndex) {
		return ScatterResult{Scattered: reflected, Attenuation: attenuation}, true
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, refracted),
		Attenuation: attenuation,
	}, true
}

// Refract bends v through a surface with normal n using Snell's law, where
// niOverNt is the ratio of the incident to transmitted refractive index.
// It returns false when no refracted direction exists.
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance for the given cosine
func Schlick(cosine, refIdx float64) float64 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
