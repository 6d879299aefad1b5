package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-wknder/pkg/core"
)

// constSampler returns the same value for every draw
type constSampler float64

func (c constSampler) Get1D() float64 { return float64(c) }
func (c constSampler) Get2D() core.Vec2 {
	return core.NewVec2(float64(c), float64(c))
}
func (c constSampler) Get3D() core.Vec3 {
	return core.NewVec3(float64(c), float64(c), float64(c))
}

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func TestReflect_AngleOfIncidence(t *testing.T) {
	sampler := newTestSampler(42)
	for i := 0; i < 1000; i++ {
		d := core.RandomInUnitSphere(sampler).Normalize()
		n := core.RandomInUnitSphere(sampler).Normalize()

		r := Reflect(d, n)
		if math.Abs(r.Dot(n)+d.Dot(n)) > 1e-9 {
			t.Fatalf("Reflection law violated: r·n=%f, d·n=%f", r.Dot(n), d.Dot(n))
		}
		if math.Abs(r.Length()-1) > 1e-9 {
			t.Fatalf("Reflection should preserve length, got %f", r.Length())
		}
	}
}

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := newTestSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
		T:      1,
	}

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should never absorb")
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Attenuation should equal albedo, got %v", scatter.Attenuation)
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
		// normal + point in unit ball stays within distance 1 of the normal tip
		if scatter.Scattered.Direction.Subtract(hit.Normal).Length() >= 1 {
			t.Fatalf("Direction %v outside unit ball around normal", scatter.Scattered.Direction)
		}
	}
}

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_NormalIncidenceReflectsBack(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	rayIn := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -3))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, newTestSampler(1))
	if !didScatter {
		t.Fatal("Metal should scatter at normal incidence")
	}
	if !scatter.Scattered.Direction.Equals(hit.Normal) {
		t.Errorf("Expected reflection along normal %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_ScatterAbsorption(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := newTestSampler(123)

	// Grazing angle ray that often scatters below the surface with maximum fuzz
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	absorbed, scattered := 0, 0
	for i := 0; i < 1000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			absorbed++
			continue
		}
		scattered++
		if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Accepted ray points into the surface: %v", scatter.Scattered.Direction)
		}
	}

	if absorbed == 0 || scattered == 0 {
		t.Errorf("Expected both absorption and scattering, got %d absorbed, %d scattered", absorbed, scattered)
	}
}

func TestRefract_IndexOneDoesNotBend(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	directions := []core.Vec3{
		core.NewVec3(1, -1, 0),
		core.NewVec3(0.2, -3, 0.7),
		core.NewVec3(0, -1, 0),
	}

	for _, d := range directions {
		refracted, ok := Refract(d, normal, 1.0)
		if !ok {
			t.Fatalf("Refraction with ratio 1 should always succeed for %v", d)
		}
		if refracted.Subtract(d.Normalize()).Length() > 1e-12 {
			t.Errorf("Expected unbent direction %v, got %v", d.Normalize(), refracted)
		}
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass at a shallow angle: sin θ · 1.5 > 1
	d := core.NewVec3(1, 0.2, 0)
	outward := core.NewVec3(0, -1, 0)

	if _, ok := Refract(d, outward, 1.5); ok {
		t.Error("Expected total internal reflection")
	}
}

func TestSchlick(t *testing.T) {
	// Normal incidence on glass gives r0 = 0.04
	if r := Schlick(1, 1.5); math.Abs(r-0.04) > 1e-12 {
		t.Errorf("Expected 0.04, got %f", r)
	}
	// Grazing incidence reflects everything
	if r := Schlick(0, 1.5); math.Abs(r-1) > 1e-12 {
		t.Errorf("Expected 1, got %f", r)
	}
	// Matching indices never reflect head-on
	if r := Schlick(1, 1.0); r != 0 {
		t.Errorf("Expected 0, got %f", r)
	}
}

func TestDielectric_IndexOnePassesStraightThrough(t *testing.T) {
	glass := NewDielectric(1.0)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"entering", core.NewVec3(0.5, -1, 0.25)},
		{"exiting", core.NewVec3(0.5, 1, 0.25)},
		{"normal incidence", core.NewVec3(0, -2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 1, 0), tt.direction)
			// A draw near 1 never falls below the Schlick reflectance away from grazing angles
			result, scattered := glass.Scatter(rayIn, hit, constSampler(0.999))
			if !scattered {
				t.Fatal("Dielectric should always scatter")
			}
			got := result.Scattered.Direction
			if got.Subtract(tt.direction.Normalize()).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.direction.Normalize(), got)
			}
		})
	}
}

func TestDielectric_ReflectsWhenDrawBelowReflectance(t *testing.T) {
	glass := NewDielectric(1.5)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	result, _ := glass.Scatter(rayIn, hit, constSampler(0))
	expected := Reflect(rayIn.Direction, hit.Normal)
	if !result.Scattered.Direction.Equals(expected) {
		t.Errorf("Expected reflection %v, got %v", expected, result.Scattered.Direction)
	}
	if !result.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected white attenuation, got %v", result.Attenuation)
	}

	// A draw of 0.999 exceeds the ~5% reflectance at 45 degrees
	result, _ = glass.Scatter(rayIn, hit, constSampler(0.999))
	dir := result.Scattered.Direction.Normalize()
	if dir.Y >= 0 {
		t.Errorf("Refracted ray should continue into the surface, got %v", dir)
	}
	// Snell: sin θt = sin 45° / 1.5
	sinT := math.Sqrt(dir.X*dir.X + dir.Z*dir.Z)
	if math.Abs(sinT-math.Sqrt2/2/1.5) > 1e-9 {
		t.Errorf("Unexpected refraction angle, sin θt = %f", sinT)
	}
}

func TestDielectric_TotalInternalReflectionAlwaysReflects(t *testing.T) {
	glass := NewDielectric(1.5)
	// Normal points out of the glass; the ray travels outwards at a shallow angle
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}
	rayIn := core.NewRay(core.NewVec3(-1, -0.2, 0), core.NewVec3(1, 0.2, 0))

	result, scattered := glass.Scatter(rayIn, hit, constSampler(0.999))
	if !scattered {
		t.Fatal("Dielectric should always scatter")
	}
	expected := Reflect(rayIn.Direction, hit.Normal)
	if !result.Scattered.Direction.Equals(expected) {
		t.Errorf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
	}
}
