package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-wknder/pkg/core"
)

func TestCamera_BasisAndViewport(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         200,
		AspectRatio:   2.0,
		VFov:          90,
		FocusDistance: 1,
	}
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if !ray.Origin.Equals(config.Center) {
				t.Errorf("Pinhole ray should start at the camera center, got %v", ray.Origin)
			}
		})
	}

	forward := camera.GetCameraForward()
	if forward.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected forward (0,0,-1), got %v", forward)
	}
}

func TestCamera_ZeroApertureIsDeterministic(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(8, 2, 2.5),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        35,
	})

	first := camera.GetRay(0.3, 0.7, core.NewSeededSampler(1))
	for seed := int64(2); seed < 50; seed++ {
		ray := camera.GetRay(0.3, 0.7, core.NewSeededSampler(seed))
		if ray != first {
			t.Fatalf("Expected identical rays, got %v and %v", first, ray)
		}
	}
}

func TestCamera_ApertureConvergesOnFocusPlane(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -3),
		Up:            core.NewVec3(0, 1, 0),
		Width:         100,
		AspectRatio:   1,
		VFov:          40,
		Aperture:      0.5,
		FocusDistance: 3,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(42)

	var target core.Vec3
	originsDiffer := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.25, 0.6, sampler)

		if ray.Origin.Length() > config.Aperture/2+1e-12 {
			t.Fatalf("Lens sample %v outside the aperture", ray.Origin)
		}
		if math.Abs(ray.Origin.Z) > 1e-12 {
			t.Fatalf("Lens sample should lie in the lens plane, got %v", ray.Origin)
		}

		// Every ray reaches the same point on the focus plane at t=1
		p := ray.At(1)
		if i == 0 {
			target = p
		} else if p.Subtract(target).Length() > 1e-9 {
			t.Fatalf("Rays should converge at %v, got %v", target, p)
		}
		if !ray.Origin.Equals(core.Vec3{}) {
			originsDiffer = true
		}
	}

	if !originsDiffer {
		t.Error("Finite aperture should jitter ray origins")
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -4),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1,
		VFov:        90,
	}
	camera := NewCamera(config)

	ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
	if ray.Direction.Subtract(core.NewVec3(0, 0, -4)).Length() > 1e-9 {
		t.Errorf("Expected the focus plane at the look-at distance, got %v", ray.Direction)
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{
		Center:      core.NewVec3(1, 2, 3),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        35,
		Aperture:    0.1,
	}
	merged := MergeCameraConfig(base, CameraConfig{Width: 800, AspectRatio: 1})

	if merged.Width != 800 || merged.AspectRatio != 1 {
		t.Errorf("Overrides not applied: %+v", merged)
	}
	if merged.VFov != 35 || merged.Aperture != 0.1 || !merged.Center.Equals(base.Center) {
		t.Errorf("Unset fields should keep base values: %+v", merged)
	}
	if merged.ImageHeight() != 800 {
		t.Errorf("Expected height 800, got %d", merged.ImageHeight())
	}
}
