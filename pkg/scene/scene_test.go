package scene

import (
	"math"
	"testing"

	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/geometry"
	"github.com/df07/go-wknder/pkg/material"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
		minShapes   int
	}{
		{"basic scene", "basic", false, 5},
		{"random scene", "random", false, 4},
		{"single scene", "single", false, 1},
		{"empty scene", "empty", false, 0},
		{"case insensitive", "  Basic ", false, 5},
		{"unknown scene", "cornell", true, 0},
		{"empty name", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.sceneType, 42)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s'", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s'", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.GetPrimitiveCount() < tt.minShapes {
				t.Errorf("Expected at least %d shapes, got %d", tt.minShapes, s.GetPrimitiveCount())
			}
			if s.GetCamera() == nil {
				t.Error("Scene should have a camera")
			}
			if s.CameraConfig.Width <= 0 || s.SamplingConfig.SamplesPerPixel <= 0 {
				t.Errorf("Scene configuration incomplete: %+v %+v", s.CameraConfig, s.SamplingConfig)
			}
		})
	}
}

func TestListScenes_Sorted(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("Expected 4 scenes, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Scene names not sorted: %v", names)
		}
	}
}

func TestBasicScene_HollowGlassShell(t *testing.T) {
	s := NewBasicScene()

	var outer, inner *geometry.Sphere
	for _, shape := range s.Shapes.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Unexpected shape type %T", shape)
		}
		if _, isGlass := sphere.Material.(*material.Dielectric); !isGlass {
			continue
		}
		if sphere.Radius > 0 {
			outer = sphere
		} else {
			inner = sphere
		}
	}

	if outer == nil || inner == nil {
		t.Fatal("Expected an outer and an inner glass sphere")
	}
	if !outer.Center.Equals(inner.Center) {
		t.Errorf("Shell spheres should share a center: %v vs %v", outer.Center, inner.Center)
	}
	if inner.Radius != -0.45 || outer.Radius != 0.5 {
		t.Errorf("Unexpected shell radii %f and %f", outer.Radius, inner.Radius)
	}
	if outer.Material != inner.Material {
		t.Error("Shell spheres should share one material instance")
	}
}

func TestBasicScene_CameraOverride(t *testing.T) {
	s := NewBasicScene(geometry.CameraConfig{Width: 320, AspectRatio: 2})
	if s.CameraConfig.Width != 320 || s.CameraConfig.ImageHeight() != 160 {
		t.Errorf("Override not applied: %+v", s.CameraConfig)
	}
	if s.CameraConfig.VFov != 35 {
		t.Errorf("Default vfov should survive the override, got %f", s.CameraConfig.VFov)
	}
}

func TestRandomScene_DeterministicPerSeed(t *testing.T) {
	a := NewRandomScene(7)
	b := NewRandomScene(7)
	c := NewRandomScene(8)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Same seed produced %d and %d shapes", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	for i := range a.Shapes.Shapes {
		sa := a.Shapes.Shapes[i].(*geometry.Sphere)
		sb := b.Shapes.Shapes[i].(*geometry.Sphere)
		if !sa.Center.Equals(sb.Center) {
			t.Fatalf("Shape %d differs between runs", i)
		}
	}

	same := a.GetPrimitiveCount() == c.GetPrimitiveCount()
	if same {
		for i := range a.Shapes.Shapes {
			if !a.Shapes.Shapes[i].(*geometry.Sphere).Center.Equals(c.Shapes.Shapes[i].(*geometry.Sphere).Center) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Different seeds should produce different layouts")
	}
}

func TestRandomScene_KeepsClearOfMetalSphere(t *testing.T) {
	s := NewRandomScene(42)
	clearance := core.NewVec3(4, 0.2, 0)

	for _, shape := range s.Shapes.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			continue
		}
		if sphere.Center.Subtract(clearance).Length() <= 0.9 {
			t.Errorf("Small sphere at %v overlaps the feature sphere", sphere.Center)
		}
	}
}

func TestScene_HitAndBackground(t *testing.T) {
	s := NewSingleSphereScene()

	hit, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok || math.Abs(hit.T-0.5) > 1e-12 {
		t.Errorf("Expected hit at t=0.5, got %v (hit=%t)", hit.T, ok)
	}

	top, bottom := s.GetBackgroundColors()
	if !top.Equals(core.NewVec3(0.5, 0.7, 1.0)) || !bottom.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Unexpected sky colors %v, %v", top, bottom)
	}
}

func TestCreateForImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantWidth     int
		wantAspect    float64
	}{
		{"scene default", 0, 0, 400, 2},
		{"width only keeps aspect", 100, 0, 100, 2},
		{"height only keeps width", 0, 100, 400, 4},
		{"both", 64, 48, 64, 64.0 / 48.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := CreateForImage("single", 42, tt.width, tt.height)
			if err != nil {
				t.Fatal(err)
			}
			if s.CameraConfig.Width != tt.wantWidth {
				t.Errorf("Expected width %d, got %d", tt.wantWidth, s.CameraConfig.Width)
			}
			if s.CameraConfig.AspectRatio != tt.wantAspect {
				t.Errorf("Expected aspect %f, got %f", tt.wantAspect, s.CameraConfig.AspectRatio)
			}
		})
	}

	if _, err := CreateForImage("nope", 42, 10, 10); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
}
