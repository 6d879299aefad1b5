package scene

import (
	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/geometry"
	"github.com/df07/go-wknder/pkg/material"
)

// Scene contains all the elements needed for rendering. A scene is built
// once and then only read, so it can be shared by every render worker.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         *geometry.ShapeList // Objects in the scene, scanned linearly
	SamplingConfig SamplingConfig
	TopColor       core.Vec3 // Sky color at the zenith
	BottomColor    core.Vec3 // Sky color at the horizon and below
}

// SamplingConfig contains the scene's recommended rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSkyColors returns the white-to-blue sky gradient
func DefaultSkyColors() (topColor, bottomColor core.Vec3) {
	return core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)
}

// newScene creates an empty scene with the default sky for the given camera
func newScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	top, bottom := DefaultSkyColors()
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         geometry.NewShapeList(),
		SamplingConfig: samplingConfig,
		TopColor:       top,
		BottomColor:    bottom,
	}
}

// resolveCameraConfig applies the first override, if any, to the defaults
func resolveCameraConfig(defaults geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}

// Hit finds the nearest surface along the ray
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	return s.Shapes.Hit(ray, tMin, tMax)
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Shapes.Len()
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Shapes.Add(geometry.NewSphere(center, radius, mat))
}
