package scene

import (
	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/geometry"
	"github.com/df07/go-wknder/pkg/material"
)

// defaultCameraConfig frames the origin-centered scenes from above and to the right
func defaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(8, 2, 2.5),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          35.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}
}

// NewBasicScene creates the five-sphere scene: a diffuse sphere on a diffuse
// ground, a fuzzy gold metal sphere, and a hollow glass bubble
func NewBasicScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := resolveCameraConfig(defaultCameraConfig(), cameraOverrides)

	s := newScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	glass := material.NewDielectric(1.5)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0))

	// The negative inner radius flips the normal, turning the pair into a thin glass shell
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, glass)

	return s
}
