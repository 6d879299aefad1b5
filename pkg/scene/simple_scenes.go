package scene

import (
	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/geometry"
	"github.com/df07/go-wknder/pkg/material"
)

// axisCameraConfig looks down -Z from the origin without depth of field
func axisCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   2.0,
		VFov:          90.0,
		Aperture:      0.0,
		FocusDistance: 1.0,
	}
}

// NewSingleSphereScene creates one diffuse sphere in front of a pinhole camera
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene(resolveCameraConfig(axisCameraConfig(), cameraOverrides), SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        50,
	})
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}

// NewEmptyScene creates a scene with only the sky
func NewEmptyScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	return newScene(resolveCameraConfig(axisCameraConfig(), cameraOverrides), SamplingConfig{
		SamplesPerPixel: 1,
		MaxDepth:        1,
	})
}
