package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-wknder/pkg/geometry"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name used on the command line and in requests
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Short description
}

type builder func(seed int64, overrides ...geometry.CameraConfig) *Scene

type entry struct {
	info  SceneInfo
	build builder
}

var registry = map[string]entry{
	"basic": {
		info: SceneInfo{"basic", "Basic", "Diffuse, fuzzy metal and hollow glass spheres on a ground sphere"},
		build: func(_ int64, overrides ...geometry.CameraConfig) *Scene {
			return NewBasicScene(overrides...)
		},
	},
	"random": {
		info:  SceneInfo{"random", "Random spheres", "Ground covered with hundreds of randomly chosen small spheres"},
		build: NewRandomScene,
	},
	"single": {
		info: SceneInfo{"single", "Single sphere", "One diffuse sphere seen head-on through a pinhole camera"},
		build: func(_ int64, overrides ...geometry.CameraConfig) *Scene {
			return NewSingleSphereScene(overrides...)
		},
	},
	"empty": {
		info: SceneInfo{"empty", "Empty", "Only the sky gradient"},
		build: func(_ int64, overrides ...geometry.CameraConfig) *Scene {
			return NewEmptyScene(overrides...)
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, e := range registry {
		scenes = append(scenes, e.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	scenes := ListScenes()
	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.ID
	}
	return names
}

// Create builds the named scene. Seed only affects procedurally generated scenes.
func Create(name string, seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return e.build(seed, cameraOverrides...), nil
}

// CreateForImage builds the named scene with its camera framed for a
// width x height image. A zero width keeps the scene width; a zero height
// keeps the scene aspect ratio.
func CreateForImage(name string, seed int64, width, height int) (*Scene, error) {
	var override geometry.CameraConfig
	override.Width = width
	if width > 0 && height > 0 {
		override.AspectRatio = float64(width) / float64(height)
	}

	s, err := Create(name, seed, override)
	if err != nil {
		return nil, err
	}

	// Height alone keeps the scene width and adopts the new aspect ratio
	if width == 0 && height > 0 {
		override.AspectRatio = float64(s.CameraConfig.Width) / float64(height)
		return Create(name, seed, override)
	}
	return s, nil
}
