package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/material"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo extracts material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties
	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties
	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties
	default:
		return fmt.Sprintf("%T", mat), properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// handleInspect casts a ray through the center of pixel (x, y), counted from
// the top left, and describes the nearest surface
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err == nil && x < 0 {
		err = fmt.Errorf("x is required")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err == nil && y < 0 {
		err = fmt.Errorf("y is required")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Center of the pixel through the center of the lens
	u := (float64(x) + 0.5) / float64(req.Width)
	v := (float64(req.Height-1-y) + 0.5) / float64(req.Height)
	ray := sc.Camera.GetRay(u, v, centerSampler{})

	hit, ok := sc.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, properties := extractMaterialInfo(hit.Material)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		Properties:   properties,
	})
}

// centerSampler always returns the middle of the unit interval, so lens
// samples land on the lens center
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }
