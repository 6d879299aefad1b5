package geometry

import (
	"github.com/df07/go-wknder/pkg/core"
	"github.com/df07/go-wknder/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection with t strictly inside (tMin, tMax).
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
