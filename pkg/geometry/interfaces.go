package geometry

import (
	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	// BoundingBox returns a box enclosing the shape over the shutter interval [t0, t1].
	// The second result is false for unbounded shapes.
	BoundingBox(t0, t1 float64) (core.AABB, bool)
}

// Light is a shape that can be sampled directly by the integrator
type Light interface {
	Shape
	// PDFValue returns the solid-angle density of direction from origin, 0 if it misses
	PDFValue(origin, direction core.Vec3) float64
	// Random returns a direction from origin toward a point on the shape
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// lightProbeTMin keeps light-probe rays from re-hitting the surface they start on
const lightProbeTMin = 0.001
