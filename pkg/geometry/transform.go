package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// Translate moves a wrapped shape by Offset
type Translate struct {
	Object Shape
	Offset core.Vec3
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Shape, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, delegates, then moves the hit back
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Object.Hit(moved, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the wrapped box shifted by the offset
func (t *Translate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// Axis names a rotation axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis converts "X", "Y" or "Z" (any case) to an Axis
func ParseAxis(name string) (Axis, error) {
	switch strings.ToUpper(name) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown rotation axis %q", name)
	}
}

// plane returns the two component indices mixed by a rotation about the axis
func (a Axis) plane() (first, second int) {
	switch a {
	case AxisX:
		return 1, 2
	case AxisY:
		return 2, 0
	default:
		return 0, 1
	}
}

// Rotate turns a wrapped shape about a coordinate axis through the origin
type Rotate struct {
	Object   Shape
	Axis     Axis
	Degrees  float64
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotate wraps object rotated by degrees about axis.
// The bounding box is computed once over the shutter interval [t0, t1].
func NewRotate(object Shape, axis Axis, degrees, t0, t1 float64) *Rotate {
	radians := degrees * math.Pi / 180.0
	r := &Rotate{
		Object:   object,
		Axis:     axis,
		Degrees:  degrees,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	inner, ok := object.BoundingBox(t0, t1)
	if !ok {
		return r
	}

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					lerp(inner.Min.X, inner.Max.X, float64(i)),
					lerp(inner.Min.Y, inner.Max.Y, float64(j)),
					lerp(inner.Min.Z, inner.Max.Z, float64(k)),
				)
				corners = append(corners, r.toWorld(corner))
			}
		}
	}

	r.box = core.NewAABBFromPoints(corners...)
	r.hasBox = true
	return r
}

// Hit rotates the ray into object space, delegates, then rotates the hit back
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	local := core.NewRayAtTime(r.toLocal(ray.Origin), r.toLocal(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(local, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box computed at construction
func (r *Rotate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}

// toLocal applies the inverse rotation
func (r *Rotate) toLocal(v core.Vec3) core.Vec3 {
	a, b := r.Axis.plane()
	va, vb := v.Axis(a), v.Axis(b)
	newB := r.cosTheta*vb - r.sinTheta*va
	newA := r.sinTheta*vb + r.cosTheta*va
	return v.WithAxis(a, newA).WithAxis(b, newB)
}

// toWorld applies the rotation
func (r *Rotate) toWorld(v core.Vec3) core.Vec3 {
	a, b := r.Axis.plane()
	va, vb := v.Axis(a), v.Axis(b)
	newB := r.cosTheta*vb + r.sinTheta*va
	newA := -r.sinTheta*vb + r.cosTheta*va
	return v.WithAxis(a, newA).WithAxis(b, newB)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
