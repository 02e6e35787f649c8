package geometry

import (
	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// HittableList is a flat group of shapes tested linearly
type HittableList struct {
	Objects []Shape
}

// NewHittableList creates a list of the given shapes
func NewHittableList(objects ...Shape) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends a shape to the list
func (l *HittableList) Add(shape Shape) {
	l.Objects = append(l.Objects, shape)
}

// Hit returns the closest hit among all shapes
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Objects {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all member boxes, false if empty or any member is unbounded
func (l *HittableList) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	box, ok := l.Objects[0].BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	for _, shape := range l.Objects[1:] {
		next, ok := shape.BoundingBox(t0, t1)
		if !ok {
			return core.AABB{}, false
		}
		box = box.Union(next)
	}
	return box, true
}
