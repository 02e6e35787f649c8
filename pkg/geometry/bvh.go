package geometry

import (
	"fmt"
	"sort"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// BVHNode is an internal node of the Bounding Volume Hierarchy.
// Children are either further nodes or the primitives themselves.
type BVHNode struct {
	Box   core.AABB
	Left  Shape
	Right Shape
}

// NewBVH builds a hierarchy over shapes for the shutter interval [t0, t1].
// Each level splits on an axis drawn from sampler. A single shape is returned
// unwrapped. Panics when shapes is empty or a shape has no bounding box.
func NewBVH(shapes []Shape, t0, t1 float64, sampler core.Sampler) Shape {
	if len(shapes) == 0 {
		panic("geometry: cannot build a BVH from an empty shape list")
	}

	// Sorting reorders the slice, so work on a copy
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return buildBVH(shapesCopy, t0, t1, sampler)
}

// buildBVH sorts by box minimum on a random axis and splits at the midpoint
func buildBVH(shapes []Shape, t0, t1 float64, sampler core.Sampler) Shape {
	if len(shapes) == 1 {
		return shapes[0]
	}

	axis := int(sampler.Get1D() * 3)
	if axis > 2 {
		axis = 2
	}

	keys := make([]float64, len(shapes))
	for i, shape := range shapes {
		keys[i] = requireBox(shape, t0, t1).Min.Axis(axis)
	}
	sort.Stable(byBoxMin{shapes: shapes, keys: keys})

	mid := len(shapes) / 2
	left := buildBVH(shapes[:mid], t0, t1, sampler)
	right := buildBVH(shapes[mid:], t0, t1, sampler)

	return &BVHNode{
		Box:   core.SurroundingBox(requireBox(left, t0, t1), requireBox(right, t0, t1)),
		Left:  left,
		Right: right,
	}
}

// byBoxMin sorts shapes by a precomputed box coordinate
type byBoxMin struct {
	shapes []Shape
	keys   []float64
}

func (b byBoxMin) Len() int           { return len(b.shapes) }
func (b byBoxMin) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byBoxMin) Swap(i, j int) {
	b.shapes[i], b.shapes[j] = b.shapes[j], b.shapes[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func requireBox(shape Shape, t0, t1 float64) core.AABB {
	box, ok := shape.BoundingBox(t0, t1)
	if !ok {
		panic(fmt.Sprintf("geometry: shape %T has no bounding box and cannot be placed in a BVH", shape))
	}
	return box
}

// Hit prunes on the node box, then tests both children and keeps the nearer hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	rightHit, hitRight := n.Right.Hit(ray, tMin, tMax)

	switch {
	case hitLeft && hitRight:
		if leftHit.T < rightHit.T {
			return leftHit, true
		}
		return rightHit, true
	case hitLeft:
		return leftHit, true
	case hitRight:
		return rightHit, true
	default:
		return nil, false
	}
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats summarizes the shape of a hierarchy
type BVHStats struct {
	TotalNodes int
	LeafShapes int
	MaxDepth   int
	AvgDepth   float64
}

// Stats walks a hierarchy returned by NewBVH
func Stats(root Shape) BVHStats {
	stats := BVHStats{}
	collectStats(root, 0, &stats)

	if stats.LeafShapes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafShapes)
	}
	return stats
}

func collectStats(shape Shape, depth int, stats *BVHStats) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node, ok := shape.(*BVHNode)
	if !ok {
		stats.LeafShapes++
		stats.AvgDepth += float64(depth)
		return
	}

	stats.TotalNodes++
	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
