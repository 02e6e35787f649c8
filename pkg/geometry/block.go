package geometry

import (
	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// Block is a closed axis-aligned box made of six rectangles with outward normals
type Block struct {
	Min, Max core.Vec3
	Material material.Material
	faces    *HittableList
}

// NewBlock creates a block spanning the corners p0 and p1
func NewBlock(p0, p1 core.Vec3, material material.Material) *Block {
	lo := core.NewVec3(min(p0.X, p1.X), min(p0.Y, p1.Y), min(p0.Z, p1.Z))
	hi := core.NewVec3(max(p0.X, p1.X), max(p0.Y, p1.Y), max(p0.Z, p1.Z))

	faces := NewHittableList(
		NewRectangle(PlaneXY, lo.X, hi.X, lo.Y, hi.Y, hi.Z, false, material),
		NewRectangle(PlaneXY, lo.X, hi.X, lo.Y, hi.Y, lo.Z, true, material),
		NewRectangle(PlaneXZ, lo.X, hi.X, lo.Z, hi.Z, hi.Y, false, material),
		NewRectangle(PlaneXZ, lo.X, hi.X, lo.Z, hi.Z, lo.Y, true, material),
		NewRectangle(PlaneYZ, lo.Y, hi.Y, lo.Z, hi.Z, hi.X, false, material),
		NewRectangle(PlaneYZ, lo.Y, hi.Y, lo.Z, hi.Z, lo.X, true, material),
	)

	return &Block{
		Min:      lo,
		Max:      hi,
		Material: material,
		faces:    faces,
	}
}

// Hit delegates to the nearest of the six faces
func (b *Block) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax)
}

// BoundingBox returns the exact corner box
func (b *Block) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
