package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// Plane selects which axis-aligned plane a Rectangle lies in
type Plane int

const (
	PlaneXY Plane = iota // constant z
	PlaneYZ              // constant x
	PlaneXZ              // constant y
)

// rectanglePadding gives planar bounding boxes a non-zero thickness
const rectanglePadding = 1e-4

// ParsePlane converts "XY", "YZ" or "XZ" (any case) to a Plane
func ParsePlane(name string) (Plane, error) {
	switch strings.ToUpper(name) {
	case "XY":
		return PlaneXY, nil
	case "YZ":
		return PlaneYZ, nil
	case "XZ":
		return PlaneXZ, nil
	default:
		return 0, fmt.Errorf("unknown rectangle plane %q", name)
	}
}

// String returns the plane name
func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "XY"
	case PlaneYZ:
		return "YZ"
	case PlaneXZ:
		return "XZ"
	default:
		return fmt.Sprintf("Plane(%d)", int(p))
	}
}

// axes returns the indices of the two in-plane axes and the constant axis
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneYZ:
		return 1, 2, 0
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 0, 1, 2
	}
}

// Rectangle is an axis-aligned rectangle spanning [A0,A1]×[B0,B1] at K on the constant axis.
// For XY the free axes are (x,y), for YZ (y,z), and for XZ (x,z).
type Rectangle struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Flip     bool // Negates the normal
	Material material.Material
}

// NewRectangle creates a new axis-aligned rectangle
func NewRectangle(plane Plane, a0, a1, b0, b1, k float64, flip bool, material material.Material) *Rectangle {
	return &Rectangle{
		Plane:    plane,
		A0:       a0,
		A1:       a1,
		B0:       b0,
		B1:       b1,
		K:        k,
		Flip:     flip,
		Material: material,
	}
}

// Normal returns the rectangle's unit normal
func (r *Rectangle) Normal() core.Vec3 {
	_, _, k := r.Plane.axes()
	sign := 1.0
	if r.Flip {
		sign = -1.0
	}
	return core.Vec3{}.WithAxis(k, sign)
}

// Area returns the rectangle's surface area
func (r *Rectangle) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// Hit tests if a ray intersects the rectangle
func (r *Rectangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	aAxis, bAxis, kAxis := r.Plane.axes()

	denominator := ray.Direction.Axis(kAxis)
	if denominator == 0 {
		return nil, false
	}

	t := (r.K - ray.Origin.Axis(kAxis)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	a := ray.Origin.Axis(aAxis) + t*ray.Direction.Axis(aAxis)
	b := ray.Origin.Axis(bAxis) + t*ray.Direction.Axis(bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   r.Normal(),
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}, true
}

// BoundingBox returns the rectangle's box padded along its normal axis
func (r *Rectangle) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	aAxis, bAxis, kAxis := r.Plane.axes()

	var min, max core.Vec3
	min = min.WithAxis(aAxis, r.A0).WithAxis(bAxis, r.B0).WithAxis(kAxis, r.K)
	max = max.WithAxis(aAxis, r.A1).WithAxis(bAxis, r.B1).WithAxis(kAxis, r.K)

	return core.NewAABB(min, max).PadAxis(kAxis, rectanglePadding), true
}

// PDFValue converts the uniform area density to solid angle: dist² / (cos θ · area)
func (r *Rectangle) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), lightProbeTMin, math.Inf(1))
	if !ok {
		return 0
	}

	area := r.Area()
	directionLengthSquared := direction.LengthSquared()
	distanceSquared := hit.T * hit.T * directionLengthSquared
	cosine := math.Abs(direction.Dot(hit.Normal)) / math.Sqrt(directionLengthSquared)

	// Grazing angles would blow the density up to infinity
	if cosine < 1e-8 || area <= 0 {
		return 0
	}
	return distanceSquared / (cosine * area)
}

// Random returns the direction from origin to a uniformly chosen point on the rectangle
func (r *Rectangle) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	aAxis, bAxis, kAxis := r.Plane.axes()
	sample := sampler.Get2D()

	var point core.Vec3
	point = point.WithAxis(aAxis, r.A0+sample.X*(r.A1-r.A0))
	point = point.WithAxis(bAxis, r.B0+sample.Y*(r.B1-r.B0))
	point = point.WithAxis(kAxis, r.K)

	return point.Subtract(origin)
}
