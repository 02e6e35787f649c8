package geometry

import (
	"math"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(s.Center, s.Radius, s.Material, ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// PDFValue returns 1/solid angle of the sphere as seen from origin when direction hits it
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, hit := s.Hit(core.NewRay(origin, direction), lightProbeTMin, math.Inf(1)); !hit {
		return 0
	}

	distanceSquared := s.Center.Subtract(origin).LengthSquared()
	radiusSquared := s.Radius * s.Radius
	if distanceSquared <= radiusSquared {
		// Origin inside the sphere sees it in every direction
		return 1.0 / (4.0 * math.Pi)
	}

	cosThetaMax := math.Sqrt(1.0 - radiusSquared/distanceSquared)
	solidAngle := 2.0 * math.Pi * (1.0 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1.0 / solidAngle
}

// Random samples a direction uniformly inside the cone the sphere subtends at origin
func (s *Sphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.Subtract(origin)
	distanceSquared := direction.LengthSquared()
	if distanceSquared <= s.Radius*s.Radius {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}

	onb := core.NewONBFromW(direction)
	return onb.Local(core.RandomToSphere(s.Radius, distanceSquared, sampler.Get2D()))
}

// hitSphere solves the ray/sphere quadratic, trying the nearer root first
func hitSphere(center core.Vec3, radius float64, mat material.Material, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(center)

	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return nil, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(center).Multiply(1.0 / radius)
	u, v := sphereUV(normal)

	return &material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   normal,
		U:        u,
		V:        v,
		Material: mat,
	}, true
}

// sphereUV maps a point on the unit sphere to texture coordinates in [0,1]²
func sphereUV(p core.Vec3) (float64, float64) {
	phi := math.Atan2(p.Z, p.X)
	theta := math.Asin(math.Max(-1, math.Min(1, p.Y)))
	u := 1.0 - (phi+math.Pi)/(2.0*math.Pi)
	v := (theta + math.Pi/2.0) / math.Pi
	return u, v
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := math.Abs(radius)
	extent := core.NewVec3(r, r, r)
	return core.NewAABB(center.Subtract(extent), center.Add(extent))
}
