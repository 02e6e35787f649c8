package scene

import (
	"math/rand"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// NewRandomSpheresScene creates a field of small random spheres around three large ones.
// Diffuse spheres bounce during the shutter interval for motion blur. The layout
// is fixed by seed.
func NewRandomSpheresScene(seed int64) *Scene {
	config := geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}

	s := NewScene(config, NewSkyBackground())
	s.SetImageSize(600, 400)
	s.BVHSeed = seed

	random := rand.New(rand.NewSource(seed))

	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	clearance := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			chooseMaterial := random.Float64()
			switch {
			case chooseMaterial < 0.8:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				center2 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				s.Add(geometry.NewMovingSphere(center, center2, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*random.Float64())))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
