package scene

import (
	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// NewDefaultScene creates three spheres (diffuse, metal, hollow glass) on a large
// ground sphere under a sky gradient
func NewDefaultScene() *Scene {
	config := geometry.CameraConfig{
		LookFrom:    core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 16.0 / 9.0,
		Aperture:    0.05,
	}

	s := NewScene(config, NewSkyBackground())
	s.SetImageSize(400, 225)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		// Negative radius flips the normals, making the glass sphere hollow
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
	)

	return s
}

// NewTwoSpheresScene creates a red sphere resting on a gray ground sphere under a flat sky color
func NewTwoSpheresScene() *Scene {
	config := geometry.CameraConfig{
		LookFrom:    core.NewVec3(0, 0.5, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 1.0,
	}

	s := NewScene(config, NewSolidBackground(core.NewVec3(0.5, 0.7, 1.0)))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.1, 0.1))),
	)

	return s
}
