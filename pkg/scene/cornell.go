package scene

import (
	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/material"
)

// NewCornellScene creates the classic Cornell box: coloured side walls, a ceiling
// light and two rotated blocks, on a black background
func NewCornellScene() *Scene {
	config := geometry.CameraConfig{
		LookFrom:    core.NewVec3(278, 278, -800), // Outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 1.0,
	}

	s := NewScene(config, NewSolidBackground(core.Vec3{}))
	s.SamplingConfig.SamplesPerPixel = 200

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Standard 555 unit box, normals facing inward
	boxSize := 555.0
	s.Add(
		geometry.NewRectangle(geometry.PlaneYZ, 0, boxSize, 0, boxSize, boxSize, true, green), // left wall
		geometry.NewRectangle(geometry.PlaneYZ, 0, boxSize, 0, boxSize, 0, false, red),        // right wall
		geometry.NewRectangle(geometry.PlaneXZ, 0, boxSize, 0, boxSize, boxSize, true, white), // ceiling
		geometry.NewRectangle(geometry.PlaneXZ, 0, boxSize, 0, boxSize, 0, false, white),      // floor
		geometry.NewRectangle(geometry.PlaneXY, 0, boxSize, 0, boxSize, boxSize, true, white), // back wall
	)

	// Ceiling light facing down
	s.AddRectangleLight(geometry.PlaneXZ, 213, 343, 227, 332, 554, true, core.NewVec3(15, 15, 15))

	shortBlock := geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	tallBlock := geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	s.Add(
		geometry.NewTranslate(geometry.NewRotate(shortBlock, geometry.AxisY, -18, 0, 0), core.NewVec3(130, 0, 65)),
		geometry.NewTranslate(geometry.NewRotate(tallBlock, geometry.AxisY, 15, 0, 0), core.NewVec3(265, 0, 295)),
	)

	return s
}
