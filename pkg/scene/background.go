package scene

import (
	"github.com/jayden-chan/rtiow/pkg/core"
)

// Background supplies the radiance of rays that leave the scene.
// A scene holds one fixed policy for the whole render.
type Background interface {
	Radiance(ray core.Ray) core.Vec3
}

// SolidBackground returns the same color in every direction.
// Enclosed scenes lit by area lights use black.
type SolidBackground struct {
	Color core.Vec3
}

// NewSolidBackground creates a constant background
func NewSolidBackground(color core.Vec3) *SolidBackground {
	return &SolidBackground{Color: color}
}

// Radiance implements Background
func (b *SolidBackground) Radiance(ray core.Ray) core.Vec3 {
	return b.Color
}

// GradientBackground blends from Bottom at the horizon below to Top straight up
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewSkyBackground creates the white-to-blue sky used by open scenes
func NewSkyBackground() *GradientBackground {
	return &GradientBackground{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Radiance implements Background
func (b *GradientBackground) Radiance(ray core.Ray) core.Vec3 {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
