package material

import (
	"github.com/jayden-chan/rtiow/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns the color at surface coordinates (u, v) and world point p
	Value(u, v float64, p core.Vec3) core.Vec3
}

// ConstantTexture provides a uniform color
type ConstantTexture struct {
	Color core.Vec3
}

// NewConstantTexture creates a new constant texture
func NewConstantTexture(color core.Vec3) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// Value returns the constant color regardless of coordinates
func (c *ConstantTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	return c.Color
}
