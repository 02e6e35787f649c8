package material

import (
	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/pdf"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns false when the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns the density the material assigns to the scattered ray.
	// Specular materials return exactly 1.0 so the integrator weight reduces to attenuation.
	ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit HitRecord) core.Vec3
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Specular    core.Ray  // Outgoing ray, only meaningful when PDF is nil
	Attenuation core.Vec3 // Color attenuation
	PDF         pdf.PDF   // Importance distribution for diffuse scattering, nil for specular
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterRecord) IsSpecular() bool {
	return s.PDF == nil
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Outward unit normal (not flipped toward the ray)
	U, V     float64   // Surface texture coordinates
	Material Material  // Material of the hit object
}

// Emitted returns the radiance a hit surface emits toward rayIn, zero for non-emitters
func Emitted(rayIn core.Ray, hit HitRecord) core.Vec3 {
	if emitter, ok := hit.Material.(Emitter); ok {
		return emitter.Emitted(rayIn, hit)
	}
	return core.Vec3{}
}
