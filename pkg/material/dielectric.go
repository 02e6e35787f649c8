package material

import (
	"math"

	"github.com/jayden-chan/rtiow/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	// Clear glass never tints
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	directionLength := rayIn.Direction.Length()
	if directionLength == 0 {
		return ScatterRecord{}, false
	}
	dirDotNormal := rayIn.Direction.Dot(hit.Normal)

	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if dirDotNormal > 0 {
		// Leaving the medium
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dirDotNormal / directionLength
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dirDotNormal / directionLength
	}

	reflectProbability := 1.0
	refracted, canRefract := refractVector(rayIn.Direction, outwardNormal, niOverNt)
	if canRefract {
		reflectProbability = Reflectance(math.Min(cosine, 1.0), d.RefractiveIndex)
	}

	var direction core.Vec3
	if sampler.Get1D() < reflectProbability {
		direction = core.Reflect(rayIn.Direction, hit.Normal)
	} else {
		direction = refracted
	}

	return ScatterRecord{
		Specular:    core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// ScatteringPDF is fixed at 1 for specular transport
func (d *Dielectric) ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64 {
	return 1.0
}

// refractVector applies Snell's law to v about n. The second result is false on
// total internal reflection.
func refractVector(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if discriminant < 0 {
		return core.Vec3{}, false
	}
	refracted := uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
