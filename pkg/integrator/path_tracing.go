package integrator

import (
	"math"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/material"
	"github.com/jayden-chan/rtiow/pkg/pdf"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

const (
	// DefaultMaxDepth is the hard recursion cap used when none is configured
	DefaultMaxDepth = 50
	// DefaultTMin keeps secondary rays from re-hitting the surface they leave
	DefaultTMin = 0.005
)

// PathTracingIntegrator implements unidirectional path tracing with multiple
// importance sampling between the material and the scene's lights
type PathTracingIntegrator struct {
	maxDepth int
	tMin     float64
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// Zero MaxDepth or TMin fall back to the defaults.
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	pt := &PathTracingIntegrator{
		maxDepth: config.MaxDepth,
		tMin:     config.TMin,
	}
	if pt.maxDepth <= 0 {
		pt.maxDepth = DefaultMaxDepth
	}
	if pt.tMin <= 0 {
		pt.tMin = DefaultTMin
	}
	return pt
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.Radiance(ray, scene, 0, sampler)
}

// Radiance is the recursive estimator. At depth >= the cap only emission is returned.
func (pt *PathTracingIntegrator) Radiance(ray core.Ray, scene *scene.Scene, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := scene.Hit(ray, pt.tMin, math.Inf(1))
	if !isHit {
		return scene.Background.Radiance(ray)
	}

	emitted := material.Emitted(ray, *hit)
	if depth >= pt.maxDepth {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.IsSpecular() {
		return emitted.Add(pt.specularContribution(ray, hit, scatter, scene, depth, sampler))
	}
	return emitted.Add(pt.diffuseContribution(ray, hit, scatter, scene, depth, sampler))
}

// specularContribution follows the single deterministic ray chosen by the material
func (pt *PathTracingIntegrator) specularContribution(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, scene *scene.Scene, depth int, sampler core.Sampler) core.Vec3 {
	weight := hit.Material.ScatteringPDF(ray, *hit, scatter.Specular)
	incoming := pt.Radiance(scatter.Specular, scene, depth+1, sampler)
	return finiteOrZero(scatter.Attenuation.MultiplyVec(incoming).Multiply(weight))
}

// diffuseContribution samples a direction from an equal mixture of the light and
// material distributions and weights the result by scattering pdf / mixture density
func (pt *PathTracingIntegrator) diffuseContribution(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, scene *scene.Scene, depth int, sampler core.Sampler) core.Vec3 {
	var sampling pdf.PDF = scatter.PDF
	if light := scene.LightTarget(); light != nil {
		sampling = pdf.NewMixture(pdf.NewHittablePDF(light, hit.Point), scatter.PDF)
	}

	direction := sampling.Generate(sampler)
	scattered := core.NewRayAtTime(hit.Point, direction, ray.Time)

	density := sampling.Value(direction)
	if density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		return core.Vec3{}
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, *hit, scattered)
	if scatteringPDF <= 0 {
		return core.Vec3{}
	}

	incoming := pt.Radiance(scattered, scene, depth+1, sampler)
	return finiteOrZero(scatter.Attenuation.MultiplyVec(incoming).Multiply(scatteringPDF / density))
}

func finiteOrZero(v core.Vec3) core.Vec3 {
	if !v.IsFinite() {
		return core.Vec3{}
	}
	return v
}
