package pdf

import (
	"math"

	"github.com/jayden-chan/rtiow/pkg/core"
)

// PDF pairs a direction sampler with the density of the directions it produces
type PDF interface {
	// Value returns the solid-angle density of sampling direction
	Value(direction core.Vec3) float64
	// Generate draws a direction from the distribution
	Generate(sampler core.Sampler) core.Vec3
}

// Target is a shape that can be sampled directly, usually a light
type Target interface {
	// PDFValue returns the solid-angle density of direction from origin toward the target,
	// or 0 when the direction misses it
	PDFValue(origin, direction core.Vec3) float64
	// Random returns a direction from origin toward a point on the target
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// Cosine samples the hemisphere around W proportional to cos θ
type Cosine struct {
	basis core.ONB
}

// NewCosine creates a cosine-weighted PDF around the normal w
func NewCosine(w core.Vec3) *Cosine {
	return &Cosine{basis: core.NewONBFromW(w)}
}

// Value implements PDF
func (c *Cosine) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(c.basis.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate implements PDF
func (c *Cosine) Generate(sampler core.Sampler) core.Vec3 {
	return c.basis.Local(core.RandomCosineDirection(sampler.Get2D()))
}

// HittablePDF samples directions from Origin toward a target shape
type HittablePDF struct {
	Origin core.Vec3
	Target Target
}

// NewHittablePDF creates a PDF aimed at target as seen from origin
func NewHittablePDF(target Target, origin core.Vec3) *HittablePDF {
	return &HittablePDF{Origin: origin, Target: target}
}

// Value implements PDF
func (h *HittablePDF) Value(direction core.Vec3) float64 {
	return h.Target.PDFValue(h.Origin, direction)
}

// Generate implements PDF
func (h *HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return h.Target.Random(h.Origin, sampler)
}

// Mixture combines two PDFs with equal weight (balance heuristic)
type Mixture struct {
	P1 PDF
	P2 PDF
}

// NewMixture creates a 50/50 mixture of p1 and p2
func NewMixture(p1, p2 PDF) *Mixture {
	return &Mixture{P1: p1, P2: p2}
}

// Value implements PDF
func (m *Mixture) Value(direction core.Vec3) float64 {
	return 0.5*m.P1.Value(direction) + 0.5*m.P2.Value(direction)
}

// Generate implements PDF by picking either component with a fair coin
func (m *Mixture) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.P1.Generate(sampler)
	}
	return m.P2.Generate(sampler)
}
