package geometry

import (
	"github.com/jayden-chan/rtiow/pkg/core"
)

// LightList samples one of several lights uniformly
type LightList struct {
	Lights []Light
}

// NewLightList creates a light list
func NewLightList(lights ...Light) *LightList {
	return &LightList{Lights: lights}
}

// PDFValue returns the mean density over all lights
func (l *LightList) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.Lights) == 0 {
		return 0
	}
	sum := 0.0
	for _, light := range l.Lights {
		sum += light.PDFValue(origin, direction)
	}
	return sum / float64(len(l.Lights))
}

// Random picks a light uniformly and samples a direction toward it
func (l *LightList) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	n := len(l.Lights)
	index := int(sampler.Get1D() * float64(n))
	if index >= n {
		index = n - 1
	}
	return l.Lights[index].Random(origin, sampler)
}
