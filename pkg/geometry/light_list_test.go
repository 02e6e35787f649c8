package geometry

import (
	"math"
	"testing"

	"github.com/jayden-chan/rtiow/pkg/core"
)

// sequenceSampler returns values from a fixed list in order, cycling
type sequenceSampler struct {
	values []float64
	index  int
}

func (s *sequenceSampler) next() float64 {
	v := s.values[s.index%len(s.values)]
	s.index++
	return v
}

func (s *sequenceSampler) Get1D() float64   { return s.next() }
func (s *sequenceSampler) Get2D() core.Vec2 { return core.NewVec2(s.next(), s.next()) }
func (s *sequenceSampler) Get3D() core.Vec3 { return core.NewVec3(s.next(), s.next(), s.next()) }

func TestLightList(t *testing.T) {
	up := NewRectangle(PlaneXZ, -1, 1, -1, 1, 2, true, testMaterial)
	down := NewRectangle(PlaneXZ, -1, 1, -1, 1, -2, false, testMaterial)
	lights := NewLightList(up, down)
	origin := core.NewVec3(0, 0, 0)

	// Each light alone gives density 1 straight at it
	if pdf := lights.PDFValue(origin, core.NewVec3(0, 1, 0)); math.Abs(pdf-0.5) > 1e-9 {
		t.Errorf("Expected mean density 0.5, got %f", pdf)
	}

	first := lights.Random(origin, &sequenceSampler{values: []float64{0.1, 0.5, 0.5}})
	if first.Y <= 0 {
		t.Errorf("Expected low pick to sample the upper light, got %v", first)
	}
	second := lights.Random(origin, &sequenceSampler{values: []float64{0.9, 0.5, 0.5}})
	if second.Y >= 0 {
		t.Errorf("Expected high pick to sample the lower light, got %v", second)
	}
}
