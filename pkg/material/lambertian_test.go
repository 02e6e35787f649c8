package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jayden-chan/rtiow/pkg/core"
)

func TestLambertian_ScatteringPDF(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		name     string
		outgoing core.Vec3
		expected float64
	}{
		{"Along normal", core.NewVec3(0, 1, 0), 1 / math.Pi},
		{"Opposite normal", core.NewVec3(0, -1, 0), 0},
		{"Unnormalized along normal", core.NewVec3(0, 3, 0), 1 / math.Pi},
		{"60 degrees", core.NewVec3(math.Sqrt(3)/2, 0.5, 0), 0.5 / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scattered := core.NewRay(hit.Point, tt.outgoing)
			got := lambertian.ScatteringPDF(rayIn, hit, scattered)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestLambertian_ScatterRecord(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.IsSpecular() {
		t.Fatal("Lambertian scatter must carry a PDF")
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}

	// The material PDF must agree with ScatteringPDF for its own samples
	for i := 0; i < 100; i++ {
		direction := scatter.PDF.Generate(sampler)
		scattered := core.NewRay(hit.Point, direction)
		expected := lambertian.ScatteringPDF(ray, hit, scattered)
		if math.Abs(scatter.PDF.Value(direction)-expected) > 1e-9 {
			t.Errorf("PDF mismatch for %v: got %f, expected %f", direction, scatter.PDF.Value(direction), expected)
		}
	}
}
