package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jayden-chan/rtiow/pkg/core"
)

func TestRectangle_Hit(t *testing.T) {
	tests := []struct {
		name           string
		rect           *Rectangle
		ray            core.Ray
		expectHit      bool
		expectedPoint  core.Vec3
		expectedNormal core.Vec3
	}{
		{
			name:           "XY hit",
			rect:           NewRectangle(PlaneXY, -1, 1, -1, 1, -2, false, testMaterial),
			ray:            core.NewRay(core.NewVec3(0.5, 0.25, 0), core.NewVec3(0, 0, -1)),
			expectHit:      true,
			expectedPoint:  core.NewVec3(0.5, 0.25, -2),
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "XY flipped",
			rect:           NewRectangle(PlaneXY, -1, 1, -1, 1, -2, true, testMaterial),
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
			expectHit:      true,
			expectedPoint:  core.NewVec3(0, 0, -2),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "YZ hit",
			rect:           NewRectangle(PlaneYZ, 0, 2, 0, 3, 5, false, testMaterial),
			ray:            core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(1, 0, 0)),
			expectHit:      true,
			expectedPoint:  core.NewVec3(5, 1, 1),
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "XZ hit",
			rect:           NewRectangle(PlaneXZ, 213, 343, 227, 332, 554, false, testMaterial),
			ray:            core.NewRay(core.NewVec3(278, 0, 278), core.NewVec3(0, 1, 0)),
			expectHit:      true,
			expectedPoint:  core.NewVec3(278, 554, 278),
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:      "Outside extent",
			rect:      NewRectangle(PlaneXY, -1, 1, -1, 1, -2, false, testMaterial),
			ray:       core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "Parallel ray",
			rect:      NewRectangle(PlaneXY, -1, 1, -1, 1, -2, false, testMaterial),
			ray:       core.NewRay(core.NewVec3(0, 0, -2), core.NewVec3(1, 0, 0)),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tt.rect.Hit(tt.ray, 0.001, math.Inf(1))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if hit.Point.Subtract(tt.expectedPoint).Length() > 1e-9 {
				t.Errorf("Expected point %v, got %v", tt.expectedPoint, hit.Point)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestRectangle_BoundingBoxPadded(t *testing.T) {
	rect := NewRectangle(PlaneXZ, 0, 2, 1, 3, 5, false, testMaterial)
	box, ok := rect.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Rectangle should be bounded")
	}
	if box.Min.X != 0 || box.Max.X != 2 || box.Min.Z != 1 || box.Max.Z != 3 {
		t.Errorf("Unexpected in-plane extent %v", box)
	}
	if box.Max.Y-box.Min.Y <= 0 {
		t.Errorf("Expected padded thickness along Y, got %v", box)
	}

	// A ray perpendicular to the plane must pass the slab test
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 1, 0))
	if !box.Hit(ray, 0.001, math.Inf(1)) {
		t.Error("Expected padded box to be hit")
	}
}

func TestRectangle_LightPDF(t *testing.T) {
	light := NewRectangle(PlaneXZ, -1, 1, -1, 1, 2, true, testMaterial)
	origin := core.NewVec3(0, 0, 0)

	// Straight up: distance 2, cosine 1, area 4
	if pdf := light.PDFValue(origin, core.NewVec3(0, 1, 0)); math.Abs(pdf-1.0) > 1e-9 {
		t.Errorf("Expected pdf 1, got %f", pdf)
	}
	if pdf := light.PDFValue(origin, core.NewVec3(0, -1, 0)); pdf != 0 {
		t.Errorf("Expected zero density for a miss, got %f", pdf)
	}

	// Every sampled direction must reach the light
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 500; i++ {
		direction := light.Random(origin, sampler)
		if pdf := light.PDFValue(origin, direction); pdf <= 0 {
			t.Fatalf("Sampled direction %v should have positive density", direction)
		}
	}
}

func TestParsePlane(t *testing.T) {
	for _, name := range []string{"XY", "yz", "Xz"} {
		plane, err := ParsePlane(name)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", name, err)
		}
		if plane.String() == "" {
			t.Error("Expected plane name")
		}
	}
	if _, err := ParsePlane("XW"); err == nil {
		t.Error("Expected error for unknown plane")
	}
}
