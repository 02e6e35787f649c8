package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"Parallel vectors", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", v)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_AxisAccessors(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if v.Axis(axis) != expected {
			t.Errorf("Axis(%d): expected %f, got %f", axis, expected, v.Axis(axis))
		}
	}

	w := v.WithAxis(1, 7)
	if w != NewVec3(1, 7, 3) {
		t.Errorf("WithAxis: expected (1,7,3), got %v", w)
	}
	if v != NewVec3(1, 2, 3) {
		t.Errorf("WithAxis must not modify the receiver, got %v", v)
	}
}

func TestReflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	normal := NewVec3(0, 1, 0)

	reflected := Reflect(incoming, normal)
	expected := NewVec3(1, 1, 0)

	if reflected.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN component to be reported")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Expected Inf component to be reported")
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec3
		gamma    float64
		expected Vec3
	}{
		{"gamma two is square root", NewVec3(0.25, 0.64, 1), 2, NewVec3(0.5, 0.8, 1)},
		{"gamma one is identity", NewVec3(0.1, 0.2, 0.3), 1, NewVec3(0.1, 0.2, 0.3)},
		{"zero stays zero", NewVec3(0, 0, 0), 2.2, NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.GammaCorrect(tt.gamma)
			if math.Abs(got.X-tt.expected.X) > 1e-9 || math.Abs(got.Y-tt.expected.Y) > 1e-9 || math.Abs(got.Z-tt.expected.Z) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 1, 1), NewVec3(0, 0, -2), 0.25)
	point := ray.At(1.5)
	if point != NewVec3(1, 1, -2) {
		t.Errorf("Expected (1,1,-2), got %v", point)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
}
