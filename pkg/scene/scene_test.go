package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/material"
)

func TestScene_PreprocessEmpty(t *testing.T) {
	s := NewScene(geometry.DefaultCameraConfig(), NewSolidBackground(core.Vec3{}))
	if err := s.Preprocess(); !errors.Is(err, ErrEmptyScene) {
		t.Errorf("Expected ErrEmptyScene, got %v", err)
	}
}

func TestScene_LightTarget(t *testing.T) {
	s := NewScene(geometry.DefaultCameraConfig(), NewSolidBackground(core.Vec3{}))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if s.LightTarget() != nil {
		t.Error("Expected no light target without lights")
	}

	first := s.AddRectangleLight(geometry.PlaneXZ, -1, 1, -1, 1, 3, true, core.NewVec3(4, 4, 4))
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if s.LightTarget() != first {
		t.Errorf("Expected the single light as target, got %T", s.LightTarget())
	}

	s.AddRectangleLight(geometry.PlaneXZ, -1, 1, -1, 1, -3, false, core.NewVec3(4, 4, 4))
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if _, ok := s.LightTarget().(*geometry.LightList); !ok {
		t.Errorf("Expected a light list for two lights, got %T", s.LightTarget())
	}
}

func TestScene_Hit(t *testing.T) {
	s := NewTwoSpheresScene()
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}

	hit, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit on the red sphere")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got %f", hit.T)
	}

	if _, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0.001, math.Inf(1)); ok {
		t.Error("Expected upward ray to miss")
	}
}

func TestScene_SetImageSize(t *testing.T) {
	s := NewCornellScene()
	s.SetImageSize(300, 150)

	if s.SamplingConfig.Width != 300 || s.SamplingConfig.Height != 150 {
		t.Errorf("Unexpected size %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.CameraConfig.AspectRatio != 2 {
		t.Errorf("Expected aspect ratio 2, got %f", s.CameraConfig.AspectRatio)
	}
}

func TestScene_PrimitiveCount(t *testing.T) {
	s := NewCornellScene()
	// Five walls, one light, two blocks of six faces
	if count := s.GetPrimitiveCount(); count != 18 {
		t.Errorf("Expected 18 primitives, got %d", count)
	}
}

func TestBackgrounds(t *testing.T) {
	solid := NewSolidBackground(core.NewVec3(0.1, 0.2, 0.3))
	if solid.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))) != core.NewVec3(0.1, 0.2, 0.3) {
		t.Error("Solid background should be constant")
	}

	sky := NewSkyBackground()
	up := sky.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 2, 0)))
	down := sky.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)))
	if up.Subtract(sky.Top).Length() > 1e-12 {
		t.Errorf("Expected top color straight up, got %v", up)
	}
	if down.Subtract(sky.Bottom).Length() > 1e-12 {
		t.Errorf("Expected bottom color straight down, got %v", down)
	}
}
