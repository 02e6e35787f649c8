package scene

import (
	"errors"
	"fmt"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/material"
	"github.com/jayden-chan/rtiow/pkg/pdf"
)

// ErrEmptyScene is returned by Preprocess when a scene has no objects
var ErrEmptyScene = errors.New("scene has no objects")

// Scene contains all the elements needed for rendering.
// It is built once, then shared read-only by all render workers.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene
	Lights         []geometry.Light // Shapes sampled directly by the integrator
	Background     Background       // Radiance for rays that escape
	SamplingConfig SamplingConfig
	BVHSeed        int64 // Seeds the BVH split-axis choice

	root        geometry.Shape
	lightTarget pdf.Target
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	TMin            float64 // Near-plane epsilon for secondary rays
}

// DefaultSamplingConfig returns the standard render settings
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TMin:            0.005,
	}
}

// NewScene creates an empty scene with the given camera and background
func NewScene(cameraConfig geometry.CameraConfig, background Background) *Scene {
	s := &Scene{
		CameraConfig:   cameraConfig,
		Background:     background,
		SamplingConfig: DefaultSamplingConfig(),
		Shapes:         make([]geometry.Shape, 0),
		Lights:         make([]geometry.Light, 0),
	}
	s.SetImageSize(s.SamplingConfig.Width, s.SamplingConfig.Height)
	return s
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLight appends a shape that is both rendered and sampled as a light
func (s *Scene) AddLight(light geometry.Light) {
	s.Shapes = append(s.Shapes, light)
	s.Lights = append(s.Lights, light)
}

// AddRectangleLight adds a one-sided rectangular area light
func (s *Scene) AddRectangleLight(plane geometry.Plane, a0, a1, b0, b1, k float64, flip bool, emission core.Vec3) *geometry.Rectangle {
	light := geometry.NewRectangle(plane, a0, a1, b0, b1, k, flip, material.NewDiffuseLight(emission))
	s.AddLight(light)
	return light
}

// SetImageSize updates the output resolution and rebuilds the camera for the new aspect ratio
func (s *Scene) SetImageSize(width, height int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	if width > 0 && height > 0 {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
	}
	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// Preprocess builds the acceleration structure and the light sampling target
func (s *Scene) Preprocess() error {
	if len(s.Shapes) == 0 {
		return ErrEmptyScene
	}
	if s.Camera == nil {
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
	if s.Background == nil {
		s.Background = NewSolidBackground(core.Vec3{})
	}

	for i, shape := range s.Shapes {
		if _, ok := shape.BoundingBox(s.CameraConfig.Time0, s.CameraConfig.Time1); !ok {
			return fmt.Errorf("object %d (%T) has no bounding box", i, shape)
		}
	}

	s.root = geometry.NewBVH(s.Shapes, s.CameraConfig.Time0, s.CameraConfig.Time1, core.NewSeededSampler(s.BVHSeed))

	switch len(s.Lights) {
	case 0:
		s.lightTarget = nil
	case 1:
		s.lightTarget = s.Lights[0]
	default:
		s.lightTarget = geometry.NewLightList(s.Lights...)
	}

	return nil
}

// Hit is the single intersection entry point for the integrator
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if s.root == nil {
		return nil, false
	}
	return s.root.Hit(ray, tMin, tMax)
}

// Root returns the hierarchy built by Preprocess
func (s *Scene) Root() geometry.Shape {
	return s.root
}

// LightTarget returns the shape the integrator samples toward, nil when the scene has no lights
func (s *Scene) LightTarget() pdf.Target {
	return s.lightTarget
}

// GetPrimitiveCount returns the number of primitives, counting each block face
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += countPrimitives(shape)
	}
	return count
}

func countPrimitives(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.Block:
		return 6
	case *geometry.Translate:
		return countPrimitives(obj.Object)
	case *geometry.Rotate:
		return countPrimitives(obj.Object)
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects {
			count += countPrimitives(child)
		}
		return count
	case *geometry.BVHNode:
		return countPrimitives(obj.Left) + countPrimitives(obj.Right)
	default:
		return 1
	}
}
