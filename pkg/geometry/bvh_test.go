package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jayden-chan/rtiow/pkg/core"
)

func randomSpheres(n int, random *rand.Rand) []Shape {
	shapes := make([]Shape, n)
	for i := range shapes {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		shapes[i] = NewSphere(center, 0.2+random.Float64(), testMaterial)
	}
	return shapes
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	shapes := randomSpheres(200, random)
	shapes = append(shapes,
		NewRectangle(PlaneXZ, -10, 10, -10, 10, -12, false, testMaterial),
		NewBlock(core.NewVec3(2, 2, 2), core.NewVec3(4, 5, 6), testMaterial),
	)

	bvh := NewBVH(shapes, 0, 1, core.NewRandomSampler(random))
	list := NewHittableList(shapes...)

	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(random.Float64()*40-20, random.Float64()*40-20, random.Float64()*40-20)
		direction := core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
		ray := core.NewRay(origin, direction)

		bvhHit, bvhOK := bvh.Hit(ray, 0.001, math.Inf(1))
		listHit, listOK := list.Hit(ray, 0.001, math.Inf(1))

		if bvhOK != listOK {
			t.Fatalf("Ray %v: BVH hit=%v, linear hit=%v", ray, bvhOK, listOK)
		}
		if bvhOK && math.Abs(bvhHit.T-listHit.T) > 1e-9 {
			t.Fatalf("Ray %v: BVH t=%f, linear t=%f", ray, bvhHit.T, listHit.T)
		}
	}
}

func TestBVH_SingleShapeUnwrapped(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial)
	root := NewBVH([]Shape{sphere}, 0, 1, core.NewSeededSampler(1))
	if root != Shape(sphere) {
		t.Errorf("Expected the single shape itself, got %T", root)
	}
}

func TestBVH_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for empty shape list")
		}
	}()
	NewBVH(nil, 0, 1, core.NewSeededSampler(1))
}

func TestBVH_UnboundedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unbounded shape")
		}
	}()
	shapes := []Shape{NewHittableList(), NewSphere(core.Vec3{}, 1, testMaterial)}
	NewBVH(shapes, 0, 1, core.NewSeededSampler(1))
}

func TestBVH_Structure(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	shapes := randomSpheres(16, random)

	root := NewBVH(shapes, 0, 1, core.NewRandomSampler(random))
	stats := Stats(root)

	if stats.LeafShapes != 16 {
		t.Errorf("Expected 16 leaf shapes, got %d", stats.LeafShapes)
	}
	if stats.TotalNodes != 15 {
		t.Errorf("Expected 15 internal nodes for 16 shapes, got %d", stats.TotalNodes)
	}
	if stats.MaxDepth != 4 {
		t.Errorf("Expected depth 4 for a balanced split of 16, got %d", stats.MaxDepth)
	}

	// The root box encloses every input
	box, _ := root.BoundingBox(0, 1)
	for _, shape := range shapes {
		shapeBox, _ := shape.BoundingBox(0, 1)
		if !box.Contains(shapeBox) {
			t.Fatalf("Root box %v does not contain %v", box, shapeBox)
		}
	}

	// The input slice keeps its order
	for i, shape := range randomSpheres(16, rand.New(rand.NewSource(7))) {
		if shape.(*Sphere).Center != shapes[i].(*Sphere).Center {
			t.Fatal("NewBVH must not reorder the caller's slice")
		}
	}
}

func TestBVH_MovingSphereBounds(t *testing.T) {
	shapes := []Shape{
		NewMovingSphere(core.NewVec3(0, 0, -1), core.NewVec3(0, 2, -1), 0, 1, 0.5, testMaterial),
		NewSphere(core.NewVec3(5, 0, -1), 0.5, testMaterial),
	}
	root := NewBVH(shapes, 0, 1, core.NewSeededSampler(3))

	// Only reachable late in the shutter interval
	ray := core.NewRayAtTime(core.NewVec3(0, 2, 0), core.NewVec3(0, 0, -1), 1)
	if _, ok := root.Hit(ray, 0.001, math.Inf(1)); !ok {
		t.Error("Expected hit on the moved sphere")
	}
}
