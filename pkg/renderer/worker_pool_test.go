package renderer

import (
	"image"
	"strings"
	"testing"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

// panicIntegrator fails every sample
type panicIntegrator struct{}

func (panicIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	panic("broken material")
}

func TestDefaultNumWorkers(t *testing.T) {
	if n := DefaultNumWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}

func TestWorkerPool_RendersAllTasks(t *testing.T) {
	s := createTestScene(t)
	width, height := 8, 6
	rt := NewRaytracerWithIntegrator(s, &MockIntegrator{returnColor: core.NewVec3(0.2, 0.4, 0.6)}, width, height)

	tiles := NewTileGrid(width, height, 4, 1)
	pool := NewWorkerPool(rt, len(tiles), 1)
	pool.Start()
	defer pool.Stop()

	if pool.GetNumWorkers() != 1 {
		t.Errorf("Expected 1 worker, got %d", pool.GetNumWorkers())
	}

	pixelStats := newPixelStatsGrid(width, height)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, PassNumber: 1, TargetSamples: 2, TaskID: i, PixelStats: pixelStats})
	}

	seen := make(map[int]bool)
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if result.Error != nil {
			t.Fatalf("Unexpected error: %v", result.Error)
		}
		seen[result.TaskID] = true
	}
	if len(seen) != len(tiles) {
		t.Errorf("Expected %d distinct results, got %d", len(tiles), len(seen))
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pixelStats[y][x].SampleCount != 2 {
				t.Errorf("Pixel (%d,%d) has %d samples, expected 2", x, y, pixelStats[y][x].SampleCount)
			}
		}
	}
}

func TestWorkerPool_PanicBecomesError(t *testing.T) {
	s := createTestScene(t)
	rt := NewRaytracerWithIntegrator(s, panicIntegrator{}, 2, 2)

	pool := NewWorkerPool(rt, 1, 2)
	pool.Start()
	defer pool.Stop()

	tile := NewTile(3, image.Rect(0, 0, 2, 2), 1)
	pool.SubmitTask(TileTask{Tile: tile, TargetSamples: 1, PixelStats: newPixelStatsGrid(2, 2)})

	result, ok := pool.GetResult()
	if !ok {
		t.Fatal("Result queue closed early")
	}
	if result.Error == nil || !strings.Contains(result.Error.Error(), "tile 3") {
		t.Errorf("Expected error naming tile 3, got %v", result.Error)
	}
}

func TestWorkerPool_StopIsIdempotent(t *testing.T) {
	s := createTestScene(t)
	pool := NewWorkerPool(NewRaytracer(s, 1, 1), 1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	if _, ok := pool.GetResult(); ok {
		t.Error("Expected closed result queue after Stop")
	}
}
