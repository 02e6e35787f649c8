package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

// testLogger implements core.Logger for testing by discarding all output
type testLogger struct{}

// Ensure testLogger implements core.Logger
var _ core.Logger = (*testLogger)(nil)

func (tl *testLogger) Printf(format string, args ...interface{}) {}

// recordingLogger keeps formatted log lines for assertions
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (rl *recordingLogger) Printf(format string, args ...interface{}) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.lines = append(rl.lines, fmt.Sprintf(format, args...))
}

func (rl *recordingLogger) find(prefix string) (string, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for _, line := range rl.lines {
		if strings.HasPrefix(line, prefix) {
			return line, true
		}
	}
	return "", false
}

func TestRenderProgressive_TwoSpheres(t *testing.T) {
	width, height := 40, 40
	s := createTwoSpheresScene(t, width, height)

	config := DefaultProgressiveConfig()
	config.TileSize = 16
	config.MaxSamplesPerPixel = 4
	config.MaxPasses = 2
	config.NumWorkers = 3

	logger := &recordingLogger{}
	pr := NewProgressiveRaytracer(s, width, height, config, logger)
	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	tileEvents := 0
	done := make(chan struct{})
	go func() {
		for range tileChan {
			tileEvents++
		}
		close(done)
	}()

	var passes []PassResult
	for result := range passChan {
		passes = append(passes, result)
	}
	<-done
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(passes) != 2 {
		t.Fatalf("Expected 2 passes, got %d", len(passes))
	}
	if passes[0].Stats.MaxSamples != 1 || passes[0].IsLast {
		t.Errorf("First pass should be a one-sample preview, got %+v", passes[0].Stats)
	}

	last := passes[1]
	if !last.IsLast {
		t.Error("Expected final pass to be marked last")
	}
	if last.Stats.AverageSamples != 4 || last.Stats.MinSamples != 4 {
		t.Errorf("Expected every pixel to hold 4 samples, got %+v", last.Stats)
	}

	// 40x40 with 16px tiles is a 3x3 grid, reported once per pass
	if tileEvents != 18 {
		t.Errorf("Expected 18 tile events, got %d", tileEvents)
	}

	img := last.Image
	assertTwoSpheresImage(t, s, img.RGBAAt, width, height)

	line, ok := logger.find("Pass 2 completed")
	if !ok {
		t.Fatalf("Expected a completion log line for pass 2, got %v", logger.lines)
	}
	if want := fmt.Sprintf("luminance %.3f", CalculateAverageLuminance(img)); !strings.Contains(line, want) {
		t.Errorf("Expected %q in pass log %q", want, line)
	}
}

func TestRenderProgressive_DeterministicAcrossWorkerCounts(t *testing.T) {
	width, height := 24, 24
	render := func(workers int) []uint8 {
		s := createTwoSpheresScene(t, width, height)
		config := DefaultProgressiveConfig()
		config.TileSize = 8
		config.MaxSamplesPerPixel = 3
		config.MaxPasses = 2
		config.NumWorkers = workers

		img, _, err := RenderImage(context.Background(), s, config, &testLogger{})
		if err != nil {
			t.Fatalf("RenderImage failed: %v", err)
		}
		return img.Pix
	}

	single := render(1)
	parallel := render(4)
	for i := range single {
		if single[i] != parallel[i] {
			t.Fatalf("Images differ at byte %d: %d vs %d", i, single[i], parallel[i])
		}
	}
}

func TestRenderProgressive_Cancelled(t *testing.T) {
	s := createTwoSpheresScene(t, 8, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr := NewProgressiveRaytracer(s, 8, 8, DefaultProgressiveConfig(), &testLogger{})
	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})

	for range passChan {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderImage_PreprocessesScene(t *testing.T) {
	s := scene.NewTwoSpheresScene()
	s.SetImageSize(6, 4)
	s.SamplingConfig.SamplesPerPixel = 1

	config := DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = 1
	img, stats, err := RenderImage(context.Background(), s, config, nil)
	if err != nil {
		t.Fatalf("RenderImage failed: %v", err)
	}
	if s.Root() == nil {
		t.Error("Expected RenderImage to build the scene hierarchy")
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 6x4 image, got %v", img.Bounds())
	}
	if stats.TotalPixels != 24 {
		t.Errorf("Expected 24 pixels, got %d", stats.TotalPixels)
	}
}

func TestRenderImage_EmptyScene(t *testing.T) {
	s := scene.NewScene(geometry.DefaultCameraConfig(), nil)

	_, _, err := RenderImage(context.Background(), s, DefaultProgressiveConfig(), nil)
	if !errors.Is(err, scene.ErrEmptyScene) {
		t.Errorf("Expected ErrEmptyScene, got %v", err)
	}
}
