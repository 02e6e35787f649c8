package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/jayden-chan/rtiow/pkg/loaders"
	"github.com/jayden-chan/rtiow/pkg/renderer"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

func main() {
	sceneName := flag.String("scene", "default", "Built-in scene ("+strings.Join(scene.BuiltInIDs(), ", ")+"), a scene file name in -scenes, or a path to a .json file")
	scenesDir := flag.String("scenes", "scenes", "Directory searched for JSON scene files")
	width := flag.Int("width", 0, "Image width (0 = scene default)")
	height := flag.Int("height", 0, "Image height (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	passes := flag.Int("passes", 1, "Number of progressive passes")
	tileSize := flag.Int("tile", 64, "Tile size in pixels")
	workers := flag.Int("workers", 0, "Number of render workers (0 = physical core count)")
	seed := flag.Int64("seed", 42, "Random seed for the per-tile samplers")
	format := flag.String("format", "png", "Output format: png or ppm")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Monte Carlo Path Tracer")
		fmt.Println("Usage: rtiow [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
		return
	}

	if *format != "png" && *format != "ppm" {
		log.Fatalf("Unknown output format %q (expected png or ppm)", *format)
	}

	logSystemInfo()

	s, err := createScene(*sceneName, *scenesDir)
	if err != nil {
		log.Fatalf("Error loading scene: %v", err)
	}
	applyOverrides(s, *width, *height, *samples, *depth)

	if err := s.Preprocess(); err != nil {
		log.Fatalf("Error preparing scene: %v", err)
	}
	log.Printf("Scene %q: %d primitives, %d lights, %dx%d at %d spp",
		*sceneName, s.GetPrimitiveCount(), len(s.Lights),
		s.SamplingConfig.Width, s.SamplingConfig.Height, s.SamplingConfig.SamplesPerPixel)

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	config.MaxPasses = *passes
	config.TileSize = *tileSize
	config.NumWorkers = *workers
	config.Seed = *seed

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	img, stats, err := renderer.RenderImage(ctx, s, config, renderer.NewDefaultLogger())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Fatal("Render interrupted")
		}
		log.Fatalf("Render failed: %v", err)
	}
	log.Printf("Render completed in %v", time.Since(startTime))
	log.Printf("Samples per pixel: %.1f (range %d - %d)", stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	outputDir := createOutputDir(*sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, *format))
	if err := writeImage(filename, *format, img); err != nil {
		log.Fatalf("Error saving image: %v", err)
	}

	log.Printf("Render saved as %s", filename)
}

// createScene resolves a built-in scene id, a scene file name in scenesDir, or a .json path
func createScene(name, scenesDir string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("no scene given")
	}

	if strings.HasSuffix(name, ".json") {
		return loaders.LoadSceneJSON(name)
	}

	if s, err := scene.NewBuiltIn(name); err == nil {
		return s, nil
	}

	path := filepath.Join(scenesDir, name+".json")
	if _, err := os.Stat(path); err == nil {
		return loaders.LoadSceneJSON(path)
	}

	return nil, fmt.Errorf("unknown scene %q: not built in (%s) and no %s",
		name, strings.Join(scene.BuiltInIDs(), ", "), path)
}

// applyOverrides replaces scene render settings with positive command line values
func applyOverrides(s *scene.Scene, width, height, samples, depth int) {
	if width > 0 || height > 0 {
		w, h := s.SamplingConfig.Width, s.SamplingConfig.Height
		if width > 0 {
			w = width
		}
		if height > 0 {
			h = height
		}
		s.SetImageSize(w, h)
	}
	if samples > 0 {
		s.SamplingConfig.SamplesPerPixel = samples
	}
	if depth > 0 {
		s.SamplingConfig.MaxDepth = depth
	}
}

// createOutputDir names the output directory after the scene, dropping any path and extension
func createOutputDir(sceneName string) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	return filepath.Join("output", base)
}

func writeImage(filename, format string, img image.Image) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	switch format {
	case "ppm":
		return renderer.EncodePPM(file, img)
	default:
		return png.Encode(file, img)
	}
}

// logSystemInfo reports the host CPU and memory; failures only cost the log line
func logSystemInfo() {
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		log.Printf("CPU: %s (%d physical cores, %d render workers by default)",
			strings.TrimSpace(info[0].ModelName), physicalCores(), renderer.DefaultNumWorkers())
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		log.Printf("Memory: %.1f GiB total, %.0f%% used", float64(vm.Total)/(1<<30), vm.UsedPercent)
	}
}

func physicalCores() int {
	cores, err := cpu.Counts(false)
	if err != nil {
		return 0
	}
	return cores
}
