package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/integrator"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

// Raytracer renders a preprocessed scene with a single integrator.
// It holds no per-render state, so workers can share one instance.
type Raytracer struct {
	scene  *scene.Scene
	width  int
	height int
	config scene.SamplingConfig
	tiles  *TileRenderer
}

// NewRaytracer creates a path tracing raytracer using the scene's sampling config
func NewRaytracer(s *scene.Scene, width, height int) *Raytracer {
	return NewRaytracerWithIntegrator(s, integrator.NewPathTracingIntegrator(s.SamplingConfig), width, height)
}

// NewRaytracerWithIntegrator creates a raytracer around a caller-supplied integrator
func NewRaytracerWithIntegrator(s *scene.Scene, integratorInst integrator.Integrator, width, height int) *Raytracer {
	return &Raytracer{
		scene:  s,
		width:  width,
		height: height,
		config: s.SamplingConfig,
		tiles:  NewTileRenderer(s, integratorInst, width, height),
	}
}

// RenderBounds renders the pixels in bounds into the shared pixel stats array
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	return rt.tiles.RenderTileBounds(bounds, pixelStats, sampler, targetSamples)
}

// RenderPass renders the whole image on the calling goroutine with the configured sample count
func (rt *Raytracer) RenderPass(sampler core.Sampler) (*image.RGBA, RenderStats) {
	pixelStats := newPixelStatsGrid(rt.width, rt.height)
	stats := rt.RenderBounds(image.Rect(0, 0, rt.width, rt.height), pixelStats, sampler, rt.samplesPerPixel())
	return pixelStatsToImage(pixelStats, rt.width, rt.height), stats
}

func (rt *Raytracer) samplesPerPixel() int {
	return max(1, rt.config.SamplesPerPixel)
}

// pixelStatsToImage converts averaged pixel colors to an 8-bit image
func pixelStatsToImage(pixelStats [][]PixelStats, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, Vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// Vec3ToColor converts a linear color to RGBA with gamma 2 correction.
// Components are clamped to [0, 1] first; NaN maps to 0.
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	corrected := dropNaN(colorVec).Clamp(0, 1).GammaCorrect(2)
	return color.RGBA{
		R: uint8(255.99 * corrected.X),
		G: uint8(255.99 * corrected.Y),
		B: uint8(255.99 * corrected.Z),
		A: 255,
	}
}

// dropNaN zeroes NaN components, which Clamp would otherwise pass through
func dropNaN(v core.Vec3) core.Vec3 {
	if math.IsNaN(v.X) {
		v.X = 0
	}
	if math.IsNaN(v.Y) {
		v.Y = 0
	}
	if math.IsNaN(v.Z) {
		v.Z = 0
	}
	return v
}
