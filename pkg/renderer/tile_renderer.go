package renderer

import (
	"image"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/integrator"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int                 // Unique tile identifier
	Bounds          image.Rectangle     // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int                 // Number of passes completed for this tile
	Sampler         *core.RandomSampler // Owned by whichever worker renders the tile
}

// NewTile creates a tile whose sampler is seeded from the render seed and tile ID
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height, 1)
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer runs the per-pixel sampling loop over a region of the image
type TileRenderer struct {
	scene         *scene.Scene
	integrator    integrator.Integrator
	width, height int
}

// NewTileRenderer creates a tile renderer for an image of the given size
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds tops up every pixel in bounds to targetSamples samples.
// Pixels are indexed pixelStats[y][x] with y = 0 at the top of the image.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samplesUsed := tr.samplePixel(x, y, &pixelStats[y][x], sampler, targetSamples)
			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// samplePixel traces jittered camera rays through pixel (x, y) until it holds targetSamples
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler, targetSamples int) int {
	initialSampleCount := ps.SampleCount
	row := tr.height - 1 - y

	for ps.SampleCount < targetSamples {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(tr.width)
		t := (float64(row) + jitter.Y) / float64(tr.height)

		ray := tr.scene.Camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
	}

	return ps.SampleCount - initialSampleCount
}
