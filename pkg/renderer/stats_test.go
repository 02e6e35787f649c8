package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}

	tests := []struct {
		name     string
		pixels   []color.RGBA // 2x2, row major
		expected float64
	}{
		// 0.299 + 0.587 + 0.114 over four pixels
		{"primaries and black", []color.RGBA{red, green, blue, black}, 0.25},
		{"red only", []color.RGBA{red, red, red, red}, 0.299},
		{"green only", []color.RGBA{green, green, green, green}, 0.587},
		{"half red", []color.RGBA{red, black, red, black}, 0.1495},
		{"white", []color.RGBA{white, white, white, white}, 1},
		{"black", []color.RGBA{black, black, black, black}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 2, 2))
			for i, c := range tt.pixels {
				img.SetRGBA(i%2, i/2, c)
			}

			got := CalculateAverageLuminance(img)
			if math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("Expected average luminance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	if got := CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", got)
	}
}
