package renderer

import (
	"image"
	"io"

	"github.com/spakin/netpbm"
)

// EncodePPM writes img as a binary (P6) PPM with 8-bit channels
func EncodePPM(w io.Writer, img image.Image) error {
	return netpbm.Encode(w, img, &netpbm.EncodeOptions{
		Format:   netpbm.PPM,
		MaxValue: 255,
	})
}
