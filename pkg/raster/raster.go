package raster

import (
	"bytes"
	"fmt"
)

const samplesPerPixel = 3

// Image is a fixed-layout 8-bit RGB raster.
// Pix holds Width*Height*3 samples in row-major order with no row padding,
// three consecutive samples (R, G, B) per pixel.
type Image struct {
	Pix    []byte
	Width  int
	Height int
}

// New allocates a zeroed raster with the given dimensions.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", width, height)
	}
	return &Image{
		Pix:    make([]byte, width*height*samplesPerPixel),
		Width:  width,
		Height: height,
	}, nil
}

// PixelCount returns the number of pixels in the raster.
func (img *Image) PixelCount() int {
	return img.Width * img.Height
}

// Clone returns a deep copy of the raster.
func (img *Image) Clone() *Image {
	pix := make([]byte, len(img.Pix))
	copy(pix, img.Pix)
	return &Image{Pix: pix, Width: img.Width, Height: img.Height}
}

// SameSize reports whether two rasters have identical dimensions.
func (img *Image) SameSize(other *Image) bool {
	return img.Width == other.Width && img.Height == other.Height
}

// Equal reports whether two rasters have identical dimensions and identical
// sample data. Comparison is byte-exact with no tolerance.
func (img *Image) Equal(other *Image) bool {
	if other == nil {
		return false
	}
	return img.SameSize(other) && bytes.Equal(img.Pix, other.Pix)
}
