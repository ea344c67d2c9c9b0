package screen

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/saylorsolutions/pixveil/pkg/raster"
)

var (
	ErrLengthMismatch    = errors.New("buffers must have equal length")
	ErrDimensionMismatch = errors.New("rasters must have equal dimensions")
)

// Combine XORs two equal-length buffers into a freshly allocated result.
// Combine is self-inverse: Combine(Combine(a, b), b) == a.
func Combine(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	result := make([]byte, len(a))
	for i := range a {
		result[i] = a[i] ^ b[i]
	}
	return result, nil
}

// CombineImages XORs the samples of two rasters of identical dimensions.
// Dimensions are checked before any sample is touched.
func CombineImages(a, b *raster.Image) (*raster.Image, error) {
	if !a.SameSize(b) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.Width, a.Height, b.Width, b.Height)
	}
	pix, err := Combine(a.Pix, b.Pix)
	if err != nil {
		return nil, err
	}
	return &raster.Image{Pix: pix, Width: a.Width, Height: a.Height}, nil
}

// RotateRight cyclically rotates every byte of buf right by count bits,
// returning a new buffer. The count is reduced mod 8, so 0 and 8 are the
// identity rather than an undefined shift.
func RotateRight(buf []byte, count int) []byte {
	return rotate(buf, -count)
}

// RotateLeft cyclically rotates every byte of buf left by count bits,
// returning a new buffer. RotateLeft(RotateRight(buf, k), k) == buf for any k.
func RotateLeft(buf []byte, count int) []byte {
	return rotate(buf, count)
}

func rotate(buf []byte, count int) []byte {
	// bits.RotateLeft8 interprets a negative count as a right rotation and
	// reduces it mod 8 internally.
	result := make([]byte, len(buf))
	for i, b := range buf {
		result[i] = bits.RotateLeft8(b, count)
	}
	return result
}

// RotateImageRight rotates every sample of a raster right by count bits.
func RotateImageRight(img *raster.Image, count int) *raster.Image {
	return &raster.Image{Pix: RotateRight(img.Pix, count), Width: img.Width, Height: img.Height}
}

// RotateImageLeft rotates every sample of a raster left by count bits.
func RotateImageLeft(img *raster.Image, count int) *raster.Image {
	return &raster.Image{Pix: RotateLeft(img.Pix, count), Width: img.Width, Height: img.Height}
}
