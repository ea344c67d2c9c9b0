package raster

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/bmp"
)

// DecodeFile reads a BMP file and flattens it to the padding-free RGB layout.
// Any color model in the container is converted to 8-bit RGB.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	src, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode raster %s: %w", path, err)
	}
	return FromImage(src), nil
}

// FromImage flattens any image.Image to the padding-free RGB layout.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	img := &Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	img.Pix = make([]byte, img.Width*img.Height*samplesPerPixel)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			img.Pix[i] = byte(r >> 8)
			img.Pix[i+1] = byte(g >> 8)
			img.Pix[i+2] = byte(b >> 8)
			i += samplesPerPixel
		}
	}
	return img
}

// ToImage expands the raster to an image.Image suitable for any stdlib or
// x/image encoder. The result is fully opaque.
func (img *Image) ToImage() image.Image {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	i := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: img.Pix[i],
				G: img.Pix[i+1],
				B: img.Pix[i+2],
				A: 0xff,
			})
			i += samplesPerPixel
		}
	}
	return out
}

// EncodeFile writes the raster to path as a 24-bit BMP.
func (img *Image) EncodeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raster %s: %w", path, err)
	}
	if err := bmp.Encode(f, img.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode raster %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close raster %s: %w", path, err)
	}
	return nil
}
