package raster

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	bin "github.com/saylorsolutions/binmap"
)

const rawMagic uint16 = 0x7078 // "px"

var (
	ErrInvalidRawHeader = errors.New("invalid raw raster header")
)

// rawHeader is the fixed-size prefix of the .rgb container: a magic marker
// followed by the raster dimensions. The sample payload follows immediately,
// with the same in-memory layout as Image.Pix.
type rawHeader struct {
	magic  uint16
	width  uint32
	height uint32
}

func (h *rawHeader) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&h.magic),
		bin.Int(&h.width),
		bin.Int(&h.height),
	)
}

// WriteRaw writes the raster to w in the raw .rgb container format.
func (img *Image) WriteRaw(w io.Writer) error {
	header := rawHeader{
		magic:  rawMagic,
		width:  uint32(img.Width),
		height: uint32(img.Height),
	}
	if err := header.mapper().Write(w, binary.BigEndian); err != nil {
		return fmt.Errorf("write raw header: %w", err)
	}
	if _, err := w.Write(img.Pix); err != nil {
		return fmt.Errorf("write raw samples: %w", err)
	}
	return nil
}

// ReadRaw reads a raster from r in the raw .rgb container format.
func ReadRaw(r io.Reader) (*Image, error) {
	var header rawHeader
	if err := header.mapper().Read(r, binary.BigEndian); err != nil {
		return nil, fmt.Errorf("read raw header: %w", err)
	}
	if header.magic != rawMagic {
		return nil, fmt.Errorf("%w: bad magic %#04x", ErrInvalidRawHeader, header.magic)
	}
	if header.width == 0 || header.height == 0 {
		return nil, fmt.Errorf("%w: zero dimension %dx%d", ErrInvalidRawHeader, header.width, header.height)
	}
	img, err := New(int(header.width), int(header.height))
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, img.Pix); err != nil {
		return nil, fmt.Errorf("read raw samples: %w", err)
	}
	return img, nil
}

// WriteRawFile writes the raster to path in the raw .rgb container format.
func (img *Image) WriteRawFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raster %s: %w", path, err)
	}
	if err := img.WriteRaw(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadRawFile reads a raster from path in the raw .rgb container format.
func ReadRawFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadRaw(f)
}
