/*
Package masklog implements the textual masking log artifact: a single bare
offset line followed by one "r g b" line per masked pixel. Each component is
the sum of a source sample and the corresponding mask sample, written without
clamping, so values range over [0, 510] even though both inputs are bytes.
*/
package masklog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/saylorsolutions/pixveil/pkg/raster"
)

var (
	ErrOutOfBounds = errors.New("masking range exceeds source buffer")
	ErrBadOffset   = errors.New("masking log has no parseable offset")
)

// Triplet is one masked pixel record. Components are wider than a byte
// because they carry unclamped sums of two byte-domain samples.
type Triplet struct {
	R, G, B int
}

// Build produces the masked triplets for a source raster at the given pixel
// offset. The mask raster's own pixel count determines how many triplets are
// produced. Bounds are validated before any sample is read.
func Build(source, mask *raster.Image, offset int) ([]Triplet, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrOutOfBounds, offset)
	}
	nPixels := mask.PixelCount()
	if (offset+nPixels)*3 > len(source.Pix) {
		return nil, fmt.Errorf("%w: offset %d + %d pixels exceeds %d samples",
			ErrOutOfBounds, offset, nPixels, len(source.Pix))
	}
	triplets := make([]Triplet, nPixels)
	for i := 0; i < nPixels; i++ {
		src := source.Pix[(offset+i)*3:]
		msk := mask.Pix[i*3:]
		triplets[i] = Triplet{
			R: int(src[0]) + int(msk[0]),
			G: int(src[1]) + int(msk[1]),
			B: int(src[2]) + int(msk[2]),
		}
	}
	return triplets, nil
}

// Write renders the log artifact: the bare offset on the first line, then one
// "r g b" line per triplet. Output is deterministic for identical inputs.
func Write(w io.Writer, offset int, triplets []Triplet) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", offset); err != nil {
		return err
	}
	for _, t := range triplets {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", t.R, t.G, t.B); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the log artifact to path.
func WriteFile(path string, offset int, triplets []Triplet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create masking log %s: %w", path, err)
	}
	if err := Write(f, offset, triplets); err != nil {
		_ = f.Close()
		return fmt.Errorf("write masking log %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close masking log %s: %w", path, err)
	}
	return nil
}

// Read parses a log artifact in a single streaming pass. The first
// whitespace-separated token is the offset; an unparseable offset fails the
// whole read. Triplets are then consumed until the first token that doesn't
// parse as an integer or until end of input. A trailing incomplete triplet is
// silently dropped to match the recorded artifacts in the wild.
func Read(src io.Reader) (offset int, triplets []Triplet, err error) {
	scanner := bufio.NewScanner(src)
	scanner.Split(bufio.ScanWords)

	next := func() (int, bool) {
		if !scanner.Scan() {
			return 0, false
		}
		v, convErr := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if convErr != nil {
			return 0, false
		}
		return v, true
	}

	offset, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return 0, nil, fmt.Errorf("%w: %w", ErrBadOffset, err)
		}
		return 0, nil, ErrBadOffset
	}
	for {
		r, ok := next()
		if !ok {
			break
		}
		g, ok := next()
		if !ok {
			break
		}
		b, ok := next()
		if !ok {
			break
		}
		triplets = append(triplets, Triplet{R: r, G: g, B: b})
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, fmt.Errorf("read masking log: %w", err)
	}
	return offset, triplets, nil
}

// ReadFile parses the log artifact at path.
func ReadFile(path string) (offset int, triplets []Triplet, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open masking log %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Read(f)
}
