package pipeline

import (
	"bufio"
	"fmt"
	"os"

	"github.com/saylorsolutions/pixveil/pkg/raster"
)

// ImagesEqualFiles decodes both rasters and compares them byte-exact,
// dimensions included. There is no tolerance: a single differing sample makes
// the rasters unequal.
func ImagesEqualFiles(pathA, pathB string) (bool, error) {
	a, err := raster.DecodeFile(pathA)
	if err != nil {
		return false, err
	}
	b, err := raster.DecodeFile(pathB)
	if err != nil {
		return false, err
	}
	return a.Equal(b), nil
}

// LogsEqualFiles compares two masking log artifacts line by line. The logs
// are equal only when every line matches and both end at the same line; one
// artifact ending before the other makes them unequal. The comparison is
// textual, independent of how a parse would interpret the content.
func LogsEqualFiles(pathA, pathB string) (bool, error) {
	fa, err := os.Open(pathA)
	if err != nil {
		return false, fmt.Errorf("open log %s: %w", pathA, err)
	}
	defer func() {
		_ = fa.Close()
	}()
	fb, err := os.Open(pathB)
	if err != nil {
		return false, fmt.Errorf("open log %s: %w", pathB, err)
	}
	defer func() {
		_ = fb.Close()
	}()

	sa := bufio.NewScanner(fa)
	sb := bufio.NewScanner(fb)
	for {
		moreA := sa.Scan()
		moreB := sb.Scan()
		if moreA != moreB {
			return false, nil
		}
		if !moreA {
			break
		}
		if sa.Text() != sb.Text() {
			return false, nil
		}
	}
	if err := sa.Err(); err != nil {
		return false, fmt.Errorf("read log %s: %w", pathA, err)
	}
	if err := sb.Err(); err != nil {
		return false, fmt.Errorf("read log %s: %w", pathB, err)
	}
	return true, nil
}
