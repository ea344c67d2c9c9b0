package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPattern(t *testing.T, width, height int) *Image {
	t.Helper()
	img, err := New(width, height)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}
	return img
}

func TestBMPRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.bmp")
	img := testPattern(t, 5, 3)

	require.NoError(t, img.EncodeFile(path))
	decoded, err := DecodeFile(path)
	assert.NoError(t, err)
	assert.True(t, img.Equal(decoded))
}

func TestDecodeFile_Missing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "absent.bmp"))
	assert.Error(t, err)
}

func TestDecodeFile_NotABMP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.bmp")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a bitmap"), 0644))
	_, err := DecodeFile(path)
	assert.Error(t, err)
}

func TestImageConversionRoundTrip(t *testing.T) {
	img := testPattern(t, 4, 4)
	assert.True(t, img.Equal(FromImage(img.ToImage())))
}
