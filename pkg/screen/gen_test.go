package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenDistortion(t *testing.T) {
	img, err := GenDistortion(4, 3)
	assert.NoError(t, err)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Len(t, img.Pix, 4*3*3)
}

func TestGenDistortion_Neg(t *testing.T) {
	_, err := GenDistortion(0, 3)
	assert.Error(t, err)
	_, err = GenDistortion(4, -1)
	assert.Error(t, err)
}

func TestDeriveDistortion_Deterministic(t *testing.T) {
	d, err := NewDeriver(SetIterations(1 << 4))
	assert.NoError(t, err)

	first, err := d.DeriveDistortion([]byte("a test passphrase"), 8, 4)
	assert.NoError(t, err)
	second, err := d.DeriveDistortion([]byte("a test passphrase"), 8, 4)
	assert.NoError(t, err)
	assert.Equal(t, first.Pix, second.Pix)

	other, err := d.DeriveDistortion([]byte("a different passphrase"), 8, 4)
	assert.NoError(t, err)
	assert.NotEqual(t, first.Pix, other.Pix)

	// Dimensions salt the derivation, so a resized raster is unrelated.
	resized, err := d.DeriveDistortion([]byte("a test passphrase"), 4, 8)
	assert.NoError(t, err)
	assert.NotEqual(t, first.Pix[:len(resized.Pix)], resized.Pix)
}

func TestDeriveDistortion_Neg(t *testing.T) {
	d, err := NewDeriver(SetIterations(1 << 4))
	assert.NoError(t, err)
	_, err = d.DeriveDistortion(nil, 4, 4)
	assert.ErrorIs(t, err, ErrEmptyPassphrase)
	_, err = d.DeriveDistortion([]byte("pass"), 0, 4)
	assert.Error(t, err)
}

func TestNewDeriver_Opts(t *testing.T) {
	_, err := NewDeriver(SetIterations(3))
	assert.Error(t, err)
	_, err = NewDeriver(SetRelativeBlockSize(0))
	assert.Error(t, err)
	_, err = NewDeriver(SetCPUCost(0))
	assert.Error(t, err)

	d, err := NewDeriver(
		SetIterations(1<<4),
		SetRelativeBlockSize(DefaultRelBlockSize),
		SetCPUCost(DefaultCpuCost),
	)
	assert.NoError(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, 1<<4, d.iterations)
}
