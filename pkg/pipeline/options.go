package pipeline

import (
	"errors"
	"path/filepath"
)

const (
	DefaultRotationBits = 3
	DefaultLogOffset    = 100
)

// Options names every artifact the pipeline touches and the two transform
// parameters. Paths follow the recorded artifact naming scheme by default.
type Options struct {
	OriginalPath   string // source raster
	DistortionPath string // raster XORed with the original
	MaskPath       string // additive mask raster; its pixel count sizes every log

	CombinedPath  string // original XOR distortion (P1)
	RotatedPath   string // combined, rotated right (P2)
	RecoveredPath string // round-tripped original (P3)
	DemoPath      string // gradient-filled demo raster

	RotatedLogPath  string // log generated from the rotated raster
	CombinedLogPath string // log generated from the combined raster

	RefRotatedLogPath  string // recorded reference for RotatedLogPath
	RefCombinedLogPath string // recorded reference for CombinedLogPath

	RotationBits int // cyclic bit rotation applied between combine and persist
	LogOffset    int // starting pixel index for log generation
}

type Option = func(*Options) error

// WithRotationBits overrides the rotation bit count.
func WithRotationBits(count int) Option {
	return func(o *Options) error {
		if count < 0 || count > 8 {
			return errors.New("rotation bit count must be in [0, 8]")
		}
		o.RotationBits = count
		return nil
	}
}

// WithLogOffset overrides the starting pixel index for log generation.
func WithLogOffset(offset int) Option {
	return func(o *Options) error {
		if offset < 0 {
			return errors.New("log offset cannot be negative")
		}
		o.LogOffset = offset
		return nil
	}
}

// WithInputs overrides the three input raster paths.
func WithInputs(original, distortion, mask string) Option {
	return func(o *Options) error {
		if original == "" || distortion == "" || mask == "" {
			return errors.New("input raster paths cannot be empty")
		}
		o.OriginalPath = original
		o.DistortionPath = distortion
		o.MaskPath = mask
		return nil
	}
}

// NewOptions builds Options rooted at dir with the recorded artifact names,
// applying zero or more overrides.
func NewOptions(dir string, opts ...Option) (Options, error) {
	join := func(name string) string {
		return filepath.Join(dir, name)
	}
	o := Options{
		OriginalPath:       join("I_O.bmp"),
		DistortionPath:     join("I_M.bmp"),
		MaskPath:           join("M.bmp"),
		CombinedPath:       join("P1.bmp"),
		RotatedPath:        join("P2.bmp"),
		RecoveredPath:      join("P3.bmp"),
		DemoPath:           join("I_D.bmp"),
		RotatedLogPath:     join("M1_generado.txt"),
		CombinedLogPath:    join("M2_generado.txt"),
		RefRotatedLogPath:  join("M1.txt"),
		RefCombinedLogPath: join("M2.txt"),
		RotationBits:       DefaultRotationBits,
		LogOffset:          DefaultLogOffset,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}
