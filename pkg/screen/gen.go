package screen

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/scrypt"

	"github.com/saylorsolutions/pixveil/pkg/raster"
)

const (
	DefaultIterations   = 1 << 15
	DefaultRelBlockSize = 8
	DefaultCpuCost      = 1

	streamKeySize = chacha20.KeySize
)

var (
	ErrEmptyPassphrase = errors.New("cannot use an empty passphrase")
)

// GenDistortion generates a distortion raster of the given dimensions from the
// OS entropy pool. A distortion generated this way cannot be reproduced, so it
// must be persisted alongside the obfuscated artifacts.
func GenDistortion(width, height int) (*raster.Image, error) {
	img, err := raster.New(width, height)
	if err != nil {
		return nil, err
	}
	if _, err := rand.Read(img.Pix); err != nil {
		return nil, fmt.Errorf("failed to read random samples: %w", err)
	}
	return img, nil
}

// Deriver derives reproducible distortion rasters from a passphrase.
type Deriver struct {
	iterations        int
	relativeBlockSize int
	cpuCost           int
}

type DeriverOpt = func(*Deriver) error

// SetIterations overrides the scrypt iteration count. The count must be a
// power of two greater than 1.
func SetIterations(iterations int) DeriverOpt {
	return func(d *Deriver) error {
		if iterations <= 1 || iterations&(iterations-1) != 0 {
			return errors.New("iterations must be a power of two greater than 1")
		}
		d.iterations = iterations
		return nil
	}
}

// SetRelativeBlockSize overrides the scrypt block size parameter.
func SetRelativeBlockSize(size int) DeriverOpt {
	return func(d *Deriver) error {
		if size < 1 {
			return errors.New("relative block size must be at least 1")
		}
		d.relativeBlockSize = size
		return nil
	}
}

// SetCPUCost overrides the scrypt parallelism parameter.
func SetCPUCost(cost int) DeriverOpt {
	return func(d *Deriver) error {
		if cost < 1 {
			return errors.New("cpu cost must be at least 1")
		}
		d.cpuCost = cost
		return nil
	}
}

// NewDeriver creates a Deriver using the options provided as zero or more DeriverOpt.
func NewDeriver(opts ...DeriverOpt) (*Deriver, error) {
	d := &Deriver{
		iterations:        DefaultIterations,
		relativeBlockSize: DefaultRelBlockSize,
		cpuCost:           DefaultCpuCost,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// DeriveDistortion derives a distortion raster from a passphrase. The same
// passphrase, dimensions, and Deriver parameters always produce the same
// raster, so the distortion does not need to be transmitted to recover an
// obfuscated image. The dimensions double as the derivation salt: the same
// passphrase over different raster sizes yields unrelated sample streams.
func (d *Deriver) DeriveDistortion(passphrase []byte, width, height int) (*raster.Image, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	img, err := raster.New(width, height)
	if err != nil {
		return nil, err
	}
	salt := []byte(fmt.Sprintf("pixveil:%dx%d", width, height))
	key, err := scrypt.Key(passphrase, salt, d.iterations, d.relativeBlockSize, d.cpuCost, streamKeySize)
	if err != nil {
		return nil, fmt.Errorf("derive stream key: %w", err)
	}
	stream, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("init sample stream: %w", err)
	}
	stream.XORKeyStream(img.Pix, img.Pix)
	return img, nil
}
