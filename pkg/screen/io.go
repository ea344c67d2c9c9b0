package screen

import (
	"errors"
	"fmt"
	"io"
)

// keyScreen XORs a stream against a repeating key, typically a raster's
// sample buffer. The key position survives across calls so a stream can be
// screened in arbitrarily sized chunks.
type keyScreen struct {
	key  []byte
	init int
	cur  int
}

func newKeyScreen(key []byte, offset ...int) (*keyScreen, error) {
	if len(key) == 0 {
		return nil, errors.New("cannot use an empty key")
	}
	s := &keyScreen{
		key: key,
	}
	if len(offset) > 0 {
		if offset[0] < 0 || offset[0] >= len(key) {
			return nil, fmt.Errorf("offset %d out of range for key of %d samples", offset[0], len(key))
		}
		s.init = offset[0]
		s.cur = s.init
	}
	return s, nil
}

func (s *keyScreen) apply(buf []byte) {
	for i := range buf {
		buf[i] ^= s.key[s.cur]
		s.cur = (s.cur + 1) % len(s.key)
	}
}

func (s *keyScreen) reset() {
	s.cur = s.init
}

// Reader extends io.Reader, but also provides a way to reuse a key with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and reset the offset position within the key to its initial value.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a key with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and reset the offset position within the key to its initial value.
	Reset(target io.Writer)
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	scr    *keyScreen
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	r.scr.apply(out[:n])
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.scr.reset()
}

// NewReader constructs a Reader that XORs all bytes read against the
// repeating key, starting at offset. Passing a raster's sample buffer as the
// key makes this the streaming form of CombineImages.
func NewReader(r io.Reader, key []byte, offset ...int) (Reader, error) {
	scr, err := newKeyScreen(key, offset...)
	if err != nil {
		return nil, err
	}
	return &reader{
		source: r,
		scr:    scr,
	}, nil
}

var _ Writer = (*writer)(nil)

type writer struct {
	target  io.Writer
	scr     *keyScreen
	scratch []byte
}

// NewWriter constructs a Writer that XORs all bytes written against the
// repeating key, starting at offset.
func NewWriter(target io.Writer, key []byte, offset ...int) (Writer, error) {
	scr, err := newKeyScreen(key, offset...)
	if err != nil {
		return nil, err
	}
	return &writer{
		target: target,
		scr:    scr,
	}, nil
}

func (w *writer) Write(in []byte) (n int, err error) {
	// Screen into a reused scratch buffer so the caller's slice is untouched.
	if cap(w.scratch) < len(in) {
		w.scratch = make([]byte, len(in))
	}
	w.scratch = w.scratch[:len(in)]
	copy(w.scratch, in)
	w.scr.apply(w.scratch)
	return w.target.Write(w.scratch)
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.scr.reset()
}
