// Package image provides read-only access to a flat firmware image.
package image

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

var (
	// ErrOutOfBounds is returned for reads that do not lie completely inside the image.
	ErrOutOfBounds = errors.New("read out of image bounds")
	// ErrClosed is returned for reads after the image has been released.
	ErrClosed = errors.New("image is closed")
)

// source is the backing storage of an image.
type source interface {
	io.ReaderAt
	io.Closer
	Len() int
}

// Image is a memory mapped binary file. Byte N of the file is address N.
type Image struct {
	name   string
	size   int
	source source
}

// Load maps the given file read-only into memory. The caller has to release
// the image using Close once decoding is finished.
func Load(path string) (*Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapping file '%s': %w", path, err)
	}
	return &Image{
		name:   path,
		size:   reader.Len(),
		source: reader,
	}, nil
}

// New returns an image backed by the given buffer.
func New(name string, data []byte) *Image {
	return &Image{
		name:   name,
		size:   len(data),
		source: &buffer{data: data},
	}
}

// Name returns the name of the image, the file path for loaded images.
func (i *Image) Name() string {
	return i.name
}

// Len returns the size of the image in bytes.
func (i *Image) Len() int {
	return i.size
}

// Read returns count bytes starting at offset. The returned slice is a copy
// and can be retained by the caller.
func (i *Image) Read(offset, count int) ([]byte, error) {
	if i.source == nil {
		return nil, ErrClosed
	}
	if offset < 0 || count < 0 || offset > i.size || count > i.size-offset {
		return nil, fmt.Errorf("%w: offset %05x count %d size %05x", ErrOutOfBounds, offset, count, i.size)
	}

	data := make([]byte, count)
	if count == 0 {
		return data, nil
	}
	if _, err := i.source.ReadAt(data, int64(offset)); err != nil {
		return nil, fmt.Errorf("reading %d bytes at offset %05x: %w", count, offset, err)
	}
	return data, nil
}

// Close releases the image. Calling Close multiple times is allowed.
func (i *Image) Close() error {
	if i.source == nil {
		return nil
	}
	src := i.source
	i.source = nil
	if err := src.Close(); err != nil {
		return fmt.Errorf("closing image '%s': %w", i.name, err)
	}
	return nil
}

// buffer is an in memory image source.
type buffer struct {
	data []byte
}

func (b *buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *buffer) Close() error {
	b.data = nil
	return nil
}

func (b *buffer) Len() int {
	return len(b.data)
}
