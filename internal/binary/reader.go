// Package binary provides bounds-checked binary reading primitives.
//
// Two readers are provided. Stream reads an io.Reader front to back and is
// what the WAV and FLAC extractors use, since they only ever need the first
// few dozen bytes of a file. SafeReader wraps an io.ReaderAt for the generic
// inspector, which has to jump around inside MP3, Ogg and MP4 containers.
// Both report short data as *types.TruncatedHeaderError.
package binary

import (
	"io"

	"github.com/simonhull/abxmeta/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the size the reader was created with.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads len(b) bytes at off. what names the field for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off+int64(len(b)) > sr.size {
		got := 0
		if off >= 0 && off < sr.size {
			got = int(sr.size - off)
		}
		return &types.TruncatedHeaderError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Want:   len(b),
			Got:    got,
		}
	}

	n, err := sr.r.ReadAt(b, off)
	if n < len(b) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return &types.TruncatedHeaderError{
			Err:    err,
			Path:   sr.path,
			What:   what,
			Offset: off,
			Want:   len(b),
			Got:    n,
		}
	}

	return nil
}

// Read reads a big-endian value of type T from the given offset.
func Read[T Unsigned](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}
