package binary

import (
	"errors"
	"io"

	"github.com/simonhull/abxmeta/internal/types"
)

// Stream provides sequential reading with automatic offset tracking.
//
// Stream never reads more than it is asked for, so a caller that only needs
// the first 36 bytes of a file consumes exactly that much.
type Stream struct {
	r      io.Reader
	path   string
	offset int64
}

// NewStream creates a Stream whose first byte sits at offset in the file.
//
// offset only feeds error messages and Offset(); it does not seek.
func NewStream(r io.Reader, path string, offset int64) *Stream {
	return &Stream{
		r:      r,
		path:   path,
		offset: offset,
	}
}

// Path returns the file path associated with this stream.
func (s *Stream) Path() string {
	return s.path
}

// Offset returns the absolute offset of the next byte to be read.
func (s *Stream) Offset() int64 {
	return s.offset
}

// ReadFull fills b or fails with *types.TruncatedHeaderError.
func (s *Stream) ReadFull(b []byte, what string) error {
	n, err := io.ReadFull(s.r, b)
	start := s.offset
	s.offset += int64(n)
	if err != nil {
		return s.truncated(err, what, start, len(b), n)
	}
	return nil
}

// Skip discards n bytes.
func (s *Stream) Skip(n int64, what string) error {
	if n <= 0 {
		return nil
	}
	start := s.offset
	skipped, err := io.CopyN(io.Discard, s.r, n)
	s.offset += skipped
	if err != nil {
		return s.truncated(err, what, start, int(n), int(skipped))
	}
	return nil
}

func (s *Stream) truncated(err error, what string, off int64, want, got int) error {
	// EOF variants mean the stream ran dry; keep anything else as the cause.
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &types.TruncatedHeaderError{
		Err:    err,
		Path:   s.path,
		What:   what,
		Offset: off,
		Want:   want,
		Got:    got,
	}
}

// ReadValue reads a numeric value in the given byte order and advances the offset.
func ReadValue[T Unsigned](s *Stream, what string, endian Endianness) (T, error) {
	buf := make([]byte, sizeOf[T]())
	if err := s.ReadFull(buf, what); err != nil {
		var zero T
		return zero, err
	}
	return decode[T](buf, endian), nil
}

// ChainStream allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks in fixed-layout headers.
type ChainStream struct {
	*Stream
	err error
}

// NewChainStream creates a new ChainStream.
func NewChainStream(s *Stream) *ChainStream {
	return &ChainStream{Stream: s}
}

// ReadChained reads a value with deferred error checking.
// If a previous step failed, returns zero value without attempting the read.
func ReadChained[T Unsigned](cs *ChainStream, what string, endian Endianness) T {
	if cs.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cs.Stream, what, endian)
	if err != nil {
		cs.err = err
		var zero T
		return zero
	}

	return val
}

// Bytes reads n raw bytes, accumulating any error.
func (cs *ChainStream) Bytes(n int, what string) []byte {
	if cs.err != nil {
		return nil
	}

	buf := make([]byte, n)
	if err := cs.Stream.ReadFull(buf, what); err != nil {
		cs.err = err
		return nil
	}

	return buf
}

// Skip discards n bytes, accumulating any error.
func (cs *ChainStream) Skip(n int64, what string) {
	if cs.err != nil {
		return
	}
	cs.err = cs.Stream.Skip(n, what)
}

// Error returns the accumulated error, if any.
func (cs *ChainStream) Error() error {
	return cs.err
}
