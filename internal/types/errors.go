package types

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	// ErrTruncatedHeader matches any *TruncatedHeaderError.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrStreamUnavailable matches any *StreamUnavailableError.
	ErrStreamUnavailable = errors.New("stream unavailable")

	// ErrUnrecognizedFormat is returned when a stream is neither WAV nor FLAC
	// and no generic inspector is available to take it over.
	ErrUnrecognizedFormat = errors.New("unrecognized format")
)

// TruncatedHeaderError is returned when a read or skip needs more bytes than
// the stream holds.
type TruncatedHeaderError struct {
	Err    error
	Path   string
	What   string
	Offset int64
	Want   int
	Got    int
}

func (e *TruncatedHeaderError) Error() string {
	return fmt.Sprintf("%s: truncated header at offset %d while reading %s: got %d of %d bytes",
		e.Path, e.Offset, e.What, e.Got, e.Want)
}

// Is reports whether target is ErrTruncatedHeader.
func (e *TruncatedHeaderError) Is(target error) bool {
	return target == ErrTruncatedHeader
}

// Unwrap returns the underlying I/O error, if any.
func (e *TruncatedHeaderError) Unwrap() error {
	return e.Err
}

// StreamUnavailableError is returned when the byte source cannot be opened
// or read at all.
type StreamUnavailableError struct {
	Err  error
	Path string
}

func (e *StreamUnavailableError) Error() string {
	return fmt.Sprintf("%s: stream unavailable: %v", e.Path, e.Err)
}

// Is reports whether target is ErrStreamUnavailable.
func (e *StreamUnavailableError) Is(target error) bool {
	return target == ErrStreamUnavailable
}

func (e *StreamUnavailableError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned when the generic inspector cannot handle
// a stream.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedHeaderError is returned when header fields were read but do not
// describe a usable stream.
type CorruptedHeaderError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedHeaderError) Error() string {
	return fmt.Sprintf("%s: corrupted header at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings never change the values an extractor returns. They flag inputs
// whose fixed-offset reading is likely to be wrong, such as a WAV file whose
// fmt chunk is not where the canonical layout puts it.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "sniff", "wav", "flac", "media"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
