// Package sniff classifies a byte stream by its first four bytes.
package sniff

import (
	"io"

	"github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/types"
)

// Magic byte sequences recognized at offset 0.
const (
	MagicWAV  = "RIFF"
	MagicFLAC = "fLaC"
)

// MagicSize is the number of bytes Sniff consumes.
const MagicSize = 4

// Classify maps four magic bytes to a format.
func Classify(magic [MagicSize]byte) types.Format {
	switch string(magic[:]) {
	case MagicWAV:
		return types.FormatWAV
	case MagicFLAC:
		return types.FormatFLAC
	default:
		return types.FormatOther
	}
}

// Sniff reads exactly four bytes from r and classifies them.
//
// The file name and extension are never consulted. On return the stream
// has advanced by four bytes; extractors continue from offset 4.
// Fewer than four bytes yields a *types.TruncatedHeaderError.
func Sniff(r io.Reader, path string) (types.Format, error) {
	return SniffStream(binary.NewStream(r, path, 0))
}

// SniffStream is Sniff over an existing Stream positioned at offset 0.
func SniffStream(s *binary.Stream) (types.Format, error) {
	var magic [MagicSize]byte
	if err := s.ReadFull(magic[:], "magic bytes"); err != nil {
		return types.FormatOther, err
	}
	return Classify(magic), nil
}
