package abxmeta

import (
	"io"

	"github.com/simonhull/abxmeta/internal/sniff"
	"github.com/simonhull/abxmeta/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatOther = types.FormatOther
	FormatWAV   = types.FormatWAV
	FormatFLAC  = types.FormatFLAC
)

// Header is an alias to types.Header.
type Header = types.Header

// Display is an alias to types.Display.
type Display = types.Display

// MediaInfo is an alias to types.MediaInfo.
type MediaInfo = types.MediaInfo

// Sniff reads exactly four bytes from r and classifies the stream.
//
// r should be positioned at the start of the file. On return it has
// advanced by four bytes, or by fewer if the stream was shorter, in which
// case a *TruncatedHeaderError is returned along with FormatOther.
func Sniff(r io.Reader, path string) (Format, error) {
	return sniff.Sniff(r, path)
}

// FormatSampleRate renders Hz as kHz: 48000 is "48 kHz", 44100 is "44.1 kHz".
func FormatSampleRate(hz uint32) string {
	return types.FormatSampleRate(hz)
}

// FormatBitDepth renders a bit depth as "24-bit".
func FormatBitDepth(bits uint16) string {
	return types.FormatBitDepth(bits)
}

// FormatBitrate renders kbps as "128 kbps".
func FormatBitrate(kbps uint32) string {
	return types.FormatBitrate(kbps)
}
