// Package types provides the core data structures shared by the sniffer,
// the format extractors, and the generic media inspector.
package types

import (
	"fmt"
	"strings"
)

// Header is the raw result of inspecting one audio stream.
//
// A Header is built once per stream and treated as read-only afterwards.
// Zero means absent for the numeric fields: a successfully parsed header
// always carries SampleRate and exactly one of BitDepth or Bitrate.
type Header struct {
	Warnings   []Warning
	Format     Format
	SampleRate uint32 // Hz
	Bitrate    uint32 // kbps, OTHER only
	BitDepth   uint16 // bits per sample, WAV and FLAC only

	// Container names what the media inspector recognized ("mp3", "ogg", ...).
	// Only set for OTHER; dispatch never looks at it.
	Container string
}

// HasBitDepth reports whether the header carries a bit depth.
func (h *Header) HasBitDepth() bool {
	return h.BitDepth > 0
}

// HasBitrate reports whether the header carries a bitrate.
func (h *Header) HasBitrate() bool {
	return h.Bitrate > 0
}

// Validate checks that the header describes a usable stream.
//
// Lossless formats must carry a bit depth and no bitrate, OTHER must carry a
// bitrate and no bit depth, and every header needs a sample rate.
func (h *Header) Validate(path string) error {
	if h.SampleRate == 0 {
		return &CorruptedHeaderError{Path: path, Reason: "sample rate is zero"}
	}

	switch h.Format {
	case FormatWAV, FormatFLAC:
		if !h.HasBitDepth() {
			return &CorruptedHeaderError{Path: path, Reason: fmt.Sprintf("%s header has no bit depth", h.Format)}
		}
		if h.HasBitrate() {
			return &CorruptedHeaderError{Path: path, Reason: fmt.Sprintf("%s header must not carry a bitrate", h.Format)}
		}
	case FormatOther:
		if !h.HasBitrate() {
			return &CorruptedHeaderError{Path: path, Reason: "generic header has no bitrate"}
		}
		if h.HasBitDepth() {
			return &CorruptedHeaderError{Path: path, Reason: "generic header must not carry a bit depth"}
		}
	default:
		return &CorruptedHeaderError{Path: path, Reason: fmt.Sprintf("unknown format %d", int(h.Format))}
	}

	return nil
}

// Display derives the display strings for the header.
func (h *Header) Display() Display {
	d := Display{
		Format:     h.formatName(),
		SampleRate: FormatSampleRate(h.SampleRate),
	}
	if h.HasBitDepth() {
		d.BitDepth = FormatBitDepth(h.BitDepth)
	}
	if h.HasBitrate() {
		d.Bitrate = FormatBitrate(h.Bitrate)
	}
	return d
}

// formatName is the container name for OTHER streams when known, else the
// format name.
func (h *Header) formatName() string {
	if h.Format == FormatOther && h.Container != "" {
		return strings.ToUpper(h.Container)
	}
	return h.Format.String()
}

// String returns a one-line summary, e.g. "FLAC 44.1 kHz 24-bit".
func (h *Header) String() string {
	return h.Display().String()
}
