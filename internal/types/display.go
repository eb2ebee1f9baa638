package types

import (
	"strconv"
	"strings"
)

// Display holds the human-readable form of a Header.
//
// Empty strings mean the value is not available. A file that failed to parse
// is shown with a zero Display.
type Display struct {
	Format     string
	SampleRate string
	BitDepth   string
	Bitrate    string
}

// String joins the non-empty parts with single spaces.
func (d Display) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{d.Format, d.SampleRate, d.BitDepth, d.Bitrate} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Empty reports whether no properties are available.
func (d Display) Empty() bool {
	return d.SampleRate == "" && d.BitDepth == "" && d.Bitrate == ""
}

// FormatSampleRate renders a sample rate in kHz.
//
// Whole kilohertz values drop the fraction ("48 kHz"); anything else uses the
// shortest decimal that round-trips ("44.1 kHz", "22.05 kHz"). Zero renders
// as an empty string.
func FormatSampleRate(hz uint32) string {
	if hz == 0 {
		return ""
	}
	if hz%1000 == 0 {
		return strconv.FormatUint(uint64(hz/1000), 10) + " kHz"
	}
	return strconv.FormatFloat(float64(hz)/1000, 'f', -1, 64) + " kHz"
}

// FormatBitDepth renders a bit depth as "<n>-bit".
func FormatBitDepth(bits uint16) string {
	if bits == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(bits), 10) + "-bit"
}

// FormatBitrate renders a bitrate as "<n> kbps".
func FormatBitrate(kbps uint32) string {
	if kbps == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(kbps), 10) + " kbps"
}
