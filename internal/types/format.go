package types

// Format is the container class a stream was sniffed as.
//
// The set is closed: WAV and FLAC are parsed byte-for-byte, everything else is
// FormatOther and deferred to a generic media inspector.
type Format int

const (
	// FormatOther represents any stream whose magic is neither RIFF nor fLaC.
	FormatOther Format = iota // Other
	// FormatWAV represents RIFF/WAVE files.
	FormatWAV // WAV
	// FormatFLAC represents native FLAC streams.
	FormatFLAC // FLAC
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "WAV"
	case FormatFLAC:
		return "FLAC"
	case FormatOther:
		return "Other"
	default:
		return "Other"
	}
}

// Extensions returns common file extensions for this format.
//
// Extensions are informational only. Sniffing never consults them.
func (f Format) Extensions() []string {
	switch f {
	case FormatWAV:
		return []string{".wav", ".wave"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatOther:
		return nil
	default:
		return nil
	}
}

// Lossless reports whether the format is parsed for bit depth rather than bitrate.
func (f Format) Lossless() bool {
	return f == FormatWAV || f == FormatFLAC
}
