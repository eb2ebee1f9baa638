package types

// MediaInfo is what a generic media inspector reports for a stream that is
// neither WAV nor FLAC.
type MediaInfo struct {
	// Kind is the container the inspector recognized ("mp3", "ogg", ...).
	Kind string
	// Codec is a short codec name when known ("MP3", "Vorbis", "Opus", ...).
	Codec string
	// SampleRate in Hz.
	SampleRate uint32
	// Bitrate in kbps. Nominal for VBR streams when the container records
	// one, otherwise averaged over the file.
	Bitrate uint32
}

// Header converts the info to a FormatOther header.
func (m MediaInfo) Header() *Header {
	return &Header{
		Format:     FormatOther,
		SampleRate: m.SampleRate,
		Bitrate:    m.Bitrate,
		Container:  m.Kind,
	}
}
