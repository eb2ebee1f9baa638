package media

import (
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"

	binutil "github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/registry"
	"github.com/simonhull/abxmeta/internal/types"
)

func init() {
	registry.Register(KindMP3, registry.ProbeFunc(probeMP3))
}

// mp3ScanLimit bounds the search for the first frame after the ID3 tag.
const mp3ScanLimit = 64 * 1024

// MPEG version field values.
const (
	mpeg25 = 0
	mpeg2  = 2
	mpeg1  = 3
)

// Layer III bitrates in kbps, indexed by the 4-bit bitrate field.
// Index 0 is free format, 15 is invalid.
var (
	mpeg1L3Bitrates = [16]uint32{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	mpeg2L3Bitrates = [16]uint32{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sample rates in Hz, indexed by version then the 2-bit rate field.
var mp3SampleRates = map[uint32][3]uint32{
	mpeg1:  {44100, 48000, 32000},
	mpeg2:  {22050, 24000, 16000},
	mpeg25: {11025, 12000, 8000},
}

// mp3Decoder is the part of *gomp3.Decoder the probe needs.
type mp3Decoder interface {
	SampleRate() int
	Length() int64
}

// newMP3Decoder is replaced in tests; synthetic frames do not decode.
var newMP3Decoder = func(r io.Reader) (mp3Decoder, error) {
	d, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// frameHeader is a decoded MPEG audio frame header.
type frameHeader struct {
	Version    uint32
	Bitrate    uint32 // kbps, 0 for free format
	SampleRate uint32
	Mono       bool
}

// samplesPerFrame returns the Layer III frame length in samples.
func (h frameHeader) samplesPerFrame() int64 {
	if h.Version == mpeg1 {
		return 1152
	}
	return 576
}

// duration returns the play time of n frames.
func (h frameHeader) duration(n uint32) time.Duration {
	return durationOf(int64(n)*h.samplesPerFrame(), h.SampleRate)
}

// sideInfoSize returns the Layer III side information length, which is
// where a Xing or Info tag starts after the 4-byte header.
func (h frameHeader) sideInfoSize() int64 {
	switch {
	case h.Version == mpeg1 && h.Mono:
		return 17
	case h.Version == mpeg1:
		return 32
	case h.Mono:
		return 9
	default:
		return 17
	}
}

// parseFrameHeader decodes a Layer III frame header.
func parseFrameHeader(word uint32) (frameHeader, error) {
	if word&0xFFE00000 != 0xFFE00000 {
		return frameHeader{}, fmt.Errorf("invalid frame sync")
	}

	version := (word >> 19) & 0x3
	if version == 1 {
		return frameHeader{}, fmt.Errorf("reserved MPEG version")
	}

	// Layer III (01)
	if layer := (word >> 17) & 0x3; layer != 1 {
		return frameHeader{}, fmt.Errorf("unsupported layer")
	}

	bitrateIdx := (word >> 12) & 0xF
	if bitrateIdx == 15 {
		return frameHeader{}, fmt.Errorf("invalid bitrate index")
	}

	rateIdx := (word >> 10) & 0x3
	if rateIdx == 3 {
		return frameHeader{}, fmt.Errorf("reserved sample rate index")
	}

	h := frameHeader{
		Version:    version,
		SampleRate: mp3SampleRates[version][rateIdx],
		Mono:       (word>>6)&0x3 == 3,
	}
	if version == mpeg1 {
		h.Bitrate = mpeg1L3Bitrates[bitrateIdx]
	} else {
		h.Bitrate = mpeg2L3Bitrates[bitrateIdx]
	}

	return h, nil
}

// id3v2Size returns the length of a leading ID3v2 tag, or 0 when there is
// none. The tag size field is syncsafe.
func id3v2Size(sr *binutil.SafeReader) int64 {
	head := make([]byte, 10)
	if err := sr.ReadAt(head, 0, "ID3v2 header"); err != nil {
		return 0
	}
	if string(head[0:3]) != "ID3" {
		return 0
	}

	size := int64(head[6]&0x7F)<<21 | int64(head[7]&0x7F)<<14 | int64(head[8]&0x7F)<<7 | int64(head[9]&0x7F)
	size += 10
	if head[5]&0x10 != 0 {
		size += 10 // footer
	}
	return size
}

// findFrame returns the offset and header of the first Layer III frame at or
// after start.
func findFrame(sr *binutil.SafeReader, start int64) (int64, frameHeader, error) {
	end := min(start+mp3ScanLimit, sr.Size()-4)

	for off := start; off <= end; off++ {
		word, err := binutil.ReadBE[uint32](sr, off, "MP3 frame header")
		if err != nil {
			return 0, frameHeader{}, err
		}
		if word>>24 != 0xFF {
			continue
		}
		h, err := parseFrameHeader(word)
		if err == nil {
			return off, h, nil
		}
	}

	return 0, frameHeader{}, &types.CorruptedHeaderError{
		Path:   sr.Path(),
		Offset: start,
		Reason: "no MPEG Layer III frame found",
	}
}

// vbrFrames returns the frame count recorded in a Xing or VBRI tag inside
// the first frame. ok is false for CBR streams, including LAME "Info" tags.
func vbrFrames(sr *binutil.SafeReader, frameOff int64, h frameHeader) (frames uint32, ok bool) {
	xingOff := frameOff + 4 + h.sideInfoSize()
	id := make([]byte, 4)

	if err := sr.ReadAt(id, xingOff, "Xing header"); err == nil {
		switch string(id) {
		case "Xing":
			flags, ferr := binutil.ReadBE[uint32](sr, xingOff+4, "Xing flags")
			// Frames field is present if bit 0 is set
			if ferr != nil || flags&0x0001 == 0 {
				return 0, false
			}
			n, nerr := binutil.ReadBE[uint32](sr, xingOff+8, "Xing frame count")
			return n, nerr == nil
		case "Info":
			return 0, false
		}
	}

	// VBRI always sits 32 bytes past the header.
	vbriOff := frameOff + 36
	if err := sr.ReadAt(id, vbriOff, "VBRI header"); err == nil && string(id) == "VBRI" {
		n, nerr := binutil.ReadBE[uint32](sr, vbriOff+14, "VBRI frame count")
		return n, nerr == nil
	}

	return 0, false
}

// probeMP3 reads the first frame after any ID3v2 tag.
//
// CBR streams report the frame bitrate. VBR streams with a Xing or VBRI
// tag report the average over the audio payload. Free-format streams fall
// back to the decoded length from go-mp3.
func probeMP3(r io.ReadSeeker, size int64, path string) (types.MediaInfo, error) {
	sr := binutil.NewSafeReader(readerAt(r), size, path)

	audioStart := id3v2Size(sr)
	frameOff, h, err := findFrame(sr, audioStart)
	if err != nil {
		return types.MediaInfo{}, err
	}

	info := types.MediaInfo{
		Codec:      "MP3",
		SampleRate: h.SampleRate,
		Bitrate:    h.Bitrate,
	}

	if frames, ok := vbrFrames(sr, frameOff, h); ok && frames > 0 {
		info.Bitrate = averageKbps(size-frameOff, h.duration(frames))
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("rewind %s: %w", path, err)
	}
	dec, err := newMP3Decoder(r)
	if err != nil {
		// The frame tables already answered; the decoder only confirms.
		if info.Bitrate == 0 {
			return info, fmt.Errorf("free-format stream without decodable length: %w", err)
		}
		return info, nil
	}

	if rate := dec.SampleRate(); rate > 0 {
		info.SampleRate = uint32(rate)
	}
	if info.Bitrate == 0 {
		// go-mp3 always decodes to 16-bit stereo.
		if n := dec.Length(); n > 0 && info.SampleRate > 0 {
			d := durationOf(n/4, info.SampleRate)
			info.Bitrate = averageKbps(size-frameOff, d)
		}
	}

	return info, nil
}
