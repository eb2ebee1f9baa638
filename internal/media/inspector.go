// Package media is the generic inspector for streams that are neither WAV
// nor FLAC. It recognizes the container, then hands the stream to the probe
// registered for that kind.
package media

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"

	"github.com/simonhull/abxmeta/internal/registry"
	"github.com/simonhull/abxmeta/internal/types"
)

// Container kinds understood by the built-in probes.
const (
	KindMP3  = "mp3"
	KindOgg  = "ogg"
	KindAIFF = "aiff"
	KindM4A  = "m4a"
)

// Inspector reports sample rate and bitrate for non-WAV, non-FLAC streams.
type Inspector struct{}

// New returns an Inspector backed by the registered probes.
func New() *Inspector {
	return &Inspector{}
}

// Inspect identifies the container in r and runs its probe.
//
// r may be at any position; it is rewound before identification and again
// before probing. Results missing a sample rate or bitrate are rejected so
// callers always get both values or an error.
func (i *Inspector) Inspect(r io.ReadSeeker, size int64, path string) (types.MediaInfo, error) {
	kind, err := Identify(r, size, path)
	if err != nil {
		return types.MediaInfo{}, err
	}

	probe := registry.Get(kind)
	if probe == nil {
		return types.MediaInfo{}, &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no probe registered for %s", kind),
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return types.MediaInfo{}, fmt.Errorf("rewind %s: %w", path, err)
	}

	info, err := probe.Probe(r, size, path)
	if err != nil {
		return types.MediaInfo{}, fmt.Errorf("probe %s: %w", kind, err)
	}
	info.Kind = kind

	if info.SampleRate == 0 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: path, Reason: kind + " stream reports no sample rate"}
	}
	if info.Bitrate == 0 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: path, Reason: kind + " stream reports no bitrate"}
	}

	return info, nil
}

// Identify returns the container kind of r.
//
// Tag-bearing containers are recognized through dhowden/tag; bare MPEG audio
// frames and AIFF, which carry no tag signature at the start, are matched on
// their magic bytes.
func Identify(r io.ReadSeeker, size int64, path string) (string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", path, err)
	}

	if size >= 11 {
		format, fileType, err := tag.Identify(r)
		if err == nil {
			switch {
			case fileType == tag.MP3:
				return KindMP3, nil
			case fileType == tag.OGG:
				return KindOgg, nil
			case format == tag.MP4:
				return KindM4A, nil
			}
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", path, err)
	}

	head := make([]byte, 12)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return "", &types.UnsupportedFormatError{Path: path, Reason: "empty stream"}
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	head = head[:n]

	switch {
	case n >= 12 && string(head[0:4]) == "FORM" && (string(head[8:12]) == "AIFF" || string(head[8:12]) == "AIFC"):
		return KindAIFF, nil
	case n >= 4 && string(head[0:4]) == "OggS":
		return KindOgg, nil
	case n >= 8 && string(head[4:8]) == "ftyp":
		return KindM4A, nil
	case n >= 3 && string(head[0:3]) == "ID3":
		return KindMP3, nil
	case n >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return KindMP3, nil
	}

	return "", &types.UnsupportedFormatError{
		Path:   path,
		Reason: "unrecognized container (known: " + strings.Join(registry.Kinds(), ", ") + ")",
	}
}

// averageKbps returns the average bitrate of n bytes played over d.
func averageKbps(n int64, d time.Duration) uint32 {
	if n <= 0 || d <= 0 {
		return 0
	}
	return uint32(math.Round(float64(n) * 8 / d.Seconds() / 1000))
}

// durationOf converts a sample count at rate Hz to a duration.
func durationOf(samples int64, rate uint32) time.Duration {
	if samples <= 0 || rate == 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}

// readerAt adapts r for random access. Files and bytes.Readers already
// implement io.ReaderAt; anything else is served by seeking.
func readerAt(r io.ReadSeeker) io.ReaderAt {
	if ra, ok := r.(io.ReaderAt); ok {
		return ra
	}
	return &seekReaderAt{rs: r}
}

type seekReaderAt struct {
	mu sync.Mutex
	rs io.ReadSeeker
}

func (s *seekReaderAt) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(s.rs, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}
