package media

import (
	"fmt"
	"io"
	"time"

	binutil "github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/registry"
	"github.com/simonhull/abxmeta/internal/types"
)

func init() {
	registry.Register(KindM4A, registry.ProbeFunc(probeM4A))
}

// atom is an MP4 box header.
type atom struct {
	Size     uint64 // Total size including header
	Type     string // 4-character type code
	Offset   int64  // Position in file
	Extended bool   // Whether this uses 64-bit extended size
}

func (a *atom) headerSize() int64 {
	if a.Extended {
		return 16
	}
	return 8
}

// DataOffset returns the file offset where the atom's data starts.
func (a *atom) DataOffset() int64 {
	return a.Offset + a.headerSize()
}

// End returns the offset one past the atom.
func (a *atom) End() int64 {
	return a.Offset + int64(a.Size)
}

// readAtomHeader reads an atom header at the given offset.
func readAtomHeader(sr *binutil.SafeReader, offset int64) (*atom, error) {
	size32, err := binutil.Read[uint32](sr, offset, "atom size")
	if err != nil {
		return nil, err
	}

	typeBytes := make([]byte, 4)
	if err := sr.ReadAt(typeBytes, offset+4, "atom type"); err != nil {
		return nil, err
	}

	a := &atom{Type: string(typeBytes), Offset: offset}

	switch size32 {
	case 0:
		// Extends to end of file.
		a.Size = uint64(sr.Size() - offset)
	case 1:
		size64, err := binutil.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		a.Size = size64
		a.Extended = true
	default:
		a.Size = uint64(size32)
	}

	if a.Size < uint64(a.headerSize()) {
		return nil, &types.CorruptedHeaderError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d", a.Size),
		}
	}

	return a, nil
}

// findAtom returns the first atom of the given type in [start, end).
func findAtom(sr *binutil.SafeReader, start, end int64, atomType string) (*atom, error) {
	for offset := start; offset < end; {
		a, err := readAtomHeader(sr, offset)
		if err != nil {
			return nil, err
		}
		if a.Type == atomType {
			return a, nil
		}
		offset = a.End()
	}

	return nil, &types.CorruptedHeaderError{
		Path:   sr.Path(),
		Offset: start,
		Reason: fmt.Sprintf("atom '%s' not found", atomType),
	}
}

// findPath walks nested atoms, each name searched inside the previous one.
func findPath(sr *binutil.SafeReader, parent *atom, path ...string) (*atom, error) {
	cur := parent
	for _, name := range path {
		next, err := findAtom(sr, cur.DataOffset(), cur.End(), name)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// readTimescale reads the timescale and duration from a full-box header
// shaped like mvhd or mdhd.
func readTimescale(sr *binutil.SafeReader, a *atom) (timescale uint32, duration uint64, err error) {
	offset := a.DataOffset()

	version, err := binutil.Read[uint8](sr, offset, a.Type+" version")
	if err != nil {
		return 0, 0, err
	}
	// Skip version and flags
	offset += 4

	if version == 1 {
		// 64-bit creation and modification times
		offset += 16
		if timescale, err = binutil.Read[uint32](sr, offset, a.Type+" timescale"); err != nil {
			return 0, 0, err
		}
		duration, err = binutil.Read[uint64](sr, offset+4, a.Type+" duration")
		return timescale, duration, err
	}

	offset += 8
	if timescale, err = binutil.Read[uint32](sr, offset, a.Type+" timescale"); err != nil {
		return 0, 0, err
	}
	d32, err := binutil.Read[uint32](sr, offset+4, a.Type+" duration")
	return timescale, uint64(d32), err
}

// stsdSampleRate reads the 16.16 fixed-point rate of the first sample entry.
func stsdSampleRate(sr *binutil.SafeReader, stsd *atom) (uint32, string, error) {
	// version+flags (4), entry count (4)
	entry := stsd.DataOffset() + 8

	codec := make([]byte, 4)
	if err := sr.ReadAt(codec, entry+4, "sample entry format"); err != nil {
		return 0, "", err
	}

	// size(4) format(4) reserved(6) data ref(2) version(2) revision(2)
	// vendor(4) channels(2) sample size(2) compression(2) packet size(2)
	fixed, err := binutil.Read[uint32](sr, entry+32, "sample entry rate")
	if err != nil {
		return 0, "", err
	}

	return fixed >> 16, codecName(string(codec)), nil
}

func codecName(fourcc string) string {
	switch fourcc {
	case "mp4a":
		return "AAC"
	case "alac":
		return "ALAC"
	case "ac-3":
		return "AC-3"
	case "ec-3":
		return "E-AC-3"
	default:
		return fourcc
	}
}

// probeM4A walks moov/trak/mdia/minf/stbl/stsd for the sample rate and
// moov/mvhd for the duration. The bitrate is averaged over the whole file.
//
// Sample entries store the rate as 16.16 fixed point, which cannot hold
// rates above 65535 Hz; the media timescale from mdhd is used then.
func probeM4A(r io.ReadSeeker, size int64, path string) (types.MediaInfo, error) {
	sr := binutil.NewSafeReader(readerAt(r), size, path)

	moov, err := findAtom(sr, 0, size, "moov")
	if err != nil {
		return types.MediaInfo{}, err
	}

	mvhd, err := findPath(sr, moov, "mvhd")
	if err != nil {
		return types.MediaInfo{}, err
	}
	timescale, duration, err := readTimescale(sr, mvhd)
	if err != nil {
		return types.MediaInfo{}, err
	}
	if timescale == 0 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: path, Offset: mvhd.Offset, Reason: "mvhd timescale is zero"}
	}

	mdia, err := findPath(sr, moov, "trak", "mdia")
	if err != nil {
		return types.MediaInfo{}, err
	}
	stsd, err := findPath(sr, mdia, "minf", "stbl", "stsd")
	if err != nil {
		return types.MediaInfo{}, err
	}
	rate, codec, err := stsdSampleRate(sr, stsd)
	if err != nil {
		return types.MediaInfo{}, err
	}

	if rate == 0 {
		if mdhd, err := findPath(sr, mdia, "mdhd"); err == nil {
			if ts, _, err := readTimescale(sr, mdhd); err == nil {
				rate = ts
			}
		}
	}

	d := time.Duration(float64(duration) / float64(timescale) * float64(time.Second))
	return types.MediaInfo{
		Codec:      codec,
		SampleRate: rate,
		Bitrate:    averageKbps(size, d),
	}, nil
}
