package media

import (
	"fmt"
	"io"
	"time"

	"github.com/jfreymuth/oggvorbis"

	binutil "github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/registry"
	"github.com/simonhull/abxmeta/internal/types"
)

func init() {
	registry.Register(KindOgg, registry.ProbeFunc(probeOgg))
}

// opusRate is the rate every Opus decoder outputs, whatever the input rate
// recorded in OpusHead.
const opusRate = 48000

// oggPage is the part of an Ogg page header the probe uses.
type oggPage struct {
	HeaderType      byte  // 0x01=continued, 0x02=BOS, 0x04=EOS
	GranulePosition int64 // position in samples
	DataOffset      int64
	Data            []byte
}

// vorbisReader is the part of *oggvorbis.Reader the probe needs.
type vorbisReader interface {
	SampleRate() int
	Length() int64
}

// newVorbisReader is replaced in tests; hand-built pages carry no setup
// header and would not decode.
var newVorbisReader = func(r io.Reader) (vorbisReader, error) {
	vr, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, err
	}
	return vr, nil
}

// readPage reads an Ogg page at the given offset.
//
// Returns the page and the offset of the page that follows it.
func readPage(sr *binutil.SafeReader, offset int64) (*oggPage, int64, error) {
	head := make([]byte, 27)
	if err := sr.ReadAt(head, offset, "Ogg page header"); err != nil {
		return nil, 0, err
	}
	if string(head[0:4]) != "OggS" {
		return nil, 0, &types.CorruptedHeaderError{Path: sr.Path(), Offset: offset, Reason: "missing OggS capture pattern"}
	}
	if head[4] != 0 {
		return nil, 0, &types.CorruptedHeaderError{Path: sr.Path(), Offset: offset, Reason: fmt.Sprintf("unsupported Ogg version %d", head[4])}
	}

	// Each segment table byte is the size of one segment, 0-255.
	segments := make([]byte, head[26])
	if err := sr.ReadAt(segments, offset+27, "segment table"); err != nil {
		return nil, 0, err
	}
	dataSize := 0
	for _, seg := range segments {
		dataSize += int(seg)
	}

	granule, err := binutil.ReadLE[uint64](sr, offset+6, "granule position")
	if err != nil {
		return nil, 0, err
	}

	dataOffset := offset + 27 + int64(len(segments))
	data := make([]byte, dataSize)
	if err := sr.ReadAt(data, dataOffset, "page data"); err != nil {
		return nil, 0, err
	}

	page := &oggPage{
		HeaderType:      head[5],
		GranulePosition: int64(granule),
		DataOffset:      dataOffset,
		Data:            data,
	}
	return page, dataOffset + int64(dataSize), nil
}

// lastGranule searches backwards from the end of the stream for the final
// page's granule position.
func lastGranule(sr *binutil.SafeReader) (int64, error) {
	// Search last 64KB for final page (typical max page size)
	start := max(sr.Size()-65536, 0)

	buf := make([]byte, sr.Size()-start)
	if err := sr.ReadAt(buf, start, "search region"); err != nil {
		return 0, err
	}

	for i := len(buf) - 27; i >= 0; i-- {
		if string(buf[i:i+4]) == "OggS" {
			granule, err := binutil.ReadLE[uint64](sr, start+int64(i)+6, "final granule position")
			return int64(granule), err
		}
	}

	return 0, &types.CorruptedHeaderError{Path: sr.Path(), Offset: start, Reason: "could not find last Ogg page"}
}

// probeOgg reads the identification header on the first page.
//
// Vorbis streams report the nominal bitrate when the encoder recorded one
// and the average over the stream otherwise. Opus streams always report
// 48 kHz and an averaged bitrate.
func probeOgg(r io.ReadSeeker, size int64, path string) (types.MediaInfo, error) {
	sr := binutil.NewSafeReader(readerAt(r), size, path)

	first, _, err := readPage(sr, 0)
	if err != nil {
		return types.MediaInfo{}, err
	}
	if first.HeaderType&0x02 == 0 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: path, Reason: "first Ogg page is not a beginning-of-stream page"}
	}

	id := first.Data
	switch {
	case len(id) >= 30 && id[0] == 0x01 && string(id[1:7]) == "vorbis":
		return probeVorbis(r, sr, first.DataOffset)
	case len(id) >= 19 && string(id[0:8]) == "OpusHead":
		return probeOpus(sr, first.DataOffset)
	}

	return types.MediaInfo{}, &types.UnsupportedFormatError{Path: path, Reason: "Ogg stream is neither Vorbis nor Opus"}
}

// probeVorbis reads the identification packet that starts at idOff.
func probeVorbis(r io.ReadSeeker, sr *binutil.SafeReader, idOff int64) (types.MediaInfo, error) {
	version, err := binutil.ReadLE[uint32](sr, idOff+7, "Vorbis version")
	if err != nil {
		return types.MediaInfo{}, err
	}
	if version != 0 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: sr.Path(), Offset: idOff + 7, Reason: fmt.Sprintf("unsupported Vorbis version %d", version)}
	}

	rate, err := binutil.ReadLE[uint32](sr, idOff+12, "Vorbis sample rate")
	if err != nil {
		return types.MediaInfo{}, err
	}
	info := types.MediaInfo{Codec: "Vorbis", SampleRate: rate}

	nominal, err := binutil.ReadLE[uint32](sr, idOff+20, "Vorbis nominal bitrate")
	if err != nil {
		return types.MediaInfo{}, err
	}
	// Bitrate fields are signed; zero or negative means unset.
	if n := int32(nominal); n > 0 {
		info.Bitrate = uint32((n + 500) / 1000)
		return info, nil
	}

	var d time.Duration
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("rewind %s: %w", sr.Path(), err)
	}
	if vr, err := newVorbisReader(r); err == nil && vr.Length() > 0 && vr.SampleRate() > 0 {
		d = durationOf(vr.Length(), uint32(vr.SampleRate()))
	} else {
		granule, gerr := lastGranule(sr)
		if gerr != nil {
			return info, gerr
		}
		d = durationOf(granule, info.SampleRate)
	}

	info.Bitrate = averageKbps(sr.Size(), d)
	return info, nil
}

// probeOpus reads the OpusHead packet that starts at idOff.
func probeOpus(sr *binutil.SafeReader, idOff int64) (types.MediaInfo, error) {
	version, err := binutil.Read[uint8](sr, idOff+8, "Opus version")
	if err != nil {
		return types.MediaInfo{}, err
	}
	if version != 1 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: sr.Path(), Offset: idOff + 8, Reason: fmt.Sprintf("unsupported Opus version %d", version)}
	}
	preSkip, err := binutil.ReadLE[uint16](sr, idOff+10, "Opus pre-skip")
	if err != nil {
		return types.MediaInfo{}, err
	}

	granule, err := lastGranule(sr)
	if err != nil {
		return types.MediaInfo{}, err
	}

	return types.MediaInfo{
		Codec:      "Opus",
		SampleRate: opusRate,
		Bitrate:    averageKbps(sr.Size(), durationOf(granule-int64(preSkip), opusRate)),
	}, nil
}
