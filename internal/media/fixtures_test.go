package media

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"testing"
)

// mp3Frame returns a frame of n bytes starting with the given 4-byte header.
func mp3Frame(header [4]byte, n int) []byte {
	frame := make([]byte, n)
	copy(frame, header[:])
	return frame
}

// id3v2Tag returns an ID3v2.4 tag with a zeroed body of bodyLen bytes.
func id3v2Tag(bodyLen int, footer bool) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("ID3")
	buf.Write([]byte{0x04, 0x00})
	flags := byte(0)
	if footer {
		flags = 0x10
	}
	buf.WriteByte(flags)
	// syncsafe size
	buf.Write([]byte{
		byte(bodyLen>>21) & 0x7F,
		byte(bodyLen>>14) & 0x7F,
		byte(bodyLen>>7) & 0x7F,
		byte(bodyLen) & 0x7F,
	})
	buf.Write(make([]byte, bodyLen))
	if footer {
		buf.WriteString("3DI")
		buf.Write(make([]byte, 7))
	}
	return buf.Bytes()
}

// oggPageBytes builds one Ogg page around data.
func oggPageBytes(headerType byte, granule int64, data []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("OggS")
	buf.WriteByte(0x00)
	buf.WriteByte(headerType)
	binary.Write(buf, binary.LittleEndian, uint64(granule))
	binary.Write(buf, binary.LittleEndian, uint32(1)) // serial
	binary.Write(buf, binary.LittleEndian, uint32(0)) // sequence
	binary.Write(buf, binary.LittleEndian, uint32(0)) // checksum

	var segments []byte
	remaining := len(data)
	for remaining >= 255 {
		segments = append(segments, 255)
		remaining -= 255
	}
	segments = append(segments, byte(remaining))

	buf.WriteByte(byte(len(segments)))
	buf.Write(segments)
	buf.Write(data)
	return buf.Bytes()
}

// vorbisID builds a Vorbis identification packet.
func vorbisID(sampleRate uint32, nominal int32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(0x01)
	buf.WriteString("vorbis")
	binary.Write(buf, binary.LittleEndian, uint32(0)) // version
	buf.WriteByte(2)
	binary.Write(buf, binary.LittleEndian, sampleRate)
	binary.Write(buf, binary.LittleEndian, int32(0)) // maximum
	binary.Write(buf, binary.LittleEndian, nominal)
	binary.Write(buf, binary.LittleEndian, int32(0)) // minimum
	buf.WriteByte(0xB8)
	buf.WriteByte(0x01)
	return buf.Bytes()
}

// opusHead builds an OpusHead packet.
func opusHead(preSkip uint16, inputRate uint32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("OpusHead")
	buf.WriteByte(1) // version
	buf.WriteByte(2) // channels
	binary.Write(buf, binary.LittleEndian, preSkip)
	binary.Write(buf, binary.LittleEndian, inputRate)
	binary.Write(buf, binary.LittleEndian, int16(0)) // output gain
	buf.WriteByte(0)                                 // mapping family
	return buf.Bytes()
}

// oggStream builds a two-page stream: the identification page and one data
// page of payloadLen bytes ending at granule.
func oggStream(id []byte, granule int64, payloadLen int) []byte {
	out := oggPageBytes(0x02, 0, id)
	return append(out, oggPageBytes(0x04, granule, make([]byte, payloadLen))...)
}

// ieee80 encodes a positive integer rate as an 80-bit extended float.
func ieee80(rate uint32) [10]byte {
	var out [10]byte
	shift := bits.Len32(rate) - 1
	binary.BigEndian.PutUint16(out[0:2], uint16(16383+shift))
	binary.BigEndian.PutUint64(out[2:10], uint64(rate)<<(63-shift))
	return out
}

// aiffFile builds an AIFF file with frames sample frames of silence.
func aiffFile(sampleRate uint32, bitDepth, channels uint16, frames uint32) []byte {
	comm := &bytes.Buffer{}
	binary.Write(comm, binary.BigEndian, channels)
	binary.Write(comm, binary.BigEndian, frames)
	binary.Write(comm, binary.BigEndian, bitDepth)
	rate := ieee80(sampleRate)
	comm.Write(rate[:])

	pcm := make([]byte, int(frames)*int(channels)*int(bitDepth/8))
	ssnd := &bytes.Buffer{}
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // offset
	binary.Write(ssnd, binary.BigEndian, uint32(0)) // block size
	ssnd.Write(pcm)

	body := &bytes.Buffer{}
	body.WriteString("AIFF")
	body.Write(chunk("COMM", comm.Bytes()))
	body.Write(chunk("SSND", ssnd.Bytes()))

	return chunk("FORM", body.Bytes())
}

// mp4Box wraps data in a 32-bit size and fourcc header.
func mp4Box(fourcc string, data []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(8+len(data)))
	buf.WriteString(fourcc)
	buf.Write(data)
	return buf.Bytes()
}

// chunk builds an IFF chunk, whose size excludes the 8-byte header.
func chunk(id string, data []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(id)
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// fullBox builds a version-0 full box with timescale and duration, shaped
// like mvhd and mdhd.
func fullBox(fourcc string, timescale, duration uint32) []byte {
	buf := &bytes.Buffer{}
	// version, flags, creation and modification times
	buf.Write(make([]byte, 12))
	binary.Write(buf, binary.BigEndian, timescale)
	binary.Write(buf, binary.BigEndian, duration)
	buf.Write(make([]byte, 80))
	return mp4Box(fourcc, buf.Bytes())
}

// m4aFile builds ftyp, moov and an mdat padded so the file is exactly size
// bytes, or no larger than needed when size is too small.
func m4aFile(codec string, sampleRate, mediaTimescale, timescale, duration uint32, size int) []byte {
	entry := &bytes.Buffer{}
	binary.Write(entry, binary.BigEndian, uint32(36))
	entry.WriteString(codec)
	entry.Write(make([]byte, 6))                      // reserved
	binary.Write(entry, binary.BigEndian, uint16(1))  // data reference
	entry.Write(make([]byte, 8))                      // version, revision, vendor
	binary.Write(entry, binary.BigEndian, uint16(2))  // channels
	binary.Write(entry, binary.BigEndian, uint16(16)) // sample size
	entry.Write(make([]byte, 4))                      // compression, packet size
	binary.Write(entry, binary.BigEndian, sampleRate<<16)

	stsdData := &bytes.Buffer{}
	stsdData.Write([]byte{0, 0, 0, 0})
	binary.Write(stsdData, binary.BigEndian, uint32(1))
	stsdData.Write(entry.Bytes())

	stbl := mp4Box("stbl", mp4Box("stsd", stsdData.Bytes()))
	minf := mp4Box("minf", stbl)
	mdia := mp4Box("mdia", append(fullBox("mdhd", mediaTimescale, 0), minf...))
	trak := mp4Box("trak", mdia)
	moov := mp4Box("moov", append(fullBox("mvhd", timescale, duration), trak...))

	ftypData := append([]byte("M4A "), 0, 0, 0, 0)
	out := append(mp4Box("ftyp", append(ftypData, []byte("M4A isom")...)), moov...)

	pad := max(size-len(out)-8, 0)
	return append(out, mp4Box("mdat", make([]byte, pad))...)
}

// seekOnly hides io.ReaderAt so probes take the seeking path.
type seekOnly struct {
	rs io.ReadSeeker
}

func (s seekOnly) Read(p []byte) (int, error)                { return s.rs.Read(p) }
func (s seekOnly) Seek(off int64, whence int) (int64, error) { return s.rs.Seek(off, whence) }

type fakeMP3Decoder struct {
	rate   int
	length int64
}

func (f fakeMP3Decoder) SampleRate() int { return f.rate }
func (f fakeMP3Decoder) Length() int64   { return f.length }

// stubMP3Decoder swaps the go-mp3 constructor for the test's duration.
func stubMP3Decoder(t *testing.T, dec mp3Decoder, err error) {
	t.Helper()
	orig := newMP3Decoder
	newMP3Decoder = func(io.Reader) (mp3Decoder, error) {
		if err != nil {
			return nil, err
		}
		return dec, nil
	}
	t.Cleanup(func() { newMP3Decoder = orig })
}

type fakeVorbisReader struct {
	rate   int
	length int64
}

func (f fakeVorbisReader) SampleRate() int { return f.rate }
func (f fakeVorbisReader) Length() int64   { return f.length }

// stubVorbisReader swaps the oggvorbis constructor for the test's duration.
func stubVorbisReader(t *testing.T, vr vorbisReader, err error) {
	t.Helper()
	orig := newVorbisReader
	newVorbisReader = func(io.Reader) (vorbisReader, error) {
		if err != nil {
			return nil, err
		}
		return vr, nil
	}
	t.Cleanup(func() { newVorbisReader = orig })
}
