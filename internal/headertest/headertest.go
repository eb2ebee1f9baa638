// Package headertest builds audio header fixtures for tests.
package headertest

import (
	"bytes"
	"fmt"

	"github.com/simonhull/abxmeta/internal/binary"
)

// WAV returns a canonical 44-byte RIFF/WAVE header followed by dataLen zero bytes.
//
// Layout: RIFF size WAVE, a 16-byte PCM fmt chunk at offset 12, data chunk at 36.
func WAV(sampleRate uint32, bitDepth, channels uint16, dataLen int) []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)

	blockAlign := channels * ((bitDepth + 7) / 8)

	sw.WriteString("RIFF")
	binary.WriteLE[uint32](sw, uint32(36+dataLen))
	sw.WriteString("WAVE")
	sw.WriteString("fmt ")
	binary.WriteLE[uint32](sw, 16)
	binary.WriteLE[uint16](sw, 1) // PCM
	binary.WriteLE[uint16](sw, channels)
	binary.WriteLE[uint32](sw, sampleRate)
	binary.WriteLE[uint32](sw, sampleRate*uint32(blockAlign))
	binary.WriteLE[uint16](sw, blockAlign)
	binary.WriteLE[uint16](sw, bitDepth)
	sw.WriteString("data")
	binary.WriteLE[uint32](sw, uint32(dataLen))
	sw.Pad(dataLen)

	return written(buf, sw)
}

// WAVWithLeadingChunk returns a WAV file with an extra chunk of chunkLen bytes
// between "WAVE" and "fmt ", the layout fixed-offset readers get wrong.
func WAVWithLeadingChunk(id string, chunkLen int, sampleRate uint32, bitDepth, channels uint16) []byte {
	canonical := WAV(sampleRate, bitDepth, channels, 0)

	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)
	sw.WriteString("RIFF")
	binary.WriteLE[uint32](sw, uint32(36+8+chunkLen))
	sw.WriteString("WAVE")
	sw.WriteString(id)
	binary.WriteLE[uint32](sw, uint32(chunkLen))
	sw.Pad(chunkLen)
	sw.WriteBytes(canonical[12:])

	return written(buf, sw)
}

// FLAC returns "fLaC" followed by a last-block STREAMINFO.
//
// The 20/3/5/36-bit fields are packed into one 64-bit big-endian word the way
// the format describes them, independently of any decoder under test.
func FLAC(sampleRate uint32, bitDepth uint16, channels uint8, totalSamples uint64) []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)

	sw.WriteString("fLaC")
	// last-metadata-block flag set, type 0 (STREAMINFO), length 34
	binary.Write[uint32](sw, 0x80000022)
	binary.Write[uint16](sw, 4096) // min block size
	binary.Write[uint16](sw, 4096) // max block size
	sw.Pad(3)                      // min frame size
	sw.Pad(3)                      // max frame size

	packed := uint64(sampleRate&0xFFFFF)<<44 |
		uint64((channels-1)&0x7)<<41 |
		uint64((bitDepth-1)&0x1F)<<36 |
		totalSamples&0xFFFFFFFFF
	binary.Write[uint64](sw, packed)
	sw.Pad(16) // MD5

	return written(buf, sw)
}

// FLACWithFirstBlock returns a FLAC stream whose first metadata block has the
// given type and length, with zeroed contents.
func FLACWithFirstBlock(blockType uint8, length uint32) []byte {
	buf := &bytes.Buffer{}
	sw := binary.NewSafeWriter(buf)

	sw.WriteString("fLaC")
	binary.Write[uint32](sw, uint32(blockType&0x7F)<<24|length&0xFFFFFF)
	sw.Pad(int(length))

	return written(buf, sw)
}

// written returns what sw laid out in buf. SafeWriter keeps the first error,
// so one check covers every write of a builder.
func written(buf *bytes.Buffer, sw *binary.SafeWriter) []byte {
	if err := sw.Error(); err != nil {
		panic(fmt.Sprintf("headertest: fixture write failed at offset %d: %v", sw.Offset(), err))
	}
	return buf.Bytes()
}
