// Package flac extracts sample rate and bit depth from the STREAMINFO block
// of a native FLAC stream.
package flac

import (
	"fmt"

	"github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/types"
)

// Fixed offsets from the start of the file.
const (
	blockHeaderOffset = 4
	// PackedOffset is where the four bytes holding the sample rate and the
	// bits-per-sample field start: 4 magic + 4 block header + 10 bytes of
	// block and frame sizes.
	PackedOffset = 18
	// HeaderSize is the number of bytes Extract consumes in total.
	HeaderSize = PackedOffset + 4

	blockTypeStreamInfo = 0
	streamInfoLength    = 34
)

// Field limits.
const (
	MaxSampleRate = 1<<20 - 1
	MaxBitDepth   = 32
)

// Extract reads the FLAC sample rate and bit depth from s.
//
// s may sit at offset 0 or just past the 4-byte "fLaC" magic. On any short
// read the error is a *types.TruncatedHeaderError and the header is nil.
func Extract(s *binary.Stream) (*types.Header, error) {
	start := s.Offset()
	if start > blockHeaderOffset {
		return nil, fmt.Errorf("%s: flac extractor needs the stream at offset <= %d, got %d",
			s.Path(), blockHeaderOffset, start)
	}

	cs := binary.NewChainStream(s)
	cs.Skip(blockHeaderOffset-start, "magic bytes")
	blockHeader := binary.ReadChained[uint32](cs, "metadata block header", binary.BigEndian)
	cs.Skip(PackedOffset-blockHeaderOffset-4, "block and frame sizes")
	packed := cs.Bytes(4, "sample rate and bits per sample")

	if err := cs.Error(); err != nil {
		return nil, err
	}

	sampleRate, bitDepth := Unpack(packed[0], packed[1], packed[2], packed[3])

	return &types.Header{
		Format:     types.FormatFLAC,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Warnings:   checkBlockHeader(blockHeader),
	}, nil
}

// Unpack decodes the sample rate and bit depth from the four bytes at
// PackedOffset.
//
// The sample rate is 20 bits: all of b0 and b1 plus the high nibble of b2.
// The low nibble of b2 holds 3 bits of channel count and, in bit 0, the most
// significant bit of the 5-bit bits-per-sample field; the remaining 4 bits are
// the high nibble of b3. The field stores depth-1, so 31 means 32-bit.
func Unpack(b0, b1, b2, b3 byte) (sampleRate uint32, bitDepth uint16) {
	sampleRate = uint32(b0)<<12 | uint32(b1)<<4 | uint32(b2)>>4
	bitsMinus1 := uint16(b2&0x01)<<4 | uint16(b3>>4)
	return sampleRate, bitsMinus1 + 1
}

// Pack is the inverse of Unpack. Channel and sample-count bits are left zero.
func Pack(sampleRate uint32, bitDepth uint16) ([4]byte, error) {
	if sampleRate > MaxSampleRate {
		return [4]byte{}, fmt.Errorf("sample rate %d does not fit in 20 bits", sampleRate)
	}
	if bitDepth < 1 || bitDepth > MaxBitDepth {
		return [4]byte{}, fmt.Errorf("bit depth %d outside 1..%d", bitDepth, MaxBitDepth)
	}

	bitsMinus1 := byte(bitDepth - 1)
	return [4]byte{
		byte(sampleRate >> 12),
		byte(sampleRate >> 4),
		byte(sampleRate&0x0F)<<4 | bitsMinus1>>4,
		(bitsMinus1 & 0x0F) << 4,
	}, nil
}

// checkBlockHeader flags streams whose first block is not a 34-byte
// STREAMINFO, where the fixed offsets do not hold stream properties.
func checkBlockHeader(header uint32) []types.Warning {
	blockType := (header >> 24) & 0x7F
	length := header & 0x00FFFFFF

	if blockType == blockTypeStreamInfo && length == streamInfoLength {
		return nil
	}

	return []types.Warning{{
		Stage:   "flac",
		Message: fmt.Sprintf("first metadata block is type %d with length %d, not a %d-byte STREAMINFO", blockType, length, streamInfoLength),
		Offset:  blockHeaderOffset,
	}}
}
