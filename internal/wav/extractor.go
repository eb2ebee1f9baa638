// Package wav extracts sample rate and bit depth from RIFF/WAVE headers.
//
// Only the canonical layout is understood: the fmt chunk is assumed to start
// at offset 12, which puts the sample rate at 24 and the bit depth at 34.
// Chunk IDs and sizes are not walked. Files with other chunks ahead of fmt
// (LIST, JUNK, bext) yield wrong values; Extract flags them with a Warning
// but still returns what it read at the fixed offsets.
package wav

import (
	"fmt"

	"github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/types"
)

// Fixed offsets from the start of the file.
const (
	formTypeOffset   = 8
	fmtChunkOffset   = 12
	SampleRateOffset = 24
	BitDepthOffset   = 34
	// HeaderSize is the number of bytes Extract consumes in total.
	HeaderSize = BitDepthOffset + 2
)

// Extract reads the WAV header fields from s.
//
// s may sit at offset 0 or just past the 4-byte "RIFF" magic; every skip is
// measured from s.Offset(). On any short read the error is a
// *types.TruncatedHeaderError and the header is nil.
func Extract(s *binary.Stream) (*types.Header, error) {
	start := s.Offset()
	if start > formTypeOffset {
		return nil, fmt.Errorf("%s: wav extractor needs the stream at offset <= %d, got %d",
			s.Path(), formTypeOffset, start)
	}

	cs := binary.NewChainStream(s)

	// Everything up to the sample rate: RIFF size, form type, fmt chunk
	// header, format tag, channel count.
	preamble := cs.Bytes(int(SampleRateOffset-start), "RIFF preamble")
	sampleRate := binary.ReadChained[uint32](cs, "sample rate", binary.LittleEndian)
	// byte rate and block align
	cs.Skip(BitDepthOffset-SampleRateOffset-4, "byte rate and block align")
	bitDepth := binary.ReadChained[uint16](cs, "bits per sample", binary.LittleEndian)

	if err := cs.Error(); err != nil {
		return nil, err
	}

	return &types.Header{
		Format:     types.FormatWAV,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Warnings:   checkLayout(preamble, start),
	}, nil
}

// checkLayout inspects the bytes Extract passed over on its way to the
// sample rate. preamble[0] sits at file offset start.
func checkLayout(preamble []byte, start int64) []types.Warning {
	at := func(off int64) string {
		i := off - start
		if i < 0 {
			return ""
		}
		return string(preamble[i : i+4])
	}

	var warnings []types.Warning

	if form := at(formTypeOffset); form != "WAVE" {
		warnings = append(warnings, types.Warning{
			Stage:   "wav",
			Message: fmt.Sprintf("RIFF form type is %q, not \"WAVE\"", form),
			Offset:  formTypeOffset,
		})
	}

	if id := at(fmtChunkOffset); id != "fmt " {
		warnings = append(warnings, types.Warning{
			Stage:   "wav",
			Message: fmt.Sprintf("expected fmt chunk at offset %d, found %q; sample rate and bit depth may be wrong", fmtChunkOffset, id),
			Offset:  fmtChunkOffset,
		})
	}

	return warnings
}
