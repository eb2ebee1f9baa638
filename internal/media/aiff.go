package media

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/simonhull/abxmeta/internal/registry"
	"github.com/simonhull/abxmeta/internal/types"
)

func init() {
	registry.Register(KindAIFF, registry.ProbeFunc(probeAIFF))
}

// probeAIFF reads the COMM chunk through go-audio/aiff.
//
// AIFF is uncompressed PCM, so the bitrate follows from the format alone:
// rate × depth × channels.
func probeAIFF(r io.ReadSeeker, _ int64, path string) (types.MediaInfo, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: path, Reason: "not a valid AIFF file"}
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.SampleRate <= 0 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{Path: path, Reason: "AIFF COMM chunk missing or invalid"}
	}
	if dec.BitDepth == 0 || format.NumChannels <= 0 {
		return types.MediaInfo{}, &types.CorruptedHeaderError{
			Path:   path,
			Reason: fmt.Sprintf("AIFF reports %d-bit depth over %d channels", dec.BitDepth, format.NumChannels),
		}
	}

	bps := uint64(format.SampleRate) * uint64(dec.BitDepth) * uint64(format.NumChannels)
	return types.MediaInfo{
		Codec:      "PCM",
		SampleRate: uint32(format.SampleRate),
		Bitrate:    uint32((bps + 500) / 1000),
	}, nil
}
