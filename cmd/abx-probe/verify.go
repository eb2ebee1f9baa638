package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-audio/wav"

	"github.com/simonhull/abxmeta"
)

// verifyWAV decodes the fmt chunk with go-audio/wav, which walks chunks
// instead of trusting fixed offsets, and describes any disagreement with h.
// It returns "" when both readers agree.
func verifyWAV(path string, h *abxmeta.Header) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return "", fmt.Errorf("go-audio/wav rejects %s", path)
	}
	dec.ReadInfo()

	var diffs []string
	if dec.SampleRate != h.SampleRate {
		diffs = append(diffs, fmt.Sprintf("sample rate %d Hz, decoder says %d Hz", h.SampleRate, dec.SampleRate))
	}
	if dec.BitDepth != h.BitDepth {
		diffs = append(diffs, fmt.Sprintf("bit depth %d, decoder says %d", h.BitDepth, dec.BitDepth))
	}

	return strings.Join(diffs, "; "), nil
}
