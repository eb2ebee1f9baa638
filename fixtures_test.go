package abxmeta_test

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
)

// silence returns frames of zeroed interleaved samples.
func silence(sampleRate, channels, bitDepth, frames int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, frames*channels),
		SourceBitDepth: bitDepth,
	}
}

// writeWAV encodes a PCM WAV file with go-audio/wav and returns its path.
func writeWAV(t testing.TB, name string, sampleRate, bitDepth, channels int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	if err := enc.Write(silence(sampleRate, channels, bitDepth, 1024)); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}

	return path
}

// writeAIFF encodes an AIFF file with go-audio/aiff and returns its path.
func writeAIFF(t testing.TB, name string, sampleRate, bitDepth, channels int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, sampleRate, bitDepth, channels)
	if err := enc.Write(silence(sampleRate, channels, bitDepth, 1024)); err != nil {
		t.Fatalf("encode aiff: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close aiff encoder: %v", err)
	}

	return path
}

// writeFile writes raw bytes to a temp file and returns its path.
func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
