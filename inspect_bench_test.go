package abxmeta_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/simonhull/abxmeta"
	"github.com/simonhull/abxmeta/internal/headertest"
)

// BenchmarkInspect_WAV measures opening and reading one WAV file.
func BenchmarkInspect_WAV(b *testing.B) {
	path := writeWAV(b, "bench.wav", 44100, 16, 2)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := abxmeta.Inspect(path); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkInspect_FLAC measures opening and reading one FLAC file.
func BenchmarkInspect_FLAC(b *testing.B) {
	path := writeFile(b, "bench.flac", headertest.FLAC(96000, 24, 2, 0))

	b.ReportAllocs()
	for b.Loop() {
		if _, err := abxmeta.Inspect(path); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkReadHeader measures header extraction without file I/O.
func BenchmarkReadHeader(b *testing.B) {
	data := headertest.FLAC(44100, 16, 2, 0)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := abxmeta.ReadHeader(bytes.NewReader(data), "bench.flac"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkInspectMany measures batch throughput for a ten-track comparison.
func BenchmarkInspectMany(b *testing.B) {
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = writeWAV(b, "bench.wav", 48000, 24, 2)
	}
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := abxmeta.InspectMany(ctx, paths); err != nil {
			b.Fatal(err)
		}
	}
}
