package sniff

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/types"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data string
		path string
		want types.Format
	}{
		{"riff", "RIFF\x24\x08\x00\x00WAVE", "track.wav", types.FormatWAV},
		{"riff with wrong extension", "RIFF\x00\x00\x00\x00", "track.mp3", types.FormatWAV},
		{"flac", "fLaC\x00\x00\x00\x22", "track.flac", types.FormatFLAC},
		{"flac with no extension", "fLaC", "track", types.FormatFLAC},
		{"id3", "ID3\x04\x00\x00", "track.mp3", types.FormatOther},
		{"ogg", "OggS\x00\x02", "track.ogg", types.FormatOther},
		{"other named wav", "OggS", "track.wav", types.FormatOther},
		{"lowercase riff", "riff", "track.wav", types.FormatOther},
		{"uppercase flac", "FLAC", "track.flac", types.FormatOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sniff(bytes.NewReader([]byte(tt.data)), tt.path)
			if err != nil {
				t.Fatalf("Sniff() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sniff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSniff_ConsumesFourBytes(t *testing.T) {
	r := bytes.NewReader([]byte("RIFF\x01\x02\x03\x04"))
	if _, err := Sniff(r, "x.wav"); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 4 {
		t.Errorf("expected 4 bytes left, got %d", r.Len())
	}
}

func TestSniffStream_Offset(t *testing.T) {
	s := binary.NewStream(bytes.NewReader([]byte("fLaC\x00")), "x.flac", 0)
	if _, err := SniffStream(s); err != nil {
		t.Fatal(err)
	}
	if s.Offset() != MagicSize {
		t.Errorf("Offset() = %d, want %d", s.Offset(), MagicSize)
	}
}

func TestSniff_Truncated(t *testing.T) {
	for _, data := range []string{"", "R", "RIF"} {
		got, err := Sniff(bytes.NewReader([]byte(data)), "short")
		if !errors.Is(err, types.ErrTruncatedHeader) {
			t.Errorf("Sniff(%q) error = %v, want ErrTruncatedHeader", data, err)
		}
		if got != types.FormatOther {
			t.Errorf("Sniff(%q) = %v, want FormatOther on failure", data, got)
		}
	}
}

func TestClassify(t *testing.T) {
	if got := Classify([4]byte{'R', 'I', 'F', 'F'}); got != types.FormatWAV {
		t.Errorf("Classify(RIFF) = %v", got)
	}
	if got := Classify([4]byte{'f', 'L', 'a', 'C'}); got != types.FormatFLAC {
		t.Errorf("Classify(fLaC) = %v", got)
	}
	if got := Classify([4]byte{0xFF, 0xFB, 0x90, 0x00}); got != types.FormatOther {
		t.Errorf("Classify(mp3 sync) = %v", got)
	}
}
