package abxmeta

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
)

func TestTruncatedHeaderError_Error(t *testing.T) {
	err := &TruncatedHeaderError{
		Path:   "take.wav",
		What:   "bits per sample",
		Offset: 34,
		Want:   2,
		Got:    1,
		Err:    io.ErrUnexpectedEOF,
	}

	msg := err.Error()
	for _, substr := range []string{"take.wav", "offset 34", "bits per sample", "got 1 of 2"} {
		if !strings.Contains(msg, substr) {
			t.Errorf("error message %q should contain %q", msg, substr)
		}
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "truncated",
			err:    &TruncatedHeaderError{Path: "a.flac", Err: io.ErrUnexpectedEOF},
			target: ErrTruncatedHeader,
		},
		{
			name:   "truncated unwraps to io error",
			err:    &TruncatedHeaderError{Path: "a.flac", Err: io.ErrUnexpectedEOF},
			target: io.ErrUnexpectedEOF,
		},
		{
			name:   "unavailable",
			err:    &StreamUnavailableError{Path: "a.wav", Err: os.ErrNotExist},
			target: ErrStreamUnavailable,
		},
		{
			name:   "unavailable unwraps to os error",
			err:    &StreamUnavailableError{Path: "a.wav", Err: os.ErrNotExist},
			target: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("batch: %w", tt.err)
			if !errors.Is(wrapped, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.target)
			}
		})
	}
}

func TestErrorsAs_Aliases(t *testing.T) {
	var err error = fmt.Errorf("probe: %w", &CorruptedHeaderError{Path: "x.m4a", Offset: 16, Reason: "atom 'moov' not found"})

	var corrupt *CorruptedHeaderError
	if !errors.As(err, &corrupt) {
		t.Fatal("errors.As should find *CorruptedHeaderError")
	}
	if corrupt.Offset != 16 {
		t.Errorf("Offset = %d, want 16", corrupt.Offset)
	}

	unsupported := &UnsupportedFormatError{Path: "x.mkv", Reason: "unrecognized container"}
	if !strings.Contains(unsupported.Error(), "x.mkv") || !strings.Contains(unsupported.Error(), "unrecognized container") {
		t.Errorf("UnsupportedFormatError.Error() = %q", unsupported.Error())
	}
}

func TestWarning_String(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Stage: "wav", Message: "non-canonical layout", Offset: 12}, "wav (at offset 12): non-canonical layout"},
		{Warning{Stage: "flac", Message: "first block is not STREAMINFO"}, "flac: first block is not STREAMINFO"},
	}

	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
