// Package abxmeta reads the stream properties a blind A/B/X listening test
// needs to show next to each track: sample rate, and bit depth or bitrate.
//
// WAV and FLAC headers are read byte-for-byte from fixed offsets, so the
// numbers come straight from the file rather than from a decoder. Every
// other container is handed to a generic media inspector that reports
// sample rate and bitrate.
//
// # Quick Start
//
// Reading a single file:
//
//	h, err := abxmeta.Inspect("take1.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(h.Display()) // FLAC 96 kHz 24-bit
//
// Classification looks only at the first four bytes. "RIFF" is WAV, "fLaC"
// is FLAC, anything else is [FormatOther]. File extensions are never
// consulted. OTHER streams, and streams too short to hold the magic, go to
// the media inspector; their Display names the container it found ("MP3",
// "OGG", ...).
//
// # Batches
//
// InspectMany reads files in parallel. A file that fails never stops the
// others; its error is carried in the matching [Result]:
//
//	results, err := abxmeta.InspectMany(ctx, paths)
//	if err != nil {
//		return err // context cancelled
//	}
//	for _, r := range results {
//		fmt.Printf("%s: %s\n", r.Path, r.Display())
//	}
//
// # Limitations
//
// The WAV reader assumes the canonical 44-byte layout with "fmt " as the
// first chunk. Files with LIST or JUNK chunks before "fmt " produce wrong
// values; such layouts are flagged with a [Warning] but not corrected.
//
// # Error Handling
//
// Failures are typed so callers can branch with errors.As or errors.Is:
//
//   - [TruncatedHeaderError]: the stream ended before a header field
//   - [StreamUnavailableError]: the file could not be opened
//   - [UnsupportedFormatError]: the media inspector cannot read the container
//   - [CorruptedHeaderError]: fields were read but make no sense
//   - [ErrUnrecognizedFormat]: not WAV or FLAC and no inspector configured
//
// # Logging
//
// The library is silent by default. Pass a *slog.Logger with [WithLogger]
// to see per-file results and failures.
package abxmeta
