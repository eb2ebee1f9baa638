package abxmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/abxmeta/internal/binary"
	"github.com/simonhull/abxmeta/internal/flac"
	"github.com/simonhull/abxmeta/internal/sniff"
	"github.com/simonhull/abxmeta/internal/wav"
)

// MediaInspector reads sample rate and bitrate from streams that are neither
// WAV nor FLAC.
//
// r is positioned at offset 0 when Inspect is called. The default
// implementation recognizes MP3, Ogg (Vorbis and Opus), AIFF and MP4 audio.
type MediaInspector interface {
	Inspect(r io.ReadSeeker, size int64, path string) (MediaInfo, error)
}

// ReadHeader sniffs r and extracts the WAV or FLAC header that follows.
//
// r must be positioned at the start of the stream. Only the first 36 bytes
// at most are consumed. Streams that are neither WAV nor FLAC return
// ErrUnrecognizedFormat so the caller can defer them to a media inspector;
// InspectReader does that automatically.
//
// Example:
//
//	h, err := abxmeta.ReadHeader(resp.Body, url)
//	if errors.Is(err, abxmeta.ErrUnrecognizedFormat) {
//		// not WAV or FLAC
//	}
func ReadHeader(r io.Reader, path string) (*Header, error) {
	s := binary.NewStream(r, path, 0)

	format, err := sniff.SniffStream(s)
	if err != nil {
		return nil, err
	}

	if format == FormatOther {
		return nil, fmt.Errorf("%s: %w", path, ErrUnrecognizedFormat)
	}
	return extract(format, s)
}

// extract dispatches a sniffed stream to its extractor. s is positioned just
// past the magic.
func extract(format Format, s *binary.Stream) (*Header, error) {
	switch format {
	case FormatWAV:
		return wav.Extract(s)
	case FormatFLAC:
		return flac.Extract(s)
	case FormatOther:
		return nil, fmt.Errorf("%s: %w", s.Path(), ErrUnrecognizedFormat)
	default:
		return nil, fmt.Errorf("%s: unknown format %d: %w", s.Path(), format, ErrUnrecognizedFormat)
	}
}

// InspectReader reads the header of one stream.
//
// WAV and FLAC are extracted directly. Anything else is rewound to offset 0
// and handed to the configured MediaInspector. So is a stream too short to
// hold the 4 magic bytes; if the inspector cannot read it either, the error
// matches both ErrTruncatedHeader and the inspector's error.
func InspectReader(r io.ReadSeeker, size int64, path string, opts ...Option) (*Header, error) {
	return inspectReader(r, size, path, buildOptions(opts))
}

func inspectReader(r io.ReadSeeker, size int64, path string, options *inspectOptions) (*Header, error) {
	s := binary.NewStream(r, path, 0)

	format, err := sniff.SniffStream(s)
	if errors.Is(err, ErrTruncatedHeader) {
		return inspectShort(r, size, path, options, err)
	}
	if err != nil {
		return nil, err
	}

	var h *Header
	if format == FormatOther {
		h, err = inspectOther(r, size, path, options)
	} else {
		h, err = extract(format, s)
	}
	if err != nil {
		return nil, err
	}

	return finish(h, path, options)
}

// inspectShort gives a stream shorter than the magic to the media inspector.
// sniffErr is returned alone when there is no inspector.
func inspectShort(r io.ReadSeeker, size int64, path string, options *inspectOptions, sniffErr error) (*Header, error) {
	if options.inspector == nil {
		return nil, sniffErr
	}

	h, err := inspectOther(r, size, path, options)
	if err != nil {
		return nil, fmt.Errorf("%w; media inspector: %w", sniffErr, err)
	}
	return finish(h, path, options)
}

// inspectOther defers a stream to the media inspector.
func inspectOther(r io.ReadSeeker, size int64, path string, options *inspectOptions) (*Header, error) {
	if options.inspector == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnrecognizedFormat)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, &StreamUnavailableError{Path: path, Err: err}
	}

	info, err := options.inspector.Inspect(r, size, path)
	if err != nil {
		return nil, err
	}

	options.logger.Debug("media inspected",
		slog.String("path", path),
		slog.String("kind", info.Kind),
		slog.String("codec", info.Codec))

	return info.Header(), nil
}

// finish applies the warning options to an extracted header.
func finish(h *Header, path string, options *inspectOptions) (*Header, error) {
	if options.strictParsing {
		if err := h.Validate(path); err != nil {
			return nil, err
		}
		if len(h.Warnings) > 0 {
			w := h.Warnings[0]
			return nil, &CorruptedHeaderError{
				Path:   path,
				Offset: w.Offset,
				Reason: "strict parsing: " + w.Message,
			}
		}
	}

	if options.ignoreWarnings {
		h.Warnings = nil
	}

	for _, w := range h.Warnings {
		options.logger.Debug("header warning",
			slog.String("path", path),
			slog.String("warning", w.String()))
	}

	return h, nil
}

// Inspect opens the file at path and reads its header.
//
// Failure to open or stat the file is reported as a *StreamUnavailableError.
// The file is closed before Inspect returns, on every path.
//
// Example:
//
//	h, err := abxmeta.Inspect("take1.wav")
//	if err != nil {
//		return err
//	}
//	fmt.Println(h.Display().SampleRate) // 44.1 kHz
func Inspect(path string, opts ...Option) (*Header, error) {
	return inspectFile(path, buildOptions(opts))
}

func inspectFile(path string, options *inspectOptions) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &StreamUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &StreamUnavailableError{Path: path, Err: err}
	}
	if stat.IsDir() {
		return nil, &StreamUnavailableError{Path: path, Err: errors.New("is a directory")}
	}

	h, err := inspectReader(f, stat.Size(), path, options)
	if err != nil {
		return nil, err
	}

	options.logger.Debug("header read",
		slog.String("path", path),
		slog.String("format", h.Format.String()),
		slog.String("display", h.Display().String()))

	return h, nil
}

// Result is the outcome of inspecting one file in a batch.
//
// Exactly one of Header and Err is set.
type Result struct {
	Path   string
	Header *Header
	Err    error
}

// Display returns the header's display strings, or all-empty strings when
// the file could not be read.
func (r Result) Display() Display {
	if r.Err != nil || r.Header == nil {
		return Display{}
	}
	return r.Header.Display()
}

// InspectMany inspects files concurrently.
//
// Results are returned in the same order as paths. A file that fails does
// not stop the batch: its error is stored in its Result and logged at Warn.
// The only error InspectMany itself returns is the context's, when ctx is
// cancelled before every file was read.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	results, err := abxmeta.InspectMany(ctx, paths, abxmeta.WithConcurrency(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range results {
//		fmt.Printf("%s: %s\n", r.Path, r.Display())
//	}
func InspectMany(ctx context.Context, paths []string, opts ...Option) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	options := buildOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(options.concurrency)

	results := make([]Result, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			if err := ctx.Err(); err != nil {
				return err
			}

			h, err := inspectFile(path, options)
			if err != nil {
				options.logger.Warn("inspect failed",
					slog.String("path", path),
					slog.Any("error", err))
			}

			results[i] = Result{Path: path, Header: h, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
