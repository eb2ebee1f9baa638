package abxmeta

import (
	"log/slog"
	"runtime"

	"github.com/simonhull/abxmeta/internal/media"
)

// Option configures inspection.
//
// Options use the functional options pattern:
//
//	h, err := abxmeta.Inspect("take1.wav",
//	    abxmeta.WithStrictParsing(),
//	    abxmeta.WithLogger(logger),
//	)
type Option func(*inspectOptions)

// inspectOptions holds configuration for inspecting files.
type inspectOptions struct {
	logger         *slog.Logger
	inspector      MediaInspector // nil = OTHER streams are not inspected
	strictParsing  bool           // Fail on any warning
	ignoreWarnings bool           // Suppress all warnings
	concurrency    int            // InspectMany worker limit
}

var _ MediaInspector = (*media.Inspector)(nil)

// defaultOptions returns the default configuration.
func defaultOptions() *inspectOptions {
	return &inspectOptions{
		logger:      slog.New(slog.DiscardHandler),
		inspector:   media.New(),
		concurrency: runtime.NumCPU(),
	}
}

func buildOptions(opts []Option) *inspectOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithLogger sends per-file results (Debug) and failures (Warn) to logger.
//
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *inspectOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInspector replaces the media inspector used for streams that are
// neither WAV nor FLAC.
//
// Passing nil disables the fallback: such streams fail with
// ErrUnrecognizedFormat, which lets callers route them elsewhere.
func WithInspector(inspector MediaInspector) Option {
	return func(o *inspectOptions) {
		o.inspector = inspector
	}
}

// WithStrictParsing treats any warning as a fatal error and rejects headers
// whose fields do not describe a usable stream, such as a zero sample rate.
//
// By default values are returned exactly as read, with warnings attached.
func WithStrictParsing() Option {
	return func(o *inspectOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Header.Warnings will always be empty.
func WithIgnoreWarnings() Option {
	return func(o *inspectOptions) {
		o.ignoreWarnings = true
	}
}

// WithConcurrency bounds how many files InspectMany reads at once.
//
// Values below 1 fall back to the default, runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *inspectOptions) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		o.concurrency = n
	}
}
