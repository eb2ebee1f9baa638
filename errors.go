package abxmeta

import (
	"github.com/simonhull/abxmeta/internal/types"
)

// TruncatedHeaderError is an alias to types.TruncatedHeaderError.
// Re-exporting from internal/types to maintain public API.
type TruncatedHeaderError = types.TruncatedHeaderError

// StreamUnavailableError is an alias to types.StreamUnavailableError.
type StreamUnavailableError = types.StreamUnavailableError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedHeaderError is an alias to types.CorruptedHeaderError.
type CorruptedHeaderError = types.CorruptedHeaderError

// Warning is an alias to types.Warning.
type Warning = types.Warning

// Sentinels for errors.Is.
var (
	ErrTruncatedHeader    = types.ErrTruncatedHeader
	ErrStreamUnavailable  = types.ErrStreamUnavailable
	ErrUnrecognizedFormat = types.ErrUnrecognizedFormat
)
