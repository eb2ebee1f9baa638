// Package registry maps container kinds to the probes that read their
// sample rate and bitrate.
//
// Probes register themselves from init functions in the media package.
// Registration is expected to finish before the first lookup.
package registry

import (
	"io"
	"slices"

	"github.com/simonhull/abxmeta/internal/types"
)

// Probe reads stream properties from one container kind.
type Probe interface {
	// Probe inspects r, which is positioned at offset 0.
	Probe(r io.ReadSeeker, size int64, path string) (types.MediaInfo, error)
}

// ProbeFunc adapts a plain function to Probe.
type ProbeFunc func(r io.ReadSeeker, size int64, path string) (types.MediaInfo, error)

// Probe calls f.
func (f ProbeFunc) Probe(r io.ReadSeeker, size int64, path string) (types.MediaInfo, error) {
	return f(r, size, path)
}

// probes maps kinds to their probes.
var probes = make(map[string]Probe)

// Register registers a probe for a kind, replacing any previous one.
func Register(kind string, probe Probe) {
	probes[kind] = probe
}

// Get returns the probe for a kind.
// Returns nil if no probe is registered for the kind.
func Get(kind string) Probe {
	return probes[kind]
}

// Kinds returns the registered kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(probes))
	for k := range probes {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
